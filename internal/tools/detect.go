package tools

import (
	"context"
	"fmt"
	"strings"

	"devsetup/internal/execx"
)

// Present reports whether the named tool resolves in the current environment.
// It is side-effect free and safe to call repeatedly; every install routine is
// gated behind it.
func (rt *Runtime) Present(ctx context.Context, def Tool) bool {
	if def.Probe != nil {
		return rt.runProbe(ctx, *def.Probe)
	}
	for _, bin := range def.Binaries {
		if _, err := rt.Exec.LookPath(bin.Name); err != nil {
			return false
		}
	}
	return len(def.Binaries) > 0
}

func (rt *Runtime) runProbe(ctx context.Context, probe CommandProbe) bool {
	if len(probe.Argv) == 0 {
		return false
	}
	if _, err := rt.Exec.LookPath(probe.Argv[0]); err != nil {
		return false
	}
	res, err := rt.Exec.Run(ctx, probe.Argv[0], probe.Argv[1:], execx.RunOptions{})
	if err != nil {
		return false
	}
	if probe.Contains == "" {
		return true
	}
	return strings.Contains(string(res.Stdout), probe.Contains)
}

// Status resolves the current state of a single tool: presence, version, and
// whether the minimum version is met.
func (rt *Runtime) Status(ctx context.Context, def Tool) Status {
	minimum, notes := resolveMinimum(ctx, def)
	status := Status{
		Tool:     def.Name,
		Required: def.Required,
		Minimum:  minimum,
		Notes:    notes,
	}

	if def.Probe != nil {
		if len(def.Probe.Argv) > 0 {
			if _, err := rt.Exec.LookPath(def.Probe.Argv[0]); err != nil {
				status.Error = fmt.Sprintf("%s not found in PATH", def.Probe.Argv[0])
				return status
			}
		}
		if rt.runProbe(ctx, *def.Probe) {
			status.Satisfied = true
		} else {
			status.Error = fmt.Sprintf("%s not installed", def.Name)
		}
		return status
	}

	for _, bin := range def.Binaries {
		path, err := rt.Exec.LookPath(bin.Name)
		if err != nil {
			status.Error = fmt.Sprintf("%s not found in PATH", bin.Name)
			return status
		}
		if status.Path == "" {
			status.Path = path
		}
	}

	version, err := rt.readVersion(ctx, def, status.Path)
	if err != nil {
		// Present but not callable; report it, let the caller decide.
		status.Error = err.Error()
		return status
	}
	status.Version = version

	status.Satisfied = meetsMinimum(version, minimum)
	if !status.Satisfied {
		status.Error = fmt.Sprintf("version %s below minimum %s", version, minimum)
	}
	return status
}

// Detect resolves every tool enabled by the given flags, required tools first.
func (rt *Runtime) Detect(ctx context.Context, flags Flags) []Status {
	var statuses []Status
	for _, def := range All() {
		if !def.Required && !def.Gate.Enabled(flags) {
			continue
		}
		statuses = append(statuses, rt.Status(ctx, def))
	}
	return statuses
}
