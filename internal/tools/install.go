package tools

import (
	"context"
	"fmt"
	"strings"

	"devsetup/internal/execx"
)

// Install attempts to install an absent tool. Channels are tried in registry
// order; the first available one that succeeds wins. The returned error is
// non-nil only when no channel could install the tool; the caller decides
// whether that is fatal.
//
// Callers are expected to gate this behind Present/Status: installs never run
// for tools that are already satisfied.
func (rt *Runtime) Install(ctx context.Context, def Tool) (Status, error) {
	status := Status{Tool: def.Name, Required: def.Required, Minimum: def.Minimum}

	if def.Requires != "" {
		dep, ok := Lookup(def.Requires)
		if !ok || !rt.Present(ctx, dep) {
			status.Error = fmt.Sprintf("requires %s; install it first", def.Requires)
			rt.logf("install %s: %s", def.Name, status.Error)
			return status, fmt.Errorf("install %s: %s", def.Name, status.Error)
		}
	}

	attempted := false
	for _, ch := range def.Channels {
		label, ok := rt.channelAvailable(ch)
		if !ok {
			continue
		}
		attempted = true
		rt.logf("install %s via %s", def.Name, label)
		if err := rt.runChannel(ctx, def, ch); err != nil {
			status.Notes = append(status.Notes, fmt.Sprintf("install via %s failed: %v", label, err))
			rt.logf("install %s via %s failed: %v", def.Name, label, err)
			continue
		}
		verified, err := rt.verifyInstall(ctx, def, status, label)
		if err != nil {
			if def.ManualURL != "" {
				verified.Notes = append(verified.Notes, "install manually: "+def.ManualURL)
			}
			rt.logf("install %s: %v", def.Name, err)
		}
		return verified, err
	}

	if !attempted {
		status.Error = fmt.Sprintf("no installation method available on %s", rt.Platform)
	} else {
		status.Error = "installation failed"
	}
	if def.ManualURL != "" {
		status.Notes = append(status.Notes, "install manually: "+def.ManualURL)
	}
	rt.logf("install %s: %s", def.Name, status.Error)
	return status, fmt.Errorf("install %s: %s", def.Name, status.Error)
}

// verifyInstall re-runs the presence check after a successful install command.
// Continued absence is a shell-restart warning, not a failure: several
// installers only amend profile files that a fresh session picks up. A tool
// that IS present but still resolves unsatisfied (version below minimum, not
// callable) is a failure: the install command ran but did not meet the
// requirement.
func (rt *Runtime) verifyInstall(ctx context.Context, def Tool, status Status, label string) (Status, error) {
	status.Installed = true
	status.Notes = append(status.Notes, "installed via "+label)

	if !rt.Present(ctx, def) {
		status.Notes = append(status.Notes, "not yet on PATH; may require a restart of the shell")
		return status, nil
	}

	resolved := rt.Status(ctx, def)
	resolved.Installed = true
	resolved.Notes = append(status.Notes, resolved.Notes...)
	if !resolved.Satisfied {
		return resolved, fmt.Errorf("install %s: %s", def.Name, resolved.Error)
	}
	return resolved, nil
}

func (rt *Runtime) channelAvailable(ch Channel) (string, bool) {
	switch ch.Kind {
	case ChannelPackageManager:
		if rt.HasMgr {
			return rt.Manager.Name, true
		}
		return "", false
	case ChannelScript:
		if !rt.Platform.Supported() {
			return "", false
		}
		if _, err := rt.Exec.LookPath("curl"); err != nil {
			return "", false
		}
		return "install script", true
	case ChannelUVTool:
		if _, err := rt.Exec.LookPath("uv"); err != nil {
			return "", false
		}
		return "uv tool", true
	case ChannelNpm:
		if _, err := rt.Exec.LookPath("npm"); err != nil {
			return "", false
		}
		return "npm", true
	case ChannelCommand:
		if len(ch.Argv) == 0 {
			return "", false
		}
		if _, err := rt.Exec.LookPath(ch.Argv[0]); err != nil {
			return "", false
		}
		return ch.Argv[0], true
	default:
		return "", false
	}
}

func (rt *Runtime) runChannel(ctx context.Context, def Tool, ch Channel) error {
	switch ch.Kind {
	case ChannelPackageManager:
		pkg := def.Name
		if override, ok := ch.PackageNames[rt.Manager.Name]; ok {
			pkg = override
		}
		name, args := rt.Manager.InstallCommand(pkg)
		return rt.run(ctx, name, args)
	case ChannelScript:
		script := fmt.Sprintf("curl -fsSL %s | sh", ch.ScriptURL)
		return rt.run(ctx, "sh", []string{"-c", script})
	case ChannelUVTool:
		args := append([]string{"tool", "install"}, ch.Packages...)
		return rt.run(ctx, "uv", args)
	case ChannelNpm:
		args := append([]string{"install", "-g"}, ch.Packages...)
		return rt.run(ctx, "npm", args)
	case ChannelCommand:
		return rt.run(ctx, ch.Argv[0], ch.Argv[1:])
	default:
		return fmt.Errorf("unknown channel kind %q", ch.Kind)
	}
}

func (rt *Runtime) run(ctx context.Context, name string, args []string) error {
	res, err := rt.Exec.Run(ctx, name, args, execx.RunOptions{})
	if err != nil {
		detail := strings.TrimSpace(string(res.Stderr))
		if detail != "" {
			return fmt.Errorf("%s: %w: %s", name, err, firstLine(detail))
		}
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}
