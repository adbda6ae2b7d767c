package tools

import (
	"context"

	"devsetup/internal/execx"
	"devsetup/internal/platform"
)

// Logger keeps the subset of log.Logger used here, enabling easy testing.
type Logger interface {
	Printf(format string, v ...any)
}

type noopLogger struct{}

func (noopLogger) Printf(string, ...any) {}

// Runtime bundles the immutable environment every detection and install
// routine dispatches on: the exec seam, the platform tag resolved at startup,
// and the system package manager chosen by the one-time probe.
type Runtime struct {
	Exec     execx.Runner
	Platform platform.Platform
	Manager  platform.PackageManager
	HasMgr   bool
	Logger   Logger
}

// NewRuntime detects the platform, probes for a package manager, and returns
// a ready runtime. Detection runs exactly once per invocation.
func NewRuntime(ctx context.Context, r execx.Runner, logger Logger) *Runtime {
	if r == nil {
		r = execx.System{}
	}
	if logger == nil {
		logger = noopLogger{}
	}

	p := platform.Detect(ctx, r)
	logger.Printf("platform: %s", p)

	mgr, ok := platform.ProbeManager(r, p)
	if ok {
		logger.Printf("package manager: %s", mgr.Name)
	} else {
		logger.Printf("package manager: none found")
	}

	return &Runtime{Exec: r, Platform: p, Manager: mgr, HasMgr: ok, Logger: logger}
}

func (rt *Runtime) logf(format string, v ...any) {
	if rt == nil || rt.Logger == nil {
		return
	}
	rt.Logger.Printf(format, v...)
}
