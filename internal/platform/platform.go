package platform

import (
	"context"
	"runtime"
	"strings"

	"devsetup/internal/execx"
)

// Tag is the closed set of operating-system categories the installer
// distinguishes for dispatch.
type Tag string

const (
	TagLinux   Tag = "linux"
	TagMac     Tag = "mac"
	TagCygwin  Tag = "cygwin"
	TagMinGW   Tag = "mingw"
	TagGitBash Tag = "git-bash"
	TagUnknown Tag = "unknown"
)

// Platform is derived once at startup and treated as read-only afterward.
// Raw preserves the kernel identifier for diagnostics when the tag is unknown.
type Platform struct {
	Tag Tag
	Raw string
}

func (p Platform) String() string {
	if p.Tag == TagUnknown && p.Raw != "" {
		return string(p.Tag) + " (" + p.Raw + ")"
	}
	return string(p.Tag)
}

// Supported reports whether any installation strategy exists for the platform.
func (p Platform) Supported() bool {
	return p.Tag == TagLinux || p.Tag == TagMac
}

// Detect maps the kernel name reported by uname -s to a platform tag using
// prefix matching. When uname is unavailable (native Windows shells without an
// MSYS layer, stripped containers) the Go runtime's GOOS is used instead.
func Detect(ctx context.Context, r execx.Runner) Platform {
	if _, err := r.LookPath("uname"); err == nil {
		res, err := r.Run(ctx, "uname", []string{"-s"}, execx.RunOptions{})
		if err == nil {
			raw := firstLine(strings.TrimSpace(string(res.Stdout)))
			if raw != "" {
				return fromKernelName(raw)
			}
		}
	}

	switch runtime.GOOS {
	case "linux":
		return Platform{Tag: TagLinux, Raw: runtime.GOOS}
	case "darwin":
		return Platform{Tag: TagMac, Raw: runtime.GOOS}
	default:
		return Platform{Tag: TagUnknown, Raw: runtime.GOOS}
	}
}

func fromKernelName(raw string) Platform {
	switch {
	case strings.HasPrefix(raw, "Linux"):
		return Platform{Tag: TagLinux, Raw: raw}
	case strings.HasPrefix(raw, "Darwin"):
		return Platform{Tag: TagMac, Raw: raw}
	case strings.HasPrefix(raw, "CYGWIN"):
		return Platform{Tag: TagCygwin, Raw: raw}
	case strings.HasPrefix(raw, "MINGW"):
		return Platform{Tag: TagMinGW, Raw: raw}
	case strings.HasPrefix(raw, "MSYS"):
		return Platform{Tag: TagGitBash, Raw: raw}
	default:
		return Platform{Tag: TagUnknown, Raw: raw}
	}
}

func firstLine(text string) string {
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		return text[:idx]
	}
	return text
}
