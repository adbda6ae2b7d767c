package tools

// Flags are the feature switches parsed from the command line. They are
// computed once at startup and read-only afterward.
type Flags struct {
	Dev            bool
	CI             bool
	Template       bool
	Starship       bool
	DockerOptimize bool
}

// Gate decides which flag combination enables an optional tool. Required
// tools use GateAlways and are processed regardless of flags.
type Gate uint8

const (
	GateAlways Gate = iota
	GateDev
	GateDevOrCI
	GateCIOrTemplate
	GateStarship
)

// Enabled reports whether the gate opens for the given flags.
func (g Gate) Enabled(f Flags) bool {
	switch g {
	case GateAlways:
		return true
	case GateDev:
		return f.Dev
	case GateDevOrCI:
		return f.Dev || f.CI
	case GateCIOrTemplate:
		return f.CI || f.Template
	case GateStarship:
		return f.Starship
	default:
		return false
	}
}

// BinarySpec describes an executable whose presence on PATH marks the tool as
// installed.
type BinarySpec struct {
	Name          string
	VersionSwitch string
}

// CommandProbe checks presence by running a command and matching its output.
// Used for tools that do not ship a standalone binary (CLI plugins).
type CommandProbe struct {
	Argv     []string
	Contains string
}

// ChannelKind names an installation strategy.
type ChannelKind string

const (
	// ChannelPackageManager installs through the probed system package manager.
	ChannelPackageManager ChannelKind = "package-manager"
	// ChannelScript pipes an upstream install script into sh.
	ChannelScript ChannelKind = "script"
	// ChannelUVTool installs through `uv tool install`.
	ChannelUVTool ChannelKind = "uv-tool"
	// ChannelNpm installs packages globally through npm.
	ChannelNpm ChannelKind = "npm"
	// ChannelCommand runs a fixed command line.
	ChannelCommand ChannelKind = "command"
)

// Channel is one installation strategy for a tool. Channels are tried in
// registry order: an unavailable channel is skipped, a failed one falls
// through to the next. The order is policy, not a derived invariant.
type Channel struct {
	Kind ChannelKind

	// ScriptURL is the upstream installer for ChannelScript.
	ScriptURL string

	// PackageNames overrides the package name per manager for
	// ChannelPackageManager. The tool name is used when no entry matches.
	PackageNames map[string]string

	// Packages is the package list for ChannelUVTool and ChannelNpm.
	Packages []string

	// Argv is the fixed command line for ChannelCommand.
	Argv []string
}

// Tool is a dependency descriptor: what to probe for, which flags enable it,
// and how to install it when absent.
type Tool struct {
	Name      string
	Summary   string
	Required  bool
	Gate      Gate
	Binaries  []BinarySpec
	Probe     *CommandProbe
	Minimum   string
	Requires  string
	Channels  []Channel
	ManualURL string
}

// Status captures the resolved state for a tool after detection or an
// install attempt.
type Status struct {
	Tool      string   `json:"tool"`
	Required  bool     `json:"required"`
	Version   string   `json:"version,omitempty"`
	Minimum   string   `json:"minimum,omitempty"`
	Path      string   `json:"path,omitempty"`
	Satisfied bool     `json:"satisfied"`
	Installed bool     `json:"installed,omitempty"`
	Error     string   `json:"error,omitempty"`
	Notes     []string `json:"notes,omitempty"`
}
