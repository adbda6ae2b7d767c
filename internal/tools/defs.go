package tools

// required lists the tools without which a run aborts, in the order they are
// processed. The order is part of the user-visible contract.
var required = []Tool{
	{
		Name:      "bash",
		Summary:   "primary shell",
		Required:  true,
		Binaries:  []BinarySpec{{Name: "bash", VersionSwitch: "--version"}},
		Channels:  []Channel{{Kind: ChannelPackageManager}},
		ManualURL: "https://www.gnu.org/software/bash/",
	},
	{
		Name:     "just",
		Summary:  "command runner",
		Required: true,
		Binaries: []BinarySpec{{Name: "just", VersionSwitch: "--version"}},
		Channels: []Channel{
			{Kind: ChannelPackageManager},
			{Kind: ChannelScript, ScriptURL: "https://just.systems/install.sh"},
		},
		ManualURL: "https://github.com/casey/just",
	},
	{
		Name:     "python3",
		Summary:  "language runtime",
		Required: true,
		Binaries: []BinarySpec{{Name: "python3", VersionSwitch: "--version"}},
		Minimum:  "3.9",
		Channels: []Channel{
			{Kind: ChannelPackageManager, PackageNames: map[string]string{"pacman": "python", "brew": "python3"}},
		},
		ManualURL: "https://www.python.org/downloads/",
	},
	{
		Name:     "uv",
		Summary:  "python package manager",
		Required: true,
		Binaries: []BinarySpec{{Name: "uv", VersionSwitch: "--version"}},
		Channels: []Channel{
			// The upstream script is preferred over system packages.
			{Kind: ChannelScript, ScriptURL: "https://astral.sh/uv/install.sh"},
			{Kind: ChannelPackageManager},
		},
		ManualURL: "https://docs.astral.sh/uv/getting-started/installation/",
	},
	{
		Name:     "direnv",
		Summary:  "environment loader",
		Required: true,
		Binaries: []BinarySpec{{Name: "direnv", VersionSwitch: "--version"}},
		Channels: []Channel{
			{Kind: ChannelPackageManager},
			{Kind: ChannelScript, ScriptURL: "https://direnv.net/install.sh"},
		},
		ManualURL: "https://direnv.net/docs/installation.html",
	},
}

// optional lists the flag-gated tools in processing order. Failures here warn
// and continue; they never abort the run.
var optional = []Tool{
	{
		Name:     "docker",
		Summary:  "containerization",
		Gate:     GateDev,
		Binaries: []BinarySpec{{Name: "docker", VersionSwitch: "--version"}},
		Channels: []Channel{
			{Kind: ChannelScript, ScriptURL: "https://get.docker.com"},
			{Kind: ChannelPackageManager},
		},
		ManualURL: "https://docs.docker.com/get-docker/",
	},
	{
		Name:     "node",
		Summary:  "javascript runtime",
		Gate:     GateDevOrCI,
		Binaries: []BinarySpec{{Name: "node", VersionSwitch: "--version"}},
		Channels: []Channel{
			{Kind: ChannelPackageManager, PackageNames: map[string]string{
				"apk": "nodejs", "apt-get": "nodejs", "yum": "nodejs", "pacman": "nodejs",
			}},
		},
		ManualURL: "https://nodejs.org/en/download",
	},
	{
		Name:     "npm",
		Summary:  "javascript package registry client",
		Gate:     GateDevOrCI,
		Binaries: []BinarySpec{{Name: "npm", VersionSwitch: "--version"}},
		Channels: []Channel{
			{Kind: ChannelPackageManager, PackageNames: map[string]string{"brew": "node"}},
		},
		ManualURL: "https://docs.npmjs.com/downloading-and-installing-node-js-and-npm",
	},
	{
		Name:     "semantic-release",
		Summary:  "release automation plugins",
		Gate:     GateDevOrCI,
		Binaries: []BinarySpec{{Name: "semantic-release", VersionSwitch: "--version"}},
		Requires: "npm",
		Channels: []Channel{
			{Kind: ChannelNpm, Packages: []string{
				"semantic-release",
				"@semantic-release/changelog",
				"@semantic-release/commit-analyzer",
				"@semantic-release/exec",
				"@semantic-release/git",
				"@semantic-release/github",
				"@semantic-release/release-notes-generator",
			}},
		},
		ManualURL: "https://semantic-release.gitbook.io/semantic-release/",
	},
	{
		Name:     "gcloud",
		Summary:  "cloud SDK",
		Gate:     GateDevOrCI,
		Binaries: []BinarySpec{{Name: "gcloud", VersionSwitch: "--version"}},
		Channels: []Channel{
			{Kind: ChannelScript, ScriptURL: "https://sdk.cloud.google.com"},
			{Kind: ChannelPackageManager, PackageNames: map[string]string{
				"apt-get": "google-cloud-cli", "brew": "google-cloud-sdk",
			}},
		},
		ManualURL: "https://cloud.google.com/sdk/docs/install",
	},
	{
		Name:     "twine",
		Summary:  "package publishing",
		Gate:     GateDevOrCI,
		Binaries: []BinarySpec{{Name: "twine", VersionSwitch: "--version"}},
		Requires: "uv",
		Channels: []Channel{
			{Kind: ChannelUVTool, Packages: []string{"twine"}},
			{Kind: ChannelPackageManager},
		},
		ManualURL: "https://twine.readthedocs.io/en/stable/",
	},
	{
		Name:      "shellcheck",
		Summary:   "shell linter",
		Gate:      GateDev,
		Binaries:  []BinarySpec{{Name: "shellcheck", VersionSwitch: "--version"}},
		Channels:  []Channel{{Kind: ChannelPackageManager}},
		ManualURL: "https://www.shellcheck.net/",
	},
	{
		Name:      "shfmt",
		Summary:   "shell formatter",
		Gate:      GateDev,
		Binaries:  []BinarySpec{{Name: "shfmt", VersionSwitch: "--version"}},
		Channels:  []Channel{{Kind: ChannelPackageManager}},
		ManualURL: "https://github.com/mvdan/sh",
	},
	{
		Name:     "claude",
		Summary:  "AI assistant CLI",
		Gate:     GateDev,
		Binaries: []BinarySpec{{Name: "claude", VersionSwitch: "--version"}},
		Channels: []Channel{
			{Kind: ChannelNpm, Packages: []string{"@anthropic-ai/claude-code"}},
		},
		ManualURL: "https://docs.anthropic.com/en/docs/claude-code",
	},
	{
		Name:     "claude-dev-kit",
		Summary:  "AI assistant companion plugin",
		Gate:     GateDev,
		Probe:    &CommandProbe{Argv: []string{"claude", "plugin", "list"}, Contains: "dev-kit"},
		Requires: "claude",
		Channels: []Channel{
			{Kind: ChannelCommand, Argv: []string{"claude", "plugin", "install", "dev-kit"}},
		},
		ManualURL: "https://docs.anthropic.com/en/docs/claude-code",
	},
	{
		Name:     "bats",
		Summary:  "shell test framework",
		Gate:     GateCIOrTemplate,
		Binaries: []BinarySpec{{Name: "bats", VersionSwitch: "--version"}},
		Channels: []Channel{
			{Kind: ChannelPackageManager, PackageNames: map[string]string{"brew": "bats-core"}},
		},
		ManualURL: "https://bats-core.readthedocs.io/",
	},
	{
		Name:      "parallel",
		Summary:   "parallel test runner",
		Gate:      GateCIOrTemplate,
		Binaries:  []BinarySpec{{Name: "parallel", VersionSwitch: "--version"}},
		Channels:  []Channel{{Kind: ChannelPackageManager}},
		ManualURL: "https://www.gnu.org/software/parallel/",
	},
	{
		Name:     "starship",
		Summary:  "prompt customizer",
		Gate:     GateStarship,
		Binaries: []BinarySpec{{Name: "starship", VersionSwitch: "--version"}},
		Channels: []Channel{
			{Kind: ChannelScript, ScriptURL: "https://starship.rs/install.sh"},
			{Kind: ChannelPackageManager},
		},
		ManualURL: "https://starship.rs/guide/",
	},
}

// Required returns the required tools in processing order.
func Required() []Tool {
	return append([]Tool{}, required...)
}

// Optional returns the optional tools in processing order.
func Optional() []Tool {
	return append([]Tool{}, optional...)
}

// All returns every registered tool, required first.
func All() []Tool {
	all := Required()
	return append(all, Optional()...)
}

// Lookup returns the descriptor for the named tool.
func Lookup(name string) (Tool, bool) {
	for _, t := range All() {
		if t.Name == name {
			return t, true
		}
	}
	return Tool{}, false
}
