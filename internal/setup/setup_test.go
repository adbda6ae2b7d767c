package setup

import (
	"context"
	"errors"
	"strings"
	"testing"

	"devsetup/internal/execx"
	"devsetup/internal/paths"
	"devsetup/internal/platform"
	"devsetup/internal/tools"
)

// provisionedFake returns a runner where every required tool is present and
// callable.
func provisionedFake() *execx.Fake {
	fake := execx.NewFake()
	fake.AddTool("bash", "GNU bash, version 5.2.21(1)-release", "--version")
	fake.AddTool("just", "just 1.25.2", "--version")
	fake.AddTool("python3", "Python 3.12.1", "--version")
	fake.AddTool("uv", "uv 0.4.18", "--version")
	fake.AddTool("direnv", "2.34.0", "--version")
	return fake
}

func newTestService(t *testing.T, fake *execx.Fake, tag platform.Tag) *Service {
	t.Helper()
	p := platform.Platform{Tag: tag, Raw: string(tag)}
	mgr, ok := platform.ProbeManager(fake, p)
	rt := &tools.Runtime{Exec: fake, Platform: p, Manager: mgr, HasMgr: ok}
	project, err := paths.Resolve(t.TempDir())
	if err != nil {
		t.Fatalf("resolve project: %v", err)
	}
	return NewService(rt, project, nil, nil)
}

func outcomes(sum Summary) map[string]Outcome {
	m := map[string]Outcome{}
	for _, res := range sum.Results {
		m[res.Tool] = res.Outcome
	}
	return m
}

func installCommands(fake *execx.Fake) []string {
	var installs []string
	for _, line := range fake.CommandLines() {
		if strings.Contains(line, "install") || strings.Contains(line, "add --no-cache") || strings.Contains(line, "curl -fsSL") {
			installs = append(installs, line)
		}
	}
	return installs
}

func TestRunFullyProvisionedIsIdempotent(t *testing.T) {
	fake := provisionedFake()
	svc := newTestService(t, fake, platform.TagLinux)

	for i := 0; i < 2; i++ {
		sum := svc.Run(context.Background(), tools.Flags{})
		if sum.RequiredFailed {
			t.Fatalf("run %d: unexpected required failure: %+v", i, sum.Results)
		}
		for _, res := range sum.Results {
			if res.Phase == PhaseRequired && res.Outcome != OutcomeOK {
				t.Fatalf("run %d: %s = %s, want ok", i, res.Tool, res.Outcome)
			}
		}
	}

	if installs := installCommands(fake); len(installs) != 0 {
		t.Fatalf("provisioned environment must trigger zero installs, got %v", installs)
	}
}

func TestRunRequiredPhaseIgnoresFlags(t *testing.T) {
	combos := []tools.Flags{
		{},
		{Dev: true},
		{CI: true},
		{Template: true},
		{Starship: true},
		{Dev: true, CI: true, Template: true, Starship: true, DockerOptimize: true},
	}

	var want []string
	for _, def := range tools.Required() {
		want = append(want, def.Name)
	}

	for _, flags := range combos {
		fake := provisionedFake()
		// Give optional installs something to succeed with so flag combos
		// don't fail differently.
		fake.Present["apt-get"] = "/usr/bin/apt-get"
		fake.Present["curl"] = "/usr/bin/curl"
		fake.Present["npm"] = "/usr/bin/npm"
		svc := newTestService(t, fake, platform.TagLinux)

		sum := svc.Run(context.Background(), flags)

		var gotRequired []string
		for _, res := range sum.Results {
			if res.Phase == PhaseRequired {
				gotRequired = append(gotRequired, res.Tool)
				if res.Outcome != OutcomeOK {
					t.Fatalf("flags %+v: required %s = %s", flags, res.Tool, res.Outcome)
				}
			}
		}
		if strings.Join(gotRequired, ",") != strings.Join(want, ",") {
			t.Fatalf("flags %+v: required order %v, want %v", flags, gotRequired, want)
		}
	}
}

func TestRunCollectsAllRequiredFailures(t *testing.T) {
	fake := provisionedFake()
	// Break two required tools on a platform with no install channel.
	fake.RemoveTool("just")
	fake.RemoveTool("direnv")
	svc := newTestService(t, fake, platform.TagUnknown)

	sum := svc.Run(context.Background(), tools.Flags{Dev: true})
	if !sum.RequiredFailed {
		t.Fatal("expected required failure")
	}

	got := outcomes(sum)
	if got["just"] != OutcomeError || got["direnv"] != OutcomeError {
		t.Fatalf("both failures must be reported: %v", got)
	}
	// Tools after the first failure still ran.
	if got["python3"] != OutcomeOK || got["uv"] != OutcomeOK {
		t.Fatalf("remaining required checks must still execute: %v", got)
	}
	// No optional work after a required failure.
	for _, res := range sum.Results {
		if res.Phase != PhaseRequired {
			t.Fatalf("unexpected %s result %s after required failure", res.Phase, res.Tool)
		}
	}
}

func TestRunMissingRuntimeStillChecksRemaining(t *testing.T) {
	fake := provisionedFake()
	fake.RemoveTool("python3")
	svc := newTestService(t, fake, platform.TagUnknown)

	sum := svc.Run(context.Background(), tools.Flags{})
	if !sum.RequiredFailed {
		t.Fatal("expected required failure")
	}
	got := outcomes(sum)
	if got["python3"] != OutcomeError {
		t.Fatalf("python3 = %s", got["python3"])
	}
	for _, name := range []string{"uv", "direnv"} {
		if got[name] != OutcomeOK {
			t.Fatalf("%s should still have been checked, got %s", name, got[name])
		}
	}
}

func TestRunOptionalFailureNeverFlipsExit(t *testing.T) {
	fake := provisionedFake()
	fake.Present["apt-get"] = "/usr/bin/apt-get"
	fake.Responses["apt-get install -y shellcheck"] = execx.Response{Err: errors.New("exit status 100")}
	fake.Responses["apt-get install -y shfmt"] = execx.Response{Err: errors.New("exit status 100")}
	svc := newTestService(t, fake, platform.TagLinux)

	sum := svc.Run(context.Background(), tools.Flags{Dev: true})
	if sum.RequiredFailed {
		t.Fatal("optional failures must not fail the run")
	}

	got := outcomes(sum)
	if got["shellcheck"] != OutcomeWarning {
		t.Fatalf("shellcheck = %s, want warning", got["shellcheck"])
	}
	// Later optional entries still ran despite earlier failures.
	if _, ok := got["claude"]; !ok {
		t.Fatalf("claude should still be processed: %v", got)
	}
}

func TestRunCompanionPluginSkippedWithoutHostCLI(t *testing.T) {
	fake := provisionedFake()
	// No package manager, no curl, no npm: claude cannot be installed.
	svc := newTestService(t, fake, platform.TagLinux)

	sum := svc.Run(context.Background(), tools.Flags{Dev: true})
	if sum.RequiredFailed {
		t.Fatal("run must still succeed")
	}

	got := outcomes(sum)
	if got["claude"] != OutcomeWarning {
		t.Fatalf("claude = %s, want warning", got["claude"])
	}
	if got["claude-dev-kit"] != OutcomeSkipped {
		t.Fatalf("claude-dev-kit = %s, want skipped", got["claude-dev-kit"])
	}

	var detail string
	for _, res := range sum.Results {
		if res.Tool == "claude-dev-kit" {
			detail = res.Detail
		}
	}
	if !strings.Contains(detail, "requires claude") {
		t.Fatalf("detail = %q", detail)
	}
}

func TestRunNoManagerNoNetworkAllOptionalWarn(t *testing.T) {
	fake := provisionedFake()
	// twine's uv-tool channel is reachable through the provisioned uv, but the
	// network is down.
	fake.Responses["uv tool install twine"] = execx.Response{Err: errors.New("exit status 2")}
	svc := newTestService(t, fake, platform.TagLinux)

	sum := svc.Run(context.Background(), tools.Flags{CI: true, Template: true})
	if sum.RequiredFailed {
		t.Fatal("required tools are present; run must succeed")
	}

	for _, res := range sum.Results {
		if res.Phase != PhaseOptional {
			continue
		}
		if res.Outcome != OutcomeWarning && res.Outcome != OutcomeSkipped {
			t.Fatalf("%s = %s, want warning or skipped", res.Tool, res.Outcome)
		}
	}
}

func TestRunInstallsMissingRequiredTool(t *testing.T) {
	fake := provisionedFake()
	fake.RemoveTool("just")
	fake.Present["apt-get"] = "/usr/bin/apt-get"
	svc := newTestService(t, fake, platform.TagLinux)

	sum := svc.Run(context.Background(), tools.Flags{})
	if sum.RequiredFailed {
		t.Fatalf("install should have succeeded: %+v", sum.Results)
	}

	got := outcomes(sum)
	if got["just"] != OutcomeInstalled {
		t.Fatalf("just = %s, want installed", got["just"])
	}

	wantCmd := "apt-get install -y just"
	found := false
	for _, line := range fake.CommandLines() {
		if line == wantCmd {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected %q to run, got %v", wantCmd, fake.CommandLines())
	}
}

func TestRunOutdatedRequiredToolFailsAfterReinstall(t *testing.T) {
	fake := provisionedFake()
	fake.Responses["/usr/bin/python3 --version"] = execx.Response{Stdout: "Python 3.8.10\n"}
	fake.Present["apt-get"] = "/usr/bin/apt-get"
	svc := newTestService(t, fake, platform.TagLinux)

	// apt-get install succeeds but the distro package is still 3.8.
	sum := svc.Run(context.Background(), tools.Flags{})
	if !sum.RequiredFailed {
		t.Fatalf("run must fail while python3 stays below minimum: %+v", sum.Results)
	}

	got := outcomes(sum)
	if got["python3"] != OutcomeError {
		t.Fatalf("python3 = %s, want error", got["python3"])
	}
	// The remaining required tools are still checked.
	if got["direnv"] != OutcomeOK {
		t.Fatalf("direnv = %s, want ok", got["direnv"])
	}
}

func TestRunProvisionedUnsupportedPlatformSucceeds(t *testing.T) {
	fake := provisionedFake()
	svc := newTestService(t, fake, platform.TagCygwin)

	sum := svc.Run(context.Background(), tools.Flags{})
	if sum.RequiredFailed {
		t.Fatalf("provisioned host must pass regardless of platform: %+v", sum.Results)
	}

	got := outcomes(sum)
	for _, name := range []string{"bash", "just", "python3", "uv", "direnv"} {
		if got[name] != OutcomeOK {
			t.Fatalf("%s = %s, want ok", name, got[name])
		}
	}
}

func TestRunStarshipSuccessWritesPreset(t *testing.T) {
	fake := provisionedFake()
	fake.AddTool("starship", "starship 1.19.0", "--version")
	svc := newTestService(t, fake, platform.TagLinux)
	svc.starshipConfig = svc.Project.Root + "/starship.toml"

	sum := svc.Run(context.Background(), tools.Flags{Starship: true})

	got := outcomes(sum)
	if got["starship"] != OutcomeOK {
		t.Fatalf("starship = %s", got["starship"])
	}
	if got["starship-config"] != OutcomeOK {
		t.Fatalf("starship-config = %s", got["starship-config"])
	}

	ok, err := paths.FileExists(svc.starshipConfig)
	if err != nil || !ok {
		t.Fatalf("preset not written: ok=%v err=%v", ok, err)
	}
}

func TestRunStarshipFailureSkipsPreset(t *testing.T) {
	fake := provisionedFake()
	svc := newTestService(t, fake, platform.TagLinux)
	svc.starshipConfig = svc.Project.Root + "/starship.toml"

	sum := svc.Run(context.Background(), tools.Flags{Starship: true})

	got := outcomes(sum)
	if got["starship"] != OutcomeWarning {
		t.Fatalf("starship = %s, want warning", got["starship"])
	}
	if _, wrote := got["starship-config"]; wrote {
		t.Fatal("preset must not be written when starship install fails")
	}
}
