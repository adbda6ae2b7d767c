package setup

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"devsetup/internal/execx"
	"devsetup/internal/platform"
	"devsetup/internal/tools"
)

func TestSyncProjectDepsSkipsWithoutManifest(t *testing.T) {
	fake := provisionedFake()
	svc := newTestService(t, fake, platform.TagLinux)

	res := svc.syncProjectDeps(context.Background())
	if res.Outcome != OutcomeSkipped {
		t.Fatalf("outcome = %s, want skipped", res.Outcome)
	}
	if len(fake.Calls) != 0 {
		t.Fatalf("no commands expected: %v", fake.CommandLines())
	}
}

func TestSyncProjectDepsRunsUVSync(t *testing.T) {
	fake := provisionedFake()
	svc := newTestService(t, fake, platform.TagLinux)
	if err := os.WriteFile(svc.Project.ManifestFile, []byte("[project]\nname = \"demo\"\n"), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	res := svc.syncProjectDeps(context.Background())
	if res.Outcome != OutcomeOK {
		t.Fatalf("outcome = %s: %s", res.Outcome, res.Detail)
	}

	lines := fake.CommandLines()
	if lines[len(lines)-1] != "uv sync" {
		t.Fatalf("expected uv sync, got %v", lines)
	}
}

func TestSyncProjectDepsWarnsWhenPythonNotCallable(t *testing.T) {
	fake := provisionedFake()
	fake.Responses["python3 --version"] = execx.Response{Err: errors.New("exit status 127")}
	svc := newTestService(t, fake, platform.TagLinux)
	if err := os.WriteFile(svc.Project.ManifestFile, []byte("[project]\n"), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	res := svc.syncProjectDeps(context.Background())
	if res.Outcome != OutcomeWarning {
		t.Fatalf("outcome = %s, want warning", res.Outcome)
	}
	if !strings.Contains(res.Detail, "not callable") {
		t.Fatalf("detail = %q", res.Detail)
	}
	for _, line := range fake.CommandLines() {
		if line == "uv sync" {
			t.Fatal("uv sync must not run when python is not callable")
		}
	}
}

func TestAllowEnvrcSkipsWithoutFile(t *testing.T) {
	fake := provisionedFake()
	svc := newTestService(t, fake, platform.TagLinux)

	res := svc.allowEnvrc(context.Background())
	if res.Outcome != OutcomeSkipped {
		t.Fatalf("outcome = %s, want skipped", res.Outcome)
	}
}

func TestAllowEnvrcAlreadyAllowed(t *testing.T) {
	fake := provisionedFake()
	fake.Responses["direnv status"] = execx.Response{Stdout: "direnv exec path /usr/bin/direnv\nFound RC allowed true\n"}
	svc := newTestService(t, fake, platform.TagLinux)
	if err := os.WriteFile(svc.Project.EnvrcFile, []byte("layout python\n"), 0o644); err != nil {
		t.Fatalf("write envrc: %v", err)
	}

	res := svc.allowEnvrc(context.Background())
	if res.Outcome != OutcomeOK {
		t.Fatalf("outcome = %s: %s", res.Outcome, res.Detail)
	}
	for _, line := range fake.CommandLines() {
		if strings.HasPrefix(line, "direnv allow") {
			t.Fatal("already-allowed .envrc must not be re-allowed")
		}
	}
}

func TestAllowEnvrcMarksAllowed(t *testing.T) {
	fake := provisionedFake()
	fake.Responses["direnv status"] = execx.Response{Stdout: "Found RC allowed false\n"}
	svc := newTestService(t, fake, platform.TagLinux)
	if err := os.WriteFile(svc.Project.EnvrcFile, []byte("layout python\n"), 0o644); err != nil {
		t.Fatalf("write envrc: %v", err)
	}

	res := svc.allowEnvrc(context.Background())
	if res.Outcome != OutcomeOK {
		t.Fatalf("outcome = %s: %s", res.Outcome, res.Detail)
	}

	want := "direnv allow " + svc.Project.Root
	found := false
	for _, line := range fake.CommandLines() {
		if line == want {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected %q, got %v", want, fake.CommandLines())
	}
}

func TestEnvrcAllowed(t *testing.T) {
	cases := []struct {
		output string
		want   bool
	}{
		{"Found RC allowed true", true},
		{"Found RC allowed 0", true},
		{"Found RC allowed false", false},
		{"Found RC allowed 1", false},
		{"Found RC allowed 2", false},
		{"No .envrc found", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := envrcAllowed(tc.output); got != tc.want {
			t.Errorf("envrcAllowed(%q) = %v, want %v", tc.output, got, tc.want)
		}
	}
}

func TestPurgeCachesUsesProbedManager(t *testing.T) {
	fake := provisionedFake()
	fake.Present["apt-get"] = "/usr/bin/apt-get"
	fake.Present["npm"] = "/usr/bin/npm"
	svc := newTestService(t, fake, platform.TagLinux)

	results := svc.purgeCaches(context.Background())
	if len(results) != 2 {
		t.Fatalf("expected two cleanup results, got %d", len(results))
	}
	for _, res := range results {
		if res.Outcome != OutcomeOK {
			t.Fatalf("%s = %s: %s", res.Tool, res.Outcome, res.Detail)
		}
	}

	lines := fake.CommandLines()
	wantFirst, wantSecond := "apt-get clean", "npm cache clean --force"
	if lines[0] != wantFirst || lines[1] != wantSecond {
		t.Fatalf("got %v, want [%q %q]", lines, wantFirst, wantSecond)
	}
}

func TestPurgeCachesSkipsMissingTools(t *testing.T) {
	fake := provisionedFake()
	svc := newTestService(t, fake, platform.TagLinux)

	results := svc.purgeCaches(context.Background())
	for _, res := range results {
		if res.Outcome != OutcomeSkipped {
			t.Fatalf("%s = %s, want skipped", res.Tool, res.Outcome)
		}
	}
}

func TestRunSkipsCachePurgeWithoutFlag(t *testing.T) {
	fake := provisionedFake()
	fake.Present["apt-get"] = "/usr/bin/apt-get"
	svc := newTestService(t, fake, platform.TagLinux)

	sum := svc.Run(context.Background(), tools.Flags{})
	for _, res := range sum.Results {
		if res.Tool == "cache-cleanup" || res.Tool == "npm-cache" {
			t.Fatal("cache purge must be gated on --docker-optimize")
		}
	}
}
