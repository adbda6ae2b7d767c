package setup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"devsetup/internal/execx"
	"devsetup/internal/paths"
)

// starshipPreset is the fixed prompt configuration written when starship
// installs successfully. Contents are not computed.
const starshipPreset = `format = "$directory$git_branch$git_status$python$character"

[directory]
truncation_length = 3

[git_branch]
symbol = " "

[python]
symbol = " "
format = 'via [${symbol}${pyenv_prefix}(${version} )(\($virtualenv\) )]($style)'

[character]
success_symbol = "[❯](bold green)"
error_symbol = "[❯](bold red)"
`

// syncProjectDeps runs `uv sync` when the project carries a manifest. The
// runtime's detected python is double-checked by invoking it: a presence
// check can pass against a partial install whose interpreter no longer runs.
func (s *Service) syncProjectDeps(ctx context.Context) Result {
	res := Result{Tool: "project-deps", Phase: PhaseFinalize}
	s.Reporter.Start(res.Tool)
	defer func() { s.Reporter.Complete(res) }()

	exists, err := paths.FileExists(s.Project.ManifestFile)
	if err != nil || !exists {
		res.Outcome = OutcomeSkipped
		res.Detail = "no pyproject.toml"
		return res
	}

	if _, err := s.Runtime.Exec.Run(ctx, "python3", []string{"--version"}, execx.RunOptions{}); err != nil {
		res.Outcome = OutcomeWarning
		res.Detail = "python3 not callable; skipping dependency sync"
		s.logf("project-deps: %s", res.Detail)
		return res
	}

	_, err = s.Runtime.Exec.Run(ctx, "uv", []string{"sync"}, execx.RunOptions{Dir: s.Project.Root})
	if err != nil {
		res.Outcome = OutcomeWarning
		res.Detail = fmt.Sprintf("uv sync failed: %v", err)
		s.logf("project-deps: %s", res.Detail)
		return res
	}

	res.Outcome = OutcomeOK
	res.Detail = "dependencies synced"
	s.logf("project-deps: synced %s", s.Project.ManifestFile)
	return res
}

// allowEnvrc marks the project's .envrc as allowed when direnv reports it is
// not yet trusted for this directory.
func (s *Service) allowEnvrc(ctx context.Context) Result {
	res := Result{Tool: "direnv-allow", Phase: PhaseFinalize}
	s.Reporter.Start(res.Tool)
	defer func() { s.Reporter.Complete(res) }()

	exists, err := paths.FileExists(s.Project.EnvrcFile)
	if err != nil || !exists {
		res.Outcome = OutcomeSkipped
		res.Detail = "no .envrc"
		return res
	}

	if _, err := s.Runtime.Exec.LookPath("direnv"); err != nil {
		res.Outcome = OutcomeWarning
		res.Detail = "direnv not on PATH; allow .envrc manually"
		return res
	}

	status, err := s.Runtime.Exec.Run(ctx, "direnv", []string{"status"}, execx.RunOptions{Dir: s.Project.Root})
	if err == nil && envrcAllowed(string(status.Stdout)) {
		res.Outcome = OutcomeOK
		res.Detail = ".envrc already allowed"
		return res
	}

	if _, err := s.Runtime.Exec.Run(ctx, "direnv", []string{"allow", s.Project.Root}, execx.RunOptions{}); err != nil {
		res.Outcome = OutcomeWarning
		res.Detail = fmt.Sprintf("direnv allow failed: %v", err)
		s.logf("direnv-allow: %s", res.Detail)
		return res
	}

	res.Outcome = OutcomeOK
	res.Detail = ".envrc allowed"
	s.logf("direnv-allow: allowed %s", s.Project.EnvrcFile)
	return res
}

// envrcAllowed interprets `direnv status` output. Older releases print
// "Found RC allowed true", newer ones "Found RC allowed 0" (0 = allowed).
func envrcAllowed(output string) bool {
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "Found RC allowed") {
			continue
		}
		value := strings.TrimSpace(strings.TrimPrefix(line, "Found RC allowed"))
		return value == "true" || value == "0"
	}
	return false
}

// purgeCaches clears the system package manager's cache and npm's cache when
// --docker-optimize asks for a slim image.
func (s *Service) purgeCaches(ctx context.Context) []Result {
	var results []Result

	res := Result{Tool: "cache-cleanup", Phase: PhaseFinalize}
	s.Reporter.Start(res.Tool)
	if !s.Runtime.HasMgr {
		res.Outcome = OutcomeSkipped
		res.Detail = "no package manager"
	} else {
		name, args := s.Runtime.Manager.CleanCommand()
		if _, err := s.Runtime.Exec.Run(ctx, name, args, execx.RunOptions{}); err != nil {
			res.Outcome = OutcomeWarning
			res.Detail = fmt.Sprintf("%s cache clean failed: %v", name, err)
		} else {
			res.Outcome = OutcomeOK
			res.Detail = name + " cache cleared"
		}
	}
	s.Reporter.Complete(res)
	results = append(results, res)

	npmRes := Result{Tool: "npm-cache", Phase: PhaseFinalize}
	s.Reporter.Start(npmRes.Tool)
	if _, err := s.Runtime.Exec.LookPath("npm"); err != nil {
		npmRes.Outcome = OutcomeSkipped
		npmRes.Detail = "npm not installed"
	} else if _, err := s.Runtime.Exec.Run(ctx, "npm", []string{"cache", "clean", "--force"}, execx.RunOptions{}); err != nil {
		npmRes.Outcome = OutcomeWarning
		npmRes.Detail = fmt.Sprintf("npm cache clean failed: %v", err)
	} else {
		npmRes.Outcome = OutcomeOK
		npmRes.Detail = "npm cache cleared"
	}
	s.Reporter.Complete(npmRes)
	results = append(results, npmRes)

	return results
}

// writeStarshipPreset writes the fixed prompt configuration. It runs
// unconditionally once starship is confirmed installed.
func (s *Service) writeStarshipPreset() Result {
	res := Result{Tool: "starship-config", Phase: PhaseFinalize}
	s.Reporter.Start(res.Tool)
	defer func() { s.Reporter.Complete(res) }()

	dest := s.starshipConfig
	if dest == "" {
		var err error
		dest, err = paths.StarshipConfig()
		if err != nil {
			res.Outcome = OutcomeWarning
			res.Detail = err.Error()
			return res
		}
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		res.Outcome = OutcomeWarning
		res.Detail = fmt.Sprintf("prepare config dir: %v", err)
		return res
	}
	if err := os.WriteFile(dest, []byte(starshipPreset), 0o644); err != nil {
		res.Outcome = OutcomeWarning
		res.Detail = fmt.Sprintf("write starship config: %v", err)
		return res
	}

	res.Outcome = OutcomeOK
	res.Detail = "wrote " + dest
	s.logf("starship-config: wrote %s", dest)
	return res
}
