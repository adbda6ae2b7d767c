package setup

import (
	"context"
	"fmt"
	"strings"

	"devsetup/internal/paths"
	"devsetup/internal/tools"
)

type Logger interface {
	Printf(format string, v ...any)
}

type noopLogger struct{}

func (noopLogger) Printf(string, ...any) {}

// Phase names the stage a result belongs to.
type Phase string

const (
	PhaseRequired Phase = "required"
	PhaseOptional Phase = "optional"
	PhaseFinalize Phase = "finalize"
)

// Outcome classifies a single step's result.
type Outcome string

const (
	OutcomeOK        Outcome = "ok"
	OutcomeInstalled Outcome = "installed"
	OutcomeWarning   Outcome = "warning"
	OutcomeSkipped   Outcome = "skipped"
	OutcomeError     Outcome = "error"
)

// Result records one processed step for reporting.
type Result struct {
	Tool    string  `json:"tool"`
	Phase   Phase   `json:"phase"`
	Outcome Outcome `json:"outcome"`
	Version string  `json:"version,omitempty"`
	Detail  string  `json:"detail,omitempty"`
}

// Summary aggregates a whole run. RequiredFailed means the run aborted after
// the required phase and the process should exit non-zero.
type Summary struct {
	Platform       string   `json:"platform"`
	Results        []Result `json:"results"`
	RequiredFailed bool     `json:"required_failed"`
}

// Reporter receives progress as steps start and complete. Implementations
// must tolerate being called from the orchestrator's single goroutine only.
type Reporter interface {
	Start(tool string)
	Complete(res Result)
}

type noopReporter struct{}

func (noopReporter) Start(string) {}
func (noopReporter) Complete(Result) {}

// Service sequences dependency provisioning: a required phase that collects
// failures, a flag-gated optional phase that never escalates, and project
// finalization.
type Service struct {
	Runtime  *tools.Runtime
	Project  paths.Project
	Logger   Logger
	Reporter Reporter

	// starshipConfig overrides the starship preset destination in tests.
	starshipConfig string
}

// NewService wires a ready orchestrator. Logger and reporter may be nil.
func NewService(rt *tools.Runtime, project paths.Project, logger Logger, reporter Reporter) *Service {
	if logger == nil {
		logger = noopLogger{}
	}
	if reporter == nil {
		reporter = noopReporter{}
	}
	return &Service{Runtime: rt, Project: project, Logger: logger, Reporter: reporter}
}

func (s *Service) logf(format string, v ...any) {
	if s == nil || s.Logger == nil {
		return
	}
	s.Logger.Printf(format, v...)
}

// Run executes the full provisioning sequence. Flags gate the optional phase
// only: required processing is identical for every flag combination.
func (s *Service) Run(ctx context.Context, flags tools.Flags) Summary {
	sum := Summary{Platform: s.Runtime.Platform.String()}

	// Phase 1: required tools, fixed order. Failures are collected, not
	// short-circuited, so one run surfaces every unmet requirement.
	for _, def := range tools.Required() {
		res := s.ensure(ctx, def, PhaseRequired)
		if res.Outcome == OutcomeError {
			sum.RequiredFailed = true
		}
		sum.Results = append(sum.Results, res)
	}
	if sum.RequiredFailed {
		s.logf("required phase failed; skipping optional dependencies")
		return sum
	}

	sum.Results = append(sum.Results, s.syncProjectDeps(ctx))

	// Phase 2: optional tools. Every failure degrades to a warning and the
	// loop always continues.
	for _, def := range tools.Optional() {
		if !def.Gate.Enabled(flags) {
			continue
		}
		res := s.ensureOptional(ctx, def)
		sum.Results = append(sum.Results, res)

		if def.Name == "starship" && (res.Outcome == OutcomeOK || res.Outcome == OutcomeInstalled) {
			sum.Results = append(sum.Results, s.writeStarshipPreset())
		}
	}

	// Phase 3: finalization.
	sum.Results = append(sum.Results, s.allowEnvrc(ctx))
	if flags.DockerOptimize {
		sum.Results = append(sum.Results, s.purgeCaches(ctx)...)
	}

	return sum
}

// ensure checks one tool and installs it when absent. The presence check is
// the idempotency guard: a satisfied tool never triggers its install routine.
func (s *Service) ensure(ctx context.Context, def tools.Tool, phase Phase) Result {
	s.Reporter.Start(def.Name)

	st := s.Runtime.Status(ctx, def)
	if st.Satisfied {
		res := Result{Tool: def.Name, Phase: phase, Outcome: OutcomeOK, Version: st.Version, Detail: st.Path}
		s.logf("%s: present version=%s path=%s", def.Name, st.Version, st.Path)
		s.Reporter.Complete(res)
		return res
	}

	s.logf("%s: %s; attempting install", def.Name, st.Error)

	inst, err := s.Runtime.Install(ctx, def)
	if err != nil {
		detail := inst.Error
		if hint := lastNote(inst.Notes); hint != "" {
			detail = detail + " (" + hint + ")"
		}
		outcome := OutcomeError
		if phase == PhaseOptional {
			// Optional failures warn and never escalate.
			outcome = OutcomeWarning
		}
		res := Result{Tool: def.Name, Phase: phase, Outcome: outcome, Detail: detail}
		s.logf("%s: install failed: %s", def.Name, detail)
		s.Reporter.Complete(res)
		return res
	}

	res := Result{Tool: def.Name, Phase: phase, Outcome: OutcomeInstalled, Version: inst.Version, Detail: strings.Join(inst.Notes, "; ")}
	s.logf("%s: installed version=%s", def.Name, inst.Version)
	s.Reporter.Complete(res)
	return res
}

// ensureOptional wraps ensure with optional-phase semantics: preconditions
// skip with a warning and any failure degrades to a warning.
func (s *Service) ensureOptional(ctx context.Context, def tools.Tool) Result {
	if def.Requires != "" {
		if dep, ok := tools.Lookup(def.Requires); !ok || !s.Runtime.Present(ctx, dep) {
			res := Result{
				Tool:    def.Name,
				Phase:   PhaseOptional,
				Outcome: OutcomeSkipped,
				Detail:  fmt.Sprintf("requires %s; skipping", def.Requires),
			}
			s.logf("%s: %s", def.Name, res.Detail)
			s.Reporter.Start(def.Name)
			s.Reporter.Complete(res)
			return res
		}
	}

	return s.ensure(ctx, def, PhaseOptional)
}

func lastNote(notes []string) string {
	if len(notes) == 0 {
		return ""
	}
	return notes[len(notes)-1]
}
