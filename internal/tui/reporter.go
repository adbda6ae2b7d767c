package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"devsetup/internal/setup"
)

// SetupReporter adapts setup progress callbacks to bubbletea messages. Rows
// are keyed by tool name; finalize steps get their own rows as they start.
type SetupReporter struct {
	send func(tea.Msg)
}

// NewSetupReporter constructs a reporter that forwards row updates through
// the given send function.
func NewSetupReporter(send func(tea.Msg)) *SetupReporter {
	return &SetupReporter{send: send}
}

// Start implements setup.Reporter.
func (r *SetupReporter) Start(tool string) {
	r.send(RowUpdateMsg{
		Key:    tool,
		Fields: map[string]string{"STATUS": "checking"},
	})
}

// Complete implements setup.Reporter.
func (r *SetupReporter) Complete(res setup.Result) {
	r.send(RowUpdateMsg{
		Key: res.Tool,
		Fields: map[string]string{
			"STATUS":  StatusLabel(res),
			"VERSION": NonEmptyOrDash(res.Version),
			"DETAIL":  NonEmptyOrDash(res.Detail),
		},
	})
}

// StatusLabel maps a setup result to the status string shown in the table.
func StatusLabel(res setup.Result) string {
	switch res.Outcome {
	case setup.OutcomeOK:
		if res.Phase == setup.PhaseFinalize {
			return "ok"
		}
		return "present"
	case setup.OutcomeInstalled:
		return "installed"
	case setup.OutcomeSkipped:
		return "skipped"
	case setup.OutcomeWarning:
		return "warning"
	case setup.OutcomeError:
		return "failed"
	}
	return string(res.Outcome)
}
