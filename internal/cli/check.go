package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"devsetup/internal/paths"
	"devsetup/internal/tools"
)

var (
	checkStrict bool

	checkDev      bool
	checkCI       bool
	checkTemplate bool
	checkStarship bool
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check tool availability without installing",
		RunE:  runCheck,
	}

	cmd.Flags().BoolVar(&checkStrict, "strict", false, "fail when required tools are missing or outdated")
	cmd.Flags().BoolVar(&checkDev, "dev", false, "Include developer tooling")
	cmd.Flags().BoolVar(&checkCI, "ci", false, "Include continuous integration tooling")
	cmd.Flags().BoolVar(&checkTemplate, "template", false, "Include template test tooling")
	cmd.Flags().BoolVar(&checkStarship, "starship", false, "Include the starship prompt")

	return cmd
}

func runCheck(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	pp, err := paths.Resolve(projectDir)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(pp)
	if err != nil {
		return err
	}

	ctx = tools.WithMinimums(ctx, cfg.ToolMinimums())
	rt := tools.NewRuntime(ctx, nil, nil)

	flags := tools.Flags{Dev: checkDev, CI: checkCI, Template: checkTemplate, Starship: checkStarship}
	statuses := rt.Detect(ctx, flags)

	if outputJSON {
		payload := struct {
			Project  string         `json:"project"`
			Platform string         `json:"platform"`
			Tools    []tools.Status `json:"tools"`
		}{
			Project:  pp.Root,
			Platform: rt.Platform.String(),
			Tools:    statuses,
		}
		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		cmd.Println(string(data))
	} else {
		printCheckResult(cmd, pp.Root, rt.Platform.String(), statuses)
	}

	if checkStrict {
		return ensureStrict(statuses)
	}
	return nil
}

func printCheckResult(cmd *cobra.Command, project, platform string, statuses []tools.Status) {
	bold := lipgloss.NewStyle().Bold(true)
	green := lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	red := lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	faint := lipgloss.NewStyle().Faint(true)

	cmd.Println(bold.Render("Project:") + " " + project)
	cmd.Println(bold.Render("Platform:") + " " + platform)
	cmd.Println()

	for _, st := range statuses {
		if st.Satisfied {
			headline := green.Render("✓") + " " + bold.Render(st.Tool)
			if st.Version != "" {
				headline += " v" + st.Version
			}
			if st.Minimum != "" {
				headline += faint.Render(" (minimum: " + st.Minimum + ")")
			}
			cmd.Println(headline)
			if st.Path != "" {
				cmd.Println(faint.Render("  " + st.Path))
			}
		} else {
			headline := red.Render("✗") + " " + bold.Render(st.Tool)
			if st.Error != "" {
				headline += red.Render(" (" + st.Error + ")")
			}
			cmd.Println(headline)
		}
	}
	cmd.Println()
}

// ensureStrict turns unsatisfied required tools into a single aggregated
// error. Optional tools never fail a strict check.
func ensureStrict(statuses []tools.Status) error {
	var failures []string
	for _, st := range statuses {
		if st.Satisfied || !st.Required {
			continue
		}
		msg := st.Tool
		if st.Error != "" {
			msg = fmt.Sprintf("%s (%s)", st.Tool, st.Error)
		}
		failures = append(failures, msg)
	}
	if len(failures) == 0 {
		return nil
	}
	return errors.New("tool check failed: " + strings.Join(failures, ", "))
}
