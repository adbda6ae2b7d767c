package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"devsetup/internal/config"
	"devsetup/internal/logx"
	"devsetup/internal/paths"
	"devsetup/internal/setup"
	"devsetup/internal/tools"
	"devsetup/internal/tui"
)

var setupColumns = []tui.Column{
	{Header: "TOOL", Width: 18},
	{Header: "STATUS", Width: 10},
	{Header: "VERSION", Width: 10},
	{Header: "DETAIL", Width: 40},
}

func runSetup(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	glog, gcloser, _ := logx.New()
	if gcloser != nil {
		defer gcloser.Close()
	}
	glogf := func(format string, v ...any) {
		if glog != nil {
			glog.Printf(format, v...)
		}
	}
	glogf("setup started")

	status := tui.NewStatusWriter(cmd.ErrOrStderr())
	defer status.Stop()

	status.Update("Resolving project...")
	pp, err := paths.Resolve(projectDir)
	if err != nil {
		return err
	}
	glogf("project resolved: %s", pp.Root)

	status.Update("Loading config...")
	cfg, err := loadConfig(pp)
	if err != nil {
		return err
	}
	ctx = tools.WithMinimums(ctx, cfg.ToolMinimums())

	var toolsLog tools.Logger
	var setupLog setup.Logger
	if glog != nil {
		toolsLog, setupLog = glog, glog
	}

	status.Update("Detecting platform...")
	rt := tools.NewRuntime(ctx, nil, toolsLog)
	if !rt.Platform.Supported() {
		// Checks still run; installs surface per-tool failures when no
		// channel is available here.
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: no install support on %s\n", rt.Platform)
		glogf("unsupported platform %s; continuing with checks only", rt.Platform)
	}

	flags := setupFlags()
	svc := setup.NewService(rt, pp, setupLog, nil)

	outWriter := cmd.OutOrStdout()
	mode := tui.DetectMode(outWriter, flagNoProgress, outputJSON)
	status.Stop()

	var summary setup.Summary

	if mode == tui.ModeTUI {
		glogf("starting TUI (mode=tui)")
		fmt.Fprintf(outWriter, "Project: %s\n", pp.Root)
		model := buildSetupProgressModel(flags)
		err := tui.RunWithWork(outWriter, model, func(send func(tea.Msg)) {
			svc.Reporter = tui.NewSetupReporter(send)
			summary = svc.Run(ctx, flags)
		})
		if err != nil {
			return err
		}
		glogf("TUI finished")
	} else {
		summary = svc.Run(ctx, flags)
	}

	if mode == tui.ModeJSON {
		data, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		cmd.Println(string(data))
	} else {
		printSetupSummary(cmd, pp.Root, summary)
	}

	if summary.RequiredFailed {
		return fmt.Errorf("required tools missing: %s", strings.Join(failedTools(summary), ", "))
	}
	return nil
}

func loadConfig(pp paths.Project) (config.Config, error) {
	file := configPath
	if file == "" {
		file = pp.ConfigFile
	}
	return config.Load(file)
}

func setupFlags() tools.Flags {
	return tools.Flags{
		Dev:            flagDev,
		CI:             flagCI,
		Template:       flagTemplate,
		Starship:       flagStarship,
		DockerOptimize: flagDockerOptimize,
	}
}

// buildSetupProgressModel pre-registers one row per gated tool. Finalize
// steps add their own rows as they run.
func buildSetupProgressModel(flags tools.Flags) tui.ProgressModel {
	model := tui.NewProgressModel("Setting up", setupColumns)
	for _, def := range tools.All() {
		if !def.Required && !def.Gate.Enabled(flags) {
			continue
		}
		model.AddRow(def.Name, []string{def.Name, "pending", "-", "-"})
	}
	return model
}

func failedTools(summary setup.Summary) []string {
	var failed []string
	for _, res := range summary.Results {
		if res.Outcome == setup.OutcomeError {
			failed = append(failed, res.Tool)
		}
	}
	return failed
}

func printSetupSummary(cmd *cobra.Command, project string, summary setup.Summary) {
	bold := lipgloss.NewStyle().Bold(true)
	green := lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	yellow := lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	red := lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	faint := lipgloss.NewStyle().Faint(true)

	cmd.Println(bold.Render("Project:") + " " + project)
	cmd.Println(bold.Render("Platform:") + " " + summary.Platform)
	cmd.Println()

	var installed, warnings, failures int
	for _, res := range summary.Results {
		switch res.Outcome {
		case setup.OutcomeOK:
			headline := green.Render("✓") + " " + bold.Render(res.Tool)
			if res.Version != "" {
				headline += " v" + res.Version
			}
			cmd.Println(headline)
		case setup.OutcomeInstalled:
			installed++
			cmd.Println(green.Render("+") + " " + bold.Render(res.Tool) + " " + faint.Render(res.Detail))
		case setup.OutcomeSkipped:
			cmd.Println(faint.Render("- " + res.Tool + " (" + res.Detail + ")"))
		case setup.OutcomeWarning:
			warnings++
			cmd.Println(yellow.Render("!") + " " + bold.Render(res.Tool) + " " + yellow.Render(res.Detail))
		case setup.OutcomeError:
			failures++
			cmd.Println(red.Render("✗") + " " + bold.Render(res.Tool) + " " + red.Render(res.Detail))
		}
	}

	cmd.Println()
	counts := fmt.Sprintf("%d processed, %d installed, %d warnings, %d failures",
		len(summary.Results), installed, warnings, failures)
	cmd.Println(faint.Render(counts))
}
