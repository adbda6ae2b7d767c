package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"devsetup/internal/paths"
	"devsetup/internal/tools"
)

func newToolsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "Inspect managed tools",
	}

	cmd.AddCommand(newToolsListCmd())

	return cmd
}

func newToolsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every managed tool and its resolved status",
		RunE:  runToolsList,
	}
	return cmd
}

func runToolsList(cmd *cobra.Command, _ []string) error {
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

	type listEntry struct {
		tools.Status
		Summary  string `json:"summary"`
		Optional bool   `json:"optional"`
	}

	var entries []listEntry
	for _, def := range tools.All() {
		st := rt.Status(ctx, def)
		entries = append(entries, listEntry{
			Status:   st,
			Summary:  def.Summary,
			Optional: !def.Required,
		})
	}

	if outputJSON {
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TOOL\tKIND\tSTATUS\tVERSION\tSUMMARY")
	for _, e := range entries {
		kind := "required"
		if e.Optional {
			kind = "optional"
		}
		status := "ok"
		if !e.Satisfied {
			status = "missing"
			if e.Error != "" {
				status = e.Error
			}
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", e.Tool, kind, status, dashIfEmpty(e.Version), e.Summary)
	}
	return w.Flush()
}

func dashIfEmpty(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
