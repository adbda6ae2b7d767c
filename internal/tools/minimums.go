package tools

import (
	"context"
	"fmt"
	"strings"
)

type contextKeyMinimums struct{}

// WithMinimums annotates the context with project-specific minimum version
// overrides loaded from devsetup.yaml.
func WithMinimums(ctx context.Context, minimums map[string]string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if len(minimums) == 0 {
		return ctx
	}
	cleaned := make(map[string]string, len(minimums))
	for name, value := range minimums {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			continue
		}
		cleaned[strings.ToLower(name)] = trimmed
	}
	if len(cleaned) == 0 {
		return ctx
	}
	return context.WithValue(ctx, contextKeyMinimums{}, cleaned)
}

func minimumOverride(ctx context.Context, tool string) string {
	if ctx == nil {
		return ""
	}
	raw := ctx.Value(contextKeyMinimums{})
	if raw == nil {
		return ""
	}
	overrides, ok := raw.(map[string]string)
	if !ok {
		return ""
	}
	if v, ok := overrides[strings.ToLower(tool)]; ok {
		return v
	}
	return ""
}

// resolveMinimum returns the effective minimum version for a tool. A config
// override only applies when it raises the registry default.
func resolveMinimum(ctx context.Context, def Tool) (string, []string) {
	minimum := strings.TrimSpace(def.Minimum)

	override := strings.TrimSpace(minimumOverride(ctx, def.Name))
	if override == "" {
		return minimum, nil
	}

	var notes []string
	if meetsMinimum(override, minimum) {
		if override != minimum {
			notes = append(notes, fmt.Sprintf("minimum overridden by project config (%s)", override))
		}
		return override, notes
	}

	notes = append(notes, fmt.Sprintf("config minimum %s ignored; default minimum %s is higher", override, minimum))
	return minimum, notes
}
