package tools

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"devsetup/internal/execx"
)

// readVersion runs the tool's main binary with its version switch and returns
// a normalized version string. The output is used for reporting only; it is
// never parsed beyond the first line.
func (rt *Runtime) readVersion(ctx context.Context, def Tool, path string) (string, error) {
	if len(def.Binaries) == 0 {
		return "", fmt.Errorf("tool %s has no binary definition", def.Name)
	}
	main := def.Binaries[0]
	if main.VersionSwitch == "" {
		return "", nil
	}

	res, err := rt.Exec.Run(ctx, path, []string{main.VersionSwitch}, execx.RunOptions{})
	if err != nil {
		return "", fmt.Errorf("%s version: %w", def.Name, err)
	}

	line := firstLine(strings.TrimSpace(string(res.Stdout)))
	return normalizeVersion(line), nil
}

func firstLine(text string) string {
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		return text[:idx]
	}
	return text
}

var versionRegex = regexp.MustCompile(`([0-9]+)(?:\.([0-9]+))?(?:\.([0-9]+))?`)

// normalizeVersion extracts the leading dotted numeric run from a version
// banner ("Python 3.12.1" -> "3.12.1"). Lines without one pass through as-is.
func normalizeVersion(line string) string {
	match := versionRegex.FindString(line)
	if match == "" {
		return line
	}
	return match
}

// meetsMinimum compares two dotted version strings component by component.
// Missing components count as zero, so "3.9" and "3.9.0" compare equal and
// "3.12" correctly exceeds "3.9".
func meetsMinimum(version, minimum string) bool {
	if minimum == "" {
		return true
	}
	if version == "" {
		return false
	}

	vParts := numericParts(version)
	mParts := numericParts(minimum)
	for len(vParts) < len(mParts) {
		vParts = append(vParts, 0)
	}
	for len(mParts) < len(vParts) {
		mParts = append(mParts, 0)
	}
	for i := 0; i < len(vParts) && i < len(mParts); i++ {
		if vParts[i] > mParts[i] {
			return true
		}
		if vParts[i] < mParts[i] {
			return false
		}
	}
	return true
}

func numericParts(version string) []int {
	var parts []int
	current := strings.Builder{}
	for _, r := range version {
		if r >= '0' && r <= '9' {
			current.WriteRune(r)
			continue
		}
		if current.Len() > 0 {
			val, _ := strconv.Atoi(current.String())
			parts = append(parts, val)
			current.Reset()
		}
	}
	if current.Len() > 0 {
		val, _ := strconv.Atoi(current.String())
		parts = append(parts, val)
	}
	return parts
}
