package execx

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Call records a single command invocation made through a Fake runner.
type Call struct {
	Command string
	Args    []string
}

func (c Call) String() string {
	if len(c.Args) == 0 {
		return c.Command
	}
	return c.Command + " " + strings.Join(c.Args, " ")
}

// Response scripts the outcome of a command run against a Fake runner.
type Response struct {
	Stdout string
	Stderr string
	Err    error
}

// Fake is a scripted Runner for tests. Commands are matched against Responses
// by their joined command line; unmatched commands succeed with empty output.
// Binaries listed in Present resolve via LookPath; everything else is missing.
type Fake struct {
	mu        sync.Mutex
	Responses map[string]Response
	Present   map[string]string
	Calls     []Call
}

func NewFake() *Fake {
	return &Fake{
		Responses: map[string]Response{},
		Present:   map[string]string{},
	}
}

func (f *Fake) Run(_ context.Context, command string, args []string, opts RunOptions) (RunResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	call := Call{Command: command, Args: append([]string{}, args...)}
	f.Calls = append(f.Calls, call)

	resp, ok := f.Responses[call.String()]
	if !ok {
		return RunResult{}, nil
	}
	if opts.Stdout != nil {
		_, _ = opts.Stdout.Write([]byte(resp.Stdout))
	}
	if opts.Stderr != nil {
		_, _ = opts.Stderr.Write([]byte(resp.Stderr))
	}
	return RunResult{Stdout: []byte(resp.Stdout), Stderr: []byte(resp.Stderr)}, resp.Err
}

func (f *Fake) LookPath(name string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if path, ok := f.Present[name]; ok {
		return path, nil
	}
	return "", fmt.Errorf("exec: %q: executable file not found in $PATH", name)
}

// AddTool marks a binary as resolvable and scripts its version output.
func (f *Fake) AddTool(name, versionLine string, versionArgs ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := "/usr/bin/" + name
	f.Present[name] = path
	if len(versionArgs) > 0 {
		key := Call{Command: path, Args: versionArgs}.String()
		f.Responses[key] = Response{Stdout: versionLine + "\n"}
	}
}

// RemoveTool makes a binary unresolvable again.
func (f *Fake) RemoveTool(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.Present, name)
}

// CommandLines returns every recorded invocation as a joined command line.
func (f *Fake) CommandLines() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	lines := make([]string, len(f.Calls))
	for i, call := range f.Calls {
		lines[i] = call.String()
	}
	return lines
}

var _ Runner = (*Fake)(nil)
