package deploy

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

type Runner interface {
	Run(ctx context.Context, dir string, args []string) ([]byte, int, error)
}

type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, dir string, args []string) ([]byte, int, error) {
	if len(args) == 0 {
		return nil, -1, errors.New("empty command")
	}
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return output, exitErr.ExitCode(), nil
		}
		return output, -1, err
	}
	return output, 0, nil
}

type Result struct {
	Steps []StepResult
}

type StepResult struct {
	Name     string
	Command  string
	ExitCode int
	Output   string
	Error    string
	Skipped  bool
}

func (r StepResult) Failed() bool {
	return !r.Skipped && (r.ExitCode != 0 || r.Error != "")
}

func (r Result) Failed() []StepResult {
	var out []StepResult
	for _, step := range r.Steps {
		if step.Failed() {
			out = append(out, step)
		}
	}
	return out
}

func (r Result) Err() error {
	failed := r.Failed()
	if len(failed) == 0 {
		return nil
	}
	var msgs []string
	for _, step := range failed {
		if step.Error != "" {
			msgs = append(msgs, fmt.Sprintf("%s: %s", step.Name, step.Error))
			continue
		}
		msgs = append(msgs, fmt.Sprintf("%s: exit code %d", step.Name, step.ExitCode))
	}
	return errors.New(strings.Join(msgs, "; "))
}

// Run executes every step in order and echoes its output to w. A failing step
// does not stop the sequence unless plan.StopOnError is set; the remaining
// steps are then marked skipped. The completion banner is always printed.
func Run(ctx context.Context, runner Runner, plan Plan, w io.Writer) Result {
	if runner == nil {
		runner = ExecRunner{}
	}
	var result Result
	stopped := false
	for _, step := range plan.Steps {
		item := StepResult{Name: step.Name, Command: step.String()}
		if stopped {
			item.Skipped = true
			result.Steps = append(result.Steps, item)
			continue
		}

		fmt.Fprintf(w, "$ %s\n", item.Command)
		output, code, err := runner.Run(ctx, plan.Dir, step.Args)
		if len(output) > 0 {
			w.Write(output)
			if output[len(output)-1] != '\n' {
				fmt.Fprintln(w)
			}
		}
		item.ExitCode = code
		item.Output = string(output)
		if err != nil {
			item.Error = err.Error()
		}
		result.Steps = append(result.Steps, item)

		if item.Failed() && plan.StopOnError {
			stopped = true
		}
	}
	banner(w, plan)
	return result
}
