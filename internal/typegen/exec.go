package typegen

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	pkgtypegen "github.com/weiAX95/auto-create-tsfile-cli/pkg/typegen"
)

// CommandRunner allows dependency injection for testing.
type CommandRunner interface {
	Run(ctx context.Context, name string, args []string, stdin []byte) ([]byte, error)
}

// DefaultCommandRunner implements CommandRunner using real OS commands.
type DefaultCommandRunner struct{}

func (r *DefaultCommandRunner) Run(ctx context.Context, name string, args []string, stdin []byte) ([]byte, error) {
	var out, errOut bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...) // #nosec G204
	cmd.Stdin = bytes.NewReader(stdin)
	cmd.Stdout = &out
	cmd.Stderr = &errOut
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(errOut.String()); msg != "" {
			return nil, fmt.Errorf("%w: %s", err, msg)
		}
		return nil, err
	}
	return out.Bytes(), nil
}

// ExecOptions configure the command-line generation engine.
type ExecOptions struct {
	// Command is the executable to invoke. Empty means quicktype.
	Command string

	// Args are appended after the engine-managed flags, for knobs like
	// --prefer-unions or --acronym-style.
	Args []string

	// Runner overrides command execution, primarily for tests.
	Runner CommandRunner
}

// ExecEngine shells out to a quicktype-style generator: schema on stdin,
// declaration text on stdout.
type ExecEngine struct {
	command string
	args    []string
	runner  CommandRunner
}

// Ensure the implementation satisfies the public interface.
var _ pkgtypegen.Engine = (*ExecEngine)(nil)

// NewExec constructs an ExecEngine from pre-resolved options.
func NewExec(options ExecOptions) *ExecEngine {
	command := options.Command
	if command == "" {
		command = "quicktype"
	}
	runner := options.Runner
	if runner == nil {
		runner = &DefaultCommandRunner{}
	}
	return &ExecEngine{
		command: command,
		args:    append([]string(nil), options.Args...),
		runner:  runner,
	}
}

// Name identifies the engine in logs and CLI output.
func (e *ExecEngine) Name() string {
	return "exec:" + e.command
}

// Generate invokes the configured command with the unit schema on stdin and
// returns the produced declaration text.
func (e *ExecEngine) Generate(ctx context.Context, req pkgtypegen.Request) (string, error) {
	if strings.TrimSpace(req.Name) == "" {
		return "", errors.New("typegen: request name is required")
	}
	if len(req.Schema) == 0 {
		return "", errors.New("typegen: request schema is empty")
	}

	args := []string{
		"--lang", req.Options.LanguageOrDefault(),
		"--src-lang", "schema",
		"--top-level", req.Options.TypeName(req.Name),
		"--just-types",
	}
	args = append(args, e.args...)

	out, err := e.runner.Run(ctx, e.command, args, req.Schema)
	if err != nil {
		return "", fmt.Errorf("typegen: %s: %w", e.command, err)
	}
	declarations := string(out)
	if strings.TrimSpace(declarations) == "" {
		return "", fmt.Errorf("typegen: %s produced no declarations", e.command)
	}
	return declarations, nil
}
