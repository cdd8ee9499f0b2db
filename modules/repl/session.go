package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/example/mini-calculator/domain/calc"
	"github.com/example/mini-calculator/modules/calculator"
	"github.com/go-monolith/mono/pkg/types"
)

// StopReason tells why a session ended.
type StopReason int

const (
	// StopEndOfStream means the input had no more lines.
	StopEndOfStream StopReason = iota + 1
	// StopExitCommand means the user typed exit or quit.
	StopExitCommand
	// StopCancelled means the session context was cancelled.
	StopCancelled
)

func (r StopReason) String() string {
	switch r {
	case StopEndOfStream:
		return "end-of-stream"
	case StopExitCommand:
		return "exit-command"
	case StopCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

const (
	prompt      = "> "
	errorPrefix = "Error: "
	farewell    = "Goodbye!"
)

// Session is one read-eval-print loop over a pair of output streams.
type Session struct {
	calculator calculator.CalculatorPort
	in         *bufio.Reader
	out        io.Writer
	errOut     io.Writer
	logger     types.Logger
}

// NewSession creates a session reading lines from in. Results go to out,
// evaluation errors to errOut.
func NewSession(port calculator.CalculatorPort, in io.Reader, out, errOut io.Writer, logger types.Logger) *Session {
	return &Session{
		calculator: port,
		in:         bufio.NewReader(in),
		out:        out,
		errOut:     errOut,
		logger:     logger,
	}
}

// Banner returns the usage text printed when a session starts.
func Banner() string {
	var b strings.Builder
	rule := strings.Repeat("=", 47)
	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, " Mini Calculator (CLI)")
	fmt.Fprintln(&b, " - Enter: <op> <a> <b>  e.g. '+ 2 3' or 'mul 3 4'")
	fmt.Fprintf(&b, " - Supported ops: %s\n", calc.ValidOperations())
	fmt.Fprintln(&b, " - Type 'exit' or 'quit' to leave")
	fmt.Fprintln(&b, rule)
	return b.String()
}

// Run prints the banner and loops until end-of-stream, an exit command, or
// ctx is cancelled. Evaluation failures are reported and never end the loop.
// Only a failed read is returned as an error.
func (s *Session) Run(ctx context.Context) (StopReason, error) {
	fmt.Fprint(s.out, Banner())

	for {
		if err := ctx.Err(); err != nil {
			s.flush()
			return StopCancelled, err
		}

		fmt.Fprint(s.out, prompt)
		s.flush()

		line, err := s.in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return 0, fmt.Errorf("failed to read input: %w", err)
		}
		if line == "" && err != nil {
			// Leave the prompt line before saying goodbye.
			s.say("\n" + farewell)
			return StopEndOfStream, nil
		}

		trimmed := strings.TrimSpace(line)
		if isExitCommand(trimmed) {
			s.say(farewell)
			return StopExitCommand, nil
		}

		s.dispatch(ctx, trimmed)
	}
}

func (s *Session) dispatch(ctx context.Context, line string) {
	result, err := s.calculator.Evaluate(ctx, line)
	if err == nil {
		fmt.Fprintln(s.out, result)
		return
	}

	if _, ok := calc.KindOf(err); !ok {
		s.logger.Debug("Evaluation call failed", "line", line, "error", err)
	}
	fmt.Fprintln(s.errOut, errorPrefix+err.Error())
}

func (s *Session) say(msg string) {
	fmt.Fprintln(s.out, msg)
	s.flush()
}

func (s *Session) flush() {
	for _, w := range []io.Writer{s.out, s.errOut} {
		if f, ok := w.(interface{ Flush() error }); ok {
			_ = f.Flush()
		}
	}
}

func isExitCommand(line string) bool {
	return strings.EqualFold(line, "exit") || strings.EqualFold(line, "quit")
}
