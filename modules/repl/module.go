package repl

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/example/mini-calculator/modules/calculator"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/types"
)

// Module runs the interactive prompt on top of the calculator module.
type Module struct {
	logger         types.Logger
	calculator     calculator.CalculatorPort
	in             io.Reader
	out            io.Writer
	errOut         io.Writer
	requestTimeout time.Duration
	running        atomic.Bool
}

// Compile-time interface checks.
var (
	_ mono.Module                = (*Module)(nil)
	_ mono.DependentModule       = (*Module)(nil)
	_ mono.HealthCheckableModule = (*Module)(nil)
)

// Option configures a Module.
type Option func(*Module)

// WithStreams sets the input and output streams. Defaults are the
// process's stdin, stdout and stderr.
func WithStreams(in io.Reader, out, errOut io.Writer) Option {
	return func(m *Module) {
		m.in = in
		m.out = out
		m.errOut = errOut
	}
}

// WithRequestTimeout bounds each call to the calculator service.
func WithRequestTimeout(d time.Duration) Option {
	return func(m *Module) {
		m.requestTimeout = d
	}
}

// NewModule creates a new REPL module.
func NewModule(logger types.Logger, opts ...Option) *Module {
	m := &Module{
		logger: logger.WithModule("repl"),
		in:     os.Stdin,
		out:    os.Stdout,
		errOut: os.Stderr,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Name returns the module name.
func (m *Module) Name() string {
	return "repl"
}

// Dependencies declares that the REPL depends on the calculator module.
func (m *Module) Dependencies() []string {
	return []string{"calculator"}
}

// SetDependencyServiceContainer receives the calculator service container.
func (m *Module) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	if dependency == "calculator" {
		m.calculator = calculator.NewCalculatorAdapter(container, m.requestTimeout)
	}
}

// Start checks that the calculator dependency is wired. The prompt itself
// is driven by Run so the caller owns the blocking read.
func (m *Module) Start(_ context.Context) error {
	if m.calculator == nil {
		return fmt.Errorf("calculator dependency not set")
	}
	m.logger.Info("Module started (depends on: calculator)")
	return nil
}

// Stop stops the REPL module.
func (m *Module) Stop(_ context.Context) error {
	m.logger.Info("Module stopped")
	return nil
}

// Health reports whether a session is currently running.
func (m *Module) Health(_ context.Context) mono.HealthStatus {
	if m.calculator == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "calculator dependency not set",
		}
	}
	status := "idle"
	if m.running.Load() {
		status = "running"
	}
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"session": status,
		},
	}
}

// Run drives a session over the configured streams until it stops.
func (m *Module) Run(ctx context.Context) (StopReason, error) {
	if m.calculator == nil {
		return 0, fmt.Errorf("calculator dependency not set")
	}
	if !m.running.CompareAndSwap(false, true) {
		return 0, fmt.Errorf("session already running")
	}
	defer m.running.Store(false)

	session := NewSession(m.calculator, m.in, m.out, m.errOut, m.logger)
	reason, err := session.Run(ctx)
	if err != nil {
		m.logger.Error("Session ended with error", "reason", reason.String(), "error", err)
		return reason, err
	}

	m.logger.Info("Session ended", "reason", reason.String())
	return reason, nil
}
