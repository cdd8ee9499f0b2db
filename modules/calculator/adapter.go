package calculator

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/example/mini-calculator/domain/calc"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/google/uuid"
)

// CalculatorPort defines the interface for evaluation (used by other modules).
type CalculatorPort interface {
	// Evaluate returns the result text for line. Evaluation failures are
	// *calc.Error values; any other error means the call itself failed.
	Evaluate(ctx context.Context, line string) (string, error)
}

// calculatorAdapter wraps ServiceContainer for type-safe cross-module communication.
type calculatorAdapter struct {
	container mono.ServiceContainer
	timeout   time.Duration
}

// NewCalculatorAdapter creates a new adapter for calculator services.
// container is the ServiceContainer from the calculator module received via
// SetDependencyServiceContainer. A non-positive timeout leaves ctx as is.
func NewCalculatorAdapter(container mono.ServiceContainer, timeout time.Duration) CalculatorPort {
	if container == nil {
		panic("calculator adapter requires non-nil ServiceContainer")
	}
	return &calculatorAdapter{container: container, timeout: timeout}
}

// Evaluate evaluates one line via the evaluate service.
func (a *calculatorAdapter) Evaluate(ctx context.Context, line string) (string, error) {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	req := EvaluateRequest{RequestID: uuid.NewString(), Line: line}
	var resp EvaluateResponse

	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceEvaluate,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return "", fmt.Errorf("evaluate service call failed: %w", err)
	}

	if resp.Error != "" {
		return "", calc.NewError(resp.ErrorKind, resp.Error)
	}
	return resp.Result, nil
}

// LocalPort adapts a plain evaluation function to CalculatorPort, for
// callers that run without the service bus.
type LocalPort func(line string) (string, error)

// Evaluate calls f.
func (f LocalPort) Evaluate(_ context.Context, line string) (string, error) {
	return f(line)
}
