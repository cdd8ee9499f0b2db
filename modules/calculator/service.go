package calculator

import (
	"context"

	"github.com/example/mini-calculator/domain/calc"
	"github.com/go-monolith/mono"
)

// evaluate handles the calculator.evaluate service request.
func (m *Module) evaluate(_ context.Context, req EvaluateRequest, _ *mono.Msg) (EvaluateResponse, error) {
	m.evaluations.Add(1)
	resp := EvaluateResponse{RequestID: req.RequestID}

	expr, err := calc.Parse(req.Line)
	if err != nil {
		return m.failed(resp, err), nil // Return error in response, not as Go error
	}
	resp.Operation = expr.Op

	v, err := calc.Apply(expr.Op, expr.A, expr.B)
	if err != nil {
		return m.failed(resp, err), nil
	}

	resp.Result = calc.Format(v)
	return resp, nil
}

func (m *Module) failed(resp EvaluateResponse, err error) EvaluateResponse {
	m.failures.Add(1)
	resp.Error = err.Error()
	if kind, ok := calc.KindOf(err); ok {
		resp.ErrorKind = kind
	}
	m.logger.Debug("Evaluation failed",
		"request_id", resp.RequestID,
		"kind", resp.ErrorKind,
		"error", resp.Error)
	return resp
}
