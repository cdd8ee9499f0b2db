package calculator

import "github.com/example/mini-calculator/domain/calc"

// ServiceEvaluate is the request-reply service name. The framework exposes
// it as "services.calculator.evaluate".
const ServiceEvaluate = "evaluate"

// EvaluateRequest is the request for evaluating one input line.
type EvaluateRequest struct {
	RequestID string `json:"request_id,omitempty"`
	Line      string `json:"line"`
}

// EvaluateResponse is the response from evaluating one input line.
// Exactly one of Result or Error is set.
type EvaluateResponse struct {
	RequestID string         `json:"request_id,omitempty"`
	Operation calc.Operation `json:"operation,omitempty"`
	Result    string         `json:"result,omitempty"`
	Error     string         `json:"error,omitempty"`
	ErrorKind calc.Kind      `json:"error_kind,omitempty"`
}
