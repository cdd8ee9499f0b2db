package calculator

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/example/mini-calculator/domain/calc"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockLogger implements types.Logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(msg string, args ...any)          {}
func (m *mockLogger) Info(msg string, args ...any)           {}
func (m *mockLogger) Warn(msg string, args ...any)           {}
func (m *mockLogger) Error(msg string, args ...any)          {}
func (m *mockLogger) With(args ...any) types.Logger          { return m }
func (m *mockLogger) WithError(err error) types.Logger       { return m }
func (m *mockLogger) WithModule(module string) types.Logger { return m }

func TestEvaluateResponse(t *testing.T) {
	m := NewModule(&mockLogger{})

	tests := []struct {
		name          string
		req           EvaluateRequest
		wantResult    string
		wantOp        calc.Operation
		wantError     string
		wantErrorKind calc.Kind
	}{
		{
			name:       "successful add",
			req:        EvaluateRequest{RequestID: "r1", Line: "+ 2 3"},
			wantResult: "5",
			wantOp:     calc.OpAdd,
		},
		{
			name:       "power keyword",
			req:        EvaluateRequest{RequestID: "r2", Line: "pow 2 3"},
			wantResult: "8",
			wantOp:     calc.OpPower,
		},
		{
			name:          "division by zero returns error in response",
			req:           EvaluateRequest{RequestID: "r3", Line: "/ 4 0"},
			wantOp:        calc.OpDivide,
			wantError:     "division by zero is not allowed",
			wantErrorKind: calc.KindDivisionByZero,
		},
		{
			name:          "empty line",
			req:           EvaluateRequest{RequestID: "r4", Line: "   "},
			wantError:     "please enter an operation, e.g. '+ 2 3'",
			wantErrorKind: calc.KindEmptyInput,
		},
		{
			name:          "unknown operation",
			req:           EvaluateRequest{RequestID: "r5", Line: "% 1 2"},
			wantError:     "unknown operation '%'. Try one of: +, -, *, /, ^ (or add, sub, mul, div, pow)",
			wantErrorKind: calc.KindUnknownOperation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := m.evaluate(context.Background(), tt.req, nil)
			require.NoError(t, err, "evaluation errors must travel in the response")

			assert.Equal(t, tt.req.RequestID, resp.RequestID)
			assert.Equal(t, tt.wantOp, resp.Operation)
			assert.Equal(t, tt.wantResult, resp.Result)
			assert.Equal(t, tt.wantError, resp.Error)
			assert.Equal(t, tt.wantErrorKind, resp.ErrorKind)
		})
	}
}

func TestHealth(t *testing.T) {
	m := NewModule(&mockLogger{})
	ctx := context.Background()

	assert.False(t, m.Health(ctx).Healthy)

	require.NoError(t, m.Start(ctx))
	_, _ = m.evaluate(ctx, EvaluateRequest{Line: "+ 1 1"}, nil)
	_, _ = m.evaluate(ctx, EvaluateRequest{Line: "+ 1"}, nil)

	health := m.Health(ctx)
	assert.True(t, health.Healthy)
	assert.Equal(t, int64(2), health.Details["evaluations"])
	assert.Equal(t, int64(1), health.Details["failures"])

	require.NoError(t, m.Stop(ctx))
	assert.False(t, m.Health(ctx).Healthy)
}

// TestEvaluateService_RoundTrip calls the service through an embedded
// mono application.
func TestEvaluateService_RoundTrip(t *testing.T) {
	app, err := mono.NewMonoApplication(
		mono.WithLogLevel(mono.LogLevelError), // Suppress logs in tests
		mono.WithNATSDontListen(),
		mono.WithNATSInProcessConn(),
	)
	require.NoError(t, err)

	require.NoError(t, app.Register(NewModule(&mockLogger{})))
	require.NoError(t, app.Start(context.Background()))
	t.Cleanup(func() {
		_ = app.Stop(context.Background())
	})

	container := app.Services("calculator")
	require.NotNil(t, container)

	call := func(line string) EvaluateResponse {
		var resp EvaluateResponse
		err := helper.CallRequestReplyService(
			context.Background(),
			container,
			ServiceEvaluate,
			json.Marshal,
			json.Unmarshal,
			&EvaluateRequest{RequestID: "round-trip", Line: line},
			&resp,
		)
		require.NoError(t, err)
		return resp
	}

	resp := call("add 2 3")
	assert.Equal(t, "5", resp.Result)
	assert.Equal(t, calc.OpAdd, resp.Operation)
	assert.Equal(t, "round-trip", resp.RequestID)

	resp = call("mul 2 abc")
	assert.Empty(t, resp.Result)
	assert.Equal(t, calc.KindInvalidNumber, resp.ErrorKind)
	assert.Equal(t, "'abc' is not a number", resp.Error)

	adapter := NewCalculatorAdapter(container, time.Second)

	out, err := adapter.Evaluate(context.Background(), "x 3 4")
	require.NoError(t, err)
	assert.Equal(t, "12", out)

	_, err = adapter.Evaluate(context.Background(), "/ 4 0")
	assert.ErrorIs(t, err, calc.ErrDivisionByZero)
	assert.EqualError(t, err, "division by zero is not allowed")
}

func startCalculatorApp(t *testing.T) mono.ServiceContainer {
	t.Helper()

	app, err := mono.NewMonoApplication(
		mono.WithLogLevel(mono.LogLevelError), // Suppress logs in tests
		mono.WithNATSDontListen(),
		mono.WithNATSInProcessConn(),
	)
	require.NoError(t, err)
	require.NoError(t, app.Register(NewModule(&mockLogger{})))
	require.NoError(t, app.Start(context.Background()))
	t.Cleanup(func() {
		_ = app.Stop(context.Background())
	})

	container := app.Services("calculator")
	require.NotNil(t, container)
	return container
}

// TestEvaluateService_ConcurrentApplications starts two applications side
// by side; without a network listener neither competes for a port.
func TestEvaluateService_ConcurrentApplications(t *testing.T) {
	first := NewCalculatorAdapter(startCalculatorApp(t), time.Second)
	second := NewCalculatorAdapter(startCalculatorApp(t), time.Second)

	out, err := first.Evaluate(context.Background(), "+ 2 3")
	require.NoError(t, err)
	assert.Equal(t, "5", out)

	out, err = second.Evaluate(context.Background(), "pow 2 3")
	require.NoError(t, err)
	assert.Equal(t, "8", out)
}
