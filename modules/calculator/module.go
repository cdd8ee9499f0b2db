package calculator

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
)

// Module provides arithmetic evaluation via RequestReplyService.
type Module struct {
	logger      types.Logger
	started     atomic.Bool
	evaluations atomic.Int64
	failures    atomic.Int64
}

// Compile-time interface checks.
var (
	_ mono.Module                = (*Module)(nil)
	_ mono.ServiceProviderModule = (*Module)(nil)
	_ mono.HealthCheckableModule = (*Module)(nil)
)

// NewModule creates a new calculator module.
func NewModule(logger types.Logger) *Module {
	return &Module{
		logger: logger.WithModule("calculator"),
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "calculator"
}

// RegisterServices registers request-reply services in the service container.
func (m *Module) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceEvaluate, json.Unmarshal, json.Marshal, m.evaluate,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceEvaluate, err)
	}

	m.logger.Info("Registered services", "services", []string{"services.calculator." + ServiceEvaluate})
	return nil
}

// Start initializes the calculator module.
func (m *Module) Start(_ context.Context) error {
	m.started.Store(true)
	m.logger.Info("Module started")
	return nil
}

// Stop gracefully stops the calculator module.
func (m *Module) Stop(_ context.Context) error {
	m.started.Store(false)
	m.logger.Info("Module stopped",
		"evaluations", m.evaluations.Load(),
		"failures", m.failures.Load())
	return nil
}

// Health returns the module health with evaluation counters.
func (m *Module) Health(_ context.Context) mono.HealthStatus {
	if !m.started.Load() {
		return mono.HealthStatus{
			Healthy: false,
			Message: "not started",
		}
	}
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"evaluations": m.evaluations.Load(),
			"failures":    m.failures.Load(),
		},
	}
}
