package main

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"github.com/example/mini-calculator/modules/calculator"
	"github.com/example/mini-calculator/modules/repl"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

func main() {
	// Load configuration from environment
	logLevel := mono.LogLevelError
	if strings.EqualFold(getEnv("CALC_LOG_LEVEL", "error"), "info") {
		logLevel = mono.LogLevelInfo
	}
	requestTimeout := getEnvDuration("CALC_REQUEST_TIMEOUT", 5*time.Second)
	shutdownTimeout := getEnvDuration("CALC_SHUTDOWN_TIMEOUT", 10*time.Second)

	// NATS stays in-process: no listener, modules talk over an in-memory conn.
	// Logs go to stderr at error level by default; stdout belongs to the prompt.
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(logLevel),
		mono.WithLogFormat(mono.LogFormatText),
		mono.WithLogOutput(os.Stderr),
		mono.WithNATSDontListen(),
		mono.WithNATSInProcessConn(),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	logger := app.Logger()

	replModule := repl.NewModule(logger, repl.WithRequestTimeout(requestTimeout))

	// Order: independent modules first, then modules with dependencies
	if err := app.Register(calculator.NewModule(logger)); err != nil {
		log.Fatalf("Failed to register calculator module: %v", err)
	}
	if err := app.Register(replModule); err != nil {
		log.Fatalf("Failed to register repl module: %v", err)
	}

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}
	logger.Info("Application started")

	stop := func(ctx context.Context) error {
		logger.Info("Graceful shutdown initiated...")
		return app.Stop(ctx)
	}

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": stop,
		},
	)

	done := make(chan int, 1)
	go func() {
		reason, err := replModule.Run(context.Background())
		if err != nil {
			logger.Error("REPL failed", "error", err)
		}
		logger.Info("REPL finished", "reason", reason.String())
		done <- exitCode(reason, err)
	}()

	select {
	case code := <-wait:
		logger.Info("Application exited", "code", code)
		os.Exit(code)
	case code := <-done:
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		if err := stop(ctx); err != nil {
			logger.Error("Failed to stop application", "error", err)
		}
		cancel()
		os.Exit(code)
	}
}

// exitCode maps how the REPL ended to a process exit code. End-of-stream
// and exit commands are both normal terminations.
func exitCode(reason repl.StopReason, err error) int {
	if err != nil {
		return 1
	}
	switch reason {
	case repl.StopEndOfStream, repl.StopExitCommand, repl.StopCancelled:
		return 0
	default:
		return 1
	}
}

// getEnv returns environment variable value or default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvDuration returns environment variable as time.Duration or default.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("Warning: invalid duration value for %s: %s, using default: %s", key, value, defaultValue)
	}
	return defaultValue
}
