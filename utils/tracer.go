package utils

import (
	. "github.com/Luismorlan/cookmux/utils/flag"
	Logger "github.com/Luismorlan/cookmux/utils/log"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"
)

// SetupTracer starts the Datadog tracer. Call once from main after flags are
// parsed.
func SetupTracer() {
	env := "development"
	if IsProdEnv() {
		env = "production"
	}

	tracer.Start(
		tracer.WithService(ServiceName),
		tracer.WithEnv(env),
	)

	Logger.Log.Info("tracer initialized")
}

// Stop tracer, OK to be closed multiple times
func CloseTracer() {
	tracer.Stop()
}
