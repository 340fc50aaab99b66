package utils

import (
	. "github.com/Luismorlan/cookmux/utils/flag"
	Logger "github.com/Luismorlan/cookmux/utils/log"
	"gopkg.in/DataDog/dd-trace-go.v1/profiler"
)

// SetupProfiler starts the Datadog profiler. Call once from main after flags
// are parsed.
func SetupProfiler() {
	env := "development"
	if IsProdEnv() {
		env = "production"
	}

	if err := profiler.Start(
		profiler.WithService(ServiceName),
		profiler.WithEnv(env),
		profiler.WithProfileTypes(
			profiler.CPUProfile,
			profiler.HeapProfile,
		),
	); err != nil {
		Logger.Log.Fatal(err)
	}
}

// Stop profiler, OK to be closed multiple times
func CloseProfiler() {
	profiler.Stop()
}
