// Package logger holds the process-wide zap logger shared by the API
// server and the migration CLI.
package logger

import (
	"sync"

	"go.uber.org/zap"
)

var (
	sugar *zap.SugaredLogger
	once  sync.Once
)

// Init builds the shared logger for the given environment. Production gets
// the JSON encoder; development and test environments get the console
// encoder. Later calls are no-ops, so the first caller wins.
func Init(env string) {
	once.Do(func() {
		var base *zap.Logger
		var err error

		if env == "production" {
			base, err = zap.NewProduction()
		} else {
			base, err = zap.NewDevelopment()
		}

		if err != nil {
			base = zap.NewNop()
		}

		sugar = base.Named("family-finance").Sugar()
	})
}

// Get returns the shared sugared logger, initializing a development logger
// on first use if Init was never called. Service tests rely on this so they
// can log without wiring up main's startup sequence.
func Get() *zap.SugaredLogger {
	if sugar == nil {
		Init("development")
	}
	return sugar
}

// Sync flushes buffered entries. Deferred from main before exit.
func Sync() {
	if sugar != nil {
		_ = sugar.Sync()
	}
}
