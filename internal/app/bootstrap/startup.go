// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"

	userstore "github.com/jaikviktechnology/jaikvik-api/internal/app/store/users"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/timeouts"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/workers"
)

// resetCleanup is the background worker that purges expired password
// reset codes. It is kept at package level so Shutdown can stop it.
var resetCleanup *workers.ResetCleanup

// Startup runs once after DB connections and schema setup are complete,
// but before the HTTP handler is built and requests are served.
//
// Returning a non-nil error aborts startup and prevents the server from
// starting.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	timeouts.Configure(timeouts.Config{
		Short:  appCfg.TimeoutShort,
		Medium: appCfg.TimeoutMedium,
		Long:   appCfg.TimeoutLong,
	})

	resetCleanup = workers.NewResetCleanup(userstore.New(deps.MongoDatabase), logger, appCfg.ResetCleanupInterval)
	resetCleanup.Start()
	logger.Info("started reset code cleanup worker",
		zap.Duration("interval", appCfg.ResetCleanupInterval))

	return nil
}
