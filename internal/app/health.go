package app

import (
	"context"
	"time"

	"github.com/deppfellow/jobly/internal/logger"
	"github.com/rs/zerolog"
)

// healthCheckTimeout bounds each dependency check.
const healthCheckTimeout = 5 * time.Second

// Pinger is a dependency that can report whether it is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type CheckResult struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time"`
	Error        string `json:"error,omitempty"`
}

type HealthReport struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment string                 `json:"environment"`
	Checks      map[string]CheckResult `json:"checks"`
}

// Healthy reports whether every check passed.
func (r HealthReport) Healthy() bool {
	return r.Status == "healthy"
}

// CheckHealth pings the database.
func (a *App) CheckHealth(ctx context.Context) HealthReport {
	return checkHealth(ctx, a.Config.Primary.Env, map[string]Pinger{"database": a.DB.Pool}, a.LoggerService, a.Logger)
}

func checkHealth(ctx context.Context, env string, deps map[string]Pinger, loggerService *logger.LoggerService, log *zerolog.Logger) HealthReport {
	report := HealthReport{
		Status:      "healthy",
		Timestamp:   time.Now().UTC(),
		Environment: env,
		Checks:      make(map[string]CheckResult, len(deps)),
	}

	for name, dep := range deps {
		checkCtx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
		start := time.Now()
		err := dep.Ping(checkCtx)
		elapsed := time.Since(start)
		cancel()

		if err != nil {
			report.Status = "unhealthy"
			report.Checks[name] = CheckResult{
				Status:       "unhealthy",
				ResponseTime: elapsed.String(),
				Error:        err.Error(),
			}

			log.Error().Err(err).Str("check", name).Dur("response_time", elapsed).Msg("health check failed")

			if app := loggerService.GetApplication(); app != nil {
				app.RecordCustomEvent("HealthCheckError", map[string]any{
					"check_type":       name,
					"operation":        "health_check",
					"response_time_ms": elapsed.Milliseconds(),
					"error_message":    err.Error(),
				})
			}
			continue
		}

		report.Checks[name] = CheckResult{
			Status:       "healthy",
			ResponseTime: elapsed.String(),
		}
		log.Info().Str("check", name).Dur("response_time", elapsed).Msg("health check passed")
	}

	return report
}
