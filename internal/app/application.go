package app

import (
	"log/slog"

	"matatumonitor/internal/appconf"
	"matatumonitor/internal/metrics"
	"matatumonitor/internal/notify"
	"matatumonitor/internal/session"
)

// Application holds the dependencies for our HTTP handlers, helpers,
// and middleware. Metrics and Hub are optional.
type Application struct {
	Config  appconf.Config
	Logger  *slog.Logger
	Session *session.Session
	Metrics *metrics.Collector
	Hub     *notify.Hub
}
