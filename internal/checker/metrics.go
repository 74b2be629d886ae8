package checker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TotalChecks tracks the number of check runs started.
	TotalChecks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stockwatch_checks_total",
		Help: "The total number of stock check runs started.",
	})
	// TotalFetchErrors tracks runs that failed before a verdict existed.
	TotalFetchErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stockwatch_fetch_errors_total",
		Help: "The total number of page fetches that failed.",
	})
	// TotalVerdicts tracks produced verdicts by value.
	TotalVerdicts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stockwatch_verdicts_total",
		Help: "The total number of verdicts produced, by verdict.",
	}, []string{"verdict"})
	// TotalNotifications tracks successfully dispatched notifications.
	TotalNotifications = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stockwatch_notifications_total",
		Help: "The total number of notifications dispatched.",
	})
	// TotalNotificationErrors tracks notification transport failures.
	TotalNotificationErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stockwatch_notification_errors_total",
		Help: "The total number of failed notification dispatches.",
	})
	// TotalStatusWriteErrors tracks status sink write failures.
	TotalStatusWriteErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stockwatch_status_write_errors_total",
		Help: "The total number of failed status sink writes.",
	})
)
