package common

import "github.com/prometheus/client_golang/prometheus"

const (
	HTTPRequestTotal           = "campusboard_http_requests_total"
	HTTPRequestDurationSeconds = "campusboard_http_request_duration_seconds"
	NotificationEventTotal     = "campusboard_notification_events_total"
	PointsAwardedTotal         = "campusboard_points_awarded_total"
	BadgesAwardedTotal         = "campusboard_badges_awarded_total"
	CronJobRunsTotal           = "campusboard_cron_job_runs_total"
)

var (
	PromCounters = map[string]*prometheus.CounterVec{
		HTTPRequestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: HTTPRequestTotal,
			Help: "Handled API requests by route and outcome",
		}, []string{"method", "path", "status"}),
		NotificationEventTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: NotificationEventTotal,
			Help: "Notification events consumed from the bus",
		}, []string{"op"}),
		PointsAwardedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: PointsAwardedTotal,
			Help: "Sum of points credited to users",
		}, []string{"action"}),
		BadgesAwardedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: BadgesAwardedTotal,
			Help: "Badges newly given to users",
		}, []string{"badge"}),
		CronJobRunsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: CronJobRunsTotal,
			Help: "Cron job runs by outcome",
		}, []string{"job", "result"}),
	}

	PromHistograms = map[string]*prometheus.HistogramVec{
		HTTPRequestDurationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    HTTPRequestDurationSeconds,
			Help:    "Latency of API requests",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"method", "path"}),
	}
)
