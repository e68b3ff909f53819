package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	FeedbackSubmissions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "feedback_submissions_total",
		Help: "Отзывы, опубликованные в канал",
	}, []string{"rating"})

	FeedbackDenied = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "feedback_denied_total",
		Help: "Вызовы команды без разрешённой роли",
	})

	FeedbackFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "feedback_failures_total",
		Help: "Ошибки обработки команды по причинам",
	}, []string{"reason"})

	FeedbackDuplicates = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "feedback_duplicates_total",
		Help: "Повторно доставленные взаимодействия",
	})

	CommandRegistrations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "discord_commands_registered_total",
		Help: "Попытки регистрации slash-команд",
	}, []string{"status"})

	DiscordRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "discord_request_duration_seconds",
		Help:    "Длительность запросов к Discord API",
		Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
	}, []string{"operation", "status"})

	DiscordRequestTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "discord_request_total",
		Help: "Количество запросов к Discord API",
	}, []string{"operation", "status"})
)

// MustRegister регистрирует метрики.
func MustRegister(registerer prometheus.Registerer) {
	registerer.MustRegister(
		FeedbackSubmissions,
		FeedbackDenied,
		FeedbackFailures,
		FeedbackDuplicates,
		CommandRegistrations,
		DiscordRequestDuration,
		DiscordRequestTotal,
	)
}

// ObserveDiscordRequest записывает длительность и статус запроса к Discord.
func ObserveDiscordRequest(operation string, start time.Time, err error) {
	if operation == "" {
		operation = "unknown"
	}
	status := statusLabel(err)
	DiscordRequestDuration.WithLabelValues(operation, status).Observe(time.Since(start).Seconds())
	DiscordRequestTotal.WithLabelValues(operation, status).Inc()
}

// ObserveRegistration учитывает результат регистрации команд.
func ObserveRegistration(err error) {
	CommandRegistrations.WithLabelValues(statusLabel(err)).Inc()
}

func statusLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
