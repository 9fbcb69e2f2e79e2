package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Business Metrics
var (
	TapsApplied = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameTapsApplied,
			Help: HelpTextTapsApplied,
		},
	)

	UpgradesBought = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameUpgradesBought,
			Help: HelpTextUpgradesBought,
		},
		[]string{LabelUpgrade},
	)

	TasksClaimed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameTasksClaimed,
			Help: HelpTextTasksClaimed,
		},
		[]string{LabelNamespace, LabelTask},
	)

	LootboxesOpened = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameLootboxesOpened,
			Help: HelpTextLootboxesOpened,
		},
		[]string{LabelLootbox},
	)

	BoostsPurchased = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameBoostsPurchased,
			Help: HelpTextBoostsPurchased,
		},
		[]string{LabelBoost},
	)

	CombosClaimed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCombosClaimed,
			Help: HelpTextCombosClaimed,
		},
	)

	CiphersClaimed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCiphersClaimed,
			Help: HelpTextCiphersClaimed,
		},
	)

	GlitchesClaimed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameGlitchesClaimed,
			Help: HelpTextGlitchesClaimed,
		},
	)

	PlayersCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePlayersCreated,
			Help: HelpTextPlayersCreated,
		},
	)

	SyncRejected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSyncRejected,
			Help: HelpTextSyncRejected,
		},
	)

	SaveConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSaveConflicts,
			Help: HelpTextSaveConflicts,
		},
	)
)
