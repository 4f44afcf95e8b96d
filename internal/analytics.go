package internal

import "github.com/prometheus/client_golang/prometheus"

var (
	beaconEventCount = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "beacon_events_total",
			Help: "Count of gateway frames received",
		},
	)

	beaconDiscardedEvents = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "beacon_events_discarded_total",
			Help: "Count of discarded gateway frames",
		},
	)

	beaconDispatchEventCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "beacon_dispatch_events_by_type_total",
			Help: "Count of dispatch events by type",
		},
		[]string{"type"},
	)

	beaconGatewayLatency = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "beacon_gateway_latency",
			Help: "Heartbeat round trip time in milliseconds",
		},
	)

	beaconReconnectCount = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "beacon_reconnects_total",
			Help: "Count of gateway reconnections",
		},
	)

	beaconStateGuildCount = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "beacon_state_guild_count",
			Help: "Count of guilds in the latest snapshot",
		},
	)

	beaconStateUserCount = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "beacon_state_user_count",
			Help: "Count of users in the latest snapshot",
		},
	)

	beaconMessagesPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "beacon_api_messages_published_total",
			Help: "Count of API messages published to the bus",
		},
		[]string{"type"},
	)
)

func init() {
	prometheus.MustRegister(
		beaconEventCount,
		beaconDiscardedEvents,
		beaconDispatchEventCount,
		beaconGatewayLatency,
		beaconReconnectCount,
		beaconStateGuildCount,
		beaconStateUserCount,
		beaconMessagesPublished,
	)
}
