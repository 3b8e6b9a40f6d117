package realtime

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	connectedClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "realtime_connected_clients",
		Help: "Number of currently connected websocket clients",
	})

	articleRoomCount = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "realtime_article_rooms",
		Help: "Number of article rooms with at least one member",
	})

	messagesBroadcast = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "realtime_messages_broadcast_total",
		Help: "Total number of messages broadcast to rooms",
	}, []string{"event"})
)
