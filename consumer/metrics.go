package consumer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	messagesReceived = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sqslisten_consumer_messages_received_total",
		Help: "Messages delivered by the listener with a decodable envelope.",
	})
	messagesArchived = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sqslisten_consumer_messages_archived_total",
		Help: "Messages stored in the archive.",
	})
	brokenMessages = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sqslisten_consumer_broken_messages_total",
		Help: "Messages whose body failed to decode.",
	})
	receiveErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sqslisten_consumer_receive_errors_total",
		Help: "Failed polls reported by the listener.",
	})
	archiveErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sqslisten_consumer_archive_errors_total",
		Help: "Archive writes that failed.",
	})
)
