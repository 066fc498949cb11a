package metrics

import (
	"go.mongodb.org/mongo-driver/event"
)

// NewPoolMonitor returns a driver pool monitor that keeps DBPoolConnections
// in sync with connection checkouts and lifecycle events.
func NewPoolMonitor(maxPoolSize uint64) *event.PoolMonitor {
	DBPoolConnections.WithLabelValues("max").Set(float64(maxPoolSize))

	return &event.PoolMonitor{
		Event: func(e *event.PoolEvent) {
			switch e.Type {
			case event.ConnectionCreated:
				DBPoolConnections.WithLabelValues("open").Inc()
			case event.ConnectionClosed:
				DBPoolConnections.WithLabelValues("open").Dec()
			case event.GetSucceeded:
				DBPoolConnections.WithLabelValues("in_use").Inc()
			case event.ConnectionReturned:
				DBPoolConnections.WithLabelValues("in_use").Dec()
			}
		},
	}
}

// RecordUsersTotal updates the stored users gauge.
func RecordUsersTotal(count int64) {
	UsersTotal.Set(float64(count))
}
