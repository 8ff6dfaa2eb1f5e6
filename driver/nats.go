package driver

import (
	"time"

	"github.com/nats-io/nats.go"
)

// ConnectNATS connects to the event bus. An empty URL means eventing is
// disabled and the caller should pass a nil connection downstream.
func ConnectNATS(url string) (*nats.Conn, error) {
	if url == "" {
		return nil, nil
	}
	return nats.Connect(url,
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
}
