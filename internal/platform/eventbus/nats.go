package eventbus

import (
	"context"
	"encoding/json"

	"github.com/nats-io/nats.go"
)

// NatsDestination publishes events to the NATS subject "<prefix>.<event
// name>", giving low-latency fan-out to in-process saga handlers subscribed
// per event type.
type NatsDestination struct {
	conn          *nats.Conn
	subjectPrefix string
}

func NewNatsDestination(conn *nats.Conn, subjectPrefix string) *NatsDestination {
	return &NatsDestination{conn: conn, subjectPrefix: subjectPrefix}
}

func (d *NatsDestination) Name() string { return "nats" }

func (d *NatsDestination) Send(ctx context.Context, event Event) error {
	body, err := json.Marshal(event.Payload)
	if err != nil {
		return err
	}
	return d.conn.Publish(d.subjectPrefix+"."+event.Name, body)
}
