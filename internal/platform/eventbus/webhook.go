package eventbus

import (
	"context"
	"errors"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"
)

// WebhookDestination pushes events to a third-party HTTP endpoint, guarded
// by a circuit breaker so a failing destination doesn't back up the
// publish path for every other event.
type WebhookDestination struct {
	client  *resty.Client
	url     string
	breaker *gobreaker.CircuitBreaker
}

func NewWebhookDestination(url string) *WebhookDestination {
	client := resty.New().SetTimeout(5 * time.Second)
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "event-webhook",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
	})
	return &WebhookDestination{client: client, url: url, breaker: breaker}
}

func (d *WebhookDestination) Name() string { return "webhook" }

func (d *WebhookDestination) Send(ctx context.Context, event Event) error {
	_, err := d.breaker.Execute(func() (interface{}, error) {
		resp, err := d.client.R().
			SetContext(ctx).
			SetHeader("Content-Type", "application/json").
			SetHeader("X-Event-Name", event.Name).
			SetBody(event.Payload).
			Post(d.url)
		if err != nil {
			return nil, err
		}
		if resp.IsError() {
			return nil, errors.New("webhook destination returned " + resp.Status())
		}
		return nil, nil
	})
	return err
}
