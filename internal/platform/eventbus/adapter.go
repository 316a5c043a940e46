package eventbus

import (
	"context"

	"github.com/nielsbergsma/blimpco/internal/reservation/usecase"
)

// UseCasePublisher adapts Publisher to the usecase.EventPublisher contract,
// keeping the domain/usecase layer free of any transport-specific type.
type UseCasePublisher struct {
	publisher *Publisher
}

func NewUseCasePublisher(publisher *Publisher) *UseCasePublisher {
	return &UseCasePublisher{publisher: publisher}
}

func (p *UseCasePublisher) Send(ctx context.Context, event usecase.PublishableEvent) error {
	return p.publisher.Send(ctx, Event{Name: event.Name, Payload: event.Payload})
}
