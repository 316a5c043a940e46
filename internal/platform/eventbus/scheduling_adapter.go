package eventbus

import (
	"context"

	schedulingusecase "github.com/nielsbergsma/blimpco/internal/scheduling/usecase"
)

// SchedulingUseCasePublisher adapts Publisher to scheduling/usecase's
// EventPublisher contract.
type SchedulingUseCasePublisher struct {
	publisher *Publisher
}

func NewSchedulingUseCasePublisher(publisher *Publisher) *SchedulingUseCasePublisher {
	return &SchedulingUseCasePublisher{publisher: publisher}
}

func (p *SchedulingUseCasePublisher) Send(ctx context.Context, event schedulingusecase.PublishableEvent) error {
	return p.publisher.Send(ctx, Event{Name: event.Name, Payload: event.Payload})
}
