package events

import (
	"context"

	"github.com/medflow/arztliste/pkg/logger"
	"github.com/medflow/arztliste/pkg/messaging"
)

// ReportEventPublisher publishes report-related events
type ReportEventPublisher struct {
	publisher messaging.EventPublisher
	logger    *logger.Logger
}

// NewReportEventPublisher declares exchange on rmq and returns a publisher for it
func NewReportEventPublisher(rmq *messaging.RabbitMQ, exchange string, log *logger.Logger) (*ReportEventPublisher, error) {
	publisher, err := messaging.NewPublisher(rmq, exchange, "arztliste-service", log)
	if err != nil {
		return nil, err
	}

	return NewReportEventPublisherWith(publisher, log), nil
}

// NewReportEventPublisherWith wraps an existing event publisher
func NewReportEventPublisherWith(publisher messaging.EventPublisher, log *logger.Logger) *ReportEventPublisher {
	return &ReportEventPublisher{
		publisher: publisher,
		logger:    log,
	}
}

// PublishReportGenerated publishes a report generated event. Failures are logged only.
func (p *ReportEventPublisher) PublishReportGenerated(ctx context.Context, event messaging.ReportGeneratedEvent) {
	if p == nil {
		return
	}

	if err := p.publisher.Publish(ctx, messaging.EventReportGenerated, event); err != nil {
		p.logger.Error().Err(err).Str("output", event.Output).Msg("failed to publish report generated event")
	}
}
