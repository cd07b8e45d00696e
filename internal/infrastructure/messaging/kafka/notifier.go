package kafka

import (
	"context"

	"github.com/turtacn/VisaPath-Intelligence/internal/application/visaapp"
	"github.com/turtacn/VisaPath-Intelligence/internal/infrastructure/monitoring/logging"
)

// sourceService identifies this engine in event envelopes.
const sourceService = "visapath-engine"

// StatusNotifier publishes committed status transitions to the application
// events topic.  It satisfies the notifier port of the tracking service.
type StatusNotifier struct {
	producer *Producer
	logger   logging.Logger
}

// NewStatusNotifier constructs a StatusNotifier.
func NewStatusNotifier(producer *Producer, logger logging.Logger) *StatusNotifier {
	return &StatusNotifier{producer: producer, logger: logger}
}

// NotifyStatusChange wraps the event into an envelope and publishes it keyed
// by application id, so each application's events stay ordered.
func (n *StatusNotifier) NotifyStatusChange(ctx context.Context, event visaapp.StatusEvent) error {
	envelope, err := NewEventEnvelope(EventTypeStatusUpdate, sourceService, event)
	if err != nil {
		return err
	}
	msg, err := envelope.ToMessage(TopicApplicationEvents, string(event.ApplicationID))
	if err != nil {
		return err
	}
	if err := n.producer.Publish(ctx, msg); err != nil {
		return err
	}
	n.logger.Debug("status event published",
		logging.String("application_id", string(event.ApplicationID)),
		logging.String("to", string(event.To)))
	return nil
}

//Personal.AI order the ending
