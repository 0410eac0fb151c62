package service

import (
	"context"

	"codebenders/internal/pkg/logger"
	"codebenders/internal/pkg/mailer"
	"codebenders/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// Subscriber is the part of a watermill subscriber the consumer needs.
type Subscriber interface {
	Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error)
}

type consumerService struct {
	subscriber   Subscriber
	topicName    string
	emailService mailer.IEmailService
	logger       logger.ILogger
}

func NewConsumerService(subscriber Subscriber, topicName string, emailService mailer.IEmailService, log logger.ILogger) IConsumerService {
	return &consumerService{
		subscriber:   subscriber,
		topicName:    topicName,
		emailService: emailService,
		logger:       log,
	}
}

// Consume turns mail events into emails until ctx is cancelled.
func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	event, err := events.Decode(msg)
	if err != nil {
		cs.logger.Error("CONSUMER", "Failed to decode message", map[string]interface{}{"error": err.Error()})
		msg.Ack() // a malformed payload never gets better
		return
	}

	email, token := event.String("email"), event.String("token")
	if email == "" || token == "" {
		cs.logger.Warn("CONSUMER", "Mail event without recipient or token", map[string]interface{}{"event_type": event.Type})
		msg.Ack()
		return
	}

	switch event.Type {
	case events.TypePasswordResetRequested:
		err = cs.emailService.SendResetLink(email, token)
	case events.TypeVerificationRequested:
		err = cs.emailService.SendVerifyLink(email, token)
	default:
		cs.logger.Warn("CONSUMER", "Unknown event type", map[string]interface{}{"event_type": event.Type})
		msg.Ack()
		return
	}

	// mail is best effort; a failed send is logged and not retried
	if err != nil {
		cs.logger.Error("CONSUMER", "Failed to send mail", map[string]interface{}{
			"event_type": event.Type,
			"error":      err.Error(),
		})
	}
	msg.Ack()
}
