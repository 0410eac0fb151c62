package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// MailTopic carries events that end in an email.
const MailTopic = "codebenders.mail"

const (
	TypePasswordResetRequested = "PASSWORD_RESET_REQUESTED"
	TypeVerificationRequested  = "VERIFICATION_REQUESTED"
)

// Event defines the contract for all system events.
type Event interface {
	EventType() string
	Payload() map[string]interface{}
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurred_at"`
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// String returns a payload field, or "" when it is missing or not a string.
func (e BaseEvent) String(key string) string {
	s, _ := e.Data[key].(string)
	return s
}

// TokenMailRequested is published when a reset or verification token must be
// mailed to its owner.
func TokenMailRequested(eventType, email, token string) BaseEvent {
	return BaseEvent{
		Type:       eventType,
		Data:       map[string]interface{}{"email": email, "token": token},
		OccurredAt: time.Now(),
	}
}

func NewMessage(e Event) (*message.Message, error) {
	payload, err := json.Marshal(BaseEvent{Type: e.EventType(), Data: e.Payload(), OccurredAt: e.Timestamp()})
	if err != nil {
		return nil, fmt.Errorf("marshal %s event: %w", e.EventType(), err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_type", e.EventType())
	return msg, nil
}

func Decode(msg *message.Message) (BaseEvent, error) {
	var e BaseEvent
	if err := json.Unmarshal(msg.Payload, &e); err != nil {
		return BaseEvent{}, fmt.Errorf("decode event %s: %w", msg.UUID, err)
	}
	return e, nil
}

// Publisher is the part of a watermill publisher the services need.
type Publisher interface {
	Publish(topic string, messages ...*message.Message) error
}

func Publish(p Publisher, topic string, e Event) error {
	msg, err := NewMessage(e)
	if err != nil {
		return err
	}
	return p.Publish(topic, msg)
}
