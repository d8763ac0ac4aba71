package notify

import (
	"context"
	"time"

	"github.com/hamed0406/cafwatch/internal/domain"
)

// CelebrationMessage is sent as value2 of every notification.
const CelebrationMessage = "🎉 Le site de billetterie CAN 2025 est de nouveau accessible !"

// Payload is the IFTTT Maker webhook body. IFTTT only forwards value1..value3.
type Payload struct {
	Value1 string `json:"value1"`
	Value2 string `json:"value2"`
	Value3 string `json:"value3"`
}

func NewPayload(now time.Time) Payload {
	return Payload{
		Value1: domain.SiteName,
		Value2: CelebrationMessage,
		Value3: domain.FormatTimestamp(now),
	}
}

type Outcome string

const (
	OutcomeSent             Outcome = "sent"
	OutcomeNotConfigured    Outcome = "not_configured"
	OutcomeTimeout          Outcome = "timeout"
	OutcomeConnectionError  Outcome = "connection_error"
	OutcomeUnexpectedStatus Outcome = "unexpected_status"
	OutcomeInvalidRequest   Outcome = "invalid_request"
)

// Result describes one delivery attempt. StatusCode is 0 when no response arrived.
type Result struct {
	Outcome    Outcome
	StatusCode int
	Err        error
}

func (r Result) OK() bool { return r.Outcome == OutcomeSent }

type Notifier interface {
	Send(ctx context.Context, p Payload) Result
}
