package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const DefaultNotifyTimeout = 10 * time.Second

// IFTTT posts payloads to a Maker webhook URL.
type IFTTT struct {
	Webhook string
	Client  *http.Client
	Logger  *zap.Logger
}

// NewIFTTT never returns nil; an empty webhook makes every Send report
// OutcomeNotConfigured without touching the network.
func NewIFTTT(webhook string, logger *zap.Logger) *IFTTT {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IFTTT{
		Webhook: webhook,
		Client:  &http.Client{Timeout: DefaultNotifyTimeout},
		Logger:  logger,
	}
}

func (n *IFTTT) Send(ctx context.Context, p Payload) Result {
	res := n.send(ctx, p)
	switch res.Outcome {
	case OutcomeSent:
		n.Logger.Info("✅ Notification IFTTT envoyée avec succès !", zap.Int("status", res.StatusCode))
	case OutcomeNotConfigured:
		n.Logger.Error("❌ Variable d'environnement IFTTT_WEBHOOK_URL non définie")
	case OutcomeUnexpectedStatus:
		n.Logger.Error(fmt.Sprintf("❌ Erreur IFTTT: %d", res.StatusCode), zap.Int("status", res.StatusCode))
	default:
		n.Logger.Error("❌ Erreur lors de l'envoi de la notification: "+res.Err.Error(),
			zap.String("outcome", string(res.Outcome)))
	}
	return res
}

func (n *IFTTT) send(ctx context.Context, p Payload) Result {
	if n == nil || n.Webhook == "" {
		return Result{Outcome: OutcomeNotConfigured, Err: errors.New("webhook url not configured")}
	}
	body, err := json.Marshal(p)
	if err != nil {
		return Result{Outcome: OutcomeInvalidRequest, Err: fmt.Errorf("encode payload: %w", err)}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.Webhook, bytes.NewReader(body))
	if err != nil {
		return Result{Outcome: OutcomeInvalidRequest, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.Client.Do(req)
	if err != nil {
		return Result{Outcome: classifyTransportError(err), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{
			Outcome:    OutcomeUnexpectedStatus,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("webhook returned %s", resp.Status),
		}
	}
	return Result{Outcome: OutcomeSent, StatusCode: resp.StatusCode}
}

func classifyTransportError(err error) Outcome {
	if errors.Is(err, context.DeadlineExceeded) {
		return OutcomeTimeout
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return OutcomeTimeout
	}
	return OutcomeConnectionError
}
