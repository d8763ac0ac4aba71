package probe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const DefaultCheckTimeout = 15 * time.Second

// maxBodyBytes caps how much of the page is scanned for maintenance keywords.
var maxBodyBytes int64 = 8 << 20

type HTTPChecker struct {
	Client *http.Client
	Logger *zap.Logger
}

func NewHTTPChecker(timeout time.Duration, logger *zap.Logger) *HTTPChecker {
	if timeout <= 0 {
		timeout = DefaultCheckTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPChecker{
		Client: &http.Client{Timeout: timeout},
		Logger: logger,
	}
}

// Check issues one GET against target and classifies the answer. It never
// retries; network failures are reported as a non-accessible outcome.
func (h *HTTPChecker) Check(ctx context.Context, target string) CheckResult {
	res := h.check(ctx, target)
	h.report(target, res)
	return res
}

func (h *HTTPChecker) check(ctx context.Context, target string) CheckResult {
	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return CheckResult{Outcome: OutcomeInvalidRequest, Message: err.Error()}
	}

	resp, err := h.Client.Do(req)
	if err != nil {
		return CheckResult{Outcome: classifyTransportError(err), Message: err.Error(), LatencyMS: sinceMS(start)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return CheckResult{
			Outcome:    OutcomeUnexpectedStatus,
			StatusCode: resp.StatusCode,
			Message:    resp.Status,
			LatencyMS:  sinceMS(start),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	latency := sinceMS(start)
	if err != nil {
		return CheckResult{
			Outcome:    classifyTransportError(err),
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("read body: %v", err),
			LatencyMS:  latency,
		}
	}

	if kw, found := DetectMaintenance(string(body)); found {
		return CheckResult{
			Outcome:    OutcomeMaintenance,
			StatusCode: resp.StatusCode,
			Keyword:    kw,
			Message:    resp.Status,
			LatencyMS:  latency,
		}
	}
	return CheckResult{
		Outcome:    OutcomeAccessible,
		StatusCode: resp.StatusCode,
		Message:    resp.Status,
		LatencyMS:  latency,
	}
}

func (h *HTTPChecker) report(target string, res CheckResult) {
	fields := []zap.Field{
		zap.String("url", target),
		zap.String("outcome", string(res.Outcome)),
		zap.Int("status", res.StatusCode),
		zap.Float64("latency_ms", res.LatencyMS),
	}
	switch res.Outcome {
	case OutcomeAccessible:
		h.Logger.Info("✅ Site accessible ! Plus de page de maintenance détectée", fields...)
	case OutcomeMaintenance:
		h.Logger.Info("🔧 Site toujours en maintenance", append(fields, zap.String("keyword", res.Keyword))...)
	case OutcomeUnexpectedStatus:
		h.Logger.Warn(fmt.Sprintf("❌ Statut HTTP: %d", res.StatusCode), fields...)
	default:
		h.Logger.Warn("❌ Erreur de connexion: "+res.Message, fields...)
	}
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

func sinceMS(start time.Time) float64 {
	return time.Since(start).Seconds() * 1000
}
