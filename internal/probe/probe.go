package probe

import "context"

// Outcome classifies a single availability check.
type Outcome string

const (
	OutcomeAccessible       Outcome = "accessible"
	OutcomeMaintenance      Outcome = "maintenance"
	OutcomeUnexpectedStatus Outcome = "unexpected_status"
	OutcomeTimeout          Outcome = "timeout"
	OutcomeConnectionError  Outcome = "connection_error"
	OutcomeInvalidRequest   Outcome = "invalid_request"
)

// CheckResult is the unified result of a single probe.
//
// Fields:
//   - StatusCode: HTTP status code when available; 0 for transport errors.
//   - Keyword: the maintenance indicator that matched, only for OutcomeMaintenance.
type CheckResult struct {
	Outcome    Outcome
	StatusCode int
	Keyword    string
	LatencyMS  float64
	Message    string
}

// Accessible reports whether the site answered 200 without any maintenance marker.
// Every other outcome counts as "still waiting".
func (r CheckResult) Accessible() bool {
	return r.Outcome == OutcomeAccessible
}

// Checker performs a single check for a given target URL.
type Checker interface {
	Check(ctx context.Context, target string) CheckResult
}
