package probe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func serve(status int, body string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
}

func TestHTTPChecker_StatusOK_NoKeywords(t *testing.T) {
	s := serve(200, "<html><body>Billetterie ouverte</body></html>")
	defer s.Close()

	chk := NewHTTPChecker(2*time.Second, nil)
	out := chk.Check(context.Background(), s.URL)
	if !out.Accessible() {
		t.Fatalf("want accessible, got %+v", out)
	}
	if out.StatusCode != 200 {
		t.Fatalf("want status 200, got %d", out.StatusCode)
	}
	if !strings.HasPrefix(out.Message, "200") {
		t.Fatalf("want message to start with 200, got %q", out.Message)
	}
	if out.LatencyMS < 0 {
		t.Fatalf("latency should be >= 0, got %f", out.LatencyMS)
	}
}

func TestHTTPChecker_KeywordsMeanMaintenance(t *testing.T) {
	for _, kw := range MaintenanceKeywords {
		// upper-case the keyword to check matching is case-insensitive
		s := serve(200, "<h1>"+strings.ToUpper(kw)+"</h1>")
		out := NewHTTPChecker(2*time.Second, nil).Check(context.Background(), s.URL)
		s.Close()

		if out.Accessible() {
			t.Fatalf("keyword %q: want not accessible, got %+v", kw, out)
		}
		if out.Outcome != OutcomeMaintenance {
			t.Fatalf("keyword %q: want maintenance outcome, got %s", kw, out.Outcome)
		}
	}
}

func TestHTTPChecker_Non200IgnoresBody(t *testing.T) {
	for _, code := range []int{201, 301, 404, 500, 503} {
		s := serve(code, "all good, nothing to see")
		chk := NewHTTPChecker(2*time.Second, nil)
		chk.Client.CheckRedirect = func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }
		out := chk.Check(context.Background(), s.URL)
		s.Close()

		if out.Accessible() {
			t.Fatalf("status %d: want not accessible", code)
		}
		if out.Outcome != OutcomeUnexpectedStatus || out.StatusCode != code {
			t.Fatalf("status %d: unexpected result %+v", code, out)
		}
	}
}

func TestHTTPChecker_TimeoutSetsStatusZero(t *testing.T) {
	// Server sleeps longer than client timeout
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(200)
	}))
	defer s.Close()

	chk := NewHTTPChecker(50*time.Millisecond, nil)
	out := chk.Check(context.Background(), s.URL)
	if out.Accessible() {
		t.Fatalf("want failure due to timeout, got %+v", out)
	}
	if out.Outcome != OutcomeTimeout {
		t.Fatalf("want timeout outcome, got %s", out.Outcome)
	}
	if out.StatusCode != 0 {
		t.Fatalf("want status 0 on transport error, got %d", out.StatusCode)
	}
	if out.Message == "" {
		t.Fatalf("want non-empty error message")
	}
}

func TestHTTPChecker_ConnectionRefused(t *testing.T) {
	s := serve(200, "ok")
	url := s.URL
	s.Close()

	out := NewHTTPChecker(time.Second, nil).Check(context.Background(), url)
	if out.Outcome != OutcomeConnectionError {
		t.Fatalf("want connection error, got %+v", out)
	}
}

func TestHTTPChecker_InvalidURL(t *testing.T) {
	out := NewHTTPChecker(time.Second, nil).Check(context.Background(), "://nope")
	if out.Outcome != OutcomeInvalidRequest || out.Accessible() {
		t.Fatalf("want invalid request, got %+v", out)
	}
}

func TestHTTPChecker_LogsMatchedKeyword(t *testing.T) {
	s := serve(200, "Temporarily Unavailable")
	defer s.Close()

	core, logs := observer.New(zapcore.InfoLevel)
	chk := NewHTTPChecker(time.Second, zap.New(core))
	chk.Check(context.Background(), s.URL)

	entries := logs.FilterField(zap.String("keyword", "temporarily unavailable")).All()
	if len(entries) != 1 {
		t.Fatalf("want one maintenance log line, got %d", len(entries))
	}
}

func TestHTTPChecker_ScansOnlyBodyPrefix(t *testing.T) {
	old := maxBodyBytes
	maxBodyBytes = 16
	defer func() { maxBodyBytes = old }()

	inPrefix := serve(200, "maintenance "+strings.Repeat("x", 64))
	defer inPrefix.Close()
	pastCap := serve(200, strings.Repeat("x", 64)+" maintenance")
	defer pastCap.Close()

	chk := NewHTTPChecker(2*time.Second, nil)
	if out := chk.Check(context.Background(), inPrefix.URL); out.Outcome != OutcomeMaintenance {
		t.Fatalf("keyword inside the cap should match, got %+v", out)
	}
	if out := chk.Check(context.Background(), pastCap.URL); out.Outcome != OutcomeAccessible {
		t.Fatalf("bytes past the cap should not be read, got %+v", out)
	}
}

func TestHTTPChecker_LogsFrenchDiagnostics(t *testing.T) {
	maint := serve(200, "Site en maintenance")
	defer maint.Close()
	down := serve(503, "")
	defer down.Close()

	core, logs := observer.New(zapcore.InfoLevel)
	chk := NewHTTPChecker(time.Second, zap.New(core))
	chk.Check(context.Background(), maint.URL)
	chk.Check(context.Background(), down.URL)

	if n := logs.FilterMessage("🔧 Site toujours en maintenance").Len(); n != 1 {
		t.Fatalf("want one maintenance line, got %d", n)
	}
	if n := logs.FilterMessage("❌ Statut HTTP: 503").Len(); n != 1 {
		t.Fatalf("want one status line, got %d", n)
	}
}
