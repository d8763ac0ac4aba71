package monitor

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/cafwatch/internal/domain"
	"github.com/hamed0406/cafwatch/internal/marker"
	"github.com/hamed0406/cafwatch/internal/notify"
	"github.com/hamed0406/cafwatch/internal/probe"
)

// MarkerWriter persists the success marker.
type MarkerWriter func(ctx context.Context, path string, at time.Time) error

type Monitor struct {
	Logger      *zap.Logger
	Checker     probe.Checker
	Notifier    notify.Notifier
	Target      string
	MarkerPath  string
	WriteMarker MarkerWriter
	Now         func() time.Time
}

func NewMonitor(logger *zap.Logger, checker probe.Checker, notifier notify.Notifier, markerPath string) *Monitor {
	if logger == nil {
		logger = zap.NewNop()
	}
	if markerPath == "" {
		markerPath = marker.DefaultPath
	}
	return &Monitor{
		Logger:      logger,
		Checker:     checker,
		Notifier:    notifier,
		Target:      domain.TargetURL,
		MarkerPath:  markerPath,
		WriteMarker: marker.Write,
		Now:         time.Now,
	}
}

// Run performs one check and, if the site is back, one notification.
// The returned error is only set for failures outside the check/notify
// taxonomy (the marker write); the state is still meaningful in that case.
func (m *Monitor) Run(ctx context.Context) (domain.State, error) {
	started := m.Now()
	m.Logger.Info(fmt.Sprintf("[%s] 🔍 Vérification GitHub Actions de %s...", domain.FormatTimestamp(started), domain.SiteName),
		zap.String("url", m.Target))

	res := m.Checker.Check(ctx, m.Target)
	if !res.Accessible() {
		m.Logger.Info("⏳ Site toujours en maintenance", zap.String("outcome", string(res.Outcome)))
		return domain.StateStillWaiting, nil
	}

	m.Logger.Info("🎉 SITE ACCESSIBLE ! Envoi de la notification...")
	sent := m.Notifier.Send(ctx, notify.NewPayload(m.Now()))
	if !sent.OK() {
		m.Logger.Error("❌ Échec de l'envoi de la notification", zap.String("outcome", string(sent.Outcome)))
		return domain.StateNotifyFailed, nil
	}

	m.Logger.Info("✅ Mission accomplie ! Notification envoyée.")
	if err := m.WriteMarker(ctx, m.MarkerPath, started); err != nil {
		return domain.StateNotified, fmt.Errorf("write marker %s: %w", m.MarkerPath, err)
	}
	return domain.StateNotified, nil
}
