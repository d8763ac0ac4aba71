package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const logFile = "cafwatch.log"

// NewLogger writes human-readable lines to console and, when logDir is set,
// JSON records to a rotating file in logDir.
func NewLogger(logDir string, console io.Writer) (*zap.Logger, error) {
	cores := []zapcore.Core{consoleCore(console)}

	if logDir != "" {
		if err := os.MkdirAll(logDir, 0o755); err != nil {
			return nil, err
		}
		w := zapcore.AddSync(&lumberjack.Logger{
			Filename:   filepath.Join(logDir, logFile),
			MaxSize:    10, // MB
			MaxBackups: 5,
			MaxAge:     14, // days
			Compress:   true,
		})
		cfg := zap.NewProductionEncoderConfig()
		cfg.TimeKey = "ts"
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(cfg), w, zap.InfoLevel))
	}
	return zap.New(zapcore.NewTee(cores...)), nil
}

func consoleCore(w io.Writer) zapcore.Core {
	cfg := zapcore.EncoderConfig{
		MessageKey:     "msg",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
	if isTerminal(w) {
		cfg.LevelKey = "level"
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), zapcore.Lock(zapcore.AddSync(w)), zap.InfoLevel)
	return messageOnly{core}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// messageOnly drops structured fields so console output stays plain text.
// The file core still receives every field.
type messageOnly struct {
	zapcore.Core
}

func (m messageOnly) With([]zapcore.Field) zapcore.Core { return m }

func (m messageOnly) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if m.Enabled(ent.Level) {
		return ce.AddCore(ent, m)
	}
	return ce
}

func (m messageOnly) Write(ent zapcore.Entry, _ []zapcore.Field) error {
	return m.Core.Write(ent, nil)
}
