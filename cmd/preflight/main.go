// cmd/preflight/main.go
package main

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"

	"github.com/hamed0406/cafwatch/internal/config"
	"github.com/hamed0406/cafwatch/internal/marker"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintln(os.Stderr, "✖", err)
		os.Exit(1)
	}
	os.Exit(preflight(cfg, marker.DefaultPath, os.Stdout, os.Stderr))
}

func preflight(cfg config.Config, markerPath string, stdout, stderr io.Writer) int {
	fail := func(msg string) int {
		fmt.Fprintln(stderr, "✖", msg)
		return 1
	}
	warn := func(msg string) { fmt.Fprintln(stderr, "⚠", msg) }
	ok := func(msg string) { fmt.Fprintln(stdout, "✔", msg) }

	if cfg.WebhookURL == "" {
		return fail("IFTTT_WEBHOOK_URL is empty (notification step will fail with exit 1).")
	}
	u, err := url.Parse(cfg.WebhookURL)
	if err != nil || (u.Scheme != "https" && u.Scheme != "http") || u.Host == "" {
		return fail("IFTTT_WEBHOOK_URL is not an absolute http(s) URL.")
	}
	if u.Hostname() != "maker.ifttt.com" {
		warn("IFTTT_WEBHOOK_URL host is " + u.Hostname() + ", expected maker.ifttt.com")
	}
	ok("IFTTT_WEBHOOK_URL present")

	if cfg.LogDir == "" {
		warn("LOG_DIR empty, diagnostics go to the console only.")
	} else if err := os.MkdirAll(cfg.LogDir, 0o755); err != nil {
		warn("LOG_DIR not writable: " + err.Error())
	} else {
		ok("LOG_DIR=" + cfg.LogDir)
	}

	if content, found, err := marker.Read(markerPath); err != nil {
		warn("cannot read " + markerPath + ": " + err.Error())
	} else if found {
		abs, _ := filepath.Abs(markerPath)
		warn(abs + " exists (" + content + "); the site was already reported.")
	}

	ok("preflight passed")
	return 0
}
