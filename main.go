package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/egoavara/verify-structure/cmd"
	"github.com/egoavara/verify-structure/internal/config"
	"github.com/egoavara/verify-structure/internal/i18n"
	"github.com/jeandeaual/go-locale"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v; using defaults\n", err)
		cfg = config.NewConfig()
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

	tr, err := i18n.New(getLocale(cfg))
	if err != nil {
		logger.Warn("message catalog unavailable", "error", err)
		tr = nil
	}

	os.Exit(cmd.Execute(tr, logger))
}

// getLocale returns the locale based on config
func getLocale(cfg *config.Config) string {
	if cfg.Locale != config.LocaleAuto {
		return cfg.Locale
	}
	userLocale, err := locale.GetLocale()
	if err != nil || userLocale == "" {
		return "en-US"
	}
	return userLocale
}
