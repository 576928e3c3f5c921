// Command bot runs the blood pressure diary Telegram bot.
package main

import (
	"context"
	"fmt"
	"os"

	// Zone database for hosts without /usr/share/zoneinfo.
	_ "time/tzdata"

	"go.uber.org/zap"

	"github.com/saymealien/bloodpressurebot/internal/app"
	"github.com/saymealien/bloodpressurebot/internal/config"
	"github.com/saymealien/bloodpressurebot/internal/logger"
)

func main() {
	os.Exit(run())
}

// run returns 2 for setup errors reported before a logger exists and 1 for
// failures after that.
func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		return 2
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogEncoding)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init error: %v\n", err)
		return 2
	}
	defer func() { _ = log.Sync() }()

	bot, err := app.New(cfg, log)
	if err != nil {
		log.Error("app init failed", zap.Error(err))
		return 1
	}
	if err := bot.Run(context.Background()); err != nil {
		log.Error("app run failed", zap.Error(err))
		return 1
	}
	log.Info("bye")
	return 0
}
