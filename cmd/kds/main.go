package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/viper"

	"github.com/fastfood-uz/pos/internal/config"
	"github.com/fastfood-uz/pos/internal/display/audio"
	"github.com/fastfood-uz/pos/internal/display/client"
	"github.com/fastfood-uz/pos/internal/display/kitchen"
)

func main() {
	config.MustInit()

	baseURL := viper.GetString("display.api_url")
	if baseURL == "" {
		baseURL = "http://localhost:3000"
	}

	pollInterval := viper.GetDuration("display.poll_interval")
	if pollInterval == 0 {
		pollInterval = 3 * time.Second
	}

	soundEnabled := viper.GetBool("display.sound_enabled")

	var notifier audio.Notifier = audio.NopNotifier{}
	if soundEnabled {
		notifier = audio.NewExecNotifier()
	}

	board := kitchen.NewBoard(
		kitchen.WithClient(client.NewAPIClient(baseURL, viper.GetDuration("display.request_timeout"))),
		kitchen.WithNotifier(notifier),
		kitchen.WithBranch(viper.GetInt64("display.branch_id")),
		kitchen.WithPollInterval(pollInterval),
		kitchen.WithSound(soundEnabled),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-stop
		cancel()
	}()

	if err := board.Run(ctx, os.Stdout); err != nil {
		slog.Error("Kitchen board error", "error", err)
		os.Exit(1)
	}
}
