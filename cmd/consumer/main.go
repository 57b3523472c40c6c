package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/Gunvolt24/activity-consumer/config"
	"github.com/Gunvolt24/activity-consumer/internal/app"
)

func main() {
	os.Exit(run())
}

// run — отдельная функция, чтобы defer-ы отработали до os.Exit.
// Код выхода: 0 — штатная остановка по сигналу, 1 — фатальная ошибка
// (недоступный брокер после исчерпания бюджета попыток и т.п.).
func run() int {
	_ = godotenv.Load(".env.local")

	readFromBeginning := flag.Bool("read-from-beginning", false,
		"start reading from the earliest offset (overrides AUTO_OFFSET_RESET)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return 1
	}
	if *readFromBeginning {
		cfg.AutoOffsetReset = config.OffsetEarliest
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	application, cleanup, err := app.Bootstrap(ctx, &cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bootstrap: %v\n", err)
		return 1
	}
	defer cleanup()

	// Первый SIGINT/SIGTERM — кооперативная остановка через отмену
	// контекста; второй — немедленный выход, если остановка зависла.
	sig := make(chan os.Signal, 2)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		s := <-sig
		application.Logger.Infof(ctx, "signal %s received, shutting down", s)
		cancel()

		s = <-sig
		application.Logger.Warnf(ctx, "second signal %s received, forcing exit", s)
		os.Exit(1)
	}()

	if err := application.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		application.Logger.Errorf(ctx, "service stopped with error: %v", err)
		return 1
	}
	return 0
}
