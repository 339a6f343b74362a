package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	gameplay "github.com/ryanshappa/GamePlay-sub000"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	err := gameplay.Run(ctx, os.Args, os.Getenv, os.Stdin, os.Stdout, os.Stderr)
	if err != nil {
		slog.Error("run failed", "err", err)
		defer os.Exit(1) // to have context cancel() called before Exit
		return
	}
	slog.Info("exited with no error")
}
