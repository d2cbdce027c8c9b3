package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/cardsharp/handreplay/cmd/handreplay/shared"
	"github.com/cardsharp/handreplay/internal/handhistory"
	"github.com/cardsharp/handreplay/internal/server"
)

// ServeCmd runs the websocket state server over one or more parsed files.
type ServeCmd struct {
	Files      []string `arg:"" name:"files" help:"Hand history files" type:"existingfile"`
	Structured bool     `help:"Emit structured (JSON) logs"`
	Debug      bool     `help:"Enable debug logging"`
}

func (cmd ServeCmd) Run() error {
	logger := shared.NewLogger(cmd.Debug, cmd.Structured)

	var hands []*handhistory.HandReplay
	parseLogger := newLogger(cmd.Debug)
	for _, path := range cmd.Files {
		fileHands, err := loadHands(path, parseLogger)
		if err != nil {
			return err
		}
		hands = append(hands, fileHands...)
	}

	cfg, err := server.LoadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return server.New(hands, cfg, logger).ListenAndServe(ctx)
}
