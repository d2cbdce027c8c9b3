package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/coder/quartz"

	"github.com/cardsharp/handreplay/internal/config"
	"github.com/cardsharp/handreplay/internal/tui"
)

// ReplayCmd opens one hand in the interactive step-through viewer.
type ReplayCmd struct {
	File   string `arg:"" name:"file" help:"Hand history file" type:"existingfile"`
	Hand   int    `help:"Hand number within the file (1-based)" default:"1"`
	Config string `help:"Path to viewer config" default:"handreplay.hcl"`
	Debug  bool   `help:"Enable debug logging"`
}

func (cmd ReplayCmd) Run() error {
	cfg, err := config.Load(cmd.Config)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := newLogger(cmd.Debug)
	hands, err := loadHands(cmd.File, logger)
	if err != nil {
		return err
	}
	if cmd.Hand < 1 || cmd.Hand > len(hands) {
		return fmt.Errorf("hand %d out of range: %s has %d hands", cmd.Hand, cmd.File, len(hands))
	}

	model := tui.New(hands[cmd.Hand-1], cfg, quartz.NewReal())
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	return err
}
