package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/cardsharp/handreplay/internal/handhistory"
)

// ExportCmd re-emits parsed hands as TOML records.
type ExportCmd struct {
	File   string `arg:"" name:"file" help:"Hand history file" type:"existingfile"`
	Output string `short:"o" help:"Output file (defaults to stdout)"`
	Debug  bool   `help:"Enable debug logging"`
}

type tomlPlayer struct {
	Seat     int      `toml:"seat"`
	Name     string   `toml:"name"`
	Stack    float64  `toml:"stack"`
	Position string   `toml:"position"`
	Cards    []string `toml:"cards,omitempty"`
}

type tomlHand struct {
	HandID      string       `toml:"hand_id"`
	Date        string       `toml:"date,omitempty"`
	Table       string       `toml:"table,omitempty"`
	Stakes      string       `toml:"stakes,omitempty"`
	ButtonSeat  int          `toml:"button_seat"`
	FinalPot    float64      `toml:"final_pot"`
	Rake        float64      `toml:"rake,omitempty"`
	Jackpot     float64      `toml:"jackpot,omitempty"`
	Winner      string       `toml:"winner,omitempty"`
	WinningHand string       `toml:"winning_hand,omitempty"`
	Board       []string     `toml:"board,omitempty"`
	Actions     []string     `toml:"actions"`
	Players     []tomlPlayer `toml:"players"`
}

type tomlExport struct {
	Hands []tomlHand `toml:"hand"`
}

func (cmd ExportCmd) Run() error {
	logger := newLogger(cmd.Debug)
	hands, err := loadHands(cmd.File, logger)
	if err != nil {
		return err
	}

	export := tomlExport{Hands: make([]tomlHand, 0, len(hands))}
	for _, hand := range hands {
		export.Hands = append(export.Hands, toTOMLHand(hand))
	}

	out := os.Stdout
	if cmd.Output != "" {
		f, err := os.Create(cmd.Output)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	return toml.NewEncoder(out).Encode(export)
}

func toTOMLHand(hand *handhistory.HandReplay) tomlHand {
	th := tomlHand{
		HandID:      hand.HandID,
		Table:       hand.TableName,
		Stakes:      hand.Stakes,
		ButtonSeat:  hand.ButtonSeat,
		FinalPot:    hand.FinalPot,
		Rake:        hand.Rake,
		Jackpot:     hand.Jackpot,
		Winner:      hand.Winner,
		WinningHand: hand.WinningHand,
		Board:       hand.BoardCards,
	}
	if !hand.Timestamp.IsZero() {
		th.Date = hand.Timestamp.Format("2006-01-02 15:04:05")
	}
	for _, action := range hand.Actions {
		th.Actions = append(th.Actions, fmt.Sprintf("%s %s %s", action.Street, action.Player, action.Description))
	}
	for _, p := range hand.Players {
		tp := tomlPlayer{
			Seat:     p.Seat,
			Name:     p.Name,
			Stack:    p.Stack,
			Position: p.Position,
		}
		if p.CardsVisible {
			tp.Cards = p.HoleCards
		}
		th.Players = append(th.Players, tp)
	}
	return th
}
