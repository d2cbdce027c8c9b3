package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/errgroup"

	"github.com/cardsharp/handreplay/internal/handhistory"
)

var (
	handIDStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	winnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700"))
)

// ParseCmd parses one or more hand history files and prints a summary.
type ParseCmd struct {
	Files []string `arg:"" name:"files" help:"Hand history files" type:"existingfile"`
	JSON  bool     `help:"Emit parsed hands as JSON"`
	Debug bool     `help:"Enable debug logging"`
}

func (cmd ParseCmd) Run() error {
	logger := newLogger(cmd.Debug)

	results := make([][]*handhistory.HandReplay, len(cmd.Files))
	var g errgroup.Group
	for i, path := range cmd.Files {
		g.Go(func() error {
			hands, err := loadHands(path, logger)
			if err != nil {
				return err
			}
			results[i] = hands
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if cmd.JSON {
		var all []*handhistory.HandReplay
		for _, hands := range results {
			all = append(all, hands...)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(all)
	}

	for i, hands := range results {
		if len(cmd.Files) > 1 {
			fmt.Printf("%s:\n", cmd.Files[i])
		}
		for _, hand := range hands {
			line := fmt.Sprintf("%s  %s %s  players=%d actions=%d pot=$%.2f",
				handIDStyle.Render(hand.HandID),
				hand.TableName,
				hand.Stakes,
				len(hand.Players),
				len(hand.Actions),
				hand.FinalPot)
			if hand.Winner != "" {
				line += "  " + winnerStyle.Render("won by "+hand.Winner)
			}
			fmt.Println(line)
		}
	}
	return nil
}
