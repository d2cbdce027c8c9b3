package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureHand = `Poker Hand #F1: Hold'em No Limit ($0.10/$0.25) - 2024/01/15 20:11:45
Table 'Rush 12' 6-max Seat #1 is the button
Seat 1: Hero ($31.40 in chips)
Seat 2: villain ($25.00 in chips)
Hero: posts small blind $0.10
villain: posts big blind $0.25
*** HOLE CARDS ***
Dealt to Hero [Ah Kh]
Hero: raises $0.50 to $0.75
villain: folds
Uncalled bet $0.50 returned to Hero
Hero: collected $0.50
*** SUMMARY ***
Total pot $0.50
`

func TestLoadHands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hands.txt")
	require.NoError(t, os.WriteFile(path, []byte(fixtureHand+"\n"+fixtureHand), 0o644))

	hands, err := loadHands(path, log.New(io.Discard))
	require.NoError(t, err)
	require.Len(t, hands, 2)
	assert.Equal(t, "F1", hands[0].HandID)
	assert.Len(t, hands[0].Players, 2)
}

func TestLoadHandsMissingFile(t *testing.T) {
	_, err := loadHands(filepath.Join(t.TempDir(), "absent.txt"), log.New(io.Discard))
	assert.Error(t, err)
}

func TestLoadHandsEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(path, []byte("nothing resembling a hand\n"), 0o644))

	_, err := loadHands(path, log.New(io.Discard))
	assert.ErrorContains(t, err, "no hands found")
}

func TestToTOMLHand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hands.txt")
	require.NoError(t, os.WriteFile(path, []byte(fixtureHand), 0o644))

	hands, err := loadHands(path, log.New(io.Discard))
	require.NoError(t, err)

	th := toTOMLHand(hands[0])
	assert.Equal(t, "F1", th.HandID)
	assert.Equal(t, "2024-01-15 20:11:45", th.Date)
	assert.Equal(t, 1, th.ButtonSeat)
	require.Len(t, th.Players, 2)
	assert.Equal(t, []string{"Ah", "Kh"}, th.Players[0].Cards)
	assert.Empty(t, th.Players[1].Cards)
	assert.NotEmpty(t, th.Actions)
	assert.Equal(t, "preflop Hero posts small blind $0.10", th.Actions[0])
}
