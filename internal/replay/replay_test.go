package replay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardsharp/handreplay/internal/handhistory"
)

// Parses a minimal two-player hand and folds it all the way to the end,
// checking the parsed timeline and the reconstructed state line up.
func TestStateAtOnParsedHand(t *testing.T) {
	text := `Poker Hand #RT1: Hold'em No Limit ($1.00/$2.00) - 2024/02/01 19:00:00
Table 'Rush 3' 6-max Seat #1 is the button
Seat 1: Hero ($100.00 in chips)
Seat 2: villain ($100.00 in chips)
Hero: posts small blind $1.00
villain: posts big blind $2.00
*** HOLE CARDS ***
Dealt to Hero [Ah Kh]
Hero: raises $4.00 to $6.00
villain: calls $4.00
*** FLOP *** [2h 7d Kc]
villain: checks
`
	hand, err := handhistory.Parse(text)
	require.NoError(t, err)
	require.Len(t, hand.Actions, 5)

	state, err := StateAt(hand, len(hand.Actions))
	require.NoError(t, err)

	var invested float64
	for _, p := range state.Players {
		invested += p.TotalInvested
	}
	assert.InDelta(t, invested, state.Pot, 1e-9)
	assert.InDelta(t, 11.0, state.Pot, 1e-9)

	assert.Equal(t, handhistory.StreetFlop, state.Street)
	assert.Equal(t, []string{"2h", "7d", "Kc"}, state.BoardCards)
	assert.Nil(t, state.CurrentAction)

	hero := state.Players[0]
	require.Equal(t, "Hero", hero.Name)
	assert.InDelta(t, 5.0, hero.TotalInvested, 1e-9)
	assert.InDelta(t, 95.0, hero.Stack, 1e-9)

	villain := state.Players[1]
	require.Equal(t, "villain", villain.Name)
	assert.InDelta(t, 6.0, villain.TotalInvested, 1e-9)
	assert.InDelta(t, 94.0, villain.Stack, 1e-9)
}
