// Package cards interprets the two-character card strings used in hand
// history text ("Ah", "Td", "9c") for display. The parser and replayer
// keep cards exactly as the log spells them; only presentation code needs
// this package.
package cards

import (
	"fmt"
	"strings"
)

// Suit represents a card suit
type Suit byte

const (
	Spades   Suit = 's'
	Hearts   Suit = 'h'
	Diamonds Suit = 'd'
	Clubs    Suit = 'c'
)

// Symbol returns the suit glyph for display
func (s Suit) Symbol() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	default:
		return "?"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Card represents one playing card as written in a hand history
type Card struct {
	Rank string
	Suit Suit
}

var validRanks = map[string]bool{
	"2": true, "3": true, "4": true, "5": true, "6": true,
	"7": true, "8": true, "9": true, "10": true, "T": true,
	"J": true, "Q": true, "K": true, "A": true,
}

// Parse reads a card string like "Ah" or "10d".
func Parse(s string) (Card, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return Card{}, fmt.Errorf("card %q too short", s)
	}
	suit := Suit(s[len(s)-1])
	rank := s[:len(s)-1]
	if suit != Spades && suit != Hearts && suit != Diamonds && suit != Clubs {
		return Card{}, fmt.Errorf("card %q has unknown suit", s)
	}
	if !validRanks[rank] {
		return Card{}, fmt.Errorf("card %q has unknown rank", s)
	}
	return Card{Rank: rank, Suit: suit}, nil
}

// String returns the display form of a card (e.g. "A♥")
func (c Card) String() string {
	return c.Rank + c.Suit.Symbol()
}

// IsRed returns true if the card is red
func (c Card) IsRed() bool {
	return c.Suit.IsRed()
}

// FormatAll renders a slice of card strings for display, passing through
// anything that fails to parse unchanged.
func FormatAll(raw []string) string {
	parts := make([]string, 0, len(raw))
	for _, s := range raw {
		card, err := Parse(s)
		if err != nil {
			parts = append(parts, s)
			continue
		}
		parts = append(parts, card.String())
	}
	return strings.Join(parts, " ")
}
