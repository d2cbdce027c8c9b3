package handhistory

import "fmt"

// Positions returns the ordered position labels for a table of n seats,
// starting at the button and walking the blinds and then the field in seat
// order. Works for any table size; heads-up uses the convention that the
// button posts the small blind.
func Positions(n int) []string {
	switch {
	case n <= 1:
		return []string{"Button"}
	case n == 2:
		return []string{"Button", "Big Blind"}
	case n == 3:
		return []string{"Button", "Small Blind", "Big Blind"}
	}

	labels := make([]string, 0, n)
	labels = append(labels, "Button", "Small Blind", "Big Blind", "UTG")
	for i := 4; i < n-2; i++ {
		labels = append(labels, fmt.Sprintf("UTG+%d", i-3))
	}
	if n >= 6 {
		labels = append(labels, "Hijack")
	}
	if n >= 5 {
		labels = append(labels, "Cutoff")
	}
	return labels
}
