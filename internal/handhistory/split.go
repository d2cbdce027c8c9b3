package handhistory

import "strings"

// handOpener is the literal marker that begins every hand record.
const handOpener = "Poker Hand #"

// SplitHands cuts a blob containing multiple hand records into individual
// hand texts, splitting on the record opener. Leading text before the first
// opener is dropped; empty segments are skipped.
func SplitHands(blob string) []string {
	var hands []string
	for {
		start := strings.Index(blob, handOpener)
		if start < 0 {
			return hands
		}
		rest := blob[start+len(handOpener):]
		end := strings.Index(rest, handOpener)
		if end < 0 {
			if segment := strings.TrimSpace(blob[start:]); segment != "" {
				hands = append(hands, segment)
			}
			return hands
		}
		segment := strings.TrimSpace(blob[start : start+len(handOpener)+end])
		if segment != "" {
			hands = append(hands, segment)
		}
		blob = blob[start+len(handOpener)+end:]
	}
}
