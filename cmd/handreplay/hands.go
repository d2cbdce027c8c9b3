package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/cardsharp/handreplay/internal/handhistory"
)

// loadHands reads a hand history file and parses every hand in it. Hands
// that fail to parse are logged and skipped; a file with no parseable
// hands is an error.
func loadHands(path string, logger *log.Logger) ([]*handhistory.HandReplay, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	segments := handhistory.SplitHands(string(data))
	if len(segments) == 0 {
		return nil, fmt.Errorf("no hands found in %s", path)
	}

	parser := handhistory.NewParser(logger)
	hands := make([]*handhistory.HandReplay, 0, len(segments))
	for i, segment := range segments {
		hand, err := parser.Parse(segment)
		if err != nil {
			logger.Warn("skipping unparseable hand", "file", path, "hand", i+1, "error", err)
			continue
		}
		hands = append(hands, hand)
	}
	if len(hands) == 0 {
		return nil, fmt.Errorf("no parseable hands in %s", path)
	}
	return hands, nil
}

func newLogger(debug bool) *log.Logger {
	opts := log.Options{ReportTimestamp: false}
	logger := log.NewWithOptions(os.Stderr, opts)
	if debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}
