package domain

import (
	"fmt"
	"strings"
)

// GameMode selects how a game is generated.
type GameMode string

const (
	// ModeBingo shuffles the songs and generates tickets.
	ModeBingo GameMode = "bingo"
	// ModeQuiz keeps the pool order and plays a bounded countdown of songs.
	ModeQuiz GameMode = "quiz"
	// ModeClip extracts clips from source files. It is not a game mode.
	ModeClip GameMode = "clip"
)

// ParseGameMode converts a configuration value into a GameMode.
func ParseGameMode(s string) (GameMode, error) {
	switch mode := GameMode(strings.ToLower(strings.TrimSpace(s))); mode {
	case ModeBingo, ModeQuiz, ModeClip:
		return mode, nil
	case "":
		return ModeBingo, nil
	default:
		return "", fmt.Errorf("unknown game mode %q", s)
	}
}
