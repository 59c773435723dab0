package rules

import (
	"fmt"

	"github.com/hiverules/hive/internal/hex"
	"github.com/hiverules/hive/internal/state"
)

// GameOver is the outcome of a match, as evaluated by EvaluateGameOver.
type GameOver uint8

const (
	NotOver GameOver = iota
	WhiteWins
	BlackWins
	Draw
)

var gameOverNames = []string{"NotOver", "WhiteWins", "BlackWins", "Draw"}

func (g GameOver) String() string {
	if int(g) >= len(gameOverNames) {
		return fmt.Sprintf("GameOver(%d)", g)
	}
	return gameOverNames[g]
}

// IsOver returns whether the match is finished.
func (g GameOver) IsOver() bool {
	return g != NotOver
}

// FindQueen returns the cell of the queen of the given color, if it is on the board.
func FindQueen(s *state.GameState, color state.Color) (cell hex.Axial, found bool) {
	for cell, stack := range s.Stacks() {
		for _, id := range stack {
			p, _ := s.Piece(id)
			if p.Bug == state.Queen && p.Color == color {
				return cell, true
			}
		}
	}
	return hex.Axial{}, false
}

// QueenSurrounded returns whether all 6 neighbours of the queen of the given color are
// occupied, by pieces of any color. A queen not on the board is not surrounded.
func QueenSurrounded(s *state.GameState, color state.Color) bool {
	cell, found := FindQueen(s, color)
	if !found {
		return false
	}
	for _, neighbor := range cell.Neighbors() {
		if !s.Occupied(neighbor) {
			return false
		}
	}
	return true
}

// EvaluateGameOver checks both queens: a player whose queen is surrounded loses, and if both
// are surrounded at the same time it's a draw.
func EvaluateGameOver(s *state.GameState) GameOver {
	white := QueenSurrounded(s, state.White)
	black := QueenSurrounded(s, state.Black)
	switch {
	case white && black:
		return Draw
	case white:
		return BlackWins
	case black:
		return WhiteWins
	}
	return NotOver
}
