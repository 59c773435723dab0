// Package statetest provides helper functions to create tests using Hive state.
package statetest

import (
	"github.com/hiverules/hive/internal/hex"
	. "github.com/hiverules/hive/internal/state"
)

// PieceOnBoard represents a position and ownership of a piece in the board.
type PieceOnBoard struct {
	Pos   hex.Axial
	Color Color
	Bug   Bug
}

// BuildState from a collection of pieces. Pieces listed on the same position are stacked in
// the order given. It returns the ids of the pieces, in the same order as the layout.
func BuildState(layout []PieceOnBoard) (s *GameState, ids []PieceID) {
	s = New()
	ids = make([]PieceID, len(layout))
	for ii, p := range layout {
		ids[ii] = s.AddPiece(p.Bug, p.Color, p.Pos)
	}
	return
}
