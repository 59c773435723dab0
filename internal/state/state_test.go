package state_test

import (
	"testing"

	"github.com/hiverules/hive/internal/hex"
	. "github.com/hiverules/hive/internal/state"
	. "github.com/hiverules/hive/internal/state/statetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddPiece(t *testing.T) {
	s := New()
	q := s.AddPiece(Queen, White, hex.Axial{})
	b := s.AddPiece(Beetle, Black, hex.Axial{}, 1)
	assert.Equal(t, PieceID(0), q)
	assert.Equal(t, PieceID(1), b)
	assert.Equal(t, []PieceID{q, b}, s.StackAt(hex.Axial{}))
	assert.Equal(t, 1, s.StackHeight(hex.Axial{}))
	assert.Equal(t, -1, s.StackHeight(hex.Axial{Q: 1}))
	assert.True(t, s.Occupied(hex.Axial{}))
	assert.False(t, s.Occupied(hex.Axial{Q: 1}))
	top, found := s.Top(hex.Axial{})
	require.True(t, found)
	assert.Equal(t, b, top)
	require.NoError(t, s.CheckConsistency())

	// Insert at the bottom pushes everything else up.
	a := s.AddPiece(Ant, White, hex.Axial{}, 0)
	assert.Equal(t, []PieceID{a, q, b}, s.StackAt(hex.Axial{}))
	pieces := s.Pieces()
	assert.Equal(t, 0, pieces[a].Height)
	assert.Equal(t, 1, pieces[q].Height)
	assert.Equal(t, 2, pieces[b].Height)
	require.NoError(t, s.CheckConsistency())

	// Out of range heights go to the top.
	g := s.AddPiece(Grasshopper, Black, hex.Axial{}, 10)
	sp := s.AddPiece(Spider, Black, hex.Axial{}, -3)
	assert.Equal(t, []PieceID{a, q, b, g, sp}, s.StackAt(hex.Axial{}))
	require.NoError(t, s.CheckConsistency())
	assert.Equal(t, 5, s.NumPieces())
	assert.Equal(t, 1, s.NumOccupied())

	// Without a height the piece goes on top, not to the bottom.
	onTop := s.AddPiece(Beetle, White, hex.Axial{})
	assert.Equal(t, []PieceID{a, q, b, g, sp, onTop}, s.StackAt(hex.Axial{}))
	p, _ := s.Piece(onTop)
	assert.Equal(t, 5, p.Height)
	require.NoError(t, s.CheckConsistency())
}

func TestAddPieceIncreasingHeights(t *testing.T) {
	s := New()
	cell := hex.Axial{Q: 2, R: -1}
	var ids []PieceID
	for height := range 4 {
		ids = append(ids, s.AddPiece(Beetle, Color(height%2), cell, height))
		require.NoError(t, s.CheckConsistency())
	}
	assert.Equal(t, ids, s.StackAt(cell))
	for ii, id := range ids {
		p, found := s.Piece(id)
		require.True(t, found)
		assert.Equal(t, ii, p.Height)
		assert.True(t, p.OnBoard)
		assert.Equal(t, cell, p.Pos)
	}
}

func TestMovePiece(t *testing.T) {
	s, ids := BuildState([]PieceOnBoard{
		{hex.Axial{Q: 0, R: 0}, White, Queen},
		{hex.Axial{Q: 1, R: 0}, White, Ant},
		{hex.Axial{Q: 0, R: 0}, Black, Beetle},
		{hex.Axial{Q: 0, R: 1}, Black, Spider},
	})
	queen, ant, beetle, spider := ids[0], ids[1], ids[2], ids[3]

	// Beetle leaves the queen and climbs on the ant.
	require.NoError(t, s.MovePiece(beetle, hex.Axial{Q: 1, R: 0}, true))
	assert.Equal(t, []PieceID{queen}, s.StackAt(hex.Axial{}))
	assert.Equal(t, []PieceID{ant, beetle}, s.StackAt(hex.Axial{Q: 1}))
	p, _ := s.Piece(beetle)
	assert.Equal(t, 1, p.Height)
	assert.Equal(t, hex.Axial{Q: 1}, p.Pos)
	require.NoError(t, s.CheckConsistency())

	// Spider slides away: its old cell must disappear from the board.
	dest := hex.Axial{Q: -1, R: 1}
	require.NoError(t, s.MovePiece(spider, dest, true))
	assert.False(t, s.Occupied(hex.Axial{Q: 0, R: 1}))
	_, found := s.Board()[hex.Axial{Q: 0, R: 1}]
	assert.False(t, found)
	assert.Equal(t, []PieceID{spider}, s.Board()[dest])
	require.NoError(t, s.CheckConsistency())

	// Without stacking the piece goes to the bottom.
	require.NoError(t, s.MovePiece(queen, hex.Axial{Q: 1}, false))
	assert.Equal(t, []PieceID{queen, ant, beetle}, s.StackAt(hex.Axial{Q: 1}))
	assert.False(t, s.Occupied(hex.Axial{}))
	require.NoError(t, s.CheckConsistency())
}

func TestMovePieceErrors(t *testing.T) {
	s := New()
	q := s.AddPiece(Queen, White, hex.Axial{})
	reserve := s.AddReserve(Ant, Black)
	before := s.Board()

	require.Error(t, s.MovePiece(-1, hex.Axial{Q: 1}, true))
	require.Error(t, s.MovePiece(PieceID(s.NumPieces()), hex.Axial{Q: 1}, true))
	require.Error(t, s.MovePiece(reserve, hex.Axial{Q: 1}, true))

	// Nothing was changed.
	assert.Equal(t, before, s.Board())
	p, _ := s.Piece(q)
	assert.Equal(t, hex.Axial{}, p.Pos)
	require.NoError(t, s.CheckConsistency())
}

func TestPlacePiece(t *testing.T) {
	s := New()
	q := s.AddPiece(Queen, White, hex.Axial{})
	a := s.AddReserve(Ant, Black)
	p, _ := s.Piece(a)
	assert.False(t, p.OnBoard)
	require.NoError(t, s.CheckConsistency())

	require.NoError(t, s.PlacePiece(a, hex.Axial{Q: 1}))
	p, _ = s.Piece(a)
	assert.True(t, p.OnBoard)
	assert.Equal(t, hex.Axial{Q: 1}, p.Pos)
	assert.Equal(t, 0, p.Height)

	require.Error(t, s.PlacePiece(a, hex.Axial{Q: 2}))
	require.Error(t, s.PlacePiece(q, hex.Axial{Q: 2}))
	require.Error(t, s.PlacePiece(7, hex.Axial{Q: 2}))
	require.NoError(t, s.CheckConsistency())
}

func TestClone(t *testing.T) {
	s, ids := BuildState([]PieceOnBoard{
		{hex.Axial{Q: 0, R: 0}, White, Queen},
		{hex.Axial{Q: 1, R: 0}, Black, Queen},
	})
	c := s.Clone()
	require.NoError(t, c.MovePiece(ids[1], hex.Axial{Q: 0, R: 0}, true))
	assert.Equal(t, []PieceID{ids[0]}, s.StackAt(hex.Axial{}))
	assert.Equal(t, []PieceID{ids[0], ids[1]}, c.StackAt(hex.Axial{}))
	require.NoError(t, s.CheckConsistency())
	require.NoError(t, c.CheckConsistency())
}

func TestStrings(t *testing.T) {
	assert.Equal(t, "Grasshopper", Grasshopper.String())
	assert.Equal(t, "G", Grasshopper.Letter())
	assert.Equal(t, Ant, LetterToBug["A"])
	assert.Equal(t, "Black", Black.String())
	assert.Equal(t, White, Black.Opponent())
	assert.Equal(t, "wQ#0@(0, 0)", Piece{ID: 0, Bug: Queen, Color: White, OnBoard: true}.String())
}
