// Package state holds the board of a Hive match: the pieces and how they are stacked on
// the cells of the hexagonal grid.
//
// GameState is the single source of truth. The rules package only reads it; the only
// mutations are the explicit AddPiece, PlacePiece and MovePiece calls.
package state

import (
	"fmt"
	"iter"
	"maps"
	"slices"

	"github.com/hiverules/hive/internal/hex"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Bug is the kind of insect of a piece.
type Bug uint8

const (
	Queen Bug = iota
	Beetle
	Spider
	Grasshopper
	Ant
	NumBugs
)

var (
	BugLetters = [NumBugs]string{"Q", "B", "S", "G", "A"}
	BugNames   = [NumBugs]string{"Queen", "Beetle", "Spider", "Grasshopper", "Ant"}

	// LetterToBug is the reverse of BugLetters.
	LetterToBug = map[string]Bug{"Q": Queen, "B": Beetle, "S": Spider, "G": Grasshopper, "A": Ant}
)

// String returns the long bug name.
func (b Bug) String() string {
	if b >= NumBugs {
		return fmt.Sprintf("Bug(%d)", b)
	}
	return BugNames[b]
}

// Letter returns the one-letter abbreviation of the bug.
func (b Bug) Letter() string {
	if b >= NumBugs {
		return "?"
	}
	return BugLetters[b]
}

// Color of the player owning a piece.
type Color uint8

const (
	White Color = iota
	Black
	NumColors
)

// String returns "White" or "Black".
func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	}
	return fmt.Sprintf("Color(%d)", c)
}

// Letter returns "w" or "b".
func (c Color) Letter() string {
	switch c {
	case White:
		return "w"
	case Black:
		return "b"
	}
	return "?"
}

// LetterToColor is the reverse of Color.Letter.
var LetterToColor = map[string]Color{"w": White, "b": Black}

// Opponent returns the other color.
func (c Color) Opponent() Color {
	return 1 - c
}

// PieceID identifies a piece. They are assigned sequentially from 0 when the piece is
// created and never change.
type PieceID int

// Piece is one tile of the game.
type Piece struct {
	ID    PieceID
	Bug   Bug
	Color Color

	// OnBoard is false for pieces still in the player's reserve.
	OnBoard bool

	// Pos and Height are only meaningful if OnBoard. Height is the index in the
	// stack of the cell, 0 being the ground.
	Pos    hex.Axial
	Height int
}

// String returns a short description, e.g. "wQ#0@(0, 0)".
func (p Piece) String() string {
	if !p.OnBoard {
		return fmt.Sprintf("%s%s#%d(reserve)", p.Color.Letter(), p.Bug.Letter(), p.ID)
	}
	return fmt.Sprintf("%s%s#%d@%s", p.Color.Letter(), p.Bug.Letter(), p.ID, p.Pos)
}

// GameState owns the pieces and the board.
//
// The board maps each occupied cell to its stack of pieces, bottom to top. A cell with
// no pieces is never present in the map, and every piece in a stack has its Height equal
// to its index in that stack.
//
// GameState is not safe for concurrent mutation. Concurrent readers should work on a
// Clone.
type GameState struct {
	pieces []Piece
	board  map[hex.Axial][]PieceID
}

// New creates an empty GameState.
func New() *GameState {
	return &GameState{
		board: make(map[hex.Axial][]PieceID),
	}
}

// Clone makes a deep copy of the state.
func (s *GameState) Clone() *GameState {
	newS := &GameState{
		pieces: slices.Clone(s.pieces),
		board:  make(map[hex.Axial][]PieceID, len(s.board)),
	}
	for cell, stack := range s.board {
		newS.board[cell] = slices.Clone(stack)
	}
	return newS
}

// NumPieces returns the number of pieces created so far, on board or not.
func (s *GameState) NumPieces() int {
	return len(s.pieces)
}

// IsValidID returns whether id refers to an existing piece.
func (s *GameState) IsValidID(id PieceID) bool {
	return id >= 0 && int(id) < len(s.pieces)
}

// Piece returns the piece with the given id, and whether it exists.
func (s *GameState) Piece(id PieceID) (Piece, bool) {
	if !s.IsValidID(id) {
		return Piece{}, false
	}
	return s.pieces[id], true
}

// Pieces returns a copy of all pieces, indexed by their PieceID.
func (s *GameState) Pieces() []Piece {
	return slices.Clone(s.pieces)
}

// Board returns a copy of the mapping of occupied cells to their stack of pieces, bottom
// to top.
func (s *GameState) Board() map[hex.Axial][]PieceID {
	board := make(map[hex.Axial][]PieceID, len(s.board))
	for cell, stack := range s.board {
		board[cell] = slices.Clone(stack)
	}
	return board
}

// Stacks iterates over the occupied cells and their stacks without copying. The yielded
// slices must not be modified.
func (s *GameState) Stacks() iter.Seq2[hex.Axial, []PieceID] {
	return maps.All(s.board)
}

// OccupiedCells iterates over the occupied cells, in no particular order.
func (s *GameState) OccupiedCells() iter.Seq[hex.Axial] {
	return maps.Keys(s.board)
}

// NumOccupied returns the number of occupied cells.
func (s *GameState) NumOccupied() int {
	return len(s.board)
}

// StackAt returns a copy of the stack at the cell, bottom to top, or nil if it is empty.
func (s *GameState) StackAt(cell hex.Axial) []PieceID {
	return slices.Clone(s.board[cell])
}

// Occupied returns whether there is at least one piece on the cell.
func (s *GameState) Occupied(cell hex.Axial) bool {
	_, found := s.board[cell]
	return found
}

// StackHeight returns the index of the top piece on the cell, or -1 if the cell is empty.
func (s *GameState) StackHeight(cell hex.Axial) int {
	stack, found := s.board[cell]
	if !found {
		return -1
	}
	return len(stack) - 1
}

// Top returns the piece at the top of the cell's stack, if any.
func (s *GameState) Top(cell hex.Axial) (id PieceID, found bool) {
	stack, found := s.board[cell]
	if !found {
		return -1, false
	}
	return stack[len(stack)-1], true
}

// AddPiece creates a new piece on the board and returns its id.
//
// height is optional: if given, the piece is inserted at that index of the cell's stack,
// pushing up the pieces above it. If not given, or if out of range, the piece goes on top,
// not to the bottom: to insert under an existing stack pass height 0 explicitly.
// No rules are checked.
func (s *GameState) AddPiece(bug Bug, color Color, cell hex.Axial, height ...int) PieceID {
	id := s.newPiece(bug, color)
	at := -1
	if len(height) > 0 {
		at = height[0]
	}
	s.insert(id, cell, at)
	klog.V(3).Infof("AddPiece: %s", s.pieces[id])
	return id
}

// AddReserve creates a new piece off the board and returns its id. Use PlacePiece to put
// it on the board.
func (s *GameState) AddReserve(bug Bug, color Color) PieceID {
	return s.newPiece(bug, color)
}

func (s *GameState) newPiece(bug Bug, color Color) PieceID {
	id := PieceID(len(s.pieces))
	s.pieces = append(s.pieces, Piece{ID: id, Bug: bug, Color: color})
	return id
}

// PlacePiece puts a reserve piece on top of the stack at the given cell.
func (s *GameState) PlacePiece(id PieceID, cell hex.Axial) error {
	if !s.IsValidID(id) {
		return errors.Errorf("PlacePiece: invalid piece id %d, only %d pieces exist", id, len(s.pieces))
	}
	if s.pieces[id].OnBoard {
		return errors.Errorf("PlacePiece: piece %s is already on the board", s.pieces[id])
	}
	s.insert(id, cell, -1)
	return nil
}

// MovePiece moves an on-board piece to the destination cell. If allowStack is true it
// goes on top of whatever is there, otherwise it is forced to the bottom of the stack.
//
// No rules are checked: see rules.LegalMovesForPiece. It fails, without changing anything,
// if the id is invalid or the piece is not on the board.
func (s *GameState) MovePiece(id PieceID, to hex.Axial, allowStack bool) error {
	if !s.IsValidID(id) {
		return errors.Errorf("MovePiece: invalid piece id %d, only %d pieces exist", id, len(s.pieces))
	}
	p := s.pieces[id]
	if !p.OnBoard {
		return errors.Errorf("MovePiece: piece %s is not on the board", p)
	}
	stack := s.board[p.Pos]
	if p.Height < 0 || p.Height >= len(stack) || stack[p.Height] != id {
		return errors.Errorf("MovePiece: piece %s not found in the stack %v at height %d", p, stack, p.Height)
	}

	s.remove(id)
	at := 0
	if allowStack {
		at = -1
	}
	s.insert(id, to, at)
	klog.V(3).Infof("MovePiece: %s -> %s", p, s.pieces[id])
	return nil
}

// insert puts the piece at index `at` of the cell's stack (top if out of range) and
// renumbers the stack.
func (s *GameState) insert(id PieceID, cell hex.Axial, at int) {
	stack := s.board[cell]
	if at < 0 || at > len(stack) {
		at = len(stack)
	}
	stack = slices.Insert(stack, at, id)
	s.board[cell] = stack
	p := &s.pieces[id]
	p.OnBoard = true
	p.Pos = cell
	s.renumber(stack)
}

// remove takes the piece out of its stack, renumbers what is left and drops the cell if
// it became empty. It doesn't change the piece's OnBoard or Pos.
func (s *GameState) remove(id PieceID) {
	p := &s.pieces[id]
	stack := slices.Delete(s.board[p.Pos], p.Height, p.Height+1)
	if len(stack) == 0 {
		delete(s.board, p.Pos)
		return
	}
	s.board[p.Pos] = stack
	s.renumber(stack)
}

// renumber sets the Height of each piece in the stack to its index.
func (s *GameState) renumber(stack []PieceID) {
	for ii, id := range stack {
		s.pieces[id].Height = ii
	}
}

// CheckConsistency verifies the invariants between the pieces and the board. It's meant
// for tests and debugging.
func (s *GameState) CheckConsistency() error {
	seen := make(map[PieceID]bool, len(s.pieces))
	for cell, stack := range s.board {
		if len(stack) == 0 {
			return errors.Errorf("cell %s present in the board with an empty stack", cell)
		}
		for ii, id := range stack {
			if !s.IsValidID(id) {
				return errors.Errorf("cell %s holds invalid piece id %d", cell, id)
			}
			if seen[id] {
				return errors.Errorf("piece %s appears more than once in the board", s.pieces[id])
			}
			seen[id] = true
			p := s.pieces[id]
			if !p.OnBoard || p.Pos != cell || p.Height != ii {
				return errors.Errorf("piece %s at index %d of cell %s has OnBoard=%v, Height=%d",
					p, ii, cell, p.OnBoard, p.Height)
			}
		}
	}
	for _, p := range s.pieces {
		if p.OnBoard && !seen[p.ID] {
			return errors.Errorf("piece %s is on board but not in any stack", p)
		}
	}
	return nil
}
