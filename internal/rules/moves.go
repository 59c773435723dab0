// Package rules implements the movement rules of Hive: which destinations each piece can
// reach, whether the hive stays connected, and whether a match is over.
//
// All functions only read the state.GameState.
package rules

import (
	"fmt"
	"slices"

	"github.com/gomlx/exceptions"
	"github.com/hiverules/hive/internal/generics"
	"github.com/hiverules/hive/internal/hex"
	"github.com/hiverules/hive/internal/state"
	"k8s.io/klog/v2"
)

// MoveKind describes how a piece reaches its destination.
type MoveKind uint8

const (
	Place MoveKind = iota
	Slide
	Climb
	Jump
)

var moveKindNames = []string{"Place", "Slide", "Climb", "Jump"}

func (k MoveKind) String() string {
	if int(k) >= len(moveKindNames) {
		return fmt.Sprintf("MoveKind(%d)", k)
	}
	return moveKindNames[k]
}

const (
	// spiderSteps is the exact number of steps a spider walks.
	spiderSteps = 3

	// Steps reported for a grasshopper or an ant: the distance travelled is not a number
	// of single slides.
	noSteps = 0
)

// LegalMove is one destination a piece can move to.
type LegalMove struct {
	PieceID  state.PieceID
	From, To hex.Axial
	Kind     MoveKind

	// Steps is 1 for Queen and Beetle, 3 for Spider and 0 for Grasshopper and Ant.
	Steps int
}

func (m LegalMove) String() string {
	return fmt.Sprintf("#%d %s %s->%s", m.PieceID, m.Kind, m.From, m.To)
}

// LegalMovesForPiece lists the moves the piece can make. Pieces not on the board, or
// covered by another piece, have no moves. Only the top piece of a stack moves: a beetle
// with height > 0 moves because it is on top, not because of its height.
//
// The list has no repeated destinations. It panics if id is not a valid piece: callers
// must validate ids against the state.
func LegalMovesForPiece(s *state.GameState, id state.PieceID) []LegalMove {
	p, found := s.Piece(id)
	if !found {
		exceptions.Panicf("LegalMovesForPiece: invalid piece id %d, only %d pieces exist", id, s.NumPieces())
	}
	if !p.OnBoard || p.Height != s.StackHeight(p.Pos) {
		return nil
	}

	g := &generator{s: s, piece: p}
	switch p.Bug {
	case state.Queen:
		g.queenMoves()
	case state.Beetle:
		g.beetleMoves()
	case state.Grasshopper:
		g.grasshopperMoves()
	case state.Ant:
		g.antMoves()
	case state.Spider:
		g.spiderMoves()
	default:
		exceptions.Panicf("LegalMovesForPiece: piece %s has unknown bug %d", p, p.Bug)
	}
	klog.V(2).Infof("LegalMovesForPiece(%s): %d moves", p, len(g.moves))
	return g.moves
}

// generator collects the moves of one piece.
type generator struct {
	s     *state.GameState
	piece state.Piece
	moves []LegalMove
}

// emit appends the move if the hive stays connected after it.
func (g *generator) emit(to hex.Axial, kind MoveKind, steps int) {
	if !KeepsHiveConnectedAfter(g.s, g.piece.ID, to) {
		klog.V(3).Infof("%s to %s rejected: it would break the hive", g.piece, to)
		return
	}
	g.moves = append(g.moves, LegalMove{
		PieceID: g.piece.ID,
		From:    g.piece.Pos,
		To:      to,
		Kind:    kind,
		Steps:   steps,
	})
}

// queenMoves: one step to an empty neighbour through an open corridor.
func (g *generator) queenMoves() {
	origin := g.piece.Pos
	for _, to := range origin.Neighbors() {
		if g.s.Occupied(to) || !CanSlideBetween(g.s, origin, to) {
			continue
		}
		g.emit(to, Slide, 1)
	}
}

// beetleMoves: one step to any neighbour. Climbing onto an occupied cell ignores the
// corridor; stepping to an empty cell needs an open corridor unless the beetle is on top
// of another piece.
func (g *generator) beetleMoves() {
	origin := g.piece.Pos
	elevated := g.piece.Height > 0
	for _, to := range origin.Neighbors() {
		if g.s.Occupied(to) {
			g.emit(to, Climb, 1)
			continue
		}
		if elevated || CanSlideBetween(g.s, origin, to) {
			g.emit(to, Slide, 1)
		}
	}
}

// grasshopperMoves: in each direction, jump over a non-empty line of occupied cells and
// land on the first empty one.
func (g *generator) grasshopperMoves() {
	origin := g.piece.Pos
	for direction := range hex.NumDirections {
		to := origin.Neighbor(direction)
		jumped := false
		for g.s.Occupied(to) {
			jumped = true
			to = to.Neighbor(direction)
		}
		if jumped {
			g.emit(to, Jump, noSteps)
		}
	}
}

// antMoves: BFS over the perimeter of the hive, any number of slides.
func (g *generator) antMoves() {
	origin := g.piece.Pos
	v := view{s: g.s, origin: origin, startEmpty: true}
	visited := generics.SetWith(origin)
	var reached []hex.Axial
	queue := []hex.Axial{origin}
	for len(queue) > 0 {
		from := queue[0]
		queue = queue[1:]
		for _, to := range from.Neighbors() {
			if visited.Has(to) || !v.canCrawl(from, to) {
				continue
			}
			visited.Insert(to)
			reached = append(reached, to)
			queue = append(queue, to)
		}
	}
	for _, to := range reached {
		g.emit(to, Slide, noSteps)
	}
}

// spiderMoves: exactly 3 slides around the perimeter, never visiting the same cell twice
// in one path. Destinations reached by more than one path are listed once.
func (g *generator) spiderMoves() {
	origin := g.piece.Pos
	v := view{s: g.s, origin: origin, startEmpty: true}
	seen := generics.MakeSet[hex.Axial]()
	var path [spiderSteps + 1]hex.Axial
	path[0] = origin
	v.spiderWalk(path, 0, func(to hex.Axial) {
		if seen.Has(to) {
			return
		}
		seen.Insert(to)
		g.emit(to, Slide, spiderSteps)
	})
}

// spiderWalk extends the path (path[0:depth+1] are the cells visited so far) by one step
// in every possible way, and calls found with the last cell of every path of length
// spiderSteps. The path is passed by value, so sibling branches don't see each other's
// steps.
func (v view) spiderWalk(path [spiderSteps + 1]hex.Axial, depth int, found func(hex.Axial)) {
	from := path[depth]
	if depth == spiderSteps {
		found(from)
		return
	}
	for _, to := range from.Neighbors() {
		if slices.Contains(path[:depth+1], to) || !v.canCrawl(from, to) {
			continue
		}
		path[depth+1] = to
		v.spiderWalk(path, depth+1, found)
	}
}
