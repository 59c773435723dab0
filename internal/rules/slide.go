package rules

import (
	"github.com/hiverules/hive/internal/hex"
	"github.com/hiverules/hive/internal/state"
)

// CanSlideBetween returns whether a piece can slide from `from` to its neighbour `to`:
// at least one of the two cells flanking the edge between them must be empty, otherwise
// the gap is too narrow for a piece to pass.
//
// It returns false if `to` is not a neighbour of `from`. Occupancy of `from` and `to`
// themselves is not considered.
func CanSlideBetween(s *state.GameState, from, to hex.Axial) bool {
	return view{s: s}.canSlide(from, to)
}

// view is the occupancy of the board as seen by a moving piece. When startEmpty is set,
// the origin of the piece is considered vacant, so the piece doesn't block itself while
// walking around the hive.
type view struct {
	s          *state.GameState
	origin     hex.Axial
	startEmpty bool
}

func (v view) occupied(cell hex.Axial) bool {
	if v.startEmpty && cell == v.origin {
		return false
	}
	return v.s.Occupied(cell)
}

func (v view) canSlide(from, to hex.Axial) bool {
	direction := from.DirectionTo(to)
	if direction < 0 {
		return false
	}
	left := v.occupied(from.Neighbor(direction - 1))
	right := v.occupied(from.Neighbor(direction + 1))
	return !(left && right)
}

// isPerimeter returns whether the cell is empty and touches at least one occupied cell.
func (v view) isPerimeter(cell hex.Axial) bool {
	if v.occupied(cell) {
		return false
	}
	for _, neighbor := range cell.Neighbors() {
		if v.occupied(neighbor) {
			return true
		}
	}
	return false
}

// canCrawl returns whether a ground piece can take one step from `from` to `to` while
// walking around the hive: the target must be an empty perimeter cell, reachable through
// an open corridor.
func (v view) canCrawl(from, to hex.Axial) bool {
	return v.isPerimeter(to) && v.canSlide(from, to)
}
