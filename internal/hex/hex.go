// Package hex implements the axial coordinates of the hexagonal grid the hive lives on.
//
// A cell is addressed by the integer pair (q, r). Each cell has 6 neighbours, reached by
// adding one of the 6 unit offsets returned by Direction. The directions are listed in a
// cyclic order, so Direction(i-1) and Direction(i+1) are the two cells flanking the edge
// between a cell and its neighbour Direction(i).
package hex

import (
	"fmt"
	"iter"

	"github.com/chewxy/math32"
)

// NumDirections is the number of neighbours of each cell.
const NumDirections = 6

// Axial is a cell position in axial coordinates.
type Axial struct {
	Q, R int
}

// Origin is the cell (0, 0).
var Origin = Axial{}

var directions = [NumDirections]Axial{
	{1, 0}, {1, -1}, {0, -1}, {-1, 0}, {-1, 1}, {0, 1},
}

// Direction returns the unit offset to the i-th neighbour.
//
// The index is taken modulo NumDirections, and negative indices wrap around as well, so
// Direction(-1) == Direction(5).
func Direction(i int) Axial {
	return directions[((i%NumDirections)+NumDirections)%NumDirections]
}

// Add returns the component-wise sum of a and b.
func Add(a, b Axial) Axial {
	return Axial{a.Q + b.Q, a.R + b.R}
}

// Neighbor returns the neighbour of a in the given direction.
func (a Axial) Neighbor(direction int) Axial {
	return Add(a, Direction(direction))
}

// Neighbors iterates over the 6 neighbours of a, in direction order.
func (a Axial) Neighbors() iter.Seq2[int, Axial] {
	return func(yield func(int, Axial) bool) {
		for ii, d := range directions {
			if !yield(ii, Add(a, d)) {
				return
			}
		}
	}
}

// DirectionTo returns the direction index that leads from a to b, or -1 if b is not a
// neighbour of a.
func (a Axial) DirectionTo(b Axial) int {
	for ii, d := range directions {
		if Add(a, d) == b {
			return ii
		}
	}
	return -1
}

// IsNeighbor returns whether b is one of the 6 neighbours of a.
func (a Axial) IsNeighbor(b Axial) bool {
	return a.DirectionTo(b) >= 0
}

// Key packs the cell into a single 64-bit value: q in the upper 32 bits, r (as unsigned)
// in the lower 32 bits. Two cells have the same key iff they are equal, as long as both
// coordinates fit in an int32.
func (a Axial) Key() uint64 {
	return uint64(uint32(int32(a.Q)))<<32 | uint64(uint32(int32(a.R)))
}

// FromKey is the inverse of Axial.Key.
func FromKey(key uint64) Axial {
	return Axial{Q: int(int32(uint32(key >> 32))), R: int(int32(uint32(key)))}
}

// String returns a text representation of the cell.
func (a Axial) String() string {
	return fmt.Sprintf("(%d, %d)", a.Q, a.R)
}

// Compare orders cells by r first and then q, the order rows are rendered in.
func Compare(a, b Axial) int {
	if a.R != b.R {
		if a.R < b.R {
			return -1
		}
		return 1
	}
	if a.Q != b.Q {
		if a.Q < b.Q {
			return -1
		}
		return 1
	}
	return 0
}

// Pixel is a point on the screen.
type Pixel struct {
	X, Y float32
}

var sqrt3 = math32.Sqrt(3)

// ToPixel maps the center of the cell to screen coordinates, for pointy-topped hexagons
// of the given size (center to corner):
//
//	x = hexSize * (√3·q + √3/2·r)
//	y = hexSize * (3/2·r)
func ToPixel(a Axial, hexSize float32) Pixel {
	q, r := float32(a.Q), float32(a.R)
	return Pixel{
		X: hexSize * (sqrt3*q + sqrt3/2*r),
		Y: hexSize * (1.5 * r),
	}
}
