package rules

import (
	"github.com/gomlx/exceptions"
	"github.com/hiverules/hive/internal/generics"
	"github.com/hiverules/hive/internal/hex"
	"github.com/hiverules/hive/internal/state"
)

// KeepsHiveConnectedAfter returns whether the hive, the set of occupied cells, remains one
// connected group after the piece is moved to `to`. The state is not changed.
//
// Only the number of pieces per cell is tracked: the origin loses one piece and `to` gains
// one, regardless of the position of the piece in its stack. For a piece not yet on the
// board only `to` gains a piece, which makes it usable to check placements.
//
// It panics if id is not a valid piece.
func KeepsHiveConnectedAfter(s *state.GameState, id state.PieceID, to hex.Axial) bool {
	p, found := s.Piece(id)
	if !found {
		exceptions.Panicf("KeepsHiveConnectedAfter: invalid piece id %d, only %d pieces exist", id, s.NumPieces())
	}
	if p.OnBoard && p.Pos == to {
		return true
	}

	counts := make(map[uint64]int, s.NumOccupied()+1)
	for cell, stack := range s.Stacks() {
		counts[cell.Key()] = len(stack)
	}
	if p.OnBoard {
		key := p.Pos.Key()
		counts[key]--
		if counts[key] <= 0 {
			delete(counts, key)
		}
	}
	counts[to.Key()]++
	return isConnected(counts)
}

// isConnected runs a BFS over the cells with positive counts, and checks that all of them
// are reached. An empty set is considered connected.
func isConnected(counts map[uint64]int) bool {
	if len(counts) == 0 {
		return true
	}
	var start uint64
	for key := range counts {
		start = key
		break
	}
	visited := generics.SetWith(start)
	queue := []uint64{start}
	for len(queue) > 0 {
		cell := hex.FromKey(queue[0])
		queue = queue[1:]
		for _, neighbor := range cell.Neighbors() {
			key := neighbor.Key()
			if _, occupied := counts[key]; !occupied || visited.Has(key) {
				continue
			}
			visited.Insert(key)
			queue = append(queue, key)
		}
	}
	return len(visited) == len(counts)
}
