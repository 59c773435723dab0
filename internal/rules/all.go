package rules

import (
	"context"
	"runtime"
	"slices"

	"github.com/hiverules/hive/internal/state"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"
)

// AllLegalMoves lists the moves of every piece of the given color that can move: pieces
// on the board and at the top of their stack. Moves are ordered by piece id.
//
// Pieces are processed in parallel, and s must not be changed until it returns. If ctx is
// cancelled it returns ctx.Err().
func AllLegalMoves(ctx context.Context, s *state.GameState, color state.Color) ([]LegalMove, error) {
	var movable []state.PieceID
	for _, stack := range s.Stacks() {
		p, _ := s.Piece(stack[len(stack)-1])
		if p.Color == color {
			movable = append(movable, p.ID)
		}
	}
	// Map iteration order is random: sort to have a deterministic output.
	slices.Sort(movable)

	perPiece := make([][]LegalMove, len(movable))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for ii, id := range movable {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			perPiece[ii] = LegalMovesForPiece(s, id)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	moves := lo.Flatten(perPiece)
	klog.V(1).Infof("AllLegalMoves(%s): %d pieces, %d moves", color, len(movable), len(moves))
	return moves, nil
}
