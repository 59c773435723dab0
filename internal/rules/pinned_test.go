package rules_test

import (
	"testing"

	"github.com/hiverules/hive/internal/generics"
	. "github.com/hiverules/hive/internal/rules"
	. "github.com/hiverules/hive/internal/state"
	. "github.com/hiverules/hive/internal/state/statetest"
	"github.com/stretchr/testify/assert"
)

func TestPinnedCells(t *testing.T) {
	s := New()
	assert.Empty(t, PinnedCells(s))
	s.AddPiece(Queen, White, ax(0, 0))
	assert.Empty(t, PinnedCells(s))

	// A line: only the inner pieces are pinned.
	s, _ = BuildState([]PieceOnBoard{
		{ax(0, 0), White, Queen},
		{ax(1, 0), Black, Queen},
		{ax(2, 0), White, Ant},
		{ax(3, 0), White, Ant},
	})
	assert.Equal(t, generics.SetWith(ax(1, 0), ax(2, 0)), PinnedCells(s))

	// A stacked cell stays occupied when its top piece leaves.
	s.AddPiece(Beetle, Black, ax(1, 0))
	assert.Equal(t, generics.SetWith(ax(2, 0)), PinnedCells(s))

	// A ring has no pinned pieces, but a tail attached to it does.
	s = New()
	for _, cell := range ax(0, 0).Neighbors() {
		s.AddPiece(Ant, White, cell)
	}
	assert.Empty(t, PinnedCells(s))
	s.AddPiece(Spider, Black, ax(2, 0))
	s.AddPiece(Spider, Black, ax(3, 0))
	assert.Equal(t, generics.SetWith(ax(1, 0), ax(2, 0)), PinnedCells(s))
}
