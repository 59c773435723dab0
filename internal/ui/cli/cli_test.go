package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/hiverules/hive/internal/hex"
	"github.com/hiverules/hive/internal/rules"
	"github.com/hiverules/hive/internal/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLayout(t *testing.T) {
	s, err := ParseLayout(DefaultLayout)
	require.NoError(t, err)
	assert.Equal(t, 5, s.NumPieces())
	assert.Equal(t, 4, s.NumOccupied())
	assert.Equal(t, []state.PieceID{0, 2}, s.StackAt(hex.Axial{}))
	p, _ := s.Piece(2)
	assert.Equal(t, state.Black, p.Color)
	assert.Equal(t, state.Beetle, p.Bug)
	assert.Equal(t, 1, p.Height)
	p, _ = s.Piece(4)
	assert.Equal(t, hex.Axial{Q: -1, R: 1}, p.Pos)

	s, err = ParseLayout("")
	require.NoError(t, err)
	assert.Equal(t, 0, s.NumPieces())

	for _, layout := range []string{"xQ@0,0", "wQ@0", "wZ@1,1", "wQ 0,0"} {
		_, err = ParseLayout(layout)
		assert.Errorf(t, err, "layout %q should fail", layout)
	}
}

func runScript(t *testing.T, layout, script string) (*UI, string) {
	t.Helper()
	s, err := ParseLayout(layout)
	require.NoError(t, err)
	var out bytes.Buffer
	ui := New(s, strings.NewReader(script), &out)
	require.NoError(t, ui.Run(context.Background()))
	return ui, out.String()
}

func TestSession(t *testing.T) {
	ui, out := runScript(t, DefaultLayout, strings.Join([]string{
		"1 0",
		"0 0 1 0",
		"5 5",
		"bQ 5 5",
		"bQ 2 0",
		"0 1 5 5",
		"hello",
		"quit",
		"bA 3 0", // Never executed.
	}, "\n"))
	assert.Contains(t, out, "White Ant at (1, 0) can move to:")
	assert.Contains(t, out, "Black Beetle: (0, 0) -> (1, 0) (Climb)")
	assert.Contains(t, out, "there is no piece at (5, 5)")
	assert.Contains(t, out, "would not touch the hive")
	assert.Contains(t, out, "Black Queen placed at (2, 0)")
	assert.Contains(t, out, "moving Black Spider from (0, 1) to (5, 5) is not valid")
	assert.Contains(t, out, `failed to parse your input "hello"`)

	s := ui.State()
	assert.Equal(t, []state.PieceID{1, 2}, s.StackAt(hex.Axial{Q: 1}))
	assert.Equal(t, []state.PieceID{0}, s.StackAt(hex.Axial{}))
	assert.Equal(t, 6, s.NumPieces(), "the last placement was after quit")
	assert.Equal(t, rules.NotOver, ui.Outcome())
	require.NoError(t, s.CheckConsistency())
}

func TestListAllMoves(t *testing.T) {
	_, out := runScript(t, DefaultLayout, "moves w\nmoves b\n")
	assert.Contains(t, out, "White has")
	assert.Contains(t, out, "Ant at (1, 0): ")
	assert.Contains(t, out, "Grasshopper at (-1, 1): (1, -1), (1, 1)")
	assert.NotContains(t, out, "Queen at", "the white queen is covered by the beetle")
	assert.Contains(t, out, "Black has")
	assert.Contains(t, out, "Beetle at (0, 0): ")
}

func TestGameOver(t *testing.T) {
	layout := "wQ@0,0 bA@1,-1 bA@0,-1 bS@-1,0 bG@-1,1 bB@0,1"
	ui, out := runScript(t, layout, "bA 1 0\nquit\n")
	assert.Equal(t, rules.BlackWins, ui.Outcome())
	assert.Contains(t, out, "BLACK WINS")

	// An already finished game stops right away.
	ui, out = runScript(t, layout+" bA@1,0", "")
	assert.Equal(t, rules.BlackWins, ui.Outcome())
	assert.Contains(t, out, "BLACK WINS")
}

func TestRenderBoard(t *testing.T) {
	s, err := ParseLayout(DefaultLayout)
	require.NoError(t, err)
	ui := New(s, strings.NewReader(""), &bytes.Buffer{})
	board := ui.renderBoard()
	assert.Contains(t, board, "wQ+bB")
	assert.Contains(t, board, "0,0")
	assert.Contains(t, board, "-1,1")
	assert.NotContains(t, board, "*")

	// Rows are shifted by half a column.
	lines := strings.Split(board, "\n")
	var row0, row1 string
	for _, line := range lines {
		if strings.Contains(line, "-1,0") {
			row0 = line
		}
		if strings.Contains(line, "-1,1") {
			row1 = line
		}
	}
	require.NotEmpty(t, row0)
	require.NotEmpty(t, row1)
	assert.Equal(t, DefaultCellWidth/2,
		strings.Index(row0, " 0,0 ")-strings.Index(row1, " -1,1 "))

	s, err = ParseLayout("wQ@0,0 wA@1,0 bS@2,0")
	require.NoError(t, err)
	board = New(s, strings.NewReader(""), &bytes.Buffer{}).renderBoard()
	assert.Contains(t, board, "wA*")
	assert.NotContains(t, board, "wQ*")
}
