// Package cli implements a command-line viewer and driver for the rules engine.
//
// It renders the hive as text and accepts one command per line:
//
//	q r               select the top piece at (q, r) and list its legal moves
//	q r q2 r2         move the top piece at (q, r) to (q2, r2)
//	<w|b><bug> q r    place a new piece, e.g. "wA 1 0"
//	moves <w|b>       list all legal moves of a color
//	quit
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"maps"
	"os"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/chewxy/math32"
	"github.com/gomlx/exceptions"
	"github.com/hiverules/hive/internal/generics"
	"github.com/hiverules/hive/internal/hex"
	"github.com/hiverules/hive/internal/rules"
	"github.com/hiverules/hive/internal/state"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"golang.org/x/term"
	"k8s.io/klog/v2"
)

// DefaultCellWidth is the number of characters used by each column of the rendered board.
const DefaultCellWidth = 8

// UI drives a GameState from a text stream.
type UI struct {
	s                  *state.GameState
	color, clearScreen bool
	cellWidth          int
	reader             *bufio.Reader
	out                io.Writer
	over               rules.GameOver
}

var (
	selectParser    = regexp.MustCompile(`^\s*(-?\d+)[\s,]+(-?\d+)[\s,]*$`)
	moveParser      = regexp.MustCompile(`^\s*(-?\d+)[\s,]+(-?\d+)[\s,]+(-?\d+)[\s,]+(-?\d+)[\s,]*$`)
	placementParser = regexp.MustCompile(`^\s*([wbWB])([abgqsABGQS])[\s,]+(-?\d+)[\s,]+(-?\d+)[\s,]*$`)
	movesParser     = regexp.MustCompile(`^\s*moves\s+([wbWB])\s*$`)
	quitParser      = regexp.MustCompile(`^\s*(quit|exit)\s*$`)
)

// New creates a UI that reads commands from in and writes to out.
// Colors and screen clearing start disabled.
func New(s *state.GameState, in io.Reader, out io.Writer) *UI {
	return &UI{
		s:         s,
		cellWidth: DefaultCellWidth,
		reader:    bufio.NewReader(in),
		out:       out,
		over:      rules.EvaluateGameOver(s),
	}
}

// WithColor enables ANSI colors. It returns the UI itself, so calls can be chained.
func (ui *UI) WithColor(color bool) *UI {
	ui.color = color
	return ui
}

// WithClearScreen makes the UI clear the terminal before printing the board.
func (ui *UI) WithClearScreen(clearScreen bool) *UI {
	ui.clearScreen = clearScreen
	return ui
}

// WithCellWidth sets the number of characters per column. Values too small to hold a
// stack of two pieces are ignored.
func (ui *UI) WithCellWidth(width int) *UI {
	if width >= 6 {
		ui.cellWidth = width
	}
	return ui
}

// State returns the state being driven.
func (ui *UI) State() *state.GameState {
	return ui.s
}

// Outcome returns the game-over evaluation after the last change.
func (ui *UI) Outcome() rules.GameOver {
	return ui.over
}

// Run reads and executes commands until the game is over, the input ends, or "quit".
// Invalid commands are reported and don't stop the loop.
func (ui *UI) Run(ctx context.Context) error {
	for {
		ui.Print()
		if ui.over.IsOver() {
			ui.PrintOutcome()
			return nil
		}
		ui.printf("\n> ")
		line, err := ui.reader.ReadString('\n')
		if err != nil && (err != io.EOF || strings.TrimSpace(line) == "") {
			if err == io.EOF {
				ui.printf("\n")
				return nil
			}
			return errors.Wrap(err, "failed to read command")
		}
		quit, err := ui.Execute(ctx, line)
		if err != nil {
			if ctx.Err() != nil {
				return err
			}
			ui.printf("    * %s\n", err)
			continue
		}
		if quit {
			return nil
		}
	}
}

// Execute runs one command line. It returns quit=true for the "quit" command.
func (ui *UI) Execute(ctx context.Context, line string) (quit bool, err error) {
	line = strings.TrimSpace(line)
	klog.V(1).Infof("command %q", line)
	switch {
	case line == "":
		return false, nil
	case quitParser.MatchString(line):
		return true, nil
	}
	if matches := movesParser.FindStringSubmatch(line); matches != nil {
		return false, ui.listAllMoves(ctx, state.LetterToColor[strings.ToLower(matches[1])])
	}
	if matches := placementParser.FindStringSubmatch(line); matches != nil {
		cell, err := parseCell(matches[3], matches[4])
		if err != nil {
			return false, err
		}
		color := state.LetterToColor[strings.ToLower(matches[1])]
		bug := state.LetterToBug[strings.ToUpper(matches[2])]
		return false, ui.place(bug, color, cell)
	}
	if matches := moveParser.FindStringSubmatch(line); matches != nil {
		from, err := parseCell(matches[1], matches[2])
		if err != nil {
			return false, err
		}
		to, err := parseCell(matches[3], matches[4])
		if err != nil {
			return false, err
		}
		return false, ui.move(from, to)
	}
	if matches := selectParser.FindStringSubmatch(line); matches != nil {
		cell, err := parseCell(matches[1], matches[2])
		if err != nil {
			return false, err
		}
		return false, ui.selectCell(cell)
	}
	return false, errors.Errorf("failed to parse your input %q, please try again", line)
}

func parseCell(q, r string) (hex.Axial, error) {
	qi, err := strconv.Atoi(q)
	if err != nil {
		return hex.Axial{}, errors.Wrapf(err, "failed to parse coordinate %q", q)
	}
	ri, err := strconv.Atoi(r)
	if err != nil {
		return hex.Axial{}, errors.Wrapf(err, "failed to parse coordinate %q", r)
	}
	return hex.Axial{Q: qi, R: ri}, nil
}

// legalMoves converts a panic from the rules engine into an error.
func (ui *UI) legalMoves(id state.PieceID) (moves []rules.LegalMove, err error) {
	err = exceptions.TryCatch[error](func() {
		moves = rules.LegalMovesForPiece(ui.s, id)
	})
	return
}

func (ui *UI) topPiece(cell hex.Axial) (state.Piece, error) {
	id, found := ui.s.Top(cell)
	if !found {
		return state.Piece{}, errors.Errorf("there is no piece at %s", cell)
	}
	p, _ := ui.s.Piece(id)
	return p, nil
}

func (ui *UI) selectCell(cell hex.Axial) error {
	p, err := ui.topPiece(cell)
	if err != nil {
		return err
	}
	moves, err := ui.legalMoves(p.ID)
	if err != nil {
		return err
	}
	ui.printf("%s %s at %s", p.Color, p.Bug, cell)
	if len(moves) == 0 {
		if ui.pinned().Has(cell) {
			ui.printf(" can't move: it holds the hive together.\n")
		} else {
			ui.printf(" can't move.\n")
		}
		return nil
	}
	ui.printf(" can move to: %s\n", formatCells(destinations(moves)))
	ui.printf("    Example: type '%d %d %d %d' to move it to %s\n",
		cell.Q, cell.R, moves[0].To.Q, moves[0].To.R, moves[0].To)
	return nil
}

func (ui *UI) move(from, to hex.Axial) error {
	p, err := ui.topPiece(from)
	if err != nil {
		return err
	}
	moves, err := ui.legalMoves(p.ID)
	if err != nil {
		return err
	}
	m, found := lo.Find(moves, func(m rules.LegalMove) bool { return m.To == to })
	if !found {
		return errors.Errorf("moving %s %s from %s to %s is not valid", p.Color, p.Bug, from, to)
	}
	if err = ui.s.MovePiece(p.ID, to, true); err != nil {
		return errors.WithMessagef(err, "failed to move %s", p)
	}
	ui.printf("%s %s: %s -> %s (%s)\n", p.Color, p.Bug, from, to, m.Kind)
	ui.over = rules.EvaluateGameOver(ui.s)
	return nil
}

func (ui *UI) place(bug state.Bug, color state.Color, cell hex.Axial) error {
	if ui.s.Occupied(cell) {
		return errors.Errorf("cell %s is already occupied", cell)
	}
	if ui.s.NumOccupied() > 0 {
		touches := false
		for _, neighbor := range cell.Neighbors() {
			touches = touches || ui.s.Occupied(neighbor)
		}
		if !touches {
			return errors.Errorf("placing %s %s in %s would not touch the hive", color, bug, cell)
		}
	}
	id := ui.s.AddReserve(bug, color)
	if err := ui.s.PlacePiece(id, cell); err != nil {
		return errors.WithMessagef(err, "failed to place %s %s", color, bug)
	}
	ui.printf("%s %s placed at %s\n", color, bug, cell)
	ui.over = rules.EvaluateGameOver(ui.s)
	return nil
}

func (ui *UI) listAllMoves(ctx context.Context, color state.Color) error {
	moves, err := rules.AllLegalMoves(ctx, ui.s, color)
	if err != nil {
		return errors.WithMessagef(err, "failed to list moves of %s", color)
	}
	if len(moves) == 0 {
		ui.printf("%s has no legal moves.\n", color)
		return nil
	}
	perPiece := lo.GroupBy(moves, func(m rules.LegalMove) state.PieceID { return m.PieceID })
	ids := lo.Keys(perPiece)
	slices.Sort(ids)
	ui.printf("%s has %d legal moves:\n", color, len(moves))
	for _, id := range ids {
		p, _ := ui.s.Piece(id)
		ui.printf("  - %s at %s: %s\n", p.Bug, p.Pos, formatCells(destinations(perPiece[id])))
	}
	return nil
}

func destinations(moves []rules.LegalMove) []hex.Axial {
	cells := lo.Map(moves, func(m rules.LegalMove, _ int) hex.Axial { return m.To })
	slices.SortFunc(cells, hex.Compare)
	return cells
}

func formatCells(cells []hex.Axial) string {
	return strings.Join(lo.Map(cells, func(c hex.Axial, _ int) string { return c.String() }), ", ")
}

func (ui *UI) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(ui.out, format, args...)
}

func (ui *UI) pinned() generics.Set[hex.Axial] {
	return rules.PinnedCells(ui.s)
}

// Print renders the board, with one cell of margin around the hive.
func (ui *UI) Print() {
	if ui.clearScreen {
		ui.printf("\033c")
	}
	numOnBoard := len(lo.Filter(ui.s.Pieces(), func(p state.Piece, _ int) bool { return p.OnBoard }))
	ui.printf("\n%d pieces in %d cells\n\n", numOnBoard, ui.s.NumOccupied())
	ui.printCentered(ui.renderBoard())
}

// PrintOutcome prints the game-over banner, or nothing if the game is not over.
func (ui *UI) PrintOutcome() {
	var msg string
	switch ui.over {
	case rules.NotOver:
		return
	case rules.Draw:
		msg = "*** DRAW: both queens are surrounded! ***"
	case rules.WhiteWins:
		msg = "*** WHITE WINS!! Congratulations! ***"
	case rules.BlackWins:
		msg = "*** BLACK WINS!! Congratulations! ***"
	}
	style := lipgloss.NewStyle().Padding(1, 2)
	if ui.color {
		style = style.Background(lipgloss.Color("13")).Foreground(lipgloss.Color("0")).Bold(true)
	}
	ui.printf("\n")
	ui.printCentered(style.Render(msg))
	ui.printf("\n")
}

// renderBoard returns two text lines per row of cells: the coordinates and the stack.
// Pinned pieces are marked with a "*".
func (ui *UI) renderBoard() string {
	cells := make(map[hex.Axial]bool)
	for cell := range ui.s.OccupiedCells() {
		cells[cell] = true
		for _, neighbor := range cell.Neighbors() {
			cells[neighbor] = true
		}
	}
	if len(cells) == 0 {
		cells[hex.Origin] = true
	}
	pinned := ui.pinned()

	// Adjacent cells on a row are cellWidth characters apart.
	hexSize := float32(ui.cellWidth) / math32.Sqrt(3)
	sorted := slices.SortedFunc(maps.Keys(cells), hex.Compare)
	minX := hex.ToPixel(sorted[0], hexSize).X
	for _, cell := range sorted {
		minX = min(minX, hex.ToPixel(cell, hexSize).X)
	}
	column := func(cell hex.Axial) int {
		return int(math32.Floor(hex.ToPixel(cell, hexSize).X - minX + 0.5))
	}

	var sb strings.Builder
	for rowStart := 0; rowStart < len(sorted); {
		rowEnd := rowStart
		for rowEnd < len(sorted) && sorted[rowEnd].R == sorted[rowStart].R {
			rowEnd++
		}
		row := sorted[rowStart:rowEnd]
		ui.renderLine(&sb, row, column, func(cell hex.Axial) string {
			return fmt.Sprintf("%d,%d", cell.Q, cell.R)
		})
		ui.renderLine(&sb, row, column, func(cell hex.Axial) string {
			label := ui.stackLabel(cell)
			if pinned.Has(cell) {
				label += "*"
			}
			return label
		})
		sb.WriteString("\n")
		rowStart = rowEnd
	}
	return sb.String()
}

// renderLine writes the labels of the row, each centered on its column.
func (ui *UI) renderLine(sb *strings.Builder, row []hex.Axial, column func(hex.Axial) int, label func(hex.Axial) string) {
	width := 0
	for _, cell := range row {
		text := ui.styleCell(cell, centerString(label(cell), ui.cellWidth))
		if pad := column(cell) - width; pad > 0 {
			sb.WriteString(strings.Repeat(" ", pad))
			width += pad
		}
		sb.WriteString(text)
		width += lipgloss.Width(text)
	}
	sb.WriteString("\n")
}

// stackLabel lists the pieces of the cell bottom to top, e.g. "wQ+bB", or "." if empty.
func (ui *UI) stackLabel(cell hex.Axial) string {
	stack := ui.s.StackAt(cell)
	if len(stack) == 0 {
		return "."
	}
	return strings.Join(lo.Map(stack, func(id state.PieceID, _ int) string {
		p, _ := ui.s.Piece(id)
		return p.Color.Letter() + p.Bug.Letter()
	}), "+")
}

var (
	whiteStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("15"))
	blackStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("8"))
)

// styleCell colors the text by the owner of the top piece of the cell.
func (ui *UI) styleCell(cell hex.Axial, text string) string {
	if !ui.color {
		return text
	}
	id, found := ui.s.Top(cell)
	if !found {
		return text
	}
	p, _ := ui.s.Piece(id)
	style := whiteStyle
	if p.Color == state.Black {
		style = blackStyle
	}
	return style.Bold(p.Bug == state.Queen).Render(text)
}

func centerString(s string, fit int) string {
	if len(s) >= fit {
		return s
	}
	marginLeft := (fit - len(s)) / 2
	marginRight := fit - len(s) - marginLeft
	return strings.Repeat(" ", marginLeft) + s + strings.Repeat(" ", marginRight)
}

// terminalWidth returns 0 if the output is not a terminal.
func (ui *UI) terminalWidth() int {
	f, ok := ui.out.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		klog.V(2).Infof("failed to get terminal size: %v", err)
		return 0
	}
	return width
}

func (ui *UI) printCentered(block string) {
	lines := strings.Split(strings.TrimRight(block, "\n"), "\n")
	blockWidth := 0
	for _, line := range lines {
		blockWidth = max(blockWidth, lipgloss.Width(line))
	}
	indent := max((ui.terminalWidth()-blockWidth)/2, 0)
	for _, line := range lines {
		if len(line) == 0 {
			ui.printf("\n")
			continue
		}
		ui.printf("%s%s\n", strings.Repeat(" ", indent), line)
	}
}
