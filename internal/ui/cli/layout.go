package cli

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/hiverules/hive/internal/hex"
	"github.com/hiverules/hive/internal/state"
	"github.com/pkg/errors"
)

// DefaultLayout is a small hive with a beetle on top of the white queen.
const DefaultLayout = "wQ@0,0 wA@1,0 bB@0,0 bS@0,1 wG@-1,1"

var layoutEntryParser = regexp.MustCompile(`^([wbWB])([abgqsABGQS])@(-?\d+),(-?\d+)$`)

// ParseLayout creates a GameState from a space separated list of pieces, each given as
// <color><bug>@<q>,<r>, for instance "wQ@0,0 bB@0,0". Pieces on the same cell are stacked
// in the order given.
func ParseLayout(layout string) (*state.GameState, error) {
	s := state.New()
	for _, entry := range strings.Fields(layout) {
		matches := layoutEntryParser.FindStringSubmatch(entry)
		if matches == nil {
			return nil, errors.Errorf("invalid layout entry %q, it should look like \"wQ@0,0\"", entry)
		}
		q, err := strconv.Atoi(matches[3])
		if err != nil {
			return nil, errors.Wrapf(err, "invalid layout entry %q", entry)
		}
		r, err := strconv.Atoi(matches[4])
		if err != nil {
			return nil, errors.Wrapf(err, "invalid layout entry %q", entry)
		}
		color := state.LetterToColor[strings.ToLower(matches[1])]
		bug := state.LetterToBug[strings.ToUpper(matches[2])]
		s.AddPiece(bug, color, hex.Axial{Q: q, R: r})
	}
	if err := s.CheckConsistency(); err != nil {
		return nil, errors.WithMessagef(err, "layout %q", layout)
	}
	return s, nil
}
