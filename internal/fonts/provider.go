// Package fonts selects the font pair used for invoice rendering.
//
// Currency symbols (₹, ¥) need a Unicode TTF; candidates are tried in order
// against known installation paths and the built-in Helvetica core font is
// the terminal fallback. Loading never fails the render.
package fonts

import (
	"os"
	"sync"
)

// BuiltinFamily is the core font that is always available to the PDF
// backend. It carries no currency-glyph guarantee.
const BuiltinFamily = "Helvetica"

// Pair is a regular/bold font selection. When Regular and Bold are nil the
// pair refers to the built-in core family and no font files are embedded.
type Pair struct {
	Family  string
	Regular []byte
	Bold    []byte
}

// Builtin reports whether this pair is the terminal core-font fallback.
func (p Pair) Builtin() bool {
	return len(p.Regular) == 0 || len(p.Bold) == 0
}

// Candidate names a font family and the paths of its regular/bold files.
type Candidate struct {
	Family  string
	Regular string
	Bold    string
}

// candidates is the ordered fallback chain. DejaVu and Liberation cover the
// usual Linux containers; the Arial entry covers Windows dev machines.
var candidates = []Candidate{
	{
		Family:  "DejaVuSans",
		Regular: "/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
		Bold:    "/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
	},
	{
		Family:  "LiberationSans",
		Regular: "/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
		Bold:    "/usr/share/fonts/truetype/liberation/LiberationSans-Bold.ttf",
	},
	{
		Family:  "Arial",
		Regular: "C:/Windows/Fonts/arial.ttf",
		Bold:    "C:/Windows/Fonts/arialbd.ttf",
	},
}

var (
	once   sync.Once
	cached Pair
)

// Load returns the process-wide font pair, computed once. Concurrent first
// calls are safe; the computation is idempotent.
func Load() Pair {
	once.Do(func() {
		cached = resolve(candidates)
	})
	return cached
}

// resolve walks the candidate chain; a candidate wins only when both of its
// files read fully. Any failure falls through to the next entry and finally
// to the built-in family.
func resolve(cands []Candidate) Pair {
	for _, c := range cands {
		regular, err := os.ReadFile(c.Regular)
		if err != nil {
			continue
		}
		bold, err := os.ReadFile(c.Bold)
		if err != nil {
			continue
		}
		return Pair{Family: c.Family, Regular: regular, Bold: bold}
	}
	return Pair{Family: BuiltinFamily}
}
