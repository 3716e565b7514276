package imp

import (
	"errors"
	"fmt"
	"strings"

	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// ErrUnknownFilter is returned when looking up a filter that doesn't exist.
var ErrUnknownFilter = errors.New("unknown filter")

// A Filter identifies one of the transformations.
type Filter int

// Available filters.
const (
	Negative Filter = iota + 1
	Grayscale
	BrightnessHistogram
	BlackWhite
)

type filterInfo struct {
	name    string
	aliases []string
	desc    string
}

var filters = map[Filter]filterInfo{
	Negative:            {"negative", []string{"invert"}, "invert the colors of a PPM image"},
	Grayscale:           {"grayscale", []string{"gray"}, "convert a PPM image to PGM"},
	BrightnessHistogram: {"histogram", []string{"hist"}, "count the brightness levels of a PGM image"},
	BlackWhite:          {"threshold", []string{"bw"}, "binarize a PGM image"},
}

// Filters lists all filters in a stable order.
func Filters() []Filter {
	return []Filter{Negative, Grayscale, BrightnessHistogram, BlackWhite}
}

func (f Filter) String() string {
	if info, ok := filters[f]; ok {
		return info.name
	}
	return fmt.Sprintf("Filter(%d)", int(f))
}

// Aliases returns the alternative names of f.
func (f Filter) Aliases() []string {
	return filters[f].aliases
}

// Description returns a one-line description of f.
func (f Filter) Description() string {
	return filters[f].desc
}

// LookupFilter finds a filter by name or alias. When nothing matches, the
// error suggests the closest known name.
func LookupFilter(name string) (Filter, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	best, score := "", len(name)+1
	for _, f := range Filters() {
		for _, n := range append([]string{f.String()}, f.Aliases()...) {
			if n == name {
				return f, nil
			}
			d := levenshtein.DistanceForStrings([]rune(name), []rune(n), levenshtein.DefaultOptions)
			if d < score {
				best, score = n, d
			}
		}
	}
	if best != "" && score <= len(best)/2 {
		return 0, fmt.Errorf("%w %q (did you mean %q?)", ErrUnknownFilter, name, best)
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownFilter, name)
}
