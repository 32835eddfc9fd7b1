package report

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/corpoml/demandml/pkg/errors"
)

const (
	warningTitle   = "WARNING"
	exceptionTitle = "EXCEPTION"
)

// Block is a bordered group of lines. Colored lines are printed in the
// category colour, Plain lines after them in the default colour.
type Block struct {
	Category Category
	Colored  []string
	Plain    []string
}

// Lines returns every line of the block in emission order, without the
// leading blank separator.
func (b Block) Lines() []string {
	out := make([]string, 0, len(b.Colored)+len(b.Plain))
	out = append(out, b.Colored...)
	return append(out, b.Plain...)
}

// borderWidth measures lines for borders. East Asian ambiguous runes are
// narrow regardless of RUNEWIDTH_EASTASIAN or the locale, so a given input
// always gets the same border.
var borderWidth = &runewidth.Condition{EastAsianWidth: false, StrictEmojiNeutral: true}

// border returns r repeated to the display width of the widest line.
func border(r rune, lines []string) string {
	if len(lines) == 0 {
		panic(errors.AssertionFailedf("a bordered block needs at least one line"))
	}
	width := 0
	for _, l := range lines {
		if w := borderWidth.StringWidth(l); w > width {
			width = w
		}
	}
	return strings.Repeat(string(r), width)
}

// HeaderBlock renders lines followed by a '#' border.
func HeaderBlock(lines ...string) Block {
	b := border('#', lines)
	return Block{Category: CategoryHeader, Colored: append(append([]string{}, lines...), b)}
}

// SectionBlock renders lines followed by a '-' border.
func SectionBlock(lines ...string) Block {
	b := border('-', lines)
	return Block{Category: CategorySection, Colored: append(append([]string{}, lines...), b)}
}

// WarningBlock renders a WARNING title and '#' border above lines.
func WarningBlock(lines ...string) Block {
	return Block{
		Category: CategoryWarning,
		Colored:  []string{warningTitle, border('#', lines)},
		Plain:    append([]string{}, lines...),
	}
}

// ExceptionBlock renders an EXCEPTION title and '#' border above lines.
func ExceptionBlock(lines ...string) Block {
	return Block{
		Category: CategoryException,
		Colored:  []string{exceptionTitle, border('#', lines)},
		Plain:    append([]string{}, lines...),
	}
}
