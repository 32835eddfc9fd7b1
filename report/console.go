package report

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/corpoml/demandml/pkg/log"
)

// Category selects the border rune and foreground colour of a block.
type Category int

const (
	CategoryPlain Category = iota
	CategoryHeader
	CategorySection
	CategoryWarning
	CategoryException
	CategoryPrompt
)

var categoryColors = map[Category]lipgloss.Color{
	CategoryHeader:    lipgloss.Color("11"), // yellow
	CategorySection:   lipgloss.Color("12"), // blue
	CategoryWarning:   lipgloss.Color("5"),  // dark magenta
	CategoryException: lipgloss.Color("9"),  // red
	CategoryPrompt:    lipgloss.Color("10"), // green
}

// Console writes report lines to an output stream. It is safe for
// concurrent use: each block is written while holding the console lock, so
// colour changes and lines of different blocks never interleave.
type Console struct {
	mu       sync.Mutex
	out      io.Writer
	in       io.Reader
	renderer *lipgloss.Renderer
	color    bool
	debug    bool
	current  lipgloss.Style
	logger   log.Logger
}

// Option configures a Console.
type Option func(*Console)

// WithColor forces colour on or off. By default colour is enabled only when
// the output is a terminal.
func WithColor(enabled bool) Option {
	return func(c *Console) { c.color = enabled }
}

// WithInput sets the stream PressAnyKey reads from. Defaults to os.Stdin.
func WithInput(in io.Reader) Option {
	return func(c *Console) { c.in = in }
}

// WithDebug enables the peek utilities.
func WithDebug(enabled bool) Option {
	return func(c *Console) { c.debug = enabled }
}

// NewConsole creates a Console writing to out.
func NewConsole(out io.Writer, opts ...Option) *Console {
	c := &Console{
		out:      out,
		in:       os.Stdin,
		renderer: lipgloss.NewRenderer(out),
		color:    isTerminal(out),
		logger:   log.GetLoggerWithName("report"),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.color && c.renderer.ColorProfile() == termenv.Ascii {
		// forced colour on a pipe or buffer
		c.renderer.SetColorProfile(termenv.ANSI256)
	}
	c.current = c.renderer.NewStyle()
	return c
}

// Debug reports whether the peek utilities are enabled.
func (c *Console) Debug() bool {
	return c.debug
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// useColor switches the foreground colour for the lines written until the
// returned restore function runs. Callers must hold c.mu and defer restore,
// so the previous colour comes back on every exit path, panics included.
func (c *Console) useColor(cat Category) (restore func()) {
	prev := c.current
	if col, ok := categoryColors[cat]; ok && c.color {
		c.current = c.renderer.NewStyle().Foreground(col)
	} else {
		c.current = c.renderer.NewStyle()
	}
	return func() { c.current = prev }
}

func (c *Console) println(line string) {
	if c.color && line != "" {
		line = c.current.Render(line)
	}
	fmt.Fprintln(c.out, line)
}

// WriteLines prints lines in the colour of cat.
func (c *Console) WriteLines(cat Category, lines []string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	restore := c.useColor(cat)
	defer restore()
	for _, line := range lines {
		c.println(line)
	}
}

// WriteBlock prints a block: a blank separator, the coloured part, then the
// plain part in the default colour.
func (c *Console) WriteBlock(b Block) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.writeBlock(b)
}

// writeHeaded prints a header block and the plain lines under it as one
// unit, so concurrent writers cannot slip lines between them.
func (c *Console) writeHeaded(title string, lines []string) {
	b := HeaderBlock(title)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.writeBlock(b)
	for _, line := range lines {
		c.println(line)
	}
}

// writeBlock requires c.mu.
func (c *Console) writeBlock(b Block) {
	c.println("")
	func() {
		restore := c.useColor(b.Category)
		defer restore()
		for _, line := range b.Colored {
			c.println(line)
		}
	}()
	for _, line := range b.Plain {
		c.println(line)
	}
}

// Header prints lines followed by a '#' border in yellow.
func (c *Console) Header(lines ...string) { c.WriteBlock(HeaderBlock(lines...)) }

// Section prints lines followed by a '-' border in blue.
func (c *Console) Section(lines ...string) { c.WriteBlock(SectionBlock(lines...)) }

// Warning prints a WARNING title and border in magenta, then lines.
func (c *Console) Warning(lines ...string) { c.WriteBlock(WarningBlock(lines...)) }

// Exception prints an EXCEPTION title and border in red, then lines.
func (c *Console) Exception(lines ...string) { c.WriteBlock(ExceptionBlock(lines...)) }

// PressAnyKey asks the user for a keypress and blocks until one arrives.
// When the input is not an interactive terminal it returns immediately.
func (c *Console) PressAnyKey() {
	f, ok := c.in.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		c.logger.Debug("skipping keypress prompt on non-interactive input")
		return
	}

	c.WriteBlock(Block{Category: CategoryPrompt, Colored: []string{"Press any key to finish."}})

	state, err := term.MakeRaw(int(f.Fd()))
	if err != nil {
		c.logger.Warn("cannot switch terminal to raw mode", err)
		return
	}
	defer func() { _ = term.Restore(int(f.Fd()), state) }()

	var buf [1]byte
	_, _ = f.Read(buf[:])
}
