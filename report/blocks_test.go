package report

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corpoml/demandml/pkg/errors"
)

func TestHeaderBlock(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  string
	}{
		{"single line", []string{"Hello"}, "#####"},
		{"longest wins", []string{"abc", "defgh", "ij"}, "#####"},
		{"one character", []string{"x"}, "#"},
		{"equal lengths", []string{"abcd", "efgh"}, "####"},
		{"multibyte runes", []string{"データ"}, "######"},
		{"ambiguous width runes", []string{"±5 °C"}, "#####"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := HeaderBlock(tt.lines...)
			assert.Equal(t, CategoryHeader, b.Category)
			require.Len(t, b.Colored, len(tt.lines)+1)
			assert.Equal(t, tt.lines, b.Colored[:len(tt.lines)])
			assert.Equal(t, tt.want, b.Colored[len(tt.lines)])
			assert.Empty(t, b.Plain)
		})
	}
}

func TestBorderIgnoresEastAsianLocale(t *testing.T) {
	t.Setenv("RUNEWIDTH_EASTASIAN", "1")
	t.Setenv("LANG", "ja_JP.UTF-8")
	saved := runewidth.DefaultCondition.EastAsianWidth
	runewidth.DefaultCondition.EastAsianWidth = true
	t.Cleanup(func() { runewidth.DefaultCondition.EastAsianWidth = saved })

	assert.Equal(t, []string{"±5 °C", "#####"}, HeaderBlock("±5 °C").Colored)
	assert.Equal(t, "------", SectionBlock("データ").Colored[1])
}

func TestSectionBlock(t *testing.T) {
	b := SectionBlock("Training", "fold 1")
	assert.Equal(t, CategorySection, b.Category)
	assert.Equal(t, []string{"Training", "fold 1", "--------"}, b.Lines())
}

func TestWarningAndExceptionBlocks(t *testing.T) {
	w := WarningBlock("disk almost full", "ok")
	assert.Equal(t, CategoryWarning, w.Category)
	assert.Equal(t, []string{"WARNING", strings.Repeat("#", 16)}, w.Colored)
	assert.Equal(t, []string{"disk almost full", "ok"}, w.Plain)

	// The border follows the input, not the title.
	e := ExceptionBlock("boom")
	assert.Equal(t, []string{"EXCEPTION", "####", "boom"}, e.Lines())
}

func TestBlockWithoutLinesPanics(t *testing.T) {
	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		assert.True(t, errors.IsAssertionFailure(err))
	}()
	HeaderBlock()
}

func TestBlockDoesNotAliasInput(t *testing.T) {
	lines := []string{"a", "b"}
	b := WarningBlock(lines...)
	lines[0] = "changed"
	assert.Equal(t, "a", b.Plain[0])
}
