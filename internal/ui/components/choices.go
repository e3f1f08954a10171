package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lectiz/internal/ui/theme"
)

var optionLabels = []string{"A", "B", "C", "D"}

// OptionLabel returns the letter shown for option i.
func OptionLabel(i int) string {
	if i >= 0 && i < len(optionLabels) {
		return optionLabels[i]
	}
	return fmt.Sprintf("%d", i+1)
}

// OptionIndex maps a pressed key (a-d or 1-4) to an option index.
func OptionIndex(key string, n int) (int, bool) {
	key = strings.ToLower(key)
	if len(key) != 1 {
		return 0, false
	}
	var i int
	switch c := key[0]; {
	case c >= 'a' && c <= 'z':
		i = int(c - 'a')
	case c >= '1' && c <= '9':
		i = int(c - '1')
	default:
		return 0, false
	}
	if i >= n {
		return 0, false
	}
	return i, true
}

// Choices renders a multiple-choice option list. Before a selection the
// cursor row is highlighted; after one, the correct option is green and a
// wrong chosen option red.
type Choices struct {
	Options []string
	Cursor  int
	Chosen  *int
	Correct int
}

// View renders the options one per line.
func (c Choices) View() string {
	var b strings.Builder
	for i, opt := range c.Options {
		prefix := "  "
		if c.Chosen == nil && i == c.Cursor {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s)  %s", prefix, OptionLabel(i), opt)

		var style lipgloss.Style
		switch {
		case c.Chosen != nil && i == c.Correct:
			style = theme.Correct
		case c.Chosen != nil && i == *c.Chosen:
			style = theme.Incorrect
		case c.Chosen != nil:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == c.Cursor:
			style = theme.Selected
		default:
			style = theme.Unselected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
