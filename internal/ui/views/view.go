package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"quickfind/internal/domain"
)

// ClearGlyph is the reset affordance shown next to a non-empty query
const ClearGlyph = "✕"

// EmptyText is shown when a non-blank query produced nothing
const EmptyText = "Nothing found"

const (
	inputRow      = 2
	linesPerItem  = 2
	highlightMark = "▸ "
	plainMark     = "  "
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width       int
	Height      int
	InputView   string // rendered text input
	Query       string
	Loading     bool
	SpinnerView string
	Error       string
	Results     []domain.Item
	Highlight   int
	Link        string
	HelpView    string
}

// ShowsEmptyState reports whether the "Nothing found" line is visible
func ShowsEmptyState(s ViewState) bool {
	return !s.Loading && len(s.Results) == 0 && strings.TrimSpace(s.Query) != "" && s.Error == ""
}

// Layout records where interactive parts landed so mouse events can be
// mapped back to them. Rows and columns are zero-based screen cells.
type Layout struct {
	InputRow       int
	ClearStart     int // -1 when the clear affordance is hidden
	ClearEnd       int // exclusive
	FirstResultRow int
	Offset         int // index of the first visible result
	Visible        int
}

// ResultAt returns the result index under (x, y), or domain.NoHighlight
func (l Layout) ResultAt(x, y int) int {
	if l.Visible == 0 || y < l.FirstResultRow || x < 0 {
		return domain.NoHighlight
	}
	i := (y - l.FirstResultRow) / linesPerItem
	if i >= l.Visible {
		return domain.NoHighlight
	}
	return l.Offset + i
}

// OnClear reports whether (x, y) hits the clear affordance
func (l Layout) OnClear(x, y int) bool {
	return l.ClearStart >= 0 && y == l.InputRow && x >= l.ClearStart && x < l.ClearEnd
}

// Renderer handles all view rendering
type Renderer struct {
	styles *Styles
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{styles: NewStyles()}
}

// Render produces the complete view and the layout it was drawn with
func (r *Renderer) Render(state ViewState) (string, Layout) {
	layout := Layout{InputRow: inputRow, ClearStart: -1, ClearEnd: -1}

	lines := []string{r.styles.Title.Render("quickfind"), ""}

	row := state.InputView
	if state.Query != "" {
		// the gap before the glyph is part of the hit area
		layout.ClearStart = lipgloss.Width(row)
		row += " " + r.styles.Clear.Render(ClearGlyph) + " "
		layout.ClearEnd = lipgloss.Width(row)
	}
	if state.Loading {
		row += " " + state.SpinnerView
	}
	lines = append(lines, row, "")

	if state.Error != "" {
		lines = append(lines, r.styles.Error.Render("Error: "+state.Error))
	}
	if ShowsEmptyState(state) {
		lines = append(lines, r.styles.Empty.Render(EmptyText))
	}

	footer := r.footer(state)

	if n := len(state.Results); n > 0 {
		capacity := n
		if state.Height > 0 {
			// blank separator and scroll line are reserved
			avail := state.Height - len(lines) - len(footer) - 2
			capacity = max(1, avail/linesPerItem)
		}
		offset := scrollOffset(state.Highlight, n, capacity)
		end := min(offset+capacity, n)

		layout.FirstResultRow = len(lines)
		layout.Offset = offset
		layout.Visible = end - offset

		for i := offset; i < end; i++ {
			lines = append(lines, r.renderItem(state.Results[i], i == state.Highlight, state.Width)...)
		}
		if offset > 0 || end < n {
			lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("%d-%d of %d", offset+1, end, n)))
		}
	}

	lines = append(lines, "")
	lines = append(lines, footer...)
	return strings.Join(lines, "\n"), layout
}

func (r *Renderer) renderItem(item domain.Item, highlighted bool, width int) []string {
	if !highlighted {
		return []string{
			plainMark + r.styles.ItemTitle.Render(item.Title),
			plainMark + r.styles.ItemDesc.Render(item.Description),
		}
	}
	bg := r.styles.HighlightBg
	if width > 0 {
		bg = bg.Width(width)
	}
	return []string{
		bg.Render(highlightMark + r.styles.Highlight.Render(item.Title)),
		bg.Render(plainMark + r.styles.ItemDesc.Render(item.Description)),
	}
}

func (r *Renderer) footer(state ViewState) []string {
	var out []string
	if state.Link != "" {
		out = append(out, r.styles.Dim.Render("link: ")+r.styles.Link.Render(state.Link))
	}
	if state.HelpView != "" {
		out = append(out, strings.Split(state.HelpView, "\n")...)
	}
	return out
}

// scrollOffset keeps the highlighted result inside a window of capacity
func scrollOffset(highlight, n, capacity int) int {
	if capacity >= n || highlight < capacity {
		return 0
	}
	return min(highlight-capacity+1, n-capacity)
}
