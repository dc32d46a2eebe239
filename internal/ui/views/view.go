package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"cardcarousel/internal/carousel"
	"cardcarousel/internal/domain"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width            int
	Height           int
	Title            string
	Projection       carousel.Projection
	StatusMessage    string
	StatusIsError    bool
	ShowHelp         bool
	HelpScrollOffset int
	HelpModel        help.Model
	KeyMap           help.KeyMap
}

// Fixed rows around the carousel: title, gap, gap, dots, gap, status, help
const (
	chromeRows   = 7
	carouselTop  = 2
	buttonWidth  = 3
	slotGap      = 1
	minCardH     = 5
	maxCardH     = 16
	minActiveW   = 20
	maxActiveW   = 48
	minSideW     = 12
	maxSideW     = 32
	defaultWidth = 80
	defaultH     = 24

	dotMarkerWidth = 2
)

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	cardRender  *CardRenderer
	popupRender *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer(markdown bool, markdownStyle string) *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:      styles,
		cardRender:  NewCardRenderer(styles, markdown, markdownStyle),
		popupRender: NewPopupRenderer(styles),
	}
}

// Render produces the complete view together with the hit zones of the
// controls it drew.
func (r *Renderer) Render(state ViewState) (string, Layout) {
	width, height := state.Width, state.Height
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultH
	}

	var layout Layout
	var lines []string

	lines = append(lines, r.renderTitle(state, width), "")

	cardH := clampInt(height-chromeRows, minCardH, maxCardH)
	row := r.renderCarouselRow(state.Projection, width, cardH, &layout)
	lines = append(lines, strings.Split(row, "\n")...)
	lines = append(lines, "")

	layout.DotsY = len(lines)
	lines = append(lines, r.renderDots(state.Projection, width, &layout))

	footer := []string{r.renderStatus(state), ""}
	if state.KeyMap != nil {
		footer[1] = r.styles.Help.Render(state.HelpModel.View(state.KeyMap))
	}
	for fill := height - len(lines) - len(footer); fill > 0; fill-- {
		lines = append(lines, "")
	}
	lines = append(lines, footer...)

	content := lipgloss.NewStyle().MaxHeight(height).Render(strings.Join(lines, "\n"))

	if state.ShowHelp {
		helpContent := r.renderHelpContent(state.KeyMap, height, state.HelpScrollOffset)
		return r.popupRender.RenderPopupOverlay(content, helpContent, height, width, r.styles.HelpBox), layout
	}
	return content, layout
}

func (r *Renderer) renderTitle(state ViewState, width int) string {
	title := state.Title
	if title == "" {
		title = "cardcarousel"
	}
	logo := r.styles.Title.Render(title)

	p := state.Projection
	var counter string
	if p.Count == 0 {
		counter = "no cards"
	} else {
		counter = fmt.Sprintf("%d / %d · %s", p.Current+1, p.Count, p.Policy)
	}
	right := r.styles.Counter.Render(counter)

	padding := width - lipgloss.Width(logo) - lipgloss.Width(right)
	if padding < 2 {
		padding = 2
	}
	return logo + strings.Repeat(" ", padding) + right
}

// slotSizes splits the row between the active card and the two side slots.
// Side slots shrink to zero when the terminal is too narrow for them.
func slotSizes(width int) (activeW, sideW int) {
	avail := width - 2*buttonWidth - 4*slotGap
	activeW = clampInt(avail*45/100, minActiveW, maxActiveW)
	if activeW > avail {
		activeW = avail
	}
	sideW = (avail - activeW) / 2
	if sideW > maxSideW {
		sideW = maxSideW
	}
	if sideW < minSideW {
		sideW = 0
	}
	return activeW, sideW
}

func (r *Renderer) renderCarouselRow(p carousel.Projection, width, cardH int, layout *Layout) string {
	activeW, sideW := slotSizes(width)
	total := 2*buttonWidth + 4*slotGap + activeW + 2*sideW
	x := (width - total) / 2
	if x < 0 {
		x = 0
	}

	layout.Frame = Rect{X: 0, Y: carouselTop, W: width, H: cardH}

	var blocks []string
	blocks = append(blocks, blank(x, cardH))

	layout.Prev = Rect{X: x, Y: carouselTop, W: buttonWidth, H: cardH}
	blocks = append(blocks, r.renderButton("‹", p.PrevDisabled, cardH), blank(slotGap, cardH))
	x += buttonWidth + slotGap

	blocks = append(blocks, r.renderSlot(p, domain.RoleLeft, x, sideW, cardH, layout), blank(slotGap, cardH))
	x += sideW + slotGap

	if active, ok := p.ActiveCard(); ok {
		blocks = append(blocks, r.cardRender.Render(active.Card, active.Role, activeW, cardH))
		layout.Cards = append(layout.Cards, CardZone{Index: active.Index, Rect: Rect{X: x, Y: carouselTop, W: activeW, H: cardH}})
	} else {
		empty := r.styles.Empty.Render("No cards in deck")
		blocks = append(blocks, lipgloss.Place(activeW, cardH, lipgloss.Center, lipgloss.Center, empty))
	}
	blocks = append(blocks, blank(slotGap, cardH))
	x += activeW + slotGap

	blocks = append(blocks, r.renderSlot(p, domain.RoleRight, x, sideW, cardH, layout), blank(slotGap, cardH))
	x += sideW + slotGap

	layout.Next = Rect{X: x, Y: carouselTop, W: buttonWidth, H: cardH}
	blocks = append(blocks, r.renderButton("›", p.NextDisabled, cardH))

	return lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
}

func (r *Renderer) renderSlot(p carousel.Projection, role domain.Role, x, w, h int, layout *Layout) string {
	if w == 0 {
		return ""
	}
	cs, ok := p.CardWithRole(role)
	if !ok || !RoleVisible(cs.Role) {
		return r.cardRender.Placeholder(w, h)
	}
	layout.Cards = append(layout.Cards, CardZone{Index: cs.Index, Rect: Rect{X: x, Y: carouselTop, W: w, H: h}})
	return r.cardRender.Render(cs.Card, cs.Role, w, h)
}

func (r *Renderer) renderButton(glyph string, disabled bool, h int) string {
	style := r.styles.Button
	if disabled {
		style = r.styles.ButtonDisabled
	}
	return lipgloss.NewStyle().
		Width(buttonWidth).
		Height(h).
		Align(lipgloss.Center).
		AlignVertical(lipgloss.Center).
		Render(style.Render(glyph))
}

func (r *Renderer) renderDots(p carousel.Projection, width int, layout *Layout) string {
	if len(p.Dots) == 0 {
		return ""
	}
	start, end := dotWindow(len(p.Dots), p.Current, width)
	windowed := end-start < len(p.Dots)

	rowW := 2*(end-start) - 1
	if windowed {
		rowW += 2 * dotMarkerWidth
	}
	pad := (width - rowW) / 2
	if pad < 0 {
		pad = 0
	}

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", pad))
	x := pad
	if windowed {
		if start > 0 {
			b.WriteString(r.styles.Dim.Render("‹ "))
		} else {
			b.WriteString("  ")
		}
		x += dotMarkerWidth
	}
	for i, d := range p.Dots[start:end] {
		if i > 0 {
			b.WriteString(" ")
		}
		if d.Active {
			b.WriteString(r.styles.DotActive.Render("●"))
		} else {
			b.WriteString(r.styles.DotInactive.Render("○"))
		}
		layout.Dots = append(layout.Dots, DotZone{Index: d.Index, X: x + 2*i})
	}
	if windowed && end < len(p.Dots) {
		b.WriteString(r.styles.Dim.Render(" ›"))
	}
	return b.String()
}

// dotWindow picks the dots that fit in width, keeping current near the
// middle. When not all fit, room is left for an overflow marker each side.
func dotWindow(n, current, width int) (start, end int) {
	if 2*n-1 <= width {
		return 0, n
	}
	k := (width - 2*dotMarkerWidth + 1) / 2
	if k < 1 {
		k = 1
	}
	start = clampInt(current-k/2, 0, n-k)
	return start, start + k
}

func (r *Renderer) renderStatus(state ViewState) string {
	if state.StatusMessage == "" {
		return ""
	}
	if state.StatusIsError {
		return r.styles.StatusError.Render(state.StatusMessage)
	}
	return r.styles.Status.Render(state.StatusMessage)
}

// helpSections names the groups returned by the key map's FullHelp
var helpSections = []string{"Navigation", "Deck", "Other"}

// renderHelpContent renders the help overlay with scroll support
func (r *Renderer) renderHelpContent(km help.KeyMap, height int, scrollOffset int) string {
	lines := strings.Split(r.HelpText(km), "\n")
	return scrollLines(lines, height-4, scrollOffset, r.styles.Dim)
}

// HelpText renders the complete help page for km. The overlay shows a
// scrolled window of it; the pager shows all of it.
func (r *Renderer) HelpText(km help.KeyMap) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220")).
		Width(14)

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	var content strings.Builder
	content.WriteString(titleStyle.Render("Card Carousel Help"))
	content.WriteString("\n")

	if km != nil {
		for i, group := range km.FullHelp() {
			if i < len(helpSections) {
				content.WriteString(sectionStyle.Render(helpSections[i]))
				content.WriteString("\n")
			}
			for _, b := range group {
				h := b.Help()
				content.WriteString(fmt.Sprintf("  %s%s\n", keyStyle.Render(h.Key), descStyle.Render(h.Desc)))
			}
		}
	}

	content.WriteString(sectionStyle.Render("Mouse"))
	content.WriteString("\n")
	content.WriteString(fmt.Sprintf("  %s%s\n", keyStyle.Render("click ‹ ›"), descStyle.Render("previous / next")))
	content.WriteString(fmt.Sprintf("  %s%s\n", keyStyle.Render("click dot"), descStyle.Render("jump to card")))
	content.WriteString(fmt.Sprintf("  %s%s\n", keyStyle.Render("click side"), descStyle.Render("bring side card to front")))
	content.WriteString(fmt.Sprintf("  %s%s", keyStyle.Render("drag ← →"), descStyle.Render("swipe")))

	return content.String()
}

// scrollLines cuts lines to a window of visible rows starting at offset,
// marking the cut edges.
func scrollLines(lines []string, visible, offset int, marker lipgloss.Style) string {
	if visible < 5 {
		visible = 5
	}
	total := len(lines)
	if total <= visible {
		return strings.Join(lines, "\n")
	}

	offset = clampInt(offset, 0, total-visible)
	end := offset + visible
	window := append([]string(nil), lines[offset:end]...)

	if offset > 0 {
		window[0] = marker.Render("↑ (more above)")
	}
	if end < total {
		window[len(window)-1] = marker.Render("↓ (more below)")
	}
	return strings.Join(window, "\n")
}

func blank(w, h int) string {
	if w <= 0 {
		return ""
	}
	return lipgloss.NewStyle().Width(w).Height(h).Render("")
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
