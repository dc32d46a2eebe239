package views

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"cardcarousel/internal/domain"
)

// frame overhead of a role style: border plus horizontal padding
const (
	cardFrameWidth  = 4
	cardFrameHeight = 2
)

// CardRenderer draws a single card. It keeps no state about cards; the
// output depends only on the card's content, its role and the size.
type CardRenderer struct {
	styles        *Styles
	markdown      bool
	markdownStyle string

	mu        sync.Mutex
	renderers map[int]*glamour.TermRenderer // keyed by wrap width
}

// NewCardRenderer creates a card renderer. With markdown set, descriptions
// are rendered through glamour using the named standard style.
func NewCardRenderer(styles *Styles, markdown bool, markdownStyle string) *CardRenderer {
	if markdownStyle == "" {
		markdownStyle = "dark"
	}
	return &CardRenderer{
		styles:        styles,
		markdown:      markdown,
		markdownStyle: markdownStyle,
		renderers:     make(map[int]*glamour.TermRenderer),
	}
}

// Render draws card framed for role into a box of exactly width x height
// cells. Content that does not fit is cut with an ellipsis.
func (r *CardRenderer) Render(card domain.Card, role domain.Role, width, height int) string {
	innerW := width - cardFrameWidth
	innerH := height - cardFrameHeight
	if innerW < 1 || innerH < 1 {
		return ""
	}

	wrap := lipgloss.NewStyle().Width(innerW)
	var sections []string

	title := card.Title
	if title == "" {
		title = "untitled"
	}
	sections = append(sections, wrap.Render(r.styles.CardTitle.Render(title)))

	if card.Image != "" {
		sections = append(sections, r.styles.CardImage.Render(ansi.Truncate("▣ "+card.Image, innerW, "…")))
	}

	if card.Description != "" {
		sections = append(sections, "", r.renderDescription(card.Description, innerW))
	}

	if links := r.renderLinks(card, innerW); links != "" {
		sections = append(sections, "", links)
	}

	lines := strings.Split(strings.Join(sections, "\n"), "\n")
	for i, line := range lines {
		// glamour pads to its own margins; a wider line would rewrap the box
		lines[i] = ansi.Truncate(line, innerW, "")
	}
	if len(lines) > innerH {
		lines = lines[:innerH]
		lines[innerH-1] = ansi.Truncate(lines[innerH-1], innerW-1, "") + "…"
	}

	style := RoleStyle(role).
		Width(innerW + 2).
		Height(innerH)
	return style.Render(strings.Join(lines, "\n"))
}

// Placeholder renders an empty slot of the same size as a card
func (r *CardRenderer) Placeholder(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	return lipgloss.NewStyle().Width(width).Height(height).Render("")
}

func (r *CardRenderer) renderDescription(desc string, width int) string {
	if r.markdown {
		if tr := r.termRenderer(width); tr != nil {
			if out, err := tr.Render(desc); err == nil {
				return strings.Trim(out, "\n")
			}
		}
	}
	return lipgloss.NewStyle().Width(width).Render(desc)
}

func (r *CardRenderer) termRenderer(width int) *glamour.TermRenderer {
	r.mu.Lock()
	defer r.mu.Unlock()

	if tr, ok := r.renderers[width]; ok {
		return tr
	}
	tr, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(r.markdownStyle),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		// Remember the failure so every frame does not retry
		r.renderers[width] = nil
		return nil
	}
	r.renderers[width] = tr
	return tr
}

func (r *CardRenderer) renderLinks(card domain.Card, width int) string {
	var links []string
	if card.PrimaryLink != "" && card.PrimaryLink != domain.PlaceholderLink {
		links = append(links, r.styles.CardLink.Render(ansi.Truncate("⌂ "+card.PrimaryLink, width, "…")))
	}
	if card.SecondaryLink != "" && card.SecondaryLink != domain.PlaceholderLink {
		links = append(links, r.styles.CardLink.Render(ansi.Truncate("↗ "+card.SecondaryLink, width, "…")))
	}
	return strings.Join(links, "\n")
}
