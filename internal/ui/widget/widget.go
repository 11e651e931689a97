// Package widget lays out the overlay: option chips, the inspector panel and toasts.
// Layout is computed from a stylesheet into boxes the ui package draws.
package widget

import (
	"arshapes/internal/selection"
	"arshapes/internal/ui/style"
)

// Box is a laid out, styled element ready to draw.
type Box struct {
	Rect  style.Rect
	Style style.Computed
	Text  string
}

// Fallback sizes for stylesheets that leave them out.
const (
	chipWidth   = 110
	chipHeight  = 36
	toastWidth  = 560
	toastHeight = 36
	panelWidth  = 300
)

// ChipGroup shows an option group as a row of chips, the checked one styled with the
// extra class "chip-checked". The row is positioned by the "#<ID>" rule.
type ChipGroup struct {
	ID     string
	Group  *selection.Group
	Labels map[string]string // option id -> label; missing labels show the id
}

// Layout returns one box per option in display order.
func (c *ChipGroup) Layout(sheet *style.Stylesheet, screenW, screenH int32) []Box {
	row := style.Resolve(sheet.Match(c.ID, "chip-row"))
	item := style.Resolve(sheet.Match("", "chip"))
	if item.Width == 0 {
		item.Width = chipWidth
	}
	if item.Height == 0 {
		item.Height = chipHeight
	}
	item.Gap = row.Gap
	ids := c.Group.IDs()
	rects := style.Row(style.Place(row, screenW, screenH), item, len(ids))
	checked := c.Group.CheckedID()

	out := make([]Box, len(ids))
	for i, id := range ids {
		classes := []string{"chip"}
		if id == checked {
			classes = append(classes, "chip-checked")
		}
		label := id
		if l, ok := c.Labels[id]; ok {
			label = l
		}
		out[i] = Box{Rect: rects[i], Style: style.Resolve(sheet.Match(c.ID+"-"+id, classes...)), Text: label}
	}
	return out
}

// Click checks the option under (x, y), if any, and reports which one it was.
func (c *ChipGroup) Click(sheet *style.Stylesheet, screenW, screenH, x, y int32) (string, bool) {
	boxes := c.Layout(sheet, screenW, screenH)
	ids := c.Group.IDs()
	for i, b := range boxes {
		if b.Rect.Contains(x, y) {
			if err := c.Group.Check(ids[i]); err != nil {
				return "", false
			}
			return ids[i], true
		}
	}
	return "", false
}

// Panel lays out a "<class>" panel with one "<class>-line" label per line.
func Panel(sheet *style.Stylesheet, class string, lines []string, screenW, screenH int32) []Box {
	line := style.Resolve(sheet.Match("", class+"-line"))
	lineHeight := line.FontSize + line.Padding
	panel := style.Resolve(sheet.Match("", class))
	if panel.Width == 0 {
		panel.Width = panelWidth
	}
	if panel.Height == 0 {
		panel.Height = int32(len(lines))*lineHeight + 2*panel.Padding
	}
	r := style.Place(panel, screenW, screenH)
	out := make([]Box, 0, len(lines)+1)
	out = append(out, Box{Rect: r, Style: panel})
	y := r.Y + panel.Padding
	for _, text := range lines {
		out = append(out, Box{
			Rect:  style.Rect{X: r.X + panel.Padding, Y: y, W: r.W - 2*panel.Padding, H: lineHeight},
			Style: line,
			Text:  text,
		})
		y += lineHeight
	}
	return out
}

// Toasts stacks one ".toast" box per message, newest at the styled position and older
// ones above it.
func Toasts(sheet *style.Stylesheet, texts []string, screenW, screenH int32) []Box {
	st := style.Resolve(sheet.Match("", "toast"))
	if st.Width == 0 {
		st.Width = toastWidth
	}
	if st.Height == 0 {
		st.Height = toastHeight
	}
	base := style.Place(st, screenW, screenH)
	out := make([]Box, len(texts))
	for i := range texts {
		r := base
		r.Y -= int32(len(texts)-1-i) * (st.Height + st.Gap)
		out[i] = Box{Rect: r, Style: st, Text: texts[i]}
	}
	return out
}
