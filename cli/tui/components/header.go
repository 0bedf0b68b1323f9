package components

import (
	"github.com/common-nighthawk/go-figure"

	"github.com/compozy/foodietour/cli/tui/styles"
)

// RenderHeader renders the banner shown before an interactive run.
func RenderHeader(width int) string {
	logo := figure.NewFigure("FOODIE TOUR", "standard", true)
	return styles.Header.Width(width).Render(logo.String())
}
