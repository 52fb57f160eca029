package welcome

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

const bannerArt = `
 ██╗  ██╗ ██████╗ ████████╗ ██████╗ ██████╗  █████╗
 ██║ ██╔╝██╔═══██╗╚══██╔══╝██╔═══██╗██╔══██╗██╔══██╗
 █████╔╝ ██║   ██║   ██║   ██║   ██║██████╔╝███████║
 ██╔═██╗ ██║   ██║   ██║   ██║   ██║██╔══██╗██╔══██║
 ██║  ██╗╚██████╔╝   ██║   ╚██████╔╝██████╔╝██║  ██║
 ╚═╝  ╚═╝ ╚═════╝    ╚═╝    ╚═════╝ ╚═════╝ ╚═╝  ╚═╝`

const bannerCompact = "K O T O B A  ことば"

// BannerWidth is the narrowest terminal that fits the block banner.
const BannerWidth = 54

// RenderBanner returns the KOTOBA banner styled in fg.
// Uses a compact fallback for terminals narrower than BannerWidth.
func RenderBanner(width int, fg color.Color) string {
	style := lipgloss.NewStyle().
		Foreground(fg).
		Bold(true)

	if width < BannerWidth {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
