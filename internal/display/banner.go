// Package display renders the startup banner.
package display

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const bannerArt = `
  ___     _                                 _
 | __|_ _(_)_ ___ __ ____ _ _  _ __ __ _ __| |_
 | _/ _` + "`" + ` | | '_\ V  V / _` + "`" + ` | || / _/ _` + "`" + ` (_-<  _|
 |_|\__,_|_|_|  \_/\_/\__,_|\_, \__\__,_/__/\__|
                            |__/
          live golf shot commentary
`

// BannerStyle is the muted slate used for startup output.
var BannerStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#94a3b8"))

// RenderBanner returns the styled startup banner.
func RenderBanner() string {
	var b strings.Builder
	for _, line := range strings.Split(strings.Trim(bannerArt, "\n"), "\n") {
		b.WriteString(BannerStyle.Render(line))
		b.WriteByte('\n')
	}
	return b.String()
}
