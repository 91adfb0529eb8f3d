// Package render turns computed statistics into the markdown fragment kept in the README.
package render

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/naka-gawa/readme-streak/internal/domain"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	badgeBaseURL = "https://img.shields.io/badge/"
	badgeLogo    = "github"
	labelColor   = "0d1117"
)

// Markers are the literal lines that bound the rendered fragment.
type Markers struct {
	Start string
	End   string
}

type badge struct {
	label string
	value string
	color string
}

var printer = message.NewPrinter(language.English)

// Render formats stats as three shields.io badges between the markers.
// The output carries no trailing newline so it can replace the region in place.
func Render(stats domain.StatsResult, markers Markers) string {
	badges := []badge{
		{label: "Total Commits", value: printer.Sprintf("%d", stats.Total), color: "2ea44f"},
		{label: "Longest Streak", value: days(stats.LongestStreak), color: "f97316"},
		{label: "Current Streak", value: days(stats.CurrentStreak), color: "3b82f6"},
	}

	var b strings.Builder
	b.WriteString(markers.Start + "\n")
	b.WriteString(`<p align="center">` + "\n")
	for _, bg := range badges {
		fmt.Fprintf(&b, "  <img src=\"%s%s-%s-%s?style=for-the-badge&logo=%s&labelColor=%s\" alt=\"%s\" />\n",
			badgeBaseURL, escape(bg.label), escape(bg.value), bg.color, badgeLogo, labelColor, bg.label)
	}
	b.WriteString("</p>\n")
	b.WriteString(markers.End)
	return b.String()
}

// days renders a streak length with its unit, e.g. "1 day" or "1,024 days".
func days(n int) string {
	if n == 1 {
		return "1 day"
	}
	return printer.Sprintf("%d days", n)
}

// escape percent-encodes s for a URL path segment, encoding spaces as %20 and
// commas as %2C.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
