// Package render turns a card request plus aggregated stats into SVG
// bytes. Rendering is synchronous and side-effect free.
package render

import (
	"bytes"
	_ "embed"
	"fmt"
	"text/template"

	"github-card/internal/domain"

	"github.com/rs/zerolog"
)

const (
	svgWidth  = 495
	svgHeight = 195
)

//go:embed templates/card.svg.tmpl
var cardTemplate string

var cardTmpl = template.Must(
	template.New("card").
		Funcs(template.FuncMap{
			"mulInt": func(a, b int) int { return a * b },
			"addInt": func(a, b int) int { return a + b },
		}).
		Parse(cardTemplate),
)

type cardViewModel struct {
	Width  int
	Height int

	Title   string
	Bio     string
	Skills  []string
	Font    string
	Opacity float64
	BgImage string
	Theme   Theme

	Stars         int
	Commits       int
	PRs           int
	Issues        int
	Contributions int
	Languages     []string

	RankLevel      string
	RankPercentile float64

	// dash offset for the rank ring, 2*pi*r scaled by the rank distance
	RankOffset float64
}

type SVG struct {
	logger zerolog.Logger
}

func NewSVG(logger zerolog.Logger) *SVG {
	return &SVG{logger: logger}
}

// Render produces the card image for one request and its stats
// snapshot. The theme on req must already be normalized.
func (s *SVG) Render(req domain.CardRequest, stats *domain.UserActivityStats) ([]byte, error) {
	title := req.DisplayName
	if title == "" {
		title = stats.DisplayName
	}
	if title == "" {
		title = stats.Username
	}

	bio := req.Bio
	if bio == "" {
		bio = stats.Bio
	}

	font := req.Font
	if font == "" {
		font = "Segoe UI"
	}

	opacity := req.Opacity
	if opacity <= 0 || opacity > 1 {
		opacity = 1
	}

	level := stats.Rank.Level
	if level == "" {
		level = domain.LevelUnknown
	}

	vm := cardViewModel{
		Width:          svgWidth,
		Height:         svgHeight,
		Title:          title,
		Bio:            bio,
		Skills:         req.Skills,
		Font:           font,
		Opacity:        opacity,
		BgImage:        req.Background,
		Theme:          ThemeByName(req.Theme),
		Stars:          stats.TotalStars,
		Commits:        stats.TotalCommits,
		PRs:            stats.TotalPRs,
		Issues:         stats.TotalIssues,
		Contributions:  stats.Contributions,
		Languages:      stats.TopLanguages,
		RankLevel:      string(level),
		RankPercentile: stats.Rank.Percentile,
		RankOffset:     251.32 * stats.Rank.Score / 100,
	}

	var buf bytes.Buffer
	if err := cardTmpl.Execute(&buf, vm); err != nil {
		return nil, fmt.Errorf("execute card template: %w", err)
	}
	return buf.Bytes(), nil
}
