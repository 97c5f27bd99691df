// Package assets resolves the font families available to the renderer.
// The result is memoized for the life of the process.
package assets

import (
	"context"
	"os"
	"strings"
	"sync"

	"github-card/internal/config"

	"github.com/rs/zerolog"
)

var builtinFamilies = []string{"Segoe UI", "Ubuntu", "Sans-Serif"}

type Fonts struct {
	Families []string
}

type Loader struct {
	dir    string
	logger zerolog.Logger

	mu     sync.Mutex
	cached *Fonts
}

func NewLoader(cfg *config.Config, logger zerolog.Logger) *Loader {
	return &Loader{dir: cfg.FontDir, logger: logger}
}

// Load returns the available font families. Missing or unreadable font
// directories degrade to the built-in families rather than failing.
func (l *Loader) Load(ctx context.Context) (*Fonts, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cached != nil {
		return l.cached, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	families := append([]string(nil), builtinFamilies...)

	if l.dir != "" {
		entries, err := os.ReadDir(l.dir)
		if err != nil {
			l.logger.Warn().Err(err).Str("dir", l.dir).Msg("font directory unreadable, using builtin families")
		} else {
			for _, e := range entries {
				name := e.Name()
				if strings.HasSuffix(name, ".ttf") || strings.HasSuffix(name, ".woff2") {
					families = append(families, strings.TrimSuffix(strings.TrimSuffix(name, ".ttf"), ".woff2"))
				}
			}
		}
	}

	l.cached = &Fonts{Families: families}
	l.logger.Debug().Int("count", len(families)).Msg("font families resolved")
	return l.cached, nil
}
