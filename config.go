package silhouette

import (
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/submersibletoaster/silhouette/match"
	"github.com/submersibletoaster/silhouette/palette"
)

// ErrConfig is wrapped by every Config validation failure.
var ErrConfig = errors.New("invalid configuration")

// Config holds everything that shapes a conversion.
type Config struct {
	FontSize   float64 // points
	LineHeight float64 // relative to FontSize
	Scale      float64 // input image scaling
	Palette    palette.Subset
	MaxColors  int
	Darkness   float64 // L* 0..100
	Color      bool
	Format     match.Format
	Workers    int
	Timeout    time.Duration // bound on waiting for workers, 0 waits forever
}

// DefaultConfig returns a colored text configuration using every logical
// processor.
func DefaultConfig() Config {
	return Config{
		FontSize:   12,
		LineHeight: 1.2,
		Scale:      1,
		Palette:    palette.Extended240,
		MaxColors:  match.Text.MaxColors(),
		Darkness:   palette.DefaultDarkness,
		Color:      true,
		Format:     match.Text,
		Workers:    runtime.NumCPU(),
	}
}

// Validate reports the first out of range setting.
func (c Config) Validate() error {
	switch {
	case c.FontSize <= 0:
		return fmt.Errorf("%w: font size must be > 0", ErrConfig)
	case c.LineHeight <= 0:
		return fmt.Errorf("%w: line height must be > 0", ErrConfig)
	case c.Scale <= 0:
		return fmt.Errorf("%w: scale must be > 0", ErrConfig)
	case c.Format < match.Text || c.Format > match.Neofetch:
		return fmt.Errorf("%w: unknown format %v", ErrConfig, c.Format)
	case c.MaxColors < 1 || c.MaxColors > c.Format.MaxColors():
		return fmt.Errorf("%w: colors is restricted to 1--%d for %v output",
			ErrConfig, c.Format.MaxColors(), c.Format)
	case c.Darkness < 0 || c.Darkness > 100:
		return fmt.Errorf("%w: darkness must be within 0--100", ErrConfig)
	case c.Workers < 1:
		return fmt.Errorf("%w: processing requires a minimum of one thread", ErrConfig)
	case c.Workers > runtime.NumCPU():
		return fmt.Errorf("%w: thread count cannot exceed the number of logical processors (%d)",
			ErrConfig, runtime.NumCPU())
	case c.Timeout < 0:
		return fmt.Errorf("%w: timeout must not be negative", ErrConfig)
	}
	if _, err := palette.ParseSubset(int(c.Palette)); err != nil {
		return fmt.Errorf("%w: %v", ErrConfig, err)
	}
	return nil
}
