// Package silhouette turns images into text art. Every phase of the
// character grid within one glyph cell is rendered and the rendering whose
// glyphs cover the most image pixels wins.
package silhouette

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/submersibletoaster/silhouette/glyph"
	"github.com/submersibletoaster/silhouette/match"
	"github.com/submersibletoaster/silhouette/palette"
	"github.com/submersibletoaster/silhouette/raster"
)

// ErrWorkerTimeout is returned when workers do not answer within
// Config.Timeout.
var ErrWorkerTimeout = errors.New("workers did not finish in time")

// Converter owns a worker pool and the shared read only inputs. Convert may
// be called from several goroutines.
type Converter struct {
	atlas   *glyph.Atlas
	palette *palette.Palette
	config  Config
	pool    *Pool
}

// NewConverter validates c and starts its workers.
func NewConverter(a *glyph.Atlas, p *palette.Palette, c Config) (*Converter, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &Converter{
		atlas:   a,
		palette: p,
		config:  c,
		pool:    NewPool(c.Workers),
	}, nil
}

// Close stops the workers.
func (c *Converter) Close() {
	c.pool.Close()
}

// Config returns the configuration the converter was built with.
func (c *Converter) Config() Config {
	return c.config
}

// Prepare quantizes px to the palette. When more than MaxColors indices are
// used it quantizes again against only the most frequent ones.
func (c *Converter) Prepare(px raster.Pixels) (*raster.Image, error) {
	q := palette.NewQuantizer(c.palette, c.config.Palette, c.config.Darkness)
	img, err := raster.Quantize(px, q)
	if err != nil {
		return nil, err
	}
	if c.config.Color && img.Distinct() > c.config.MaxColors {
		keep := img.MostFrequent(c.config.MaxColors)
		log.Debugf("narrowing %d colors to %d", img.Distinct(), len(keep))
		q = q.Narrow(keep)
		if img, err = raster.Quantize(px, q); err != nil {
			return nil, err
		}
	}
	hits, misses := q.Stats()
	log.Debugf("quantized %dx%d, cache %d hits %d misses", img.Width, img.Height, hits, misses)
	img.Dominant = img.MostFrequent(raster.MaxDominant)
	return img, nil
}

// ConvertPixels is Prepare followed by Convert.
func (c *Converter) ConvertPixels(ctx context.Context, px raster.Pixels) (match.Result, error) {
	img, err := c.Prepare(px)
	if err != nil {
		return match.Result{}, err
	}
	return c.Convert(ctx, img)
}

// Convert searches every grid offset across the pool and returns the best
// rendering. Equal scores go to the earliest offset.
func (c *Converter) Convert(ctx context.Context, img *raster.Image) (match.Result, error) {
	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	geom := NewGeometry(c.atlas, img.Width, img.Height, c.config)
	style := match.Style{
		Format:   c.config.Format,
		Color:    c.config.Color,
		Palette:  c.palette,
		Wide:     c.config.Palette.Wide(),
		Dominant: img.Dominant,
	}
	shards := Partition(Offsets(c.atlas.Width, c.atlas.Height), c.pool.Size())
	log.Debugf("grid %dx%d, %d offsets over %d workers",
		geom.Cols, geom.Rows, (c.atlas.Width+1)*(c.atlas.Height+1), len(shards))

	// Buffered so late workers never block once we have given up.
	replies := make(chan reply, len(shards))
	for i, offsets := range shards {
		t := task{
			shard:   i,
			offsets: offsets,
			atlas:   c.atlas,
			img:     img,
			geom:    geom,
			style:   style,
			reply:   replies,
		}
		select {
		case c.pool.tasks <- t:
		case <-ctx.Done():
			return match.Result{}, waitError(ctx)
		}
	}

	results := make([]match.Result, len(shards))
	for range shards {
		select {
		case r := <-replies:
			if r.err != nil {
				return match.Result{}, r.err
			}
			results[r.shard] = r.res
		case <-ctx.Done():
			return match.Result{}, waitError(ctx)
		}
	}

	best := match.Result{Matched: -1}
	for _, r := range results {
		if r.Matched > best.Matched {
			best = r
		}
	}
	log.Debugf("best rendering matched %d pixels", best.Matched)
	return best, nil
}

func waitError(ctx context.Context) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrWorkerTimeout, ctx.Err())
	}
	return ctx.Err()
}
