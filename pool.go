package silhouette

import (
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/submersibletoaster/silhouette/glyph"
	"github.com/submersibletoaster/silhouette/match"
	"github.com/submersibletoaster/silhouette/raster"
)

// task asks one worker for the best rendering among a run of offsets.
// Everything it points at is shared and must not be written to.
type task struct {
	shard   int
	offsets []Offset
	atlas   *glyph.Atlas
	img     *raster.Image
	geom    match.Geometry
	style   match.Style
	reply   chan<- reply
}

type reply struct {
	shard int
	res   match.Result
	err   error
}

// Pool is a fixed set of goroutines that live until Close.
type Pool struct {
	tasks chan task
	wait  sync.WaitGroup
	size  int
}

// NewPool starts n workers.
func NewPool(n int) *Pool {
	p := &Pool{tasks: make(chan task), size: n}
	for i := 0; i < n; i++ {
		p.wait.Add(1)
		go p.worker(i)
	}
	log.Debugf("started %d workers", n)
	return p
}

// Size is the number of workers.
func (p *Pool) Size() int {
	return p.size
}

// Close stops accepting tasks and waits for running ones to finish.
func (p *Pool) Close() {
	close(p.tasks)
	p.wait.Wait()
}

func (p *Pool) worker(id int) {
	defer p.wait.Done()
	for t := range p.tasks {
		r := run(t)
		if r.err != nil {
			log.Errorf("worker %d: %v", id, r.err)
		}
		t.reply <- r
	}
}

// run renders every offset of t and keeps the first best scoring one.
// A panic becomes an error reply so the pool survives it.
func run(t task) (r reply) {
	r.shard = t.shard
	defer func() {
		if p := recover(); p != nil {
			r.err = fmt.Errorf("shard %d: %v", t.shard, p)
		}
	}()
	m := match.New(t.atlas, t.img, t.geom, t.style)
	best := match.Result{Matched: -1}
	for _, off := range t.offsets {
		res := m.Render(float64(off.X), float64(off.Y))
		if res.Matched > best.Matched {
			best = res
		}
	}
	r.res = best
	return r
}
