package match

import (
	"runtime"
	"sync"

	"github.com/pthm-cable/touchline/vector"
)

// pendingEval captures one player's computed outcome, buffered until the
// single-threaded commit phase.
type pendingEval struct {
	res     *StateChangeResult
	corr    vector.Vector // steering correction, valid when useCorr
	useCorr bool
}

// workChunk is a range of snapshot indices for a worker to evaluate.
type workChunk struct {
	start, end int
}

// parallelState holds the persistent worker pool for tick evaluation.
type parallelState struct {
	pending    []pendingEval
	numWorkers int

	// ctx is the snapshot being evaluated, set before dispatch and read-only
	// for workers.
	ctx *TickContext

	workChan chan workChunk
	doneChan chan struct{}
	stopChan chan struct{}
	wg       sync.WaitGroup
	running  bool
}

func newParallelState() *parallelState {
	return &parallelState{
		numWorkers: runtime.GOMAXPROCS(0),
		pending:    make([]pendingEval, 0, 32),
	}
}

// startWorkers launches persistent worker goroutines.
func (p *parallelState) startWorkers(e *Engine) {
	if p.running {
		return
	}

	p.workChan = make(chan workChunk, p.numWorkers)
	p.doneChan = make(chan struct{}, p.numWorkers)
	p.stopChan = make(chan struct{})
	p.running = true

	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker(e)
	}
}

// stopWorkers signals all workers to exit and waits for them.
func (p *parallelState) stopWorkers() {
	if !p.running {
		return
	}

	close(p.stopChan)
	p.wg.Wait()
	close(p.workChan)
	close(p.doneChan)
	p.running = false
}

// worker runs in a goroutine, processing chunks until stopped.
func (p *parallelState) worker(e *Engine) {
	defer p.wg.Done()

	for {
		select {
		case <-p.stopChan:
			return
		case chunk, ok := <-p.workChan:
			if !ok {
				return
			}
			e.evaluateChunk(p.ctx, chunk.start, chunk.end)
			p.doneChan <- struct{}{}
		}
	}
}

// evaluateAll runs every player's evaluation against the snapshot, single
// threaded below the parallel threshold where goroutine overhead would
// dominate. Results are written to index-matched pending slots, so execution
// order never affects the committed outcome.
func (e *Engine) evaluateAll(ctx *TickContext) {
	n := len(ctx.Players)
	if cap(e.parallel.pending) < n {
		e.parallel.pending = make([]pendingEval, n)
	}
	e.parallel.pending = e.parallel.pending[:n]

	if n < e.cfg.Engine.ParallelThreshold {
		e.evaluateChunk(ctx, 0, n)
		return
	}

	e.parallel.ctx = ctx
	if !e.parallel.running {
		e.parallel.startWorkers(e)
	}

	chunkSize := (n + e.parallel.numWorkers - 1) / e.parallel.numWorkers
	dispatched := 0
	for w := 0; w < e.parallel.numWorkers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > n {
			end = n
		}
		if start >= end {
			continue
		}
		e.parallel.workChan <- workChunk{start: start, end: end}
		dispatched++
	}

	for i := 0; i < dispatched; i++ {
		<-e.parallel.doneChan
	}
	e.parallel.ctx = nil
}

// evaluateChunk evaluates a range of snapshot indices.
func (e *Engine) evaluateChunk(ctx *TickContext, i0, i1 int) {
	for i := i0; i < i1; i++ {
		e.parallel.pending[i] = e.evaluatePlayer(ctx, i)
	}
}
