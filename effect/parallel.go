package effect

import (
	"runtime"
	"sync"
)

// parallelRowThreshold is the minimum row count to use parallel processing.
// Below this, single-threaded is faster due to goroutine overhead.
const parallelRowThreshold = 64

// rowChunk represents a band of field rows for a worker to process.
type rowChunk struct {
	y0, y1 int
}

// rowPool runs per-row work across persistent worker goroutines. Both
// pipeline passes are row-independent, so splitting the field into
// horizontal bands needs no locking.
type rowPool struct {
	numWorkers int

	workChan chan rowChunk  // sends work to workers
	doneChan chan struct{}  // workers signal completion
	stopChan chan struct{}  // signals workers to exit
	wg       sync.WaitGroup // tracks active workers
	running  bool           // true if workers are running

	// fn is set by run before dispatch and read by workers. Safe because
	// run is only called from the single tick goroutine and waits for all
	// chunks before returning.
	fn func(y0, y1 int)
}

func newRowPool() *rowPool {
	return &rowPool{
		numWorkers: runtime.GOMAXPROCS(0),
	}
}

// start launches persistent worker goroutines.
func (p *rowPool) start() {
	if p.running {
		return
	}

	p.workChan = make(chan rowChunk, p.numWorkers)
	p.doneChan = make(chan struct{}, p.numWorkers)
	p.stopChan = make(chan struct{})
	p.running = true

	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// stop signals all workers to exit and waits for them.
func (p *rowPool) stop() {
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
func (p *rowPool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.stopChan:
			return
		case chunk, ok := <-p.workChan:
			if !ok {
				return
			}
			p.fn(chunk.y0, chunk.y1)
			p.doneChan <- struct{}{}
		}
	}
}

// run executes fn over [0, rows), split into bands. Small fields run
// single-threaded.
func (p *rowPool) run(rows int, fn func(y0, y1 int)) {
	if rows <= 0 {
		return
	}

	if rows < parallelRowThreshold {
		fn(0, rows)
		return
	}

	if !p.running {
		p.start()
	}

	p.fn = fn

	numWorkers := p.numWorkers
	chunkSize := (rows + numWorkers - 1) / numWorkers

	chunksDispatched := 0
	for w := 0; w < numWorkers; w++ {
		y0 := w * chunkSize
		y1 := y0 + chunkSize
		if y1 > rows {
			y1 = rows
		}
		if y0 >= y1 {
			continue
		}

		p.workChan <- rowChunk{y0: y0, y1: y1}
		chunksDispatched++
	}

	// Wait for all chunks to complete
	for i := 0; i < chunksDispatched; i++ {
		<-p.doneChan
	}
}
