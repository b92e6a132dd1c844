package game

import (
	"runtime"
	"sync"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/swarmsketch/components"
	"github.com/pthm-cable/swarmsketch/systems"
	"github.com/pthm-cable/swarmsketch/vmath"
)

// parallelThreshold is the minimum population to use parallel processing.
// Below this, single-threaded is faster due to goroutine overhead.
const parallelThreshold = 64

// intent captures computed outputs to apply after the compute phase.
type intent struct {
	Pos       vmath.Vec2
	Vel       vmath.Vec2
	Neighbors int
}

// workerScratch holds per-worker reusable buffers.
type workerScratch struct {
	Neighbors []systems.Neighbor
}

// workChunk represents a range of boids for a worker to process.
type workChunk struct {
	start, end int
}

// parallelState holds the snapshot, the intents and the worker pool.
type parallelState struct {
	entities  []ecs.Entity
	states    []systems.BoidState
	positions []vmath.Vec2 // states[i].Pos, laid out for the neighbour index
	intents   []intent

	scratches  []workerScratch
	numWorkers int
	threshold  int

	// Worker pool channels
	workChan chan workChunk // sends work to workers
	doneChan chan struct{}  // workers signal completion
	stopChan chan struct{}  // signals workers to exit
	wg       sync.WaitGroup // tracks active workers
	running  bool           // true if workers are running
}

func newParallelState(workers, threshold int) *parallelState {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if threshold <= 0 {
		threshold = parallelThreshold
	}
	scratches := make([]workerScratch, workers)
	for i := range scratches {
		scratches[i].Neighbors = make([]systems.Neighbor, 0, 64)
	}
	return &parallelState{
		numWorkers: workers,
		threshold:  threshold,
		scratches:  scratches,
	}
}

// snapshot copies every boid into the read-only arrays used by the
// compute phase and sizes the intents to match.
func (p *parallelState) snapshot(filter *ecs.Filter2[components.Position, components.Velocity]) {
	p.entities = p.entities[:0]
	p.states = p.states[:0]
	p.positions = p.positions[:0]

	query := filter.Query()
	for query.Next() {
		pos, vel := query.Get()
		p.entities = append(p.entities, query.Entity())
		p.states = append(p.states, systems.BoidState{Pos: pos.Vec(), Vel: vel.Vec()})
		p.positions = append(p.positions, pos.Vec())
	}

	n := len(p.states)
	if cap(p.intents) < n {
		p.intents = make([]intent, n)
	}
	p.intents = p.intents[:n]
}

// startWorkers launches persistent worker goroutines.
func (p *parallelState) startWorkers(s *FlockSimulation) {
	if p.running {
		return
	}

	p.workChan = make(chan workChunk, p.numWorkers)
	p.doneChan = make(chan struct{}, p.numWorkers)
	p.stopChan = make(chan struct{})
	p.running = true

	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker(s, i)
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
func (p *parallelState) worker(s *FlockSimulation, workerID int) {
	defer p.wg.Done()
	scratch := &p.scratches[workerID]

	for {
		select {
		case <-p.stopChan:
			return
		case chunk, ok := <-p.workChan:
			if !ok {
				return
			}
			s.computeChunk(chunk.start, chunk.end, scratch)
			p.doneChan <- struct{}{}
		}
	}
}

// computeParallel dispatches work to the worker pool and waits for it.
func (s *FlockSimulation) computeParallel(n int) {
	p := s.parallel
	if !p.running {
		p.startWorkers(s)
	}

	chunkSize := (n + p.numWorkers - 1) / p.numWorkers

	chunksDispatched := 0
	for w := 0; w < p.numWorkers; w++ {
		start := w * chunkSize
		end := min(start+chunkSize, n)
		if start >= end {
			continue
		}

		p.workChan <- workChunk{start: start, end: end}
		chunksDispatched++
	}

	for i := 0; i < chunksDispatched; i++ {
		<-p.doneChan
	}
}
