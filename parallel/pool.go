// Package parallel runs independent jobs on a bounded set of workers.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

type Job func() error

type Stats struct {
	Processed uint64
	Failed    uint64
}

func (s Stats) Total() uint64 {
	return s.Processed + s.Failed
}

type Pool struct {
	wg        sync.WaitGroup
	work      chan Job
	close     func()
	processed atomic.Uint64
	failed    atomic.Uint64
}

// Start launches numWorkers workers, or one per usable CPU when numWorkers
// is below 1. A pool of a single worker runs jobs inline in Do.
func Start(numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	pool := &Pool{close: func() {}}
	if numWorkers > 1 {
		pool.work = make(chan Job, numWorkers)
		for range numWorkers {
			pool.wg.Go(func() {
				for job := range pool.work {
					pool.run(job)
				}
			})
		}
		pool.close = sync.OnceFunc(func() { close(pool.work) })
	}

	return pool
}

func (p *Pool) run(job Job) {
	if err := job(); err != nil {
		p.failed.Add(1)
		return
	}
	p.processed.Add(1)
}

// Do schedules job, blocking while all workers are busy. It must not be
// called after Wait.
func (p *Pool) Do(job Job) {
	if p.work == nil {
		p.run(job)
		return
	}
	p.work <- job
}

// Wait stops accepting jobs, waits for the scheduled ones to finish and
// reports how many succeeded and failed.
func (p *Pool) Wait() Stats {
	p.close()
	p.wg.Wait()
	return Stats{
		Processed: p.processed.Load(),
		Failed:    p.failed.Load(),
	}
}
