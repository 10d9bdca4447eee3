// Package worker runs the batched event writes for stubble-ingest.
package worker

import (
	"context"
	"sync"

	"github.com/hsgill/go-stubble-watch/internal/models"
)

// Batch is one chunk of events handed to a worker.
type Batch []models.FireEvent

type ProcessFunc func(ctx context.Context, batch Batch) error

type Pool struct {
	numWorkers int
	batches    chan Batch
	processor  ProcessFunc
	wg         sync.WaitGroup
}

func NewPool(numWorkers int, bufferSize int, processor ProcessFunc) *Pool {
	return &Pool{
		numWorkers: numWorkers,
		batches:    make(chan Batch, bufferSize),
		processor:  processor,
	}
}

func (p *Pool) Start(ctx context.Context) {
	for i := 1; i <= p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker(ctx)
	}
}

func (p *Pool) worker(ctx context.Context) {
	defer p.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case batch, ok := <-p.batches:
			if !ok {
				return
			}
			p.processor(ctx, batch)
		}
	}
}

func (p *Pool) Submit(batch Batch) {
	p.batches <- batch
}

// Stop closes the queue and waits for in-flight batches to finish.
func (p *Pool) Stop() {
	close(p.batches)
	p.wg.Wait()
}
