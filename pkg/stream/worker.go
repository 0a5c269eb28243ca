// Package stream feeds live frames through the filter engine. A Worker
// keeps only the newest frame and a Renderer turns one frame into a mono or
// side-by-side stereo image.
package stream

import (
	"context"
	"image"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/dixieflatline76/EyeSim/util"
	"github.com/dixieflatline76/EyeSim/util/log"
)

// Frame is one captured image.
type Frame struct {
	Seq      uint64
	Image    image.Image
	Captured time.Time
}

// Result is the processed form of a Frame.
type Result struct {
	Seq     uint64
	Image   *image.NRGBA
	Elapsed time.Duration
	Err     error
}

// ProcessFunc turns a frame into its output image.
type ProcessFunc func(ctx context.Context, f Frame) (*image.NRGBA, error)

// WorkerOptions configures a Worker.
type WorkerOptions struct {
	// MaxFPS caps accepted frames per second. Zero or less means no cap.
	MaxFPS float64
	// ResultBuffer is the capacity of the results channel.
	ResultBuffer int
}

// Stats counts what happened to submitted frames.
type Stats struct {
	Submitted uint64
	Processed uint64
	Dropped   uint64 // replaced while pending or over the rate cap
	Discarded uint64 // finished after a newer frame arrived
}

// Worker processes frames one at a time. A frame submitted while another is
// pending replaces it; a result finished after a newer frame arrived is
// thrown away.
type Worker struct {
	id         uuid.UUID
	pending    chan Frame
	resultChan chan Result
	workerWg   sync.WaitGroup
	ctx        context.Context
	cancel     context.CancelFunc
	process    ProcessFunc
	limiter    *rate.Limiter
	submitMu   sync.Mutex

	started   *util.SafeFlag
	stopped   *util.SafeFlag
	submitted *util.SafeCounter
	processed *util.SafeCounter
	dropped   *util.SafeCounter
	discarded *util.SafeCounter
}

// NewWorker creates a worker that runs process on the newest frame.
func NewWorker(process ProcessFunc, opts WorkerOptions) *Worker {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Worker{
		id:         uuid.New(),
		pending:    make(chan Frame, 1),
		resultChan: make(chan Result, max(opts.ResultBuffer, 1)),
		ctx:        ctx,
		cancel:     cancel,
		process:    process,
		started:    util.NewSafeFlag(false),
		stopped:    util.NewSafeFlag(false),
		submitted:  util.NewSafeCounter(),
		processed:  util.NewSafeCounter(),
		dropped:    util.NewSafeCounter(),
		discarded:  util.NewSafeCounter(),
	}
	if opts.MaxFPS > 0 {
		w.limiter = rate.NewLimiter(rate.Limit(opts.MaxFPS), 1)
	}
	return w
}

// ID identifies the worker's session in logs.
func (w *Worker) ID() string {
	return w.id.String()
}

// Start launches the processing goroutine. Further calls do nothing.
func (w *Worker) Start() {
	if !w.started.TrySet() {
		return
	}
	log.Printf("Starting frame worker %s", w.id)
	w.workerWg.Add(1)
	go w.loop()
}

// Stop cancels processing, waits for the goroutine to finish and closes the
// results channel.
func (w *Worker) Stop() {
	if !w.stopped.TrySet() {
		return
	}
	log.Println("Stopping frame worker...")
	w.cancel()
	w.workerWg.Wait()
	close(w.resultChan)
	s := w.Stats()
	log.Printf("Frame worker %s stopped: %d submitted, %d processed, %d dropped, %d discarded",
		w.id, s.Submitted, s.Processed, s.Dropped, s.Discarded)
}

// Results delivers processed frames in order. It is closed by Stop.
func (w *Worker) Results() <-chan Result {
	return w.resultChan
}

// Submit hands f to the worker without blocking. It returns false if the
// worker is stopped or the frame exceeds the rate cap.
func (w *Worker) Submit(f Frame) bool {
	if w.ctx.Err() != nil {
		return false
	}
	w.submitted.Increment()
	if w.limiter != nil && !w.limiter.Allow() {
		w.dropped.Increment()
		return false
	}

	w.submitMu.Lock()
	defer w.submitMu.Unlock()
	select {
	case old := <-w.pending:
		w.dropped.Increment()
		log.Debugf("worker %s: frame %d replaced by %d", w.id, old.Seq, f.Seq)
	default:
	}
	// Only Submit sends and it holds submitMu, so the slot is free.
	w.pending <- f
	return true
}

// Stats returns a snapshot of the frame counters.
func (w *Worker) Stats() Stats {
	return Stats{
		Submitted: w.submitted.Value(),
		Processed: w.processed.Value(),
		Dropped:   w.dropped.Value(),
		Discarded: w.discarded.Value(),
	}
}

func (w *Worker) loop() {
	defer w.workerWg.Done()
	log.Debugf("Worker %s started", w.id)

	for {
		select {
		case <-w.ctx.Done():
			log.Debugf("Worker %s stopping", w.id)
			return
		case f := <-w.pending:
			start := time.Now()
			img, err := w.process(w.ctx, f)
			if w.ctx.Err() != nil {
				return
			}
			if len(w.pending) > 0 {
				w.discarded.Increment()
				continue
			}
			w.processed.Increment()
			select {
			case w.resultChan <- Result{Seq: f.Seq, Image: img, Elapsed: time.Since(start), Err: err}:
			case <-w.ctx.Done():
				return
			}
		}
	}
}
