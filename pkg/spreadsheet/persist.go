package spreadsheet

import (
	"context"
	"log/slog"
	"sync"
)

// persister runs host writes one at a time, in submission order, on a
// single goroutine. Callers never wait for a write; failures are logged and
// reported but never undo local state.
type persister struct {
	ctx     context.Context
	boardID string
	log     *slog.Logger
	onErr   func(error)

	mu      sync.Mutex
	cond    *sync.Cond
	queue   []job
	pending int
	closed  bool
	done    chan struct{}
}

type job struct {
	op  string
	run func(ctx context.Context) error
}

func newPersister(ctx context.Context, boardID string, log *slog.Logger, onErr func(error)) *persister {
	p := &persister{
		ctx:     context.WithoutCancel(ctx),
		boardID: boardID,
		log:     log,
		onErr:   onErr,
		done:    make(chan struct{}),
	}
	p.cond = sync.NewCond(&p.mu)
	go p.loop()
	return p
}

// enqueue schedules fn. It returns false once the persister is closed.
func (p *persister) enqueue(op string, fn func(ctx context.Context) error) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return false
	}
	p.queue = append(p.queue, job{op: op, run: fn})
	p.pending++
	p.cond.Broadcast()
	return true
}

// flush blocks until every write enqueued so far has finished.
func (p *persister) flush() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for p.pending > 0 {
		p.cond.Wait()
	}
}

// close drains the queue and stops the worker.
func (p *persister) close() {
	p.mu.Lock()
	p.closed = true
	p.cond.Broadcast()
	p.mu.Unlock()
	<-p.done
}

func (p *persister) loop() {
	defer close(p.done)
	for {
		p.mu.Lock()
		for len(p.queue) == 0 && !p.closed {
			p.cond.Wait()
		}
		if len(p.queue) == 0 {
			p.mu.Unlock()
			return
		}
		j := p.queue[0]
		p.queue = p.queue[1:]
		p.mu.Unlock()

		p.run(j)

		p.mu.Lock()
		p.pending--
		p.cond.Broadcast()
		p.mu.Unlock()
	}
}

func (p *persister) run(j job) {
	err := j.run(p.ctx)
	if err == nil {
		p.log.Debug("persisted", slog.String("op", j.op), slog.String("board", p.boardID))
		return
	}
	opErr := NewOperationError(j.op, p.boardID, err)
	p.log.Error("persist failed",
		slog.String("op", j.op),
		slog.String("board", p.boardID),
		slog.Any("error", err),
	)
	if p.onErr != nil {
		p.onErr(opErr)
	}
}
