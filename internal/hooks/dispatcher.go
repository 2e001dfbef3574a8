package hooks

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Defaults for Config.
const (
	DefaultTimeout   = 5 * time.Second
	DefaultQueueSize = 32
)

// Config holds configuration options for a Dispatcher.
type Config struct {
	Dir       string
	Timeout   time.Duration
	QueueSize int
	Logger    *zap.SugaredLogger
}

// Dispatcher runs hooks on a background goroutine so the game loop never
// waits for them.
type Dispatcher struct {
	manager *Manager
	exec    *Executor
	log     *zap.SugaredLogger
	ctx     context.Context
	cancel  context.CancelFunc

	mu     sync.Mutex
	queue  chan Event
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher discovers the hooks in config.Dir and starts the worker.
func NewDispatcher(config Config) (*Dispatcher, error) {
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}
	if config.QueueSize <= 0 {
		config.QueueSize = DefaultQueueSize
	}
	log := config.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	m := NewManager(config.Dir)
	if err := m.Discover(); err != nil {
		return nil, err
	}
	for _, h := range m.List() {
		log.Infow("hook loaded", "name", h.Manifest.Name, "events", h.Manifest.Events)
	}

	ctx, cancel := context.WithCancel(context.Background())
	d := &Dispatcher{
		manager: m,
		exec:    NewExecutor(config.Timeout),
		log:     log,
		ctx:     ctx,
		cancel:  cancel,
		queue:   make(chan Event, config.QueueSize),
	}
	d.wg.Add(1)
	go d.run()
	return d, nil
}

// Hooks returns the discovered hooks.
func (d *Dispatcher) Hooks() []*Hook {
	return d.manager.List()
}

// Notify queues ev for every subscribed hook. It never blocks; events
// beyond the queue capacity and events after Close are dropped.
func (d *Dispatcher) Notify(ev Event) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	select {
	case d.queue <- ev:
	default:
		d.log.Warnw("hook queue full, dropping event", "event", ev.Kind)
	}
}

// Close runs the queued events and stops the worker. Hooks still running
// after timeout are killed.
func (d *Dispatcher) Close(timeout time.Duration) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
		d.cancel()
		<-done
	}
	d.cancel()
}

func (d *Dispatcher) run() {
	defer d.wg.Done()
	for ev := range d.queue {
		for _, h := range d.manager.For(ev.Kind) {
			resp, err := d.exec.Execute(d.ctx, h, ev)
			switch {
			case err != nil:
				d.log.Warnw("hook failed", "hook", h.Manifest.Name, "event", ev.Kind, "error", err)
			case !resp.Success:
				d.log.Warnw("hook reported failure", "hook", h.Manifest.Name, "event", ev.Kind, "error", resp.Error)
			default:
				d.log.Debugw("hook ran", "hook", h.Manifest.Name, "event", ev.Kind)
			}
		}
	}
}
