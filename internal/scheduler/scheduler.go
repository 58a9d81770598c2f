package scheduler

import (
	"errors"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// InternalScheduler runs the periodic tasks of the engine (ie. the live simulation tick)
type InternalScheduler struct {
	mu   sync.RWMutex
	C    *cron.Cron
	Jobs map[string]*Handle
}

var (
	_globalInternalSchedulerMu sync.RWMutex
	_globalInternalScheduler   *InternalScheduler
)

// S is used to access the global scheduler singleton
func S() *InternalScheduler {
	_globalInternalSchedulerMu.RLock()
	defer _globalInternalSchedulerMu.RUnlock()

	scheduler := _globalInternalScheduler
	return scheduler
}

// ReplaceGlobals affect a new scheduler to the global scheduler singleton
func ReplaceGlobals(scheduler *InternalScheduler) func() {
	_globalInternalSchedulerMu.Lock()
	defer _globalInternalSchedulerMu.Unlock()

	prev := _globalInternalScheduler
	_globalInternalScheduler = scheduler
	return func() { ReplaceGlobals(prev) }
}

// NewScheduler returns a pointer to a new instance of InternalScheduler.
// Overlapping executions of the same job are skipped.
func NewScheduler() *InternalScheduler {
	logger := cronLogger{}
	c := cron.New(
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)
	return &InternalScheduler{
		C:    c,
		Jobs: make(map[string]*Handle),
	}
}

// Handle is returned for every scheduled task and is the only way to cancel it
type Handle struct {
	name      string
	scheduler *InternalScheduler

	mu      sync.Mutex
	entryID cron.EntryID
	stopped bool
	task    func()
}

// Run executes the task unless the handle has been stopped
func (h *Handle) Run() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.stopped {
		return
	}
	h.task()
}

// Stop cancels the task. Once Stop returns, the task will never be executed again
// and any execution that was in flight has completed.
// Stop must not be called from inside the task itself.
func (h *Handle) Stop() {
	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		return
	}
	h.stopped = true
	h.mu.Unlock()

	h.scheduler.remove(h)
}

// Stopped tells if the handle has been cancelled
func (h *Handle) Stopped() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.stopped
}

// Every schedules a task at a fixed interval (cron constant delay, one second minimum).
// An existing task with the same name is stopped and replaced.
func (s *InternalScheduler) Every(name string, interval time.Duration, task func()) (*Handle, error) {
	if task == nil {
		return nil, errors.New("missing task")
	}
	if interval <= 0 {
		return nil, errors.New("interval must be positive")
	}

	s.mu.Lock()
	prev, exists := s.Jobs[name]
	s.mu.Unlock()
	if exists {
		prev.Stop()
	}

	handle := &Handle{
		name:      name,
		scheduler: s,
		task:      task,
	}

	zap.L().Info("Adding new schedule", zap.String("name", name), zap.Duration("interval", interval))

	// handle.mu is held until the entry id is known, so a first tick waits for it
	handle.mu.Lock()
	handle.entryID = s.C.Schedule(cron.Every(interval), handle)
	handle.mu.Unlock()

	s.mu.Lock()
	s.Jobs[name] = handle
	s.mu.Unlock()

	return handle, nil
}

// Get returns the active handle registered under a name
func (s *InternalScheduler) Get(name string) (*Handle, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	handle, ok := s.Jobs[name]
	return handle, ok
}

// Start starts the underlying cron in its own goroutine
func (s *InternalScheduler) Start() {
	s.C.Start()
}

// Stop stops every scheduled task and waits for running ones
func (s *InternalScheduler) Stop() {
	s.mu.RLock()
	handles := make([]*Handle, 0, len(s.Jobs))
	for _, h := range s.Jobs {
		handles = append(handles, h)
	}
	s.mu.RUnlock()

	for _, h := range handles {
		h.Stop()
	}
	<-s.C.Stop().Done()
}

func (s *InternalScheduler) remove(h *Handle) {
	zap.L().Info("Removing schedule", zap.String("name", h.name))

	h.mu.Lock()
	entryID := h.entryID
	h.mu.Unlock()
	s.C.Remove(entryID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if current, ok := s.Jobs[h.name]; ok && current == h {
		delete(s.Jobs, h.name)
	}
}

// cronLogger routes cron internal logs to zap
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	zap.S().Debugw(msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	zap.S().Errorw(msg, append(keysAndValues, "error", err)...)
}
