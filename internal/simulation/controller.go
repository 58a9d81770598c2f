package simulation

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/myrteametrics/goldenbatch-api/internal/evaluator"
	"github.com/myrteametrics/goldenbatch-api/internal/scheduler"
	"github.com/myrteametrics/goldenbatch-api/internal/simulator"
	"go.uber.org/zap"
)

var (
	// ErrInvalidArgument is returned for offsets outside the configured limits
	ErrInvalidArgument = simulator.ErrInvalidArgument
	// ErrClosed is returned when an event is sent to a closed controller
	ErrClosed = errors.New("simulation controller is closed")
)

// Status is the lifecycle state of the simulation
type Status string

const (
	StatusStopped Status = "stopped"
	StatusPlaying Status = "playing"
)

// State is the mutable part of a simulation session
type State struct {
	Cursor      int     `json:"cursor"`
	IsPlaying   bool    `json:"isPlaying"`
	ValueOffset float64 `json:"valueOffset"`
	BoundOffset float64 `json:"boundOffset"`
}

// Limits bounds the values accepted for the two user offsets
type Limits struct {
	ValueOffsetMin float64 `json:"valueOffsetMin"`
	ValueOffsetMax float64 `json:"valueOffsetMax"`
	BoundOffsetMin float64 `json:"boundOffsetMin"`
	BoundOffsetMax float64 `json:"boundOffsetMax"`
}

// Config holds everything needed to start a simulation session
type Config struct {
	Baseline         simulator.BaselineConfig
	Seed             uint64
	InitialCursor    int
	Autoplay         bool
	TickInterval     time.Duration
	SecondsPerSample int
	Limits           Limits
}

// DefaultConfig returns the settings of the overview page
func DefaultConfig() Config {
	return Config{
		Baseline:         simulator.DefaultBaselineConfig(),
		InitialCursor:    30,
		Autoplay:         true,
		TickInterval:     time.Second,
		SecondsPerSample: 10,
		Limits: Limits{
			ValueOffsetMin: -10,
			ValueOffsetMax: 10,
			BoundOffsetMin: -5,
			BoundOffsetMax: 5,
		},
	}
}

// IsValid checks if a configuration can be used to build a controller
func (cfg Config) IsValid() (bool, error) {
	if ok, err := cfg.Baseline.IsValid(); !ok {
		return false, err
	}
	if cfg.InitialCursor < 0 || cfg.InitialCursor > cfg.Baseline.SampleCount {
		return false, fmt.Errorf("%w: initial cursor %d outside [0, %d]", ErrInvalidArgument, cfg.InitialCursor, cfg.Baseline.SampleCount)
	}
	if cfg.TickInterval <= 0 {
		return false, fmt.Errorf("%w: tick interval must be positive", ErrInvalidArgument)
	}
	if cfg.SecondsPerSample <= 0 {
		return false, fmt.Errorf("%w: seconds per sample must be positive", ErrInvalidArgument)
	}
	if cfg.Limits.ValueOffsetMin > cfg.Limits.ValueOffsetMax || cfg.Limits.BoundOffsetMin > cfg.Limits.BoundOffsetMax {
		return false, fmt.Errorf("%w: offset limits are inverted", ErrInvalidArgument)
	}
	// the upper bound must never go below the lower bound
	if cfg.Limits.BoundOffsetMin < -2*cfg.Baseline.BandWidth {
		return false, fmt.Errorf("%w: bound offset minimum %.1f would invert a band of width %.1f",
			ErrInvalidArgument, cfg.Limits.BoundOffsetMin, cfg.Baseline.BandWidth)
	}
	return true, nil
}

// ModelRef identifies the model pair used for the quality prediction
type ModelRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ActiveModelFunc returns the currently active model pair, if any
type ActiveModelFunc func() (ModelRef, bool)

// Snapshot is a consistent view of the simulation, recomputed on every state change
type Snapshot struct {
	Revision       uint64                      `json:"revision"`
	Status         Status                      `json:"status"`
	State          State                       `json:"state"`
	ElapsedSeconds int                         `json:"elapsedSeconds"`
	SeriesLength   int                         `json:"seriesLength"`
	SampleCount    int                         `json:"sampleCount"`
	Window         []simulator.TrendSample     `json:"window"`
	Health         evaluator.HealthAssessment  `json:"health"`
	Level          evaluator.HealthLevel       `json:"level"`
	Alarm          evaluator.AlarmLevel        `json:"alarm"`
	Prediction     evaluator.QualityPrediction `json:"prediction"`
	ActiveModel    *ModelRef                   `json:"activeModel,omitempty"`
}

// Observer is notified with every new snapshot.
// Observers are called while the controller is locked and must not block or call back into it.
type Observer func(Snapshot)

// TaskScheduler schedules the periodic tick
type TaskScheduler interface {
	Every(name string, interval time.Duration, task func()) (*scheduler.Handle, error)
}

// Controller owns the simulation state. It is the single writer: lifecycle events and ticks
// are serialized, and read accessors only see complete states.
type Controller struct {
	// lifecycle serializes Play, Pause, Reset and Close.
	// It is never taken by the tick, so a tick handle can be stopped while holding it.
	lifecycle sync.Mutex

	mu          sync.RWMutex
	config      Config
	series      simulator.BaselineSeries
	rules       *evaluator.AlarmRules
	scheduler   TaskScheduler
	taskName    string
	state       State
	generation  uint64
	revision    uint64
	handle      *scheduler.Handle
	activeModel ActiveModelFunc
	observers   map[uint64]Observer
	nextObsID   uint64
	closed      bool
	snapshot    Snapshot
	metrics     *simulationMetrics
}

var (
	_globalControllerMu sync.RWMutex
	_globalController   *Controller
)

// C is used to access the global simulation controller singleton
func C() *Controller {
	_globalControllerMu.RLock()
	defer _globalControllerMu.RUnlock()

	controller := _globalController
	return controller
}

// ReplaceGlobals affect a new controller to the global controller singleton
func ReplaceGlobals(controller *Controller) func() {
	_globalControllerMu.Lock()
	defer _globalControllerMu.Unlock()

	prev := _globalController
	_globalController = controller
	return func() { ReplaceGlobals(prev) }
}

// New builds a controller and generates its baseline series.
// A zero seed draws the baseline noise from an unseeded source.
func New(cfg Config, sched TaskScheduler, rules *evaluator.AlarmRules) (*Controller, error) {
	if ok, err := cfg.IsValid(); !ok {
		return nil, err
	}
	if sched == nil {
		return nil, errors.New("missing task scheduler")
	}
	if rules == nil {
		rules = evaluator.DefaultAlarmRules()
	}

	var rnd *rand.Rand
	if cfg.Seed != 0 {
		rnd = rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))
	}
	series, err := simulator.GenerateBaseline(cfg.Baseline, rnd)
	if err != nil {
		return nil, err
	}

	c := &Controller{
		config:    cfg,
		series:    series,
		rules:     rules,
		scheduler: sched,
		taskName:  "simulation-tick-" + uuid.NewString(),
		state:     State{Cursor: cfg.InitialCursor},
		observers: make(map[uint64]Observer),
		metrics:   registeredMetrics(),
	}
	c.snapshot = c.computeLocked()
	c.metrics.observe(c.snapshot)
	return c, nil
}

// Start begins playing when the configuration asks for autoplay
func (c *Controller) Start() error {
	if !c.config.Autoplay {
		return nil
	}
	return c.Play()
}

// Play starts the periodic tick. Playing an already playing simulation does nothing.
func (c *Controller) Play() error {
	c.lifecycle.Lock()
	defer c.lifecycle.Unlock()
	return c.play()
}

// Pause stops the periodic tick. Once Pause returns, no tick can move the cursor.
func (c *Controller) Pause() error {
	c.lifecycle.Lock()
	defer c.lifecycle.Unlock()
	return c.pause()
}

// Toggle plays a stopped simulation and pauses a playing one
func (c *Controller) Toggle() error {
	c.lifecycle.Lock()
	defer c.lifecycle.Unlock()

	c.mu.RLock()
	playing := c.state.IsPlaying
	c.mu.RUnlock()

	if playing {
		return c.pause()
	}
	return c.play()
}

// Reset stops the simulation and brings the cursor and both offsets back to zero
func (c *Controller) Reset() error {
	c.lifecycle.Lock()
	defer c.lifecycle.Unlock()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.state = State{}
	c.generation++
	handle := c.handle
	c.handle = nil
	c.changedLocked("reset")
	c.mu.Unlock()

	if handle != nil {
		handle.Stop()
	}
	return nil
}

// SetValueOffset changes the simulated drift added to every visible value
func (c *Controller) SetValueOffset(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: value offset must be a finite number", ErrInvalidArgument)
	}
	if v < c.config.Limits.ValueOffsetMin || v > c.config.Limits.ValueOffsetMax {
		return fmt.Errorf("%w: value offset %.2f outside [%.1f, %.1f]", ErrInvalidArgument, v,
			c.config.Limits.ValueOffsetMin, c.config.Limits.ValueOffsetMax)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if c.state.ValueOffset == v {
		return nil
	}
	c.state.ValueOffset = v
	c.changedLocked("value_offset")
	return nil
}

// SetBoundOffset changes the adjustment added to every visible upper bound
func (c *Controller) SetBoundOffset(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: bound offset must be a finite number", ErrInvalidArgument)
	}
	if v < c.config.Limits.BoundOffsetMin || v > c.config.Limits.BoundOffsetMax {
		return fmt.Errorf("%w: bound offset %.2f outside [%.1f, %.1f]", ErrInvalidArgument, v,
			c.config.Limits.BoundOffsetMin, c.config.Limits.BoundOffsetMax)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if c.state.BoundOffset == v {
		return nil
	}
	c.state.BoundOffset = v
	c.changedLocked("bound_offset")
	return nil
}

// SetActiveModelSource sets the function used to fill the active model of the snapshots
func (c *Controller) SetActiveModelSource(fn ActiveModelFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.activeModel = fn
	c.changedLocked("active_model")
}

// Refresh recomputes and publishes the snapshot (ie. after the active model changed)
func (c *Controller) Refresh() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.changedLocked("refresh")
}

// Subscribe registers an observer and immediately sends it the current snapshot.
// The returned function unregisters it.
func (c *Controller) Subscribe(observer Observer) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextObsID
	c.nextObsID++
	c.observers[id] = observer
	observer(c.snapshot)

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.observers, id)
	}
}

// Attach calls fn with the current snapshot while no state change can be published.
// It lets a new viewer register and receive its first frame without missing or reordering a broadcast.
// Like an observer, fn must not block or call back into the controller.
func (c *Controller) Attach(fn func(Snapshot) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return fn(c.snapshot)
}

// Close stops the tick and releases the observers. Further events return ErrClosed.
func (c *Controller) Close() {
	c.lifecycle.Lock()
	defer c.lifecycle.Unlock()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.state.IsPlaying = false
	c.generation++
	handle := c.handle
	c.handle = nil
	c.observers = make(map[uint64]Observer)
	c.mu.Unlock()

	if handle != nil {
		handle.Stop()
	}
}

// State returns the current session state
func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Status returns the lifecycle status
func (c *Controller) Status() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot.Status
}

// Limits returns the accepted offset ranges
func (c *Controller) Limits() Limits {
	return c.config.Limits
}

// Baseline returns the unmodified baseline series (the previous batch)
func (c *Controller) Baseline() []simulator.TrendSample {
	return c.series.Samples()
}

// CurrentVisibleWindow returns the samples visible up to the cursor, with the offsets applied
func (c *Controller) CurrentVisibleWindow() []simulator.TrendSample {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return copySamples(c.snapshot.Window)
}

// CurrentHealth returns the assessment of the visible window
func (c *Controller) CurrentHealth() evaluator.HealthAssessment {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot.Health
}

// CurrentPrediction returns the quality predicted from the current health score
func (c *Controller) CurrentPrediction() evaluator.QualityPrediction {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot.Prediction
}

// Snapshot returns the last computed snapshot
func (c *Controller) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := c.snapshot
	s.Window = copySamples(s.Window)
	return s
}

func (c *Controller) play() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.state.IsPlaying {
		c.mu.Unlock()
		return nil
	}
	c.state.IsPlaying = true
	c.generation++
	gen := c.generation
	c.changedLocked("play")
	c.mu.Unlock()

	handle, err := c.scheduler.Every(c.taskName, c.config.TickInterval, func() { c.tick(gen) })
	if err != nil {
		zap.L().Error("Cannot schedule the simulation tick", zap.Error(err))

		c.mu.Lock()
		c.state.IsPlaying = false
		c.generation++
		c.changedLocked("play_failed")
		c.mu.Unlock()
		return err
	}

	c.mu.Lock()
	c.handle = handle
	c.mu.Unlock()
	return nil
}

func (c *Controller) pause() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if !c.state.IsPlaying {
		c.mu.Unlock()
		return nil
	}
	c.state.IsPlaying = false
	c.generation++
	handle := c.handle
	c.handle = nil
	c.changedLocked("pause")
	c.mu.Unlock()

	if handle != nil {
		handle.Stop()
	}
	return nil
}

// tick advances the cursor. A tick scheduled by a previous play generation is ignored.
func (c *Controller) tick(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || !c.state.IsPlaying || gen != c.generation {
		return
	}
	c.state.Cursor = simulator.Advance(c.state.Cursor, c.series.Len())
	c.metrics.ticks.Inc()
	c.changedLocked("tick")
}

// changedLocked recomputes the snapshot and notifies the observers. c.mu must be held.
func (c *Controller) changedLocked(event string) {
	c.revision++
	c.snapshot = c.computeLocked()
	c.metrics.observe(c.snapshot)
	c.metrics.stateChanges.WithLabelValues(event).Inc()

	zap.L().Debug("Simulation state changed", zap.String("event", event),
		zap.Int("cursor", c.state.Cursor), zap.Bool("playing", c.state.IsPlaying),
		zap.Uint64("revision", c.revision))

	for _, observer := range c.observers {
		observer(c.snapshot)
	}
}

func (c *Controller) computeLocked() Snapshot {
	window, err := simulator.VisibleWindow(c.series, c.state.Cursor, c.state.ValueOffset, c.state.BoundOffset)
	if err != nil {
		// cursor is always kept in [0, len] by the controller
		zap.L().Error("Cannot compute visible window", zap.Error(err))
		window = []simulator.TrendSample{}
	}

	health := evaluator.AssessHealth(window)
	status := StatusStopped
	if c.state.IsPlaying {
		status = StatusPlaying
	}

	s := Snapshot{
		Revision:       c.revision,
		Status:         status,
		State:          c.state,
		ElapsedSeconds: c.state.Cursor * c.config.SecondsPerSample,
		SeriesLength:   c.series.Len(),
		SampleCount:    len(window),
		Window:         window,
		Health:         health,
		Level:          health.Level(),
		Alarm:          c.rules.Evaluate(health, len(window)),
		Prediction:     evaluator.PredictQuality(health.Score),
	}
	if c.activeModel != nil {
		if ref, ok := c.activeModel(); ok {
			s.ActiveModel = &ref
		}
	}
	return s
}

func copySamples(samples []simulator.TrendSample) []simulator.TrendSample {
	cp := make([]simulator.TrendSample, len(samples))
	copy(cp, samples)
	return cp
}
