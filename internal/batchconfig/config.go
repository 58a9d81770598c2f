package batchconfig

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"
)

// ErrInvalidConfig is returned when a batch configuration does not pass validation
var ErrInvalidConfig = errors.New("invalid batch configuration")

// Config holds the batch identification and signaling settings
type Config struct {
	IDFormat           string `json:"idFormat"`
	DefaultDurationMin int    `json:"defaultDurationMin"`
	StartSignalNodeID  string `json:"startSignalNodeId"`
	EndSignalNodeID    string `json:"endSignalNodeId"`
}

// Default returns the settings of a fresh installation
func Default() Config {
	return Config{
		IDFormat:           "BATCH-{YYYY}-{MM}-{SEQ:000}",
		DefaultDurationMin: 120,
		StartSignalNodeID:  "ns=2;s=System.BatchStart",
		EndSignalNodeID:    "ns=2;s=System.BatchEnd",
	}
}

// IsValid checks if a configuration is valid and has no missing mandatory fields
func (c Config) IsValid() (bool, error) {
	if !strings.Contains(c.IDFormat, "{SEQ") {
		return false, fmt.Errorf("%w: idFormat must contain a {SEQ} placeholder", ErrInvalidConfig)
	}
	if c.DefaultDurationMin < 1 || c.DefaultDurationMin > 1440 {
		return false, fmt.Errorf("%w: defaultDurationMin %d outside [1, 1440]", ErrInvalidConfig, c.DefaultDurationMin)
	}
	if c.StartSignalNodeID == "" {
		return false, fmt.Errorf("%w: missing startSignalNodeId", ErrInvalidConfig)
	}
	if c.EndSignalNodeID == "" {
		return false, fmt.Errorf("%w: missing endSignalNodeId", ErrInvalidConfig)
	}
	return true, nil
}

var seqPattern = regexp.MustCompile(`\{SEQ(?::(0+))?\}`)

// FormatBatchID builds a batch identifier from a pattern.
// {YYYY}, {MM} and {DD} are replaced by the date of t, {SEQ} by seq
// and {SEQ:000} by seq zero padded to the number of zeros.
func FormatBatchID(format string, t time.Time, seq int) string {
	id := strings.NewReplacer(
		"{YYYY}", fmt.Sprintf("%04d", t.Year()),
		"{MM}", fmt.Sprintf("%02d", int(t.Month())),
		"{DD}", fmt.Sprintf("%02d", t.Day()),
	).Replace(format)

	return seqPattern.ReplaceAllStringFunc(id, func(placeholder string) string {
		m := seqPattern.FindStringSubmatch(placeholder)
		if m[1] == "" {
			return strconv.Itoa(seq)
		}
		return fmt.Sprintf("%0*d", len(m[1]), seq)
	})
}

// Holder keeps the current configuration in memory
type Holder struct {
	mu     sync.RWMutex
	config Config
}

// NewHolder returns a holder initialized with a configuration
func NewHolder(config Config) *Holder {
	return &Holder{config: config}
}

// Get returns the current configuration
func (h *Holder) Get() Config {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.config
}

// Set validates and replaces the current configuration
func (h *Holder) Set(config Config) error {
	if ok, err := config.IsValid(); !ok {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.config = config
	return nil
}

// NextID formats a batch id with the current configuration
func (h *Holder) NextID(t time.Time, seq int) string {
	return FormatBatchID(h.Get().IDFormat, t, seq)
}

var (
	_globalHolderMu sync.RWMutex
	_globalHolder   *Holder
)

// H is used to access the global configuration holder singleton
func H() *Holder {
	_globalHolderMu.RLock()
	defer _globalHolderMu.RUnlock()

	holder := _globalHolder
	return holder
}

// ReplaceGlobals affect a new holder to the global holder singleton
func ReplaceGlobals(holder *Holder) func() {
	_globalHolderMu.Lock()
	defer _globalHolderMu.Unlock()

	prev := _globalHolder
	_globalHolder = holder
	return func() { ReplaceGlobals(prev) }
}
