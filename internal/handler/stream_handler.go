package handler

import (
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/myrteametrics/goldenbatch-api/internal/notifier"
	"github.com/myrteametrics/goldenbatch-api/internal/simulation"
	"github.com/myrteametrics/goldenbatch-api/pkg/utils/httputil"
	"go.uber.org/zap"
)

const (
	// MessageTypeSnapshot is pushed to every viewer after each simulation change
	MessageTypeSnapshot = "snapshot"
	// MessageTypeError answers a viewer command that could not be applied
	MessageTypeError = "error"
)

// ErrRateLimited is sent back to a viewer sending commands above its budget
var ErrRateLimited = errors.New("rate limit exceeded")

// ViewerCommand is a simulation event sent by a viewer over the websocket
type ViewerCommand struct {
	Action string   `json:"action"`
	Value  *float64 `json:"value,omitempty"`
}

// SnapshotMessage wraps a snapshot in a notifier message
func SnapshotMessage(s simulation.Snapshot) notifier.Message {
	return notifier.Message{Type: MessageTypeSnapshot, Data: s}
}

// BroadcastSnapshot is the simulation observer pushing every snapshot to the connected viewers
func BroadcastSnapshot(s simulation.Snapshot) {
	if n := notifier.C(); n != nil {
		n.Broadcast(SnapshotMessage(s))
	}
}

// CommandLimiter throttles the commands of a client
type CommandLimiter interface {
	Allow(key string) bool
}

var (
	_viewerLimiterMu sync.RWMutex
	_viewerLimiter   CommandLimiter
)

// ReplaceViewerLimiter sets the limiter applied to the commands received on the websocket stream
func ReplaceViewerLimiter(limiter CommandLimiter) func() {
	_viewerLimiterMu.Lock()
	defer _viewerLimiterMu.Unlock()

	prev := _viewerLimiter
	_viewerLimiter = limiter
	return func() { ReplaceViewerLimiter(prev) }
}

func viewerLimiter() CommandLimiter {
	_viewerLimiterMu.RLock()
	defer _viewerLimiterMu.RUnlock()
	return _viewerLimiter
}

// HandleViewerMessage applies a command received from a viewer.
// The resulting snapshot reaches every viewer through the simulation observer.
func HandleViewerMessage(client notifier.Client, message []byte) {
	c := simulation.C()
	n := notifier.C()
	if c == nil || n == nil {
		return
	}

	var cmd ViewerCommand
	if err := json.Unmarshal(message, &cmd); err != nil {
		zap.L().Warn("Viewer command json decoding", zap.Error(err), zap.String("client", client.GetID()))
		n.SendMessage(notifier.Message{Type: MessageTypeError, Data: "invalid command"}, client)
		return
	}

	if cmd.Action == "snapshot" {
		_ = c.Attach(func(s simulation.Snapshot) error {
			n.SendMessage(SnapshotMessage(s), client)
			return nil
		})
		return
	}
	if l := viewerLimiter(); l != nil && !l.Allow("viewer:"+client.GetID()) {
		zap.L().Warn("Rate limit exceeded", zap.String("client", client.GetID()), zap.String("action", cmd.Action))
		n.SendMessage(notifier.Message{Type: MessageTypeError, Data: ErrRateLimited.Error()}, client)
		return
	}
	if err := applyCommand(c, cmd); err != nil {
		zap.L().Warn("Viewer command rejected", zap.Error(err), zap.String("client", client.GetID()), zap.String("action", cmd.Action))
		n.SendMessage(notifier.Message{Type: MessageTypeError, Data: err.Error()}, client)
	}
}

func applyCommand(c *simulation.Controller, cmd ViewerCommand) error {
	switch cmd.Action {
	case "play":
		return c.Play()
	case "pause":
		return c.Pause()
	case "toggle":
		return c.Toggle()
	case "reset":
		return c.Reset()
	case "value_offset", "bound_offset":
		if cmd.Value == nil {
			return errors.New("missing value")
		}
		if cmd.Action == "value_offset" {
			return c.SetValueOffset(*cmd.Value)
		}
		return c.SetBoundOffset(*cmd.Value)
	}
	return fmt.Errorf("unknown action %q", cmd.Action)
}

// SimulationWebsocket godoc
//
//	@Id				SimulationWebsocket
//
//	@Summary		Stream the live simulation over a websocket
//	@Description	Push a snapshot on every simulation change. Viewers can send commands such as
//	@Description	<pre>{"action":"play"}</pre> or <pre>{"action":"value_offset","value":4.5}</pre>
//	@Tags			Simulation
//	@Produce		json
//	@Success		101	"Switching Protocols"
//	@Failure		503	{object}	httputil.APIError	"Service Unavailable"
//	@Router			/simulation/ws [get]
func SimulationWebsocket(w http.ResponseWriter, r *http.Request) {
	c, ok := controller(w, r)
	if !ok {
		return
	}
	n := notifier.C()
	if n == nil {
		httputil.Error(w, r, httputil.ErrAPIServiceUnavailable, errors.New("notifier is not running"))
		return
	}

	client, err := notifier.BuildWebsocketClient(w, r)
	if err != nil {
		zap.L().Error("Build new WS Client", zap.Error(err))
		return
	}

	err = c.Attach(func(s simulation.Snapshot) error {
		if err := n.Register(client); err != nil {
			return err
		}
		n.SendMessage(SnapshotMessage(s), client)
		return nil
	})
	if err != nil {
		zap.L().Error("Add new WS Client to manager", zap.Error(err))
		client.Close()
		return
	}

	go client.Write()
	go client.Read()
}

// SimulationSSE godoc
//
//	@Id				SimulationSSE
//
//	@Summary		Stream the live simulation with server-sent events
//	@Description	Push a snapshot on every simulation change, for read-only viewers
//	@Tags			Simulation
//	@Produce		text/event-stream
//	@Success		200	"Status OK"
//	@Failure		503	{object}	httputil.APIError	"Service Unavailable"
//	@Router			/simulation/stream [get]
func SimulationSSE(w http.ResponseWriter, r *http.Request) {
	c, ok := controller(w, r)
	if !ok {
		return
	}
	n := notifier.C()
	if n == nil {
		httputil.Error(w, r, httputil.ErrAPIServiceUnavailable, errors.New("notifier is not running"))
		return
	}

	client, err := notifier.BuildSSEClient(w, r)
	if err != nil {
		zap.L().Error("Build new SSE Client", zap.Error(err))
		httputil.Error(w, r, httputil.ErrAPIProcessError, err)
		return
	}

	err = c.Attach(func(s simulation.Snapshot) error {
		if err := n.Register(client); err != nil {
			return err
		}
		n.SendMessage(SnapshotMessage(s), client)
		return nil
	})
	if err != nil {
		zap.L().Error("Add new SSE Client to manager", zap.Error(err))
		httputil.Error(w, r, httputil.ErrAPIProcessError, err)
		return
	}

	client.Write()
}
