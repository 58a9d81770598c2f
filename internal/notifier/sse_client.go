package notifier

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SSEClient represents a single specific server-sent event connection
type SSEClient struct {
	GenericClient
	w   http.ResponseWriter
	ctx context.Context
}

// BuildSSEClient build and returns a new SSEClient bound to the request lifetime
func BuildSSEClient(w http.ResponseWriter, r *http.Request) (*SSEClient, error) {
	if _, ok := w.(http.Flusher); !ok {
		return nil, errors.New("streaming unsupported")
	}
	return &SSEClient{
		GenericClient: GenericClient{
			ID:   uuid.New().String(),
			Send: make(chan []byte, 1),
		},
		w:   w,
		ctx: r.Context(),
	}, nil
}

// Write streams the pending messages until the request is cancelled
func (c *SSEClient) Write() {
	flusher := c.w.(http.Flusher)

	c.w.Header().Set("Content-Type", "text/event-stream")
	c.w.Header().Set("Cache-Control", "no-cache")
	c.w.Header().Set("Connection", "keep-alive")
	flusher.Flush()

	for {
		select {
		case <-c.ctx.Done():
			if n := C(); n != nil {
				if err := n.Unregister(c); err != nil {
					zap.L().Debug("Could not unregister sse client", zap.Error(err), zap.String("id", c.ID))
				}
			}
			return
		case message := <-c.Send:
			// SSE compatible format for javascript EventSource() ("data: <content>\n\n")
			fmt.Fprintf(c.w, "data: %s\n\n", message)
			flusher.Flush()
		}
	}
}

// Read does nothing, server-sent events are one way
func (c *SSEClient) Read() {}
