package notifier

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	pingPeriod = 10 * time.Second
	writeWait  = 5 * time.Second
)

// WebsocketClient structure represents a specific websocket connection, used by the manager
type WebsocketClient struct {
	GenericClient
	Socket *websocket.Conn

	done      chan struct{}
	closeOnce sync.Once
}

// NewWebsocketClient creates a new client object containing the new connection
func NewWebsocketClient(conn *websocket.Conn) *WebsocketClient {
	return &WebsocketClient{
		GenericClient: GenericClient{
			ID:   uuid.New().String(),
			Send: make(chan []byte, 1),
		},
		Socket: conn,
		done:   make(chan struct{}),
	}
}

var upgrader = &websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// BuildWebsocketClient renders a new client after getting a new connection established
func BuildWebsocketClient(w http.ResponseWriter, r *http.Request) (*WebsocketClient, error) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, err
	}
	return NewWebsocketClient(conn), nil
}

// Write pushes the pending messages on the client socket until it is closed
func (c *WebsocketClient) Write() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		destroyWebsocketClient(c)
	}()

	for {
		select {
		case <-c.done:
			return
		case message := <-c.Send:
			_ = c.Socket.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Socket.WriteMessage(websocket.TextMessage, message); err != nil {
				zap.L().Debug("Write socket", zap.Error(err), zap.String("client", c.ID))
				return
			}
		case <-ticker.C:
			// Send the Ping and return to close conn whether an error occurs
			_ = c.Socket.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Socket.WriteMessage(websocket.PingMessage, []byte{}); err != nil {
				return
			}
		}
	}
}

// Read forwards the messages sent by the viewer to the notifier
func (c *WebsocketClient) Read() {
	defer func() {
		destroyWebsocketClient(c)
	}()

	for {
		_, message, err := c.Socket.ReadMessage()
		if err != nil {
			var closeError *websocket.CloseError
			switch {
			case errors.As(err, &closeError):
				if closeError.Code != websocket.CloseNormalClosure && closeError.Code != websocket.CloseGoingAway {
					zap.L().Error("Read socket", zap.Error(err))
				}
			default:
				select {
				case <-c.done:
				default:
					zap.L().Error("Read socket", zap.Error(err))
				}
			}
			return
		}
		zap.L().Debug("message received", zap.ByteString("message", message), zap.String("client", c.ID))
		if n := C(); n != nil {
			n.Receive(c, message)
		}
	}
}

// Close stops both loops and closes the socket
func (c *WebsocketClient) Close() {
	destroyWebsocketClient(c)
}

func destroyWebsocketClient(c *WebsocketClient) {
	if c == nil {
		return
	}
	c.closeOnce.Do(func() {
		close(c.done)
		if n := C(); n != nil {
			if err := n.Unregister(c); err != nil {
				zap.L().Debug("Could not unregister ws client", zap.Error(err), zap.String("id", c.ID))
			}
		}
		if err := c.Socket.Close(); err != nil {
			zap.L().Error("Could not close ws client", zap.Error(err), zap.String("id", c.ID))
		}
	})
}
