package notifier

import (
	"sync"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

var (
	_globalNotifierMu sync.RWMutex
	_globalNotifier   *Notifier
)

// C is used to access the global notifier singleton
func C() *Notifier {
	_globalNotifierMu.RLock()
	defer _globalNotifierMu.RUnlock()

	notifier := _globalNotifier
	return notifier
}

// ReplaceGlobals affect a new notifier to the global notifier singleton
func ReplaceGlobals(notifier *Notifier) func() {
	_globalNotifierMu.Lock()
	defer _globalNotifierMu.Unlock()

	prev := _globalNotifier
	_globalNotifier = notifier
	return func() { ReplaceGlobals(prev) }
}

// Message is the frame pushed to every viewer
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// ToBytes convert a message in a json byte slice to be sent through any required channel
func (m Message) ToBytes() ([]byte, error) {
	return jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(m)
}

// MessageHandler is called with every message received from a client
type MessageHandler func(client Client, message []byte)

// Notifier is the main struct used to push messages to the connected viewers
type Notifier struct {
	clientManager *ClientManager

	mu        sync.RWMutex
	onMessage MessageHandler
}

// NewNotifier returns a pointer to a new instance of Notifier
func NewNotifier() *Notifier {
	return &Notifier{
		clientManager: NewClientManager(),
	}
}

// Register add a new client to the client manager pool
func (notifier *Notifier) Register(client Client) error {
	zap.L().Info("Client registered", zap.String("client", client.GetID()))
	return notifier.clientManager.Register(client)
}

// Unregister disconnect an existing client from the client manager pool
func (notifier *Notifier) Unregister(client Client) error {
	zap.L().Info("Client unregistered", zap.String("client", client.GetID()))
	return notifier.clientManager.Unregister(client)
}

// ClientCount returns the number of connected viewers
func (notifier *Notifier) ClientCount() int {
	return notifier.clientManager.Count()
}

// SetMessageHandler sets the function called for every message received from a client
func (notifier *Notifier) SetMessageHandler(handler MessageHandler) {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	notifier.onMessage = handler
}

// Receive dispatches a message read from a client
func (notifier *Notifier) Receive(client Client, message []byte) {
	notifier.mu.RLock()
	handler := notifier.onMessage
	notifier.mu.RUnlock()

	if handler == nil {
		zap.L().Debug("Message ignored, no handler", zap.String("client", client.GetID()))
		return
	}
	handler(client, message)
}

// Broadcast send a message to every connected client
func (notifier *Notifier) Broadcast(message Message) {
	b, err := message.ToBytes()
	if err != nil {
		zap.L().Error("message.ToBytes()", zap.Error(err))
		return
	}
	for _, client := range notifier.clientManager.GetClients() {
		notifier.Send(b, client)
	}
}

// SendMessage encodes and send a message to a specific client
func (notifier *Notifier) SendMessage(message Message, client Client) {
	b, err := message.ToBytes()
	if err != nil {
		zap.L().Error("message.ToBytes()", zap.Error(err))
		return
	}
	notifier.Send(b, client)
}

// Send send a byte slice to a specific client without blocking.
// A client that did not consume its previous message only gets the latest one.
func (notifier *Notifier) Send(message []byte, client Client) {
	if client == nil {
		return
	}
	ch := client.GetSendChannel()
	select {
	case ch <- message:
		return
	default:
	}

	select {
	case <-ch:
		zap.L().Debug("Slow client, pending message dropped", zap.String("client", client.GetID()))
	default:
	}
	select {
	case ch <- message:
	default:
		zap.L().Debug("Slow client, message dropped", zap.String("client", client.GetID()))
	}
}
