package notifier

import (
	"strings"
	"testing"
)

type testClient struct {
	GenericClient
}

func (c *testClient) Read()  {}
func (c *testClient) Write() {}

func newTestClient(id string) *testClient {
	return &testClient{GenericClient{ID: id, Send: make(chan []byte, 1)}}
}

func TestNewNotifier(t *testing.T) {
	notifier := NewNotifier()
	if notifier == nil {
		t.Error("notifier constructor returns nil")
	}
}

func TestReplaceGlobal(t *testing.T) {
	notifier1 := NewNotifier()
	notifier2 := C()
	if notifier1 == notifier2 {
		t.Error("Global notifier is weirdly defined")
	}

	reverse := ReplaceGlobals(notifier1)
	defer reverse()
	notifier2 = C()
	if notifier1 != notifier2 {
		t.Error("Global notifier is not a singleton")
	}
}

func TestRegisterUnregister(t *testing.T) {
	notifier := NewNotifier()
	client := newTestClient("a")

	if err := notifier.Register(client); err != nil {
		t.Fatal(err)
	}
	if err := notifier.Register(client); err == nil {
		t.Error("registering twice should fail")
	}
	if notifier.ClientCount() != 1 {
		t.Errorf("invalid client count: %d", notifier.ClientCount())
	}
	if err := notifier.Unregister(client); err != nil {
		t.Fatal(err)
	}
	if err := notifier.Unregister(client); err == nil {
		t.Error("unregistering twice should fail")
	}
	if notifier.ClientCount() != 0 {
		t.Errorf("invalid client count: %d", notifier.ClientCount())
	}
}

func TestBroadcast(t *testing.T) {
	notifier := NewNotifier()
	a := newTestClient("a")
	b := newTestClient("b")
	_ = notifier.Register(a)
	_ = notifier.Register(b)

	notifier.Broadcast(Message{Type: "snapshot", Data: map[string]int{"cursor": 31}})

	for _, c := range []*testClient{a, b} {
		select {
		case msg := <-c.Send:
			if !strings.Contains(string(msg), `"type":"snapshot"`) || !strings.Contains(string(msg), `"cursor":31`) {
				t.Errorf("invalid message: %s", msg)
			}
		default:
			t.Errorf("client %s received nothing", c.ID)
		}
	}
}

func TestSendKeepsLatestMessage(t *testing.T) {
	notifier := NewNotifier()
	client := newTestClient("slow")

	// the client never reads, Send must not block
	notifier.Send([]byte("1"), client)
	notifier.Send([]byte("2"), client)
	notifier.Send([]byte("3"), client)

	msg := <-client.Send
	if string(msg) != "3" {
		t.Errorf("expected the latest message, got %s", msg)
	}
	select {
	case msg := <-client.Send:
		t.Errorf("unexpected pending message %s", msg)
	default:
	}
}

func TestReceive(t *testing.T) {
	notifier := NewNotifier()
	client := newTestClient("a")

	// no handler, nothing happens
	notifier.Receive(client, []byte("ignored"))

	var got string
	notifier.SetMessageHandler(func(c Client, message []byte) {
		got = c.GetID() + ":" + string(message)
	})
	notifier.Receive(client, []byte("play"))
	if got != "a:play" {
		t.Errorf("invalid received message: %s", got)
	}
}
