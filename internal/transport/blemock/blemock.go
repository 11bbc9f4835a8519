// Package blemock is a scriptable transport.Transport test double used by
// Session and Tool Surface tests. It replays configured byte payloads and
// tracks call ordering so tests can assert the no-overlapping-GATT-calls
// and subscribe/unsubscribe-pairing invariants.
package blemock

import (
	"context"
	"sync"

	"github.com/srg/thingy52mcp/internal/transport"
)

type link struct{ address string }

func (l *link) Address() string { return l.address }

type subscription struct {
	uuid string
	mock *Transport
}

func (s *subscription) UUID() string { return s.uuid }

// CallRecord captures one Transport method invocation for assertions about
// ordering and concurrency.
type CallRecord struct {
	Method string
	UUID   string
}

// Transport is the mock. Configure ReadResponses/NotifyPayloads before use;
// it is safe for concurrent calls from Session (that is the property under
// test), but its own bookkeeping is serialized by mu.
type Transport struct {
	mu sync.Mutex

	ScanResult []transport.DiscoveredPeripheral
	ScanErr    error
	ConnectErr error

	// ReadResponses maps UUID -> queued responses (direct read_char).
	ReadResponses map[string][][]byte
	ReadErr       map[string]error

	// NotifyPayloads maps UUID -> the payload delivered to the next
	// subscriber.
	NotifyPayloads map[string][]byte
	NotifyDelay    map[string]bool // if true, payload arrives only after a manual Fire call

	NotPermittedReads map[string]bool

	calls        []CallRecord
	inFlight     int
	maxInFlight  int
	activeSinks  map[string]func([]byte)
	linkLostSubs []func()
}

// New builds an empty mock ready for configuration.
func New() *Transport {
	return &Transport{
		ReadResponses:     make(map[string][][]byte),
		ReadErr:           make(map[string]error),
		NotifyPayloads:    make(map[string][]byte),
		NotifyDelay:       make(map[string]bool),
		NotPermittedReads: make(map[string]bool),
		activeSinks:       make(map[string]func([]byte)),
	}
}

// Calls returns the recorded call sequence.
func (m *Transport) Calls() []CallRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]CallRecord, len(m.calls))
	copy(out, m.calls)
	return out
}

// MaxConcurrentCalls reports the highest number of Transport calls that
// were simultaneously in flight, used to assert Session's op_lock actually
// serializes GATT access.
func (m *Transport) MaxConcurrentCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.maxInFlight
}

func (m *Transport) enter(method, uuid string) {
	m.mu.Lock()
	m.calls = append(m.calls, CallRecord{Method: method, UUID: uuid})
	m.inFlight++
	if m.inFlight > m.maxInFlight {
		m.maxInFlight = m.inFlight
	}
	m.mu.Unlock()
}

func (m *Transport) leave() {
	m.mu.Lock()
	m.inFlight--
	m.mu.Unlock()
}

func (m *Transport) Scan(ctx context.Context) ([]transport.DiscoveredPeripheral, error) {
	m.enter("scan", "")
	defer m.leave()
	if m.ScanErr != nil {
		return nil, m.ScanErr
	}
	return m.ScanResult, nil
}

func (m *Transport) Connect(ctx context.Context, address string) (transport.Link, error) {
	m.enter("connect", "")
	defer m.leave()
	if m.ConnectErr != nil {
		return nil, m.ConnectErr
	}
	return &link{address: address}, nil
}

func (m *Transport) Disconnect(l transport.Link) error {
	m.enter("disconnect", "")
	defer m.leave()
	return nil
}

func (m *Transport) ReadChar(ctx context.Context, l transport.Link, uuid string) ([]byte, error) {
	m.enter("read_char", uuid)
	defer m.leave()

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.NotPermittedReads[uuid] {
		return nil, transport.ErrNotPermitted
	}
	if err, ok := m.ReadErr[uuid]; ok && err != nil {
		return nil, err
	}
	queue := m.ReadResponses[uuid]
	if len(queue) == 0 {
		return nil, transport.ErrNotFound
	}
	payload := queue[0]
	m.ReadResponses[uuid] = queue[1:]
	return payload, nil
}

func (m *Transport) WriteChar(ctx context.Context, l transport.Link, uuid string, data []byte, withResponse bool) error {
	m.enter("write_char", uuid)
	defer m.leave()
	return nil
}

func (m *Transport) Subscribe(l transport.Link, uuid string, sink func([]byte)) (transport.Subscription, error) {
	m.enter("subscribe", uuid)
	defer m.leave()

	m.mu.Lock()
	m.activeSinks[uuid] = sink
	payload, delayed := m.NotifyPayloads[uuid], m.NotifyDelay[uuid]
	m.mu.Unlock()

	if !delayed && payload != nil {
		sink(payload)
	}
	return &subscription{uuid: uuid, mock: m}, nil
}

func (m *Transport) Unsubscribe(s transport.Subscription) error {
	sub, ok := s.(*subscription)
	uuid := ""
	if ok {
		uuid = sub.uuid
	}
	m.enter("unsubscribe", uuid)
	defer m.leave()

	m.mu.Lock()
	delete(m.activeSinks, uuid)
	m.mu.Unlock()
	return nil
}

func (m *Transport) OnLinkLost(l transport.Link, fn func()) {
	m.mu.Lock()
	m.linkLostSubs = append(m.linkLostSubs, fn)
	m.mu.Unlock()
}

// Fire delivers payload to the current subscriber of uuid, if any. Used to
// simulate a notification arriving after Subscribe has already returned,
// for NotifyDelay[uuid] == true scripting.
func (m *Transport) Fire(uuid string, payload []byte) {
	m.mu.Lock()
	sink := m.activeSinks[uuid]
	m.mu.Unlock()
	if sink != nil {
		sink(payload)
	}
}

// TriggerLinkLoss invokes every registered OnLinkLost callback, simulating
// an asynchronous disconnect event from the BLE stack.
func (m *Transport) TriggerLinkLoss() {
	m.mu.Lock()
	subs := make([]func(), len(m.linkLostSubs))
	copy(subs, m.linkLostSubs)
	m.mu.Unlock()
	for _, fn := range subs {
		fn()
	}
}
