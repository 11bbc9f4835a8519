// Package session owns the single active Thingy:52 peripheral link. It
// enforces the connection state machine, serializes every Transport call
// through op_lock, and implements the notification-based read pattern that
// the Thingy:52's firmware requires for most sensor characteristics.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/srg/thingy52mcp/internal/codec"
	"github.com/srg/thingy52mcp/internal/transport"
	"github.com/srg/thingy52mcp/internal/uuidregistry"
)

// State is one of the four connection states in the Session's state
// machine.
type State int

const (
	Disconnected State = iota
	Connecting
	Connected
	Disconnecting
)

func (s State) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	case Disconnecting:
		return "disconnecting"
	default:
		return "unknown"
	}
}

const readRetryDelay = 500 * time.Millisecond

// Session is the single owner of a connected peripheral. All exported
// methods are safe for concurrent use; op_lock makes sure at most one
// GATT transaction is outstanding at a time.
type Session struct {
	transport transport.Transport
	registry  *uuidregistry.Registry
	logger    *logrus.Logger

	stateMu sync.RWMutex
	state   State
	link    transport.Link
	address string

	opLock sync.Mutex

	waitersMu sync.Mutex
	waiters   map[string]*waiter

	motionMu          sync.Mutex
	motionConfigured  bool
}

type waiter struct {
	ch chan waiterResult
}

type waiterResult struct {
	payload []byte
	err     error
}

// New builds a Session against the given Transport and UUID registry.
func New(t transport.Transport, registry *uuidregistry.Registry, logger *logrus.Logger) *Session {
	if logger == nil {
		logger = logrus.New()
	}
	return &Session{
		transport: t,
		registry:  registry,
		logger:    logger,
		state:     Disconnected,
		waiters:   make(map[string]*waiter),
	}
}

// State returns the current connection state.
func (s *Session) State() State {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.state
}

// Address returns the connected peripheral's address, or "" if not
// connected.
func (s *Session) Address() string {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.address
}

func (s *Session) setState(st State) {
	s.stateMu.Lock()
	s.state = st
	s.stateMu.Unlock()
}

// Scan discovers nearby peripherals. It does not touch op_lock or
// connection state since it precedes any link.
func (s *Session) Scan(ctx context.Context, timeout time.Duration) ([]transport.DiscoveredPeripheral, error) {
	scanCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	peripherals, err := s.transport.Scan(scanCtx)
	if err != nil {
		return nil, transport.NormalizeError(err)
	}
	return peripherals, nil
}

// Connect transitions Disconnected -> Connecting -> Connected. It is
// rejected with BusyError in any state other than Disconnected: while
// another connect is in flight and while a link is already connected.
func (s *Session) Connect(ctx context.Context, address string, timeout time.Duration) error {
	s.stateMu.Lock()
	if s.state != Disconnected {
		s.stateMu.Unlock()
		return transport.ErrBusy
	}
	s.state = Connecting
	s.stateMu.Unlock()

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	link, err := s.transport.Connect(connectCtx, address)
	if err != nil {
		s.setState(Disconnected)
		return transport.NormalizeError(err)
	}

	s.transport.OnLinkLost(link, func() { s.handleLinkLost() })

	s.stateMu.Lock()
	s.link = link
	s.address = address
	s.state = Connected
	s.stateMu.Unlock()

	s.motionMu.Lock()
	s.motionConfigured = false
	s.motionMu.Unlock()

	return nil
}

// Disconnect transitions Connected -> Disconnected. Idempotent.
func (s *Session) Disconnect() error {
	s.stateMu.Lock()
	if s.state == Disconnected {
		s.stateMu.Unlock()
		return nil
	}
	link := s.link
	s.state = Disconnecting
	s.stateMu.Unlock()

	err := s.transport.Disconnect(link)

	s.stateMu.Lock()
	s.state = Disconnected
	s.link = nil
	s.address = ""
	s.stateMu.Unlock()

	s.failAllWaiters(transport.ErrLinkLost)

	if err != nil {
		return transport.NormalizeError(err)
	}
	return nil
}

// handleLinkLost is invoked (at most once) by Transport when the adapter
// reports an asynchronous disconnect.
func (s *Session) handleLinkLost() {
	s.stateMu.Lock()
	if s.state == Disconnected {
		s.stateMu.Unlock()
		return
	}
	s.state = Disconnected
	s.link = nil
	s.address = ""
	s.stateMu.Unlock()

	s.failAllWaiters(transport.ErrLinkLost)
	s.logger.Warn("link lost, session transitioned to disconnected")
}

func (s *Session) failAllWaiters(err error) {
	s.waitersMu.Lock()
	defer s.waitersMu.Unlock()
	for uuid, w := range s.waiters {
		select {
		case w.ch <- waiterResult{err: err}:
		default:
		}
		delete(s.waiters, uuid)
	}
}

func (s *Session) requireConnected() (transport.Link, error) {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	if s.state != Connected {
		return nil, transport.ErrNotConnected
	}
	return s.link, nil
}

// notifyRead implements the subscribe/wait-for-notification/unsubscribe
// composite operation. It holds op_lock for its entire duration, which is
// how Session guarantees at most one outstanding GATT transaction.
func (s *Session) notifyRead(ctx context.Context, uuid string, timeout time.Duration) ([]byte, error) {
	s.opLock.Lock()
	defer s.opLock.Unlock()

	link, err := s.requireConnected()
	if err != nil {
		return nil, err
	}

	s.waitersMu.Lock()
	if _, exists := s.waiters[uuid]; exists {
		s.waitersMu.Unlock()
		return nil, transport.ErrBusy
	}
	w := &waiter{ch: make(chan waiterResult, 1)}
	s.waiters[uuid] = w
	s.waitersMu.Unlock()

	removeWaiter := func() {
		s.waitersMu.Lock()
		delete(s.waiters, uuid)
		s.waitersMu.Unlock()
	}

	sink := func(payload []byte) {
		select {
		case w.ch <- waiterResult{payload: payload}:
		default:
		}
	}

	sub, err := s.transport.Subscribe(link, uuid, sink)
	if err != nil {
		removeWaiter()
		return nil, transport.NormalizeError(err)
	}

	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var result waiterResult
	select {
	case result = <-w.ch:
	case <-waitCtx.Done():
		result = waiterResult{err: transport.ErrTimeout}
	}

	_ = s.transport.Unsubscribe(sub)
	removeWaiter()

	if result.err != nil {
		return nil, result.err
	}
	return result.payload, nil
}

// readDirect attempts a direct characteristic read, falling back to
// notifyRead when the firmware refuses direct reads on that UUID.
func (s *Session) readDirect(ctx context.Context, uuid string, timeout time.Duration) ([]byte, error) {
	s.opLock.Lock()
	link, err := s.requireConnected()
	if err != nil {
		s.opLock.Unlock()
		return nil, err
	}

	readCtx, cancel := context.WithTimeout(ctx, timeout)
	payload, err := s.transport.ReadChar(readCtx, link, uuid)
	cancel()
	s.opLock.Unlock()

	if err == nil {
		return payload, nil
	}
	if transport.IsKind(err, transport.KindNotPermitted) {
		return s.notifyRead(ctx, uuid, timeout)
	}
	return nil, transport.NormalizeError(err)
}

// readWithRetry wraps a read function with the single-retry-after-500ms
// policy §4.4.6 prescribes for transient timeouts.
func (s *Session) readWithRetry(ctx context.Context, read func() ([]byte, error)) ([]byte, error) {
	payload, err := read()
	if err == nil {
		return payload, nil
	}
	if !transport.IsKind(err, transport.KindTimeout) {
		return nil, err
	}
	select {
	case <-time.After(readRetryDelay):
	case <-ctx.Done():
		return nil, transport.ErrTimeout
	}
	return read()
}

// actuate implements the actuation path: acquire op_lock, verify Connected,
// write with or without response as withResponse says (retried once after a
// timeout), release lock.
func (s *Session) actuate(ctx context.Context, uuid string, payload []byte, withResponse bool) error {
	s.opLock.Lock()
	defer s.opLock.Unlock()

	link, err := s.requireConnected()
	if err != nil {
		return err
	}

	writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = s.transport.WriteChar(writeCtx, link, uuid, payload, withResponse)
	if err == nil {
		return nil
	}
	if !transport.IsKind(err, transport.KindTimeout) {
		return transport.NormalizeError(err)
	}
	select {
	case <-time.After(readRetryDelay):
	case <-ctx.Done():
		return transport.ErrTimeout
	}
	err = s.transport.WriteChar(writeCtx, link, uuid, payload, withResponse)
	if err != nil {
		return transport.NormalizeError(err)
	}
	return nil
}

func (s *Session) lookup(name string) (uuidregistry.Entry, error) {
	entry, err := s.registry.Lookup(name)
	if err != nil {
		return uuidregistry.Entry{}, transport.ErrNotFound
	}
	return entry, nil
}

// GetBatteryLevel is a direct-readable characteristic.
func (s *Session) GetBatteryLevel(ctx context.Context) (codec.Battery, error) {
	entry, err := s.lookup("battery_level")
	if err != nil {
		return codec.Battery{}, err
	}
	payload, err := s.readWithRetry(ctx, func() ([]byte, error) {
		return s.readDirect(ctx, entry.CharID, transport.DefaultNotificationTimeout)
	})
	if err != nil {
		return codec.Battery{}, err
	}
	reading, decErr := codec.DecodeBattery(payload)
	if decErr != nil {
		return codec.Battery{}, asMalformed(entry.CharID, decErr)
	}
	return reading, nil
}

// asMalformed wraps a codec decode failure as a transport.Error naming the
// characteristic. lengthError failures carry real GotLen/ExpectedLen;
// rangeError failures leave both at zero and put the actual detail in
// Reason, so that case is surfaced via Details["reason"] instead of a
// meaningless "got 0 bytes, expected 0".
func asMalformed(uuid string, err error) error {
	ce, ok := err.(*codec.Error)
	if !ok {
		return err
	}
	if ce.GotLen == 0 && ce.ExpectedLen == 0 && ce.Reason != "" {
		te := transport.NewMalformedPayload(uuid, 0, 0)
		te.Msg = uuid + ": " + ce.Reason
		te.Details["reason"] = ce.Reason
		return te
	}
	return transport.NewMalformedPayload(uuid, ce.GotLen, ce.ExpectedLen)
}
