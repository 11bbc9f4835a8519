package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srg/thingy52mcp/internal/codec"
	"github.com/srg/thingy52mcp/internal/transport"
	"github.com/srg/thingy52mcp/internal/transport/blemock"
	"github.com/srg/thingy52mcp/internal/uuidregistry"
)

func newTestSession(t *testing.T) (*Session, *blemock.Transport) {
	t.Helper()
	mock := blemock.New()
	s := New(mock, uuidregistry.New(), nil)
	return s, mock
}

func connect(t *testing.T, s *Session, mock *blemock.Transport) {
	t.Helper()
	mock.ScanResult = []transport.DiscoveredPeripheral{{Address: "AA:BB:CC:DD:EE:FF", Name: "Thingy"}}
	require.NoError(t, s.Connect(context.Background(), "AA:BB:CC:DD:EE:FF", time.Second))
	require.Equal(t, Connected, s.State())
}

func TestConnectDisconnectLifecycle(t *testing.T) {
	s, mock := newTestSession(t)
	assert.Equal(t, Disconnected, s.State())

	connect(t, s, mock)
	assert.Equal(t, "AA:BB:CC:DD:EE:FF", s.Address())

	require.NoError(t, s.Disconnect())
	assert.Equal(t, Disconnected, s.State())
	assert.Equal(t, "", s.Address())
}

func TestDisconnectIsIdempotent(t *testing.T) {
	s, _ := newTestSession(t)
	require.NoError(t, s.Disconnect())
	require.NoError(t, s.Disconnect())
}

func TestOperationWhileDisconnectedReturnsNotConnected(t *testing.T) {
	s, _ := newTestSession(t)
	_, err := s.ReadTemperature(context.Background())
	require.Error(t, err)
	assert.True(t, transport.IsKind(err, transport.KindNotConnected))
}

// Scenario B: [0x17, 0x32] -> 23.50 degrees C.
func TestReadTemperatureScenarioB(t *testing.T) {
	s, mock := newTestSession(t)
	connect(t, s, mock)

	entry, err := uuidregistry.New().Lookup("temperature")
	require.NoError(t, err)
	mock.NotifyPayloads[entry.CharID] = []byte{0x17, 0x32}

	reading, err := s.ReadTemperature(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 23.50, reading.Celsius, 0.001)
}

// Testable property #9: every subscribe is paired with an unsubscribe on
// the same UUID within the same composite operation.
func TestEverySubscribeIsPairedWithUnsubscribe(t *testing.T) {
	s, mock := newTestSession(t)
	connect(t, s, mock)

	entry, _ := uuidregistry.New().Lookup("humidity")
	mock.NotifyPayloads[entry.CharID] = []byte{42}

	_, err := s.ReadHumidity(context.Background())
	require.NoError(t, err)

	calls := mock.Calls()
	subscribes, unsubscribes := 0, 0
	for _, c := range calls {
		if c.Method == "subscribe" && c.UUID == entry.CharID {
			subscribes++
		}
		if c.Method == "unsubscribe" && c.UUID == entry.CharID {
			unsubscribes++
		}
	}
	assert.Equal(t, 1, subscribes)
	assert.Equal(t, 1, unsubscribes)
}

// Testable property #7 / Scenario F: concurrent reads are serialized -
// the second subscribe must begin strictly after the first unsubscribe
// completes, and at no point are two Transport calls outstanding.
func TestConcurrentReadsAreSerialized(t *testing.T) {
	s, mock := newTestSession(t)
	connect(t, s, mock)

	tempEntry, _ := uuidregistry.New().Lookup("temperature")
	humEntry, _ := uuidregistry.New().Lookup("humidity")
	mock.NotifyPayloads[tempEntry.CharID] = []byte{0x14, 0x00}
	mock.NotifyPayloads[humEntry.CharID] = []byte{50}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, _ = s.ReadTemperature(context.Background())
	}()
	go func() {
		defer wg.Done()
		_, _ = s.ReadHumidity(context.Background())
	}()
	wg.Wait()

	assert.LessOrEqual(t, mock.MaxConcurrentCalls(), 1)
}

// Scenario G: link drop during read.
func TestLinkDropDuringReadFailsWithLinkLost(t *testing.T) {
	s, mock := newTestSession(t)
	connect(t, s, mock)

	// No payload scripted: the read will hang until we fire link loss.
	done := make(chan error, 1)
	go func() {
		_, err := s.ReadHumidity(context.Background())
		done <- err
	}()

	time.Sleep(5 * time.Millisecond)
	mock.TriggerLinkLoss()

	err := <-done
	require.Error(t, err)
	assert.True(t, transport.IsKind(err, transport.KindLinkLost))
	assert.Equal(t, Disconnected, s.State())

	_, err = s.ReadTemperature(context.Background())
	require.Error(t, err)
	assert.True(t, transport.IsKind(err, transport.KindNotConnected))
}

func TestReadAllSensorsToleratesPartialFailure(t *testing.T) {
	s, mock := newTestSession(t)
	connect(t, s, mock)

	reg := uuidregistry.New()
	tempEntry, _ := reg.Lookup("temperature")
	humEntry, _ := reg.Lookup("humidity")
	pressEntry, _ := reg.Lookup("pressure")
	aqEntry, _ := reg.Lookup("air_quality")
	colorEntry, _ := reg.Lookup("color")

	mock.NotifyPayloads[tempEntry.CharID] = []byte{0x17, 0x32}
	// Deliberately malformed humidity payload (wrong length) so it errors
	// out without aborting the whole aggregate.
	mock.NotifyPayloads[humEntry.CharID] = []byte{1, 2, 3}
	mock.NotifyPayloads[pressEntry.CharID] = []byte{0xCD, 0x8B, 0x01, 0x00, 0x00}
	mock.NotifyPayloads[aqEntry.CharID] = []byte{0x58, 0x02, 0x4B, 0x00}
	mock.NotifyPayloads[colorEntry.CharID] = []byte{1, 0, 2, 0, 3, 0, 4, 0}

	snap := s.ReadAllSensors(context.Background())
	require.NotNil(t, snap.Temperature)
	assert.Nil(t, snap.Humidity)
	assert.Contains(t, snap.Errors, "humidity")
	require.NotNil(t, snap.Pressure)
	require.NotNil(t, snap.AirQuality)
	require.NotNil(t, snap.Color)
	require.NotNil(t, snap.Light)
}

func TestSetLEDConstant(t *testing.T) {
	s, mock := newTestSession(t)
	connect(t, s, mock)

	err := s.SetLED(context.Background(), codec.LedConstant{R: 255, G: 0, B: 0})
	require.NoError(t, err)

	calls := mock.Calls()
	found := false
	for _, c := range calls {
		if c.Method == "write_char" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestBeepScenarioE(t *testing.T) {
	s, mock := newTestSession(t)
	connect(t, s, mock)

	err := s.PlaySound(context.Background(), codec.Beep{})
	require.NoError(t, err)
}

func TestConnectRejectedWhileConnected(t *testing.T) {
	s, mock := newTestSession(t)
	connect(t, s, mock)

	err := s.Connect(context.Background(), "other-addr", time.Second)
	require.Error(t, err)
	assert.True(t, transport.IsKind(err, transport.KindBusyError))
}
