//go:build test

package toolsurface

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/srg/thingy52mcp/internal/testutils"
	"github.com/srg/thingy52mcp/internal/uuidregistry"
)

// These tests assert the actual marshaled JSON an MCP client receives, not
// just the in-memory Go struct fields - the external tool contract is the
// wire shape, and a field rename or missing unit only shows up here.

// Scenario B: read_temperature() returns {"temperature_celsius": 23.50, "unit": "°C"}.
func TestReadTemperatureWireContract(t *testing.T) {
	srv, sess, mock := newTestServer(t)
	connect(t, sess, mock)

	entry, err := uuidregistry.New().Lookup("temperature")
	require.NoError(t, err)
	mock.NotifyPayloads[entry.CharID] = []byte{0x17, 0x32}

	result, err := srv.ReadTemperature(context.Background())
	require.NoError(t, err)

	testutils.NewJSONAsserter(t).Assert(
		testutils.MustJSON(result),
		`{"temperature_celsius": 23.50, "unit": "°C"}`,
	)
}

// Scenario C: read_air_quality() returns co2_ppm/tvoc_ppb, not the codec's
// exported Go field names.
func TestReadAirQualityWireContract(t *testing.T) {
	srv, sess, mock := newTestServer(t)
	connect(t, sess, mock)

	entry, err := uuidregistry.New().Lookup("air_quality")
	require.NoError(t, err)
	mock.NotifyPayloads[entry.CharID] = []byte{0x58, 0x02, 0x4B, 0x00}

	result, err := srv.ReadAirQuality(context.Background())
	require.NoError(t, err)

	testutils.NewJSONAsserter(t).Assert(
		testutils.MustJSON(result),
		`{"co2_ppm": 600, "tvoc_ppb": 75}`,
	)
}

func TestGetDeviceStatusWireContract(t *testing.T) {
	srv, sess, mock := newTestServer(t)
	connect(t, sess, mock)

	entry, _ := uuidregistry.New().Lookup("battery_level")
	mock.ReadResponses[entry.CharID] = [][]byte{{73}}

	status, err := srv.GetDeviceStatus(context.Background())
	require.NoError(t, err)

	testutils.NewJSONAsserter(t).WithOptions(
		testutils.WithAllowPresencePlaceholder(true),
	).Assert(
		testutils.MustJSON(status),
		`{"connected": true, "address": "<<PRESENCE>>", "battery_percent": 73}`,
	)
}
