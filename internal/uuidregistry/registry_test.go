package uuidregistry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupKnownNames(t *testing.T) {
	r := New()

	tests := []struct {
		name        string
		wantService string
	}{
		{"temperature", ServiceEnvironment},
		{"humidity", ServiceEnvironment},
		{"pressure", ServiceEnvironment},
		{"air_quality", ServiceEnvironment},
		{"color", ServiceEnvironment},
		{"gas_mode", ServiceEnvironment},
		{"motion_config", ServiceMotion},
		{"tap", ServiceMotion},
		{"orientation", ServiceMotion},
		{"quaternion", ServiceMotion},
		{"step_counter", ServiceMotion},
		{"raw_motion", ServiceMotion},
		{"euler", ServiceMotion},
		{"rotation_matrix", ServiceMotion},
		{"heading", ServiceMotion},
		{"gravity", ServiceMotion},
		{"led", ServiceUI},
		{"button", ServiceUI},
		{"speaker_data", ServiceSound},
		{"speaker_status", ServiceSound},
		{"microphone", ServiceSound},
		{"battery_level", ServiceBattery},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := r.Lookup(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.name, e.Name)
			assert.Equal(t, tt.wantService, e.Service)
			assert.NotEmpty(t, e.ServiceID)
			assert.NotEmpty(t, e.CharID)
		})
	}
}

func TestLookupIsCaseInsensitive(t *testing.T) {
	r := New()
	e, err := r.Lookup("  Temperature ")
	require.NoError(t, err)
	assert.Equal(t, "temperature", e.Name)
}

func TestLookupUnknownName(t *testing.T) {
	r := New()
	_, err := r.Lookup("does_not_exist")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does_not_exist")
}

func TestAllThingyServicesShareVendorPrefix(t *testing.T) {
	r := New()
	for _, name := range r.Names() {
		e, err := r.Lookup(name)
		require.NoError(t, err)
		if e.Service == ServiceBattery {
			assert.Equal(t, batteryServiceUUID, e.ServiceID)
			continue
		}
		assert.Contains(t, e.ServiceID, "EF68")
		assert.Contains(t, e.CharID, "EF68")
	}
}

func TestNamesPreservesDeclarationOrder(t *testing.T) {
	r := New()
	names := r.Names()
	require.NotEmpty(t, names)
	assert.Equal(t, "temperature", names[0])
	assert.Equal(t, "battery_level", names[len(names)-1])
}
