package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeTemperature(t *testing.T) {
	// Scenario B: 0x17, 0x32 -> 23.50 degrees C.
	temp, err := DecodeTemperature([]byte{0x17, 0x32})
	require.NoError(t, err)
	assert.InDelta(t, 23.50, temp.Celsius, 0.001)
}

func TestDecodeTemperatureNegative(t *testing.T) {
	temp, err := DecodeTemperature([]byte{0xF5, 0x5A})
	require.NoError(t, err)
	assert.InDelta(t, -10.10, temp.Celsius, 0.001)
}

func TestDecodeTemperatureWrongLength(t *testing.T) {
	_, err := DecodeTemperature([]byte{0x17})
	require.Error(t, err)
	var codecErr *Error
	require.ErrorAs(t, err, &codecErr)
}

func TestDecodeTemperatureRejectsBadHundredths(t *testing.T) {
	_, err := DecodeTemperature([]byte{0x10, 0xFF})
	require.Error(t, err)
}

func TestDecodeHumidity(t *testing.T) {
	h, err := DecodeHumidity([]byte{42})
	require.NoError(t, err)
	assert.Equal(t, 42, h.Percent)
}

func TestDecodeHumidityRejectsOutOfRange(t *testing.T) {
	_, err := DecodeHumidity([]byte{101})
	require.Error(t, err)
}

func TestDecodePressureRange(t *testing.T) {
	// 101325 Pa == 1013.25 hPa, a plausible sea-level reading.
	p, err := DecodePressure([]byte{0xCD, 0x8B, 0x01, 0x00, 0x00})
	require.NoError(t, err)
	assert.InDelta(t, 1013.25, p.Hpa, 0.01)
}

func TestDecodePressureRejectsOutOfRange(t *testing.T) {
	_, err := DecodePressure([]byte{0x00, 0x00, 0x00, 0x00, 0x00})
	require.Error(t, err)
}

func TestDecodeAirQuality(t *testing.T) {
	// Scenario C: [0x58, 0x02, 0x4B, 0x00] -> co2=600, tvoc=75.
	aq, err := DecodeAirQuality([]byte{0x58, 0x02, 0x4B, 0x00})
	require.NoError(t, err)
	assert.Equal(t, 600, aq.CO2PPM)
	assert.Equal(t, 75, aq.TVOCPPB)
}

func TestColorRoundTrip(t *testing.T) {
	want := Color{R: 100, G: 200, B: 300, Clear: 400}
	data := EncodeColor(want)
	got, err := DecodeColor(data)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestDecodeLightDerivesFromClearChannel(t *testing.T) {
	data := EncodeColor(Color{R: 1, G: 2, B: 3, Clear: 500})
	light, err := DecodeLight(data)
	require.NoError(t, err)
	assert.Equal(t, float64(500), light.Lux)
}
