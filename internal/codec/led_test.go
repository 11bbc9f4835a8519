package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeLEDOff(t *testing.T) {
	data, err := EncodeLED(LedOff{})
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 0}, data)
}

func TestEncodeLEDConstantRed(t *testing.T) {
	// Scenario D: set_led_color(color="red") -> [0x01, 0xFF, 0x00, 0x00].
	r, g, b, err := LookupNamedColor("red")
	require.NoError(t, err)
	data, err := EncodeLED(LedConstant{R: r, G: g, B: b})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0xFF, 0x00, 0x00}, data)
}

func TestEncodeLEDConstantRedHalfIntensity(t *testing.T) {
	// Scenario D continued: intensity=50 -> [0x01, 0x7F, 0x00, 0x00].
	r, g, b, err := LookupNamedColor("red")
	require.NoError(t, err)
	scaled := r * 50 / 100
	data, err := EncodeLED(LedConstant{R: scaled, G: g * 50 / 100, B: b * 50 / 100})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x7F, 0x00, 0x00}, data)
}

func TestEncodeLEDConstantRejectsOutOfRange(t *testing.T) {
	_, err := EncodeLED(LedConstant{R: 256, G: 0, B: 0})
	require.Error(t, err)
}

func TestEncodeLEDBreatheAlwaysFourBytes(t *testing.T) {
	code, err := LookupBreatheColorCode("blue")
	require.NoError(t, err)
	data, err := EncodeLED(LedBreathe{ColorCode: code, Intensity: 80, DelayMs: 500})
	require.NoError(t, err)
	assert.Len(t, data, 4)
	assert.Equal(t, byte(2), data[0])
	assert.Equal(t, byte(code), data[1])
	assert.Equal(t, byte(80), data[2])
	assert.Equal(t, byte(0), data[3])
}

func TestEncodeLEDBreatheRejectsBadDelay(t *testing.T) {
	_, err := EncodeLED(LedBreathe{ColorCode: 1, Intensity: 50, DelayMs: 10})
	require.Error(t, err)
}

func TestEncodeLEDBreatheRejectsBadColorCode(t *testing.T) {
	_, err := EncodeLED(LedBreathe{ColorCode: 9, Intensity: 50, DelayMs: 500})
	require.Error(t, err)
}

func TestEncodeLEDOneShotAlwaysFourBytes(t *testing.T) {
	data, err := EncodeLED(LedOneShot{ColorCode: 3, Intensity: 100})
	require.NoError(t, err)
	assert.Len(t, data, 4)
	assert.Equal(t, byte(3), data[0])
}

func TestEncodeLEDOneShotRejectsBadIntensity(t *testing.T) {
	_, err := EncodeLED(LedOneShot{ColorCode: 1, Intensity: 101})
	require.Error(t, err)
}

func TestLookupNamedColorUnknown(t *testing.T) {
	_, _, _, err := LookupNamedColor("not_a_color")
	require.Error(t, err)
}

func TestLookupBreatheColorCodeUnknown(t *testing.T) {
	_, err := LookupBreatheColorCode("orange")
	require.Error(t, err)
}
