package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuaternionRoundTrip(t *testing.T) {
	want := Quaternion{W: 1.0, X: -0.5, Y: 0.25, Z: 0.125}
	data := EncodeQuaternion(want)
	got, err := DecodeQuaternion(data)
	require.NoError(t, err)
	assert.InDelta(t, want.W, got.W, 0.0001)
	assert.InDelta(t, want.X, got.X, 0.0001)
	assert.InDelta(t, want.Y, got.Y, 0.0001)
	assert.InDelta(t, want.Z, got.Z, 0.0001)
}

func TestQuaternionWrongLength(t *testing.T) {
	_, err := DecodeQuaternion(make([]byte, 15))
	require.Error(t, err)
}

func TestDecodeEuler(t *testing.T) {
	data := make([]byte, 12)
	putQ16 := func(offset int, deg float64) {
		v := int32(deg * q16)
		data[offset] = byte(v)
		data[offset+1] = byte(v >> 8)
		data[offset+2] = byte(v >> 16)
		data[offset+3] = byte(v >> 24)
	}
	putQ16(0, 10.0)
	putQ16(4, -20.0)
	putQ16(8, 180.0)

	e, err := DecodeEuler(data)
	require.NoError(t, err)
	assert.InDelta(t, 10.0, e.RollDeg, 0.001)
	assert.InDelta(t, -20.0, e.PitchDeg, 0.001)
	assert.InDelta(t, 180.0, e.YawDeg, 0.001)
}

func TestDecodeHeadingNormalizes(t *testing.T) {
	v := int32(-30.0 * q16)
	data := []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
	h, err := DecodeHeading(data)
	require.NoError(t, err)
	assert.InDelta(t, 330.0, h.Deg, 0.001)
}

func TestDecodeOrientation(t *testing.T) {
	o, err := DecodeOrientation([]byte{2})
	require.NoError(t, err)
	assert.Equal(t, ReversePortrait, o.Value)
	assert.Equal(t, "reverse_portrait", o.Value.String())
}

func TestDecodeOrientationRejectsOutOfRange(t *testing.T) {
	_, err := DecodeOrientation([]byte{4})
	require.Error(t, err)
}

func TestDecodeStepCount(t *testing.T) {
	sc, err := DecodeStepCount([]byte{10, 0, 0, 0, 0xE8, 0x03, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, 10, sc.Steps)
	assert.Equal(t, 1000, sc.ElapsedMs)
}

func TestDecodeTapEvent(t *testing.T) {
	tap, err := DecodeTapEvent([]byte{3, 2})
	require.NoError(t, err)
	assert.Equal(t, 3, tap.Direction)
	assert.Equal(t, 2, tap.Count)
}

func TestRawMotionRoundTrip(t *testing.T) {
	want := RawMotion{
		Accel: Vec3{X: 1.0, Y: -1.0, Z: 0.5},
		Gyro:  Vec3{X: 10.0, Y: -10.0, Z: 5.0},
		Mag:   Vec3{X: 20.0, Y: -20.0, Z: 10.0},
	}
	data := EncodeRawMotion(want)
	got, err := DecodeRawMotion(data)
	require.NoError(t, err)
	assert.InDelta(t, want.Accel.X, got.Accel.X, 0.01)
	assert.InDelta(t, want.Gyro.Y, got.Gyro.Y, 0.05)
	assert.InDelta(t, want.Mag.Z, got.Mag.Z, 0.1)
}

func TestRawMotionWrongLength(t *testing.T) {
	_, err := DecodeRawMotion(make([]byte, 17))
	require.Error(t, err)
}
