package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeSoundBeep(t *testing.T) {
	// Scenario E: beep() -> [0x03, 0x01].
	data, err := EncodeSound(Beep{})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x03, 0x01}, data)
}

func TestEncodeSoundPreset(t *testing.T) {
	data, err := EncodeSound(PresetSound{ID: 5})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x03, 0x05}, data)
}

func TestEncodeSoundPresetRejectsOutOfRange(t *testing.T) {
	_, err := EncodeSound(PresetSound{ID: 9})
	require.Error(t, err)
}
