package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeBattery(t *testing.T) {
	b, err := DecodeBattery([]byte{87})
	require.NoError(t, err)
	assert.Equal(t, 87, b.Percent)
}

func TestDecodeBatteryRejectsOutOfRange(t *testing.T) {
	_, err := DecodeBattery([]byte{101})
	require.Error(t, err)
}

func TestDecodeBatteryWrongLength(t *testing.T) {
	_, err := DecodeBattery([]byte{})
	require.Error(t, err)
}
