package codec

const soundCommandID = 3

// EncodeSound renders a SoundCommand to its wire payload on the Speaker
// Config characteristic: command byte 3 followed by a one-byte sample ID.
// Beep is preset sound 1.
func EncodeSound(cmd SoundCommand) ([]byte, error) {
	switch c := cmd.(type) {
	case PresetSound:
		if c.ID < 1 || c.ID > 8 {
			return nil, rangeError("preset_sound", "id must be 1..8")
		}
		return []byte{soundCommandID, byte(c.ID)}, nil

	case Beep:
		return []byte{soundCommandID, 1}, nil

	default:
		return nil, rangeError("sound", "unknown SoundCommand variant")
	}
}
