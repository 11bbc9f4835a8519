package codec

const (
	ledModeOff      = 0
	ledModeConstant = 1
	ledModeBreathe  = 2
	ledModeOneShot  = 3
)

// EncodeLED renders an LedCommand to the fixed 4-byte wire payload the LED
// characteristic always expects. History: an earlier firmware revision
// accepted a variable-length payload and silently misbehaved on anything
// but exactly four bytes, so every mode pads unused bytes with zero rather
// than omitting them.
func EncodeLED(cmd LedCommand) ([]byte, error) {
	switch c := cmd.(type) {
	case LedOff:
		return []byte{ledModeOff, 0, 0, 0}, nil

	case LedConstant:
		if c.R < 0 || c.R > 255 || c.G < 0 || c.G > 255 || c.B < 0 || c.B > 255 {
			return nil, rangeError("led_constant", "r, g, b must each be 0..255")
		}
		return []byte{ledModeConstant, byte(c.R), byte(c.G), byte(c.B)}, nil

	case LedBreathe:
		if c.ColorCode < 1 || c.ColorCode > 7 {
			return nil, rangeError("led_breathe", "color_code must be 1..7")
		}
		if c.Intensity < 0 || c.Intensity > 100 {
			return nil, rangeError("led_breathe", "intensity must be 0..100")
		}
		if c.DelayMs < 50 || c.DelayMs > 10000 {
			return nil, rangeError("led_breathe", "delay_ms must be 50..10000")
		}
		return []byte{ledModeBreathe, byte(c.ColorCode), byte(c.Intensity), 0}, nil

	case LedOneShot:
		if c.ColorCode < 1 || c.ColorCode > 7 {
			return nil, rangeError("led_one_shot", "color_code must be 1..7")
		}
		if c.Intensity < 0 || c.Intensity > 100 {
			return nil, rangeError("led_one_shot", "intensity must be 0..100")
		}
		return []byte{ledModeOneShot, byte(c.ColorCode), byte(c.Intensity), 0}, nil

	default:
		return nil, rangeError("led", "unknown LedCommand variant")
	}
}
