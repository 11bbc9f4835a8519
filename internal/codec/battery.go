package codec

// DecodeBattery parses the standard GATT Battery Level payload: a single
// byte, 0..100 percent.
func DecodeBattery(data []byte) (Battery, error) {
	if len(data) != 1 {
		return Battery{}, lengthError("battery_level", 1, len(data))
	}
	percent := int(data[0])
	if percent > 100 {
		return Battery{}, rangeError("battery_level", "value outside 0..100 range")
	}
	return Battery{Percent: percent}, nil
}
