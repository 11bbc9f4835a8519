package codec

import "encoding/binary"

// DecodeTemperature parses the 2-byte Temperature characteristic payload:
// int8 whole-degree part, uint8 hundredths part.
func DecodeTemperature(data []byte) (Temperature, error) {
	if len(data) != 2 {
		return Temperature{}, lengthError("temperature", 2, len(data))
	}
	whole := int(int8(data[0]))
	hundredths := int(data[1])
	if hundredths > 99 {
		return Temperature{}, rangeError("temperature", "hundredths must be 0..99")
	}
	celsius := float64(whole) + float64(hundredths)/100.0
	if celsius < -40.0 || celsius > 85.0 {
		return Temperature{}, rangeError("temperature", "value outside -40.0..85.0 range")
	}
	return Temperature{Celsius: celsius}, nil
}

// DecodeHumidity parses the 1-byte relative-humidity payload.
func DecodeHumidity(data []byte) (Humidity, error) {
	if len(data) != 1 {
		return Humidity{}, lengthError("humidity", 1, len(data))
	}
	percent := int(data[0])
	if percent > 100 {
		return Humidity{}, rangeError("humidity", "value outside 0..100 range")
	}
	return Humidity{Percent: percent}, nil
}

// DecodePressure parses the 5-byte Pressure payload: int32 LE integer
// pascals, uint8 hundredths-of-a-pascal. Reported in hPa.
func DecodePressure(data []byte) (Pressure, error) {
	if len(data) != 5 {
		return Pressure{}, lengthError("pressure", 5, len(data))
	}
	integerPa := int32(binary.LittleEndian.Uint32(data[0:4]))
	hundredths := int(data[4])
	hpa := (float64(integerPa)*100 + float64(hundredths)) / 10000.0
	if hpa < 260.0 || hpa > 1260.0 {
		return Pressure{}, rangeError("pressure", "value outside 260.0..1260.0 hPa range")
	}
	return Pressure{Hpa: hpa}, nil
}

// DecodeAirQuality parses the 4-byte Air Quality payload: uint16 LE CO2
// ppm followed by uint16 LE TVOC ppb.
func DecodeAirQuality(data []byte) (AirQuality, error) {
	if len(data) != 4 {
		return AirQuality{}, lengthError("air_quality", 4, len(data))
	}
	co2 := int(binary.LittleEndian.Uint16(data[0:2]))
	tvoc := int(binary.LittleEndian.Uint16(data[2:4]))
	if co2 < 400 || co2 > 8192 {
		return AirQuality{}, rangeError("air_quality", "co2_ppm outside 400..8192 range")
	}
	if tvoc < 0 || tvoc > 1187 {
		return AirQuality{}, rangeError("air_quality", "tvoc_ppb outside 0..1187 range")
	}
	return AirQuality{CO2PPM: co2, TVOCPPB: tvoc}, nil
}

// DecodeColor parses the 8-byte Color payload: four uint16 LE channels in
// order R, G, B, Clear.
func DecodeColor(data []byte) (Color, error) {
	if len(data) != 8 {
		return Color{}, lengthError("color", 8, len(data))
	}
	return Color{
		R:     int(binary.LittleEndian.Uint16(data[0:2])),
		G:     int(binary.LittleEndian.Uint16(data[2:4])),
		B:     int(binary.LittleEndian.Uint16(data[4:6])),
		Clear: int(binary.LittleEndian.Uint16(data[6:8])),
	}, nil
}

// EncodeColor is the inverse of DecodeColor, used by tests and the mock
// transport to build scripted notification payloads.
func EncodeColor(c Color) []byte {
	data := make([]byte, 8)
	binary.LittleEndian.PutUint16(data[0:2], uint16(c.R))
	binary.LittleEndian.PutUint16(data[2:4], uint16(c.G))
	binary.LittleEndian.PutUint16(data[4:6], uint16(c.B))
	binary.LittleEndian.PutUint16(data[6:8], uint16(c.Clear))
	return data
}

// DecodeLight derives ambient light intensity from the Color
// characteristic's clear channel; the firmware has no dedicated lux
// characteristic, so light_intensity is read via the same notification as
// the color sensor.
func DecodeLight(data []byte) (Light, error) {
	c, err := DecodeColor(data)
	if err != nil {
		return Light{}, err
	}
	return Light{Lux: float64(c.Clear)}, nil
}
