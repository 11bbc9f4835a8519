package codec

import "encoding/binary"

const (
	q30 = float64(1 << 30)
	q16 = float64(1 << 16)
	q10 = float64(1 << 10)
	q5  = float64(1 << 5)
	q4  = float64(1 << 4)
)

// DecodeQuaternion parses the 16-byte Quaternion payload: four Q30
// fixed-point int32 LE values in order W, X, Y, Z.
func DecodeQuaternion(data []byte) (Quaternion, error) {
	if len(data) != 16 {
		return Quaternion{}, lengthError("quaternion", 16, len(data))
	}
	return Quaternion{
		W: float64(int32(binary.LittleEndian.Uint32(data[0:4]))) / q30,
		X: float64(int32(binary.LittleEndian.Uint32(data[4:8]))) / q30,
		Y: float64(int32(binary.LittleEndian.Uint32(data[8:12]))) / q30,
		Z: float64(int32(binary.LittleEndian.Uint32(data[12:16]))) / q30,
	}, nil
}

// EncodeQuaternion is the inverse of DecodeQuaternion, used by tests and the
// mock transport to build scripted notification payloads.
func EncodeQuaternion(q Quaternion) []byte {
	data := make([]byte, 16)
	binary.LittleEndian.PutUint32(data[0:4], uint32(int32(q.W*q30)))
	binary.LittleEndian.PutUint32(data[4:8], uint32(int32(q.X*q30)))
	binary.LittleEndian.PutUint32(data[8:12], uint32(int32(q.Y*q30)))
	binary.LittleEndian.PutUint32(data[12:16], uint32(int32(q.Z*q30)))
	return data
}

// DecodeEuler parses the 12-byte Euler payload: three Q16 fixed-point
// int32 LE values in order roll, pitch, yaw (degrees).
func DecodeEuler(data []byte) (Euler, error) {
	if len(data) != 12 {
		return Euler{}, lengthError("euler", 12, len(data))
	}
	return Euler{
		RollDeg:  float64(int32(binary.LittleEndian.Uint32(data[0:4]))) / q16,
		PitchDeg: float64(int32(binary.LittleEndian.Uint32(data[4:8]))) / q16,
		YawDeg:   float64(int32(binary.LittleEndian.Uint32(data[8:12]))) / q16,
	}, nil
}

// DecodeHeading parses the 4-byte Heading payload: a Q16 fixed-point
// int32 LE value in degrees, normalized to [0, 360).
func DecodeHeading(data []byte) (Heading, error) {
	if len(data) != 4 {
		return Heading{}, lengthError("heading", 4, len(data))
	}
	deg := float64(int32(binary.LittleEndian.Uint32(data[0:4]))) / q16
	deg = normalizeDegrees(deg)
	return Heading{Deg: deg}, nil
}

func normalizeDegrees(deg float64) float64 {
	const full = 360.0
	deg = deg - full*float64(int(deg/full))
	if deg < 0 {
		deg += full
	}
	return deg
}

// DecodeOrientation parses the 1-byte Orientation payload: an enum in
// 0..3.
func DecodeOrientation(data []byte) (Orientation, error) {
	if len(data) != 1 {
		return Orientation{}, lengthError("orientation", 1, len(data))
	}
	if data[0] > 3 {
		return Orientation{}, rangeError("orientation", "value outside 0..3 range")
	}
	return Orientation{Value: OrientationValue(data[0])}, nil
}

// DecodeStepCount parses the 8-byte Step Counter payload: uint32 LE steps
// followed by uint32 LE elapsed milliseconds.
func DecodeStepCount(data []byte) (StepCount, error) {
	if len(data) != 8 {
		return StepCount{}, lengthError("step_counter", 8, len(data))
	}
	return StepCount{
		Steps:     int(binary.LittleEndian.Uint32(data[0:4])),
		ElapsedMs: int(binary.LittleEndian.Uint32(data[4:8])),
	}, nil
}

// DecodeTapEvent parses the 2-byte Tap payload: direction byte, count
// byte.
func DecodeTapEvent(data []byte) (TapEvent, error) {
	if len(data) != 2 {
		return TapEvent{}, lengthError("tap", 2, len(data))
	}
	return TapEvent{Direction: int(data[0]), Count: int(data[1])}, nil
}

// DecodeRawMotion parses the 18-byte Raw Motion payload: three
// 3-vectors of int16 LE in order accelerometer (Q10 g), gyroscope
// (Q5 deg/s), magnetometer (Q4 uT).
func DecodeRawMotion(data []byte) (RawMotion, error) {
	if len(data) != 18 {
		return RawMotion{}, lengthError("raw_motion", 18, len(data))
	}
	readVec := func(offset int, quantum float64) Vec3 {
		x := float64(int16(binary.LittleEndian.Uint16(data[offset:offset+2]))) / quantum
		y := float64(int16(binary.LittleEndian.Uint16(data[offset+2:offset+4]))) / quantum
		z := float64(int16(binary.LittleEndian.Uint16(data[offset+4:offset+6]))) / quantum
		return Vec3{X: x, Y: y, Z: z}
	}
	return RawMotion{
		Accel: readVec(0, q10),
		Gyro:  readVec(6, q5),
		Mag:   readVec(12, q4),
	}, nil
}

// EncodeRawMotion is the inverse of DecodeRawMotion, used by tests and the
// mock transport to build scripted notification payloads.
func EncodeRawMotion(m RawMotion) []byte {
	data := make([]byte, 18)
	writeVec := func(offset int, v Vec3, quantum float64) {
		binary.LittleEndian.PutUint16(data[offset:offset+2], uint16(int16(v.X*quantum)))
		binary.LittleEndian.PutUint16(data[offset+2:offset+4], uint16(int16(v.Y*quantum)))
		binary.LittleEndian.PutUint16(data[offset+4:offset+6], uint16(int16(v.Z*quantum)))
	}
	writeVec(0, m.Accel, q10)
	writeVec(6, m.Gyro, q5)
	writeVec(12, m.Mag, q4)
	return data
}
