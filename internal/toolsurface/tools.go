package toolsurface

import (
	"context"
	"time"

	"github.com/srg/thingy52mcp/internal/codec"
	"github.com/srg/thingy52mcp/internal/session"
	"github.com/srg/thingy52mcp/internal/transport"
)

// Server dispatches the fixed tool set to a Session. Each method is a thin
// adapter: validate arguments, call Session, translate the result or error
// into a plain result struct the MCP registration layer serializes.
type Server struct {
	session *session.Session
}

func New(s *session.Session) *Server {
	return &Server{session: s}
}

// connectedOnly is the guard every tool but scan_devices, connect_device,
// and get_device_status must call first.
func (srv *Server) connectedOnly() error {
	if srv.session.State() != session.Connected {
		return transport.ErrNotConnected
	}
	return nil
}

type DeviceSummary struct {
	Address string `json:"address"`
	Name    string `json:"name,omitempty"`
	RSSI    int    `json:"rssi"`
}

func (srv *Server) ScanDevices(ctx context.Context, args ScanDevicesArgs) ([]DeviceSummary, error) {
	args = *withDefaults(&args)
	if args.TimeoutSeconds < 1 || args.TimeoutSeconds > 60 {
		return nil, invalidArgument("timeout_seconds", "must be 1..60")
	}
	peripherals, err := srv.session.Scan(ctx, time.Duration(args.TimeoutSeconds)*time.Second)
	if err != nil {
		return nil, err
	}
	out := make([]DeviceSummary, 0, len(peripherals))
	for _, p := range peripherals {
		out = append(out, DeviceSummary{Address: p.Address, Name: p.Name, RSSI: p.RSSI})
	}
	return out, nil
}

type ConnectResult struct {
	Connected bool   `json:"connected"`
	Address   string `json:"address"`
	Name      string `json:"name,omitempty"`
}

func (srv *Server) ConnectDevice(ctx context.Context, args ConnectDeviceArgs) (ConnectResult, error) {
	args = *withDefaults(&args)
	if args.Address == "" {
		return ConnectResult{}, invalidArgument("address", "must not be empty")
	}
	if args.TimeoutSeconds < 1 {
		return ConnectResult{}, invalidArgument("timeout_seconds", "must be positive")
	}
	if err := srv.session.Connect(ctx, args.Address, time.Duration(args.TimeoutSeconds)*time.Second); err != nil {
		return ConnectResult{}, err
	}
	return ConnectResult{Connected: true, Address: args.Address}, nil
}

type DisconnectResult struct {
	Connected bool `json:"connected"`
}

func (srv *Server) DisconnectDevice(ctx context.Context) (DisconnectResult, error) {
	if err := srv.session.Disconnect(); err != nil {
		return DisconnectResult{}, err
	}
	return DisconnectResult{Connected: false}, nil
}

type DeviceStatus struct {
	Connected      bool   `json:"connected"`
	Address        string `json:"address,omitempty"`
	BatteryPercent *int   `json:"battery_percent,omitempty"`
}

// GetDeviceStatus reads battery level as a sub-operation; a failure there
// does not fail the whole status call.
func (srv *Server) GetDeviceStatus(ctx context.Context) (DeviceStatus, error) {
	status := DeviceStatus{Connected: srv.session.State() == session.Connected}
	if !status.Connected {
		return status, nil
	}
	status.Address = srv.session.Address()
	if battery, err := srv.session.GetBatteryLevel(ctx); err == nil {
		p := battery.Percent
		status.BatteryPercent = &p
	}
	return status, nil
}

// TemperatureResult is the wire shape of read_temperature, per the external
// tool contract: a snake_case value field plus its unit, not the bare codec
// struct.
type TemperatureResult struct {
	TemperatureCelsius float64 `json:"temperature_celsius"`
	Unit               string  `json:"unit"`
}

func temperatureResult(r codec.Temperature) TemperatureResult {
	return TemperatureResult{TemperatureCelsius: r.Celsius, Unit: "°C"}
}

func (srv *Server) ReadTemperature(ctx context.Context) (TemperatureResult, error) {
	if err := srv.connectedOnly(); err != nil {
		return TemperatureResult{}, err
	}
	r, err := srv.session.ReadTemperature(ctx)
	if err != nil {
		return TemperatureResult{}, err
	}
	return temperatureResult(r), nil
}

type HumidityResult struct {
	HumidityPercent int    `json:"humidity_percent"`
	Unit            string `json:"unit"`
}

func humidityResult(r codec.Humidity) HumidityResult {
	return HumidityResult{HumidityPercent: r.Percent, Unit: "%"}
}

func (srv *Server) ReadHumidity(ctx context.Context) (HumidityResult, error) {
	if err := srv.connectedOnly(); err != nil {
		return HumidityResult{}, err
	}
	r, err := srv.session.ReadHumidity(ctx)
	if err != nil {
		return HumidityResult{}, err
	}
	return humidityResult(r), nil
}

type PressureResult struct {
	PressureHpa float64 `json:"pressure_hpa"`
	Unit        string  `json:"unit"`
}

func pressureResult(r codec.Pressure) PressureResult {
	return PressureResult{PressureHpa: r.Hpa, Unit: "hPa"}
}

func (srv *Server) ReadPressure(ctx context.Context) (PressureResult, error) {
	if err := srv.connectedOnly(); err != nil {
		return PressureResult{}, err
	}
	r, err := srv.session.ReadPressure(ctx)
	if err != nil {
		return PressureResult{}, err
	}
	return pressureResult(r), nil
}

type AirQualityResult struct {
	CO2PPM  int `json:"co2_ppm"`
	TVOCPPB int `json:"tvoc_ppb"`
}

func airQualityResult(r codec.AirQuality) AirQualityResult {
	return AirQualityResult{CO2PPM: r.CO2PPM, TVOCPPB: r.TVOCPPB}
}

func (srv *Server) ReadAirQuality(ctx context.Context) (AirQualityResult, error) {
	if err := srv.connectedOnly(); err != nil {
		return AirQualityResult{}, err
	}
	r, err := srv.session.ReadAirQuality(ctx)
	if err != nil {
		return AirQualityResult{}, err
	}
	return airQualityResult(r), nil
}

type ColorResult struct {
	R     int `json:"r"`
	G     int `json:"g"`
	B     int `json:"b"`
	Clear int `json:"clear"`
}

func colorResult(r codec.Color) ColorResult {
	return ColorResult{R: r.R, G: r.G, B: r.B, Clear: r.Clear}
}

func (srv *Server) ReadColorSensor(ctx context.Context) (ColorResult, error) {
	if err := srv.connectedOnly(); err != nil {
		return ColorResult{}, err
	}
	r, err := srv.session.ReadColor(ctx)
	if err != nil {
		return ColorResult{}, err
	}
	return colorResult(r), nil
}

type LightResult struct {
	Lux  float64 `json:"lux"`
	Unit string  `json:"unit"`
}

func lightResult(r codec.Light) LightResult {
	return LightResult{Lux: r.Lux, Unit: "lux"}
}

func (srv *Server) ReadLightIntensity(ctx context.Context) (LightResult, error) {
	if err := srv.connectedOnly(); err != nil {
		return LightResult{}, err
	}
	r, err := srv.session.ReadLightIntensity(ctx)
	if err != nil {
		return LightResult{}, err
	}
	return lightResult(r), nil
}

type AllSensorsResult struct {
	Temperature *TemperatureResult `json:"temperature,omitempty"`
	Humidity    *HumidityResult    `json:"humidity,omitempty"`
	Pressure    *PressureResult    `json:"pressure,omitempty"`
	AirQuality  *AirQualityResult  `json:"air_quality,omitempty"`
	Color       *ColorResult       `json:"color,omitempty"`
	Light       *LightResult       `json:"light,omitempty"`
	Errors      map[string]string  `json:"errors,omitempty"`
}

func (srv *Server) ReadAllSensors(ctx context.Context) (AllSensorsResult, error) {
	if err := srv.connectedOnly(); err != nil {
		return AllSensorsResult{}, err
	}
	snap := srv.session.ReadAllSensors(ctx)
	result := AllSensorsResult{}
	if snap.Temperature != nil {
		r := temperatureResult(*snap.Temperature)
		result.Temperature = &r
	}
	if snap.Humidity != nil {
		r := humidityResult(*snap.Humidity)
		result.Humidity = &r
	}
	if snap.Pressure != nil {
		r := pressureResult(*snap.Pressure)
		result.Pressure = &r
	}
	if snap.AirQuality != nil {
		r := airQualityResult(*snap.AirQuality)
		result.AirQuality = &r
	}
	if snap.Color != nil {
		r := colorResult(*snap.Color)
		result.Color = &r
	}
	if snap.Light != nil {
		r := lightResult(*snap.Light)
		result.Light = &r
	}
	if len(snap.Errors) > 0 {
		result.Errors = make(map[string]string, len(snap.Errors))
		for k, e := range snap.Errors {
			result.Errors[k] = e.Error()
		}
	}
	return result, nil
}

type QuaternionResult struct {
	W float64 `json:"w"`
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (srv *Server) ReadQuaternion(ctx context.Context) (QuaternionResult, error) {
	if err := srv.connectedOnly(); err != nil {
		return QuaternionResult{}, err
	}
	r, err := srv.session.ReadQuaternion(ctx)
	if err != nil {
		return QuaternionResult{}, err
	}
	return QuaternionResult{W: r.W, X: r.X, Y: r.Y, Z: r.Z}, nil
}

type EulerResult struct {
	RollDeg  float64 `json:"roll_deg"`
	PitchDeg float64 `json:"pitch_deg"`
	YawDeg   float64 `json:"yaw_deg"`
}

func (srv *Server) ReadEulerAngles(ctx context.Context) (EulerResult, error) {
	if err := srv.connectedOnly(); err != nil {
		return EulerResult{}, err
	}
	r, err := srv.session.ReadEuler(ctx)
	if err != nil {
		return EulerResult{}, err
	}
	return EulerResult{RollDeg: r.RollDeg, PitchDeg: r.PitchDeg, YawDeg: r.YawDeg}, nil
}

type HeadingResult struct {
	HeadingDeg float64 `json:"heading_deg"`
}

func (srv *Server) ReadHeading(ctx context.Context) (HeadingResult, error) {
	if err := srv.connectedOnly(); err != nil {
		return HeadingResult{}, err
	}
	r, err := srv.session.ReadHeading(ctx)
	if err != nil {
		return HeadingResult{}, err
	}
	return HeadingResult{HeadingDeg: r.Deg}, nil
}

type OrientationResult struct {
	Orientation string `json:"orientation"`
}

func (srv *Server) ReadOrientation(ctx context.Context) (OrientationResult, error) {
	if err := srv.connectedOnly(); err != nil {
		return OrientationResult{}, err
	}
	r, err := srv.session.ReadOrientation(ctx)
	if err != nil {
		return OrientationResult{}, err
	}
	return OrientationResult{Orientation: r.Value.String()}, nil
}

type Vec3Result struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

type RawMotionResult struct {
	Accel Vec3Result `json:"accel"`
	Gyro  Vec3Result `json:"gyro"`
	Mag   Vec3Result `json:"mag"`
}

func (srv *Server) ReadRawMotion(ctx context.Context) (RawMotionResult, error) {
	if err := srv.connectedOnly(); err != nil {
		return RawMotionResult{}, err
	}
	r, err := srv.session.ReadRawMotion(ctx)
	if err != nil {
		return RawMotionResult{}, err
	}
	return RawMotionResult{
		Accel: Vec3Result{X: r.Accel.X, Y: r.Accel.Y, Z: r.Accel.Z},
		Gyro:  Vec3Result{X: r.Gyro.X, Y: r.Gyro.Y, Z: r.Gyro.Z},
		Mag:   Vec3Result{X: r.Mag.X, Y: r.Mag.Y, Z: r.Mag.Z},
	}, nil
}

type StepCountResult struct {
	Steps     int `json:"steps"`
	ElapsedMs int `json:"elapsed_ms"`
}

func (srv *Server) ReadStepCount(ctx context.Context) (StepCountResult, error) {
	if err := srv.connectedOnly(); err != nil {
		return StepCountResult{}, err
	}
	r, err := srv.session.ReadStepCount(ctx)
	if err != nil {
		return StepCountResult{}, err
	}
	return StepCountResult{Steps: r.Steps, ElapsedMs: r.ElapsedMs}, nil
}

type TapEventResult struct {
	Direction int `json:"direction"`
	Count     int `json:"count"`
}

func (srv *Server) ReadTapEvent(ctx context.Context, args ReadTapEventArgs) (TapEventResult, error) {
	if err := srv.connectedOnly(); err != nil {
		return TapEventResult{}, err
	}
	args = *withDefaults(&args)
	if args.TimeoutSeconds < 1 || args.TimeoutSeconds > 60 {
		return TapEventResult{}, invalidArgument("timeout_seconds", "must be 1..60")
	}
	r, err := srv.session.ReadTapEvent(ctx, time.Duration(args.TimeoutSeconds)*time.Second)
	if err != nil {
		return TapEventResult{}, err
	}
	return TapEventResult{Direction: r.Direction, Count: r.Count}, nil
}

type LEDResult struct {
	LEDSet bool `json:"led_set"`
}

// SetLEDColor accepts either a known color name or an explicit RGB triple,
// scaled by intensity. Scenario D / Scenario H live here: validation
// failures never touch the Transport.
func (srv *Server) SetLEDColor(ctx context.Context, args SetLEDColorArgs) (LEDResult, error) {
	if err := srv.connectedOnly(); err != nil {
		return LEDResult{}, err
	}
	args = *withDefaults(&args)
	if args.Intensity < 0 || args.Intensity > 100 {
		return LEDResult{}, invalidArgument("intensity", "must be 0..100")
	}

	var r, g, b int
	switch {
	case args.Color != "":
		nr, ng, nb, err := lookupColorOrError(args.Color)
		if err != nil {
			return LEDResult{}, err
		}
		r, g, b = nr, ng, nb
	case args.Red != nil && args.Green != nil && args.Blue != nil:
		if *args.Red < 0 || *args.Red > 255 {
			return LEDResult{}, invalidArgument("red", "must be 0..255")
		}
		if *args.Green < 0 || *args.Green > 255 {
			return LEDResult{}, invalidArgument("green", "must be 0..255")
		}
		if *args.Blue < 0 || *args.Blue > 255 {
			return LEDResult{}, invalidArgument("blue", "must be 0..255")
		}
		r, g, b = *args.Red, *args.Green, *args.Blue
	default:
		return LEDResult{}, invalidArgument("color", "either color or red,green,blue must be provided")
	}

	r = r * args.Intensity / 100
	g = g * args.Intensity / 100
	b = b * args.Intensity / 100

	if err := srv.session.SetLED(ctx, codec.LedConstant{R: r, G: g, B: b}); err != nil {
		return LEDResult{}, err
	}
	return LEDResult{LEDSet: true}, nil
}

func lookupColorOrError(name string) (int, int, int, error) {
	r, g, b, err := codec.LookupNamedColor(name)
	if err != nil {
		return 0, 0, 0, invalidArgument("color", "unknown color name: "+name)
	}
	return r, g, b, nil
}

func (srv *Server) SetLEDBreathe(ctx context.Context, args SetLEDBreatheArgs) (LEDResult, error) {
	if err := srv.connectedOnly(); err != nil {
		return LEDResult{}, err
	}
	args = *withDefaults(&args)
	code, err := codec.LookupBreatheColorCode(args.Color)
	if err != nil {
		return LEDResult{}, invalidArgument("color", "must be one of the 7 breathe-mode names")
	}
	if args.Intensity < 0 || args.Intensity > 100 {
		return LEDResult{}, invalidArgument("intensity", "must be 0..100")
	}
	if args.DelayMs < 50 || args.DelayMs > 10000 {
		return LEDResult{}, invalidArgument("delay_ms", "must be 50..10000")
	}
	cmd := codec.LedBreathe{ColorCode: code, Intensity: args.Intensity, DelayMs: args.DelayMs}
	if err := srv.session.SetLED(ctx, cmd); err != nil {
		return LEDResult{}, err
	}
	return LEDResult{LEDSet: true}, nil
}

func (srv *Server) TurnOffLED(ctx context.Context) (LEDResult, error) {
	if err := srv.connectedOnly(); err != nil {
		return LEDResult{}, err
	}
	if err := srv.session.SetLED(ctx, codec.LedOff{}); err != nil {
		return LEDResult{}, err
	}
	return LEDResult{LEDSet: false}, nil
}

type SoundResult struct {
	SoundTriggered bool `json:"sound_triggered"`
}

func (srv *Server) PlaySound(ctx context.Context, args PlaySoundArgs) (SoundResult, error) {
	if err := srv.connectedOnly(); err != nil {
		return SoundResult{}, err
	}
	if args.SoundID < 1 || args.SoundID > 8 {
		return SoundResult{}, invalidArgument("sound_id", "must be 1..8")
	}
	if err := srv.session.PlaySound(ctx, codec.PresetSound{ID: args.SoundID}); err != nil {
		return SoundResult{}, err
	}
	return SoundResult{SoundTriggered: true}, nil
}

func (srv *Server) Beep(ctx context.Context) (SoundResult, error) {
	if err := srv.connectedOnly(); err != nil {
		return SoundResult{}, err
	}
	if err := srv.session.PlaySound(ctx, codec.Beep{}); err != nil {
		return SoundResult{}, err
	}
	return SoundResult{SoundTriggered: true}, nil
}
