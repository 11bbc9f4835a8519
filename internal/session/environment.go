package session

import (
	"context"

	"github.com/srg/thingy52mcp/internal/codec"
	"github.com/srg/thingy52mcp/internal/transport"
)

// readEnvironment reads one environment characteristic with the
// notification-based read pattern. Per §4.4.3, environment characteristics
// generally require notification; this implementation always notifies for
// them rather than trying a direct read first, at the cost of a single extra
// round-trip the spec explicitly allows.
func (s *Session) readEnvironment(ctx context.Context, name string) ([]byte, string, error) {
	entry, err := s.lookup(name)
	if err != nil {
		return nil, "", err
	}
	payload, err := s.readWithRetry(ctx, func() ([]byte, error) {
		return s.notifyRead(ctx, entry.CharID, transport.DefaultNotificationTimeout)
	})
	return payload, entry.CharID, err
}

func (s *Session) ReadTemperature(ctx context.Context) (codec.Temperature, error) {
	payload, uuid, err := s.readEnvironment(ctx, "temperature")
	if err != nil {
		return codec.Temperature{}, err
	}
	r, decErr := codec.DecodeTemperature(payload)
	if decErr != nil {
		return codec.Temperature{}, asMalformed(uuid, decErr)
	}
	return r, nil
}

func (s *Session) ReadHumidity(ctx context.Context) (codec.Humidity, error) {
	payload, uuid, err := s.readEnvironment(ctx, "humidity")
	if err != nil {
		return codec.Humidity{}, err
	}
	r, decErr := codec.DecodeHumidity(payload)
	if decErr != nil {
		return codec.Humidity{}, asMalformed(uuid, decErr)
	}
	return r, nil
}

func (s *Session) ReadPressure(ctx context.Context) (codec.Pressure, error) {
	payload, uuid, err := s.readEnvironment(ctx, "pressure")
	if err != nil {
		return codec.Pressure{}, err
	}
	r, decErr := codec.DecodePressure(payload)
	if decErr != nil {
		return codec.Pressure{}, asMalformed(uuid, decErr)
	}
	return r, nil
}

func (s *Session) ReadAirQuality(ctx context.Context) (codec.AirQuality, error) {
	payload, uuid, err := s.readEnvironment(ctx, "air_quality")
	if err != nil {
		return codec.AirQuality{}, err
	}
	r, decErr := codec.DecodeAirQuality(payload)
	if decErr != nil {
		return codec.AirQuality{}, asMalformed(uuid, decErr)
	}
	return r, nil
}

func (s *Session) ReadColor(ctx context.Context) (codec.Color, error) {
	payload, uuid, err := s.readEnvironment(ctx, "color")
	if err != nil {
		return codec.Color{}, err
	}
	r, decErr := codec.DecodeColor(payload)
	if decErr != nil {
		return codec.Color{}, asMalformed(uuid, decErr)
	}
	return r, nil
}

func (s *Session) ReadLightIntensity(ctx context.Context) (codec.Light, error) {
	// Light intensity is derived from the same Color notification; the
	// firmware has no dedicated lux characteristic.
	payload, uuid, err := s.readEnvironment(ctx, "color")
	if err != nil {
		return codec.Light{}, err
	}
	r, decErr := codec.DecodeLight(payload)
	if decErr != nil {
		return codec.Light{}, asMalformed(uuid, decErr)
	}
	return r, nil
}

// EnvironmentSnapshot aggregates the six environmental readings for
// read_all_sensors. Per-sensor failures are reported in Errors rather than
// aborting the whole call.
type EnvironmentSnapshot struct {
	Temperature *codec.Temperature
	Humidity    *codec.Humidity
	Pressure    *codec.Pressure
	AirQuality  *codec.AirQuality
	Color       *codec.Color
	Light       *codec.Light
	Errors      map[string]error
}

func (s *Session) ReadAllSensors(ctx context.Context) EnvironmentSnapshot {
	snap := EnvironmentSnapshot{Errors: make(map[string]error)}

	if v, err := s.ReadTemperature(ctx); err != nil {
		snap.Errors["temperature"] = err
	} else {
		snap.Temperature = &v
	}
	if v, err := s.ReadHumidity(ctx); err != nil {
		snap.Errors["humidity"] = err
	} else {
		snap.Humidity = &v
	}
	if v, err := s.ReadPressure(ctx); err != nil {
		snap.Errors["pressure"] = err
	} else {
		snap.Pressure = &v
	}
	if v, err := s.ReadAirQuality(ctx); err != nil {
		snap.Errors["air_quality"] = err
	} else {
		snap.AirQuality = &v
	}
	payload, uuid, err := s.readEnvironment(ctx, "color")
	if err != nil {
		snap.Errors["color"] = err
		snap.Errors["light_intensity"] = err
		return snap
	}
	if c, decErr := codec.DecodeColor(payload); decErr != nil {
		snap.Errors["color"] = asMalformed(uuid, decErr)
	} else {
		snap.Color = &c
	}
	if l, decErr := codec.DecodeLight(payload); decErr != nil {
		snap.Errors["light_intensity"] = asMalformed(uuid, decErr)
	} else {
		snap.Light = &l
	}

	return snap
}
