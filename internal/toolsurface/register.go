package toolsurface

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Register builds an MCP server exposing every bridge tool from §4.5 and
// wires each one to srv. name/version identify the server to MCP clients
// during initialization.
func Register(srv *Server, name, version string) *server.MCPServer {
	s := server.NewMCPServer(name, version)

	s.AddTool(mcp.NewTool("scan_devices",
		mcp.WithDescription("Scan for nearby Thingy:52 peripherals"),
		mcp.WithNumber("timeout_seconds", mcp.Description("scan duration, 1..60, default 10")),
	), wrap(srv, func(ctx context.Context, args ScanDevicesArgs) (any, error) {
		return srv.ScanDevices(ctx, args)
	}))

	s.AddTool(mcp.NewTool("connect_device",
		mcp.WithDescription("Connect to a Thingy:52 by address"),
		mcp.WithString("address", mcp.Required(), mcp.Description("peripheral address from scan_devices")),
		mcp.WithNumber("timeout_seconds", mcp.Description("connect timeout, default 30")),
	), wrap(srv, func(ctx context.Context, args ConnectDeviceArgs) (any, error) {
		return srv.ConnectDevice(ctx, args)
	}))

	s.AddTool(mcp.NewTool("disconnect_device",
		mcp.WithDescription("Disconnect the currently connected Thingy:52"),
	), wrapNoArgs(srv, func(ctx context.Context) (any, error) {
		return srv.DisconnectDevice(ctx)
	}))

	s.AddTool(mcp.NewTool("get_device_status",
		mcp.WithDescription("Report connection state, address, and battery level"),
	), wrapNoArgs(srv, func(ctx context.Context) (any, error) {
		return srv.GetDeviceStatus(ctx)
	}))

	s.AddTool(mcp.NewTool("read_temperature",
		mcp.WithDescription("Read ambient temperature in Celsius"),
	), wrapNoArgs(srv, func(ctx context.Context) (any, error) {
		return srv.ReadTemperature(ctx)
	}))

	s.AddTool(mcp.NewTool("read_humidity",
		mcp.WithDescription("Read relative humidity percentage"),
	), wrapNoArgs(srv, func(ctx context.Context) (any, error) {
		return srv.ReadHumidity(ctx)
	}))

	s.AddTool(mcp.NewTool("read_pressure",
		mcp.WithDescription("Read barometric pressure in hPa"),
	), wrapNoArgs(srv, func(ctx context.Context) (any, error) {
		return srv.ReadPressure(ctx)
	}))

	s.AddTool(mcp.NewTool("read_air_quality",
		mcp.WithDescription("Read CO2 equivalent and TVOC levels"),
	), wrapNoArgs(srv, func(ctx context.Context) (any, error) {
		return srv.ReadAirQuality(ctx)
	}))

	s.AddTool(mcp.NewTool("read_color_sensor",
		mcp.WithDescription("Read the raw RGBC color sensor"),
	), wrapNoArgs(srv, func(ctx context.Context) (any, error) {
		return srv.ReadColorSensor(ctx)
	}))

	s.AddTool(mcp.NewTool("read_light_intensity",
		mcp.WithDescription("Read ambient light intensity in lux, derived from the color sensor"),
	), wrapNoArgs(srv, func(ctx context.Context) (any, error) {
		return srv.ReadLightIntensity(ctx)
	}))

	s.AddTool(mcp.NewTool("read_all_sensors",
		mcp.WithDescription("Read all six environmental sensors in one call; partial failures are reported per-sensor"),
	), wrapNoArgs(srv, func(ctx context.Context) (any, error) {
		return srv.ReadAllSensors(ctx)
	}))

	s.AddTool(mcp.NewTool("read_quaternion",
		mcp.WithDescription("Read the fused orientation quaternion"),
	), wrapNoArgs(srv, func(ctx context.Context) (any, error) {
		return srv.ReadQuaternion(ctx)
	}))

	s.AddTool(mcp.NewTool("read_euler_angles",
		mcp.WithDescription("Read roll/pitch/yaw in degrees"),
	), wrapNoArgs(srv, func(ctx context.Context) (any, error) {
		return srv.ReadEulerAngles(ctx)
	}))

	s.AddTool(mcp.NewTool("read_heading",
		mcp.WithDescription("Read compass heading in degrees, normalized to 0..360"),
	), wrapNoArgs(srv, func(ctx context.Context) (any, error) {
		return srv.ReadHeading(ctx)
	}))

	s.AddTool(mcp.NewTool("read_orientation",
		mcp.WithDescription("Read the coarse display orientation"),
	), wrapNoArgs(srv, func(ctx context.Context) (any, error) {
		return srv.ReadOrientation(ctx)
	}))

	s.AddTool(mcp.NewTool("read_raw_motion",
		mcp.WithDescription("Read raw accelerometer/gyroscope/magnetometer vectors"),
	), wrapNoArgs(srv, func(ctx context.Context) (any, error) {
		return srv.ReadRawMotion(ctx)
	}))

	s.AddTool(mcp.NewTool("read_step_count",
		mcp.WithDescription("Read the pedometer step count and elapsed time"),
	), wrapNoArgs(srv, func(ctx context.Context) (any, error) {
		return srv.ReadStepCount(ctx)
	}))

	s.AddTool(mcp.NewTool("read_tap_event",
		mcp.WithDescription("Wait for the next double-tap event"),
		mcp.WithNumber("timeout_seconds", mcp.Description("wait duration, 1..60, default 10")),
	), wrap(srv, func(ctx context.Context, args ReadTapEventArgs) (any, error) {
		return srv.ReadTapEvent(ctx, args)
	}))

	s.AddTool(mcp.NewTool("set_led_color",
		mcp.WithDescription("Set the LED to a constant color, by name or by RGB"),
		mcp.WithString("color", mcp.Description("known color name, e.g. red, warm_white")),
		mcp.WithNumber("red", mcp.Description("0..255, required if color is omitted")),
		mcp.WithNumber("green", mcp.Description("0..255, required if color is omitted")),
		mcp.WithNumber("blue", mcp.Description("0..255, required if color is omitted")),
		mcp.WithNumber("intensity", mcp.Description("0..100, default 100, scales RGB")),
	), wrap(srv, func(ctx context.Context, args SetLEDColorArgs) (any, error) {
		return srv.SetLEDColor(ctx, args)
	}))

	s.AddTool(mcp.NewTool("set_led_breathe",
		mcp.WithDescription("Pulse the LED between off and a named color"),
		mcp.WithString("color", mcp.Required(), mcp.Description("one of: red, green, yellow, blue, cyan, magenta, white")),
		mcp.WithNumber("intensity", mcp.Description("0..100, default 20")),
		mcp.WithNumber("delay_ms", mcp.Description("50..10000, default 1000")),
	), wrap(srv, func(ctx context.Context, args SetLEDBreatheArgs) (any, error) {
		return srv.SetLEDBreathe(ctx, args)
	}))

	s.AddTool(mcp.NewTool("turn_off_led",
		mcp.WithDescription("Turn the LED off"),
	), wrapNoArgs(srv, func(ctx context.Context) (any, error) {
		return srv.TurnOffLED(ctx)
	}))

	s.AddTool(mcp.NewTool("play_sound",
		mcp.WithDescription("Play one of the eight built-in preset sounds"),
		mcp.WithNumber("sound_id", mcp.Required(), mcp.Description("1..8")),
	), wrap(srv, func(ctx context.Context, args PlaySoundArgs) (any, error) {
		return srv.PlaySound(ctx, args)
	}))

	s.AddTool(mcp.NewTool("beep",
		mcp.WithDescription("Play the fixed beep tone"),
	), wrapNoArgs(srv, func(ctx context.Context) (any, error) {
		return srv.Beep(ctx)
	}))

	return s
}

// wrap adapts a Server method taking a decoded argument struct into an
// mcp-go tool handler: decode request arguments, call fn, translate the
// result or error into the tool's envelope.
func wrap[T any](srv *Server, fn func(ctx context.Context, args T) (any, error)) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args T
		raw, err := json.Marshal(request.Params.Arguments)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("decode arguments: %v", err)), nil
		}
		if err := json.Unmarshal(raw, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("decode arguments: %v", err)), nil
		}
		result, err := fn(ctx, args)
		return toolResult(result, err)
	}
}

// wrapNoArgs is wrap for tools that take no arguments.
func wrapNoArgs(srv *Server, fn func(ctx context.Context) (any, error)) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := fn(ctx)
		return toolResult(result, err)
	}
}

func toolResult(result any, err error) (*mcp.CallToolResult, error) {
	if err != nil {
		envelope := toEnvelope(err)
		payload, marshalErr := json.Marshal(envelope)
		if marshalErr != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultError(string(payload)), nil
	}
	payload, marshalErr := json.Marshal(result)
	if marshalErr != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode result: %v", marshalErr)), nil
	}
	return mcp.NewToolResultText(string(payload)), nil
}
