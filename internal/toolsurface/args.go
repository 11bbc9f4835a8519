// Package toolsurface adapts Session operations to the MCP tool interface:
// argument validation, dispatch, and translation of Session errors into the
// MCP result envelope. It invents no new errors; it only maps Session's.
package toolsurface

import "github.com/mcuadros/go-defaults"

type ScanDevicesArgs struct {
	TimeoutSeconds int `json:"timeout_seconds" default:"10"`
}

type ConnectDeviceArgs struct {
	Address        string `json:"address"`
	TimeoutSeconds int    `json:"timeout_seconds" default:"30"`
}

type ReadTapEventArgs struct {
	TimeoutSeconds int `json:"timeout_seconds" default:"10"`
}

type SetLEDColorArgs struct {
	Color     string `json:"color,omitempty"`
	Red       *int   `json:"red,omitempty"`
	Green     *int   `json:"green,omitempty"`
	Blue      *int   `json:"blue,omitempty"`
	Intensity int    `json:"intensity" default:"100"`
}

type SetLEDBreatheArgs struct {
	Color     string `json:"color"`
	Intensity int    `json:"intensity" default:"20"`
	DelayMs   int    `json:"delay_ms" default:"1000"`
}

type PlaySoundArgs struct {
	SoundID int `json:"sound_id"`
}

// withDefaults applies struct-tag defaults to a freshly json-unmarshaled
// argument struct, the same way the rest of this codebase's config layer
// fills in omitted values.
func withDefaults[T any](args *T) *T {
	defaults.SetDefaults(args)
	return args
}
