// Package uuidregistry is the static table mapping symbolic Thingy:52
// sensor/actuator names to their GATT service and characteristic UUIDs.
package uuidregistry

import (
	"fmt"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Service names group the registry's characteristics the way the firmware
// groups them into GATT services.
const (
	ServiceEnvironment = "environment"
	ServiceMotion      = "motion"
	ServiceUI          = "ui"
	ServiceSound       = "sound"
	ServiceBattery     = "battery"
)

// Entry is one row of the registry: a symbolic name resolved to the
// concrete service and characteristic UUID the firmware exposes it under.
type Entry struct {
	Name      string
	Service   string
	ServiceID string
	CharID    string
}

// thingyUUID builds the vendor UUID EF68ZZZZ-9B35-4933-9B10-52FFA9740042
// for the given four hex digit identifier.
func thingyUUID(id string) string {
	return fmt.Sprintf("EF68%s-9B35-4933-9B10-52FFA9740042", id)
}

const batteryServiceUUID = "0000180F-0000-1000-8000-00805F9B34FB"
const batteryLevelCharUUID = "00002A19-0000-1000-8000-00805F9B34FB"

var (
	environmentServiceUUID = thingyUUID("0200")
	motionServiceUUID      = thingyUUID("0400")
	uiServiceUUID          = thingyUUID("0300")
	soundServiceUUID       = thingyUUID("0500")
)

// Registry is the read-only symbolic-name lookup table. Construction order
// is preserved so Names() returns the same stable ordering the firmware's
// own service layout implies.
type Registry struct {
	entries *orderedmap.OrderedMap[string, Entry]
}

// New builds the registry. There is no variation across instances -
// the table is fixed by the Thingy:52 firmware - but it's constructed
// rather than held as a package global so Session can take it as an
// explicit dependency instead of reaching for ambient state.
func New() *Registry {
	r := &Registry{entries: orderedmap.New[string, Entry]()}

	add := func(name, service, serviceUUID, charID string) {
		r.entries.Set(name, Entry{
			Name:      name,
			Service:   service,
			ServiceID: serviceUUID,
			CharID:    thingyUUID(charID),
		})
	}

	add("temperature", ServiceEnvironment, environmentServiceUUID, "0201")
	add("pressure", ServiceEnvironment, environmentServiceUUID, "0202")
	add("humidity", ServiceEnvironment, environmentServiceUUID, "0203")
	add("air_quality", ServiceEnvironment, environmentServiceUUID, "0204")
	add("color", ServiceEnvironment, environmentServiceUUID, "0205")
	add("gas_mode", ServiceEnvironment, environmentServiceUUID, "0206")

	add("motion_config", ServiceMotion, motionServiceUUID, "0401")
	add("tap", ServiceMotion, motionServiceUUID, "0402")
	add("orientation", ServiceMotion, motionServiceUUID, "0403")
	add("quaternion", ServiceMotion, motionServiceUUID, "0404")
	add("step_counter", ServiceMotion, motionServiceUUID, "0405")
	add("raw_motion", ServiceMotion, motionServiceUUID, "0406")
	add("euler", ServiceMotion, motionServiceUUID, "0407")
	add("rotation_matrix", ServiceMotion, motionServiceUUID, "0408")
	add("heading", ServiceMotion, motionServiceUUID, "0409")
	add("gravity", ServiceMotion, motionServiceUUID, "040A")

	add("led", ServiceUI, uiServiceUUID, "0301")
	add("button", ServiceUI, uiServiceUUID, "0302")

	add("speaker_config", ServiceSound, soundServiceUUID, "0501")
	add("speaker_data", ServiceSound, soundServiceUUID, "0502")
	add("speaker_status", ServiceSound, soundServiceUUID, "0503")
	add("microphone", ServiceSound, soundServiceUUID, "0504")

	r.entries.Set("battery_level", Entry{
		Name:      "battery_level",
		Service:   ServiceBattery,
		ServiceID: batteryServiceUUID,
		CharID:    batteryLevelCharUUID,
	})

	return r
}

// ErrUnknownName is returned by Lookup for a symbolic name the registry
// has no entry for.
type ErrUnknownName string

func (e ErrUnknownName) Error() string {
	return fmt.Sprintf("uuidregistry: unknown sensor/actuator name %q", string(e))
}

// Lookup resolves a symbolic name to its service/characteristic UUIDs.
func (r *Registry) Lookup(name string) (Entry, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	e, ok := r.entries.Get(name)
	if !ok {
		return Entry{}, ErrUnknownName(name)
	}
	return e, nil
}

// Names returns every symbolic name the registry knows, in declaration order.
func (r *Registry) Names() []string {
	names := make([]string, 0, r.entries.Len())
	for pair := r.entries.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}
