package remote

import (
	"bytes"
	"encoding/json"
	"strings"
)

// OperationMode is a battery control setting accepted by the
// /api/batteries/{externalCode}/operation-mode endpoint.
type OperationMode string

const (
	ModeTimeOfUse    OperationMode = "TIME_OF_USE"
	ModeExportFocus  OperationMode = "EXPORT_FOCUS"
	ModeImportFocus  OperationMode = "IMPORT_FOCUS"
	ModeSelfReliance OperationMode = "SELF_RELIANCE"
)

// OperationModes lists every mode in the order it is offered to the user.
var OperationModes = []OperationMode{
	ModeTimeOfUse,
	ModeExportFocus,
	ModeImportFocus,
	ModeSelfReliance,
}

// ParseOperationMode returns the mode named s, if it is one of OperationModes.
func ParseOperationMode(s string) (OperationMode, bool) {
	for _, m := range OperationModes {
		if string(m) == s {
			return m, true
		}
	}
	return "", false
}

// Valid reports whether m is one of the four supported modes.
func (m OperationMode) Valid() bool {
	_, ok := ParseOperationMode(string(m))
	return ok
}

// Display returns the mode with underscores replaced by spaces ("EXPORT FOCUS").
func (m OperationMode) Display() string {
	return strings.ReplaceAll(string(m), "_", " ")
}

// Value holds a JSON scalar the API returns for a display-only field.
// The backend is loose about types (ids and battery levels arrive as numbers
// or strings), so every field keeps its textual form and an absent or null
// field renders as empty instead of failing the whole payload.
type Value struct {
	text    string
	present bool
}

// NewValue builds a present Value, mainly for tests and fixtures.
func NewValue(s string) Value {
	return Value{text: s, present: true}
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = Value{}
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Value{text: s, present: true}
		return nil
	}

	// Numbers, booleans, objects and arrays keep their compact JSON text.
	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return err
	}
	*v = Value{text: buf.String(), present: true}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.present {
		return []byte("null"), nil
	}
	return json.Marshal(v.text)
}

// String returns the textual form, or "" when absent.
func (v Value) String() string {
	return v.text
}

// Present reports whether the field was sent with a non-empty value.
func (v Value) Present() bool {
	return v.present && v.text != ""
}

// Or returns the textual form, or fallback when the field is absent or empty.
func (v Value) Or(fallback string) string {
	if !v.Present() {
		return fallback
	}
	return v.text
}

// Asset is the common shape of systems, sites and vehicles.
type Asset struct {
	ID          Value `json:"id"`
	Name        Value `json:"name"`
	AssignTo    Value `json:"assign_to"`
	Description Value `json:"description"`
}

// SystemRef is the owning system embedded in a device record.
type SystemRef struct {
	ID   Value `json:"id"`
	Name Value `json:"name"`
}

// Device is a system device (battery) as listed by /api/system-device.
type Device struct {
	ID           Value            `json:"id"`
	Name         Value            `json:"name"`
	ExternalCode Value            `json:"external_code"`
	Systems      []SystemRef      `json:"systems"`
	Attributes   DeviceAttributes `json:"attributes"`
}

// Controllable reports whether the device can be addressed by the battery
// endpoints, which are keyed by external code.
func (d Device) Controllable() bool {
	return strings.TrimSpace(d.ExternalCode.String()) != ""
}

// SystemName returns the first owning system's name, or "" if none.
func (d Device) SystemName() string {
	if len(d.Systems) == 0 {
		return ""
	}
	return d.Systems[0].Name.String()
}

// DeviceAttributes carries the vendor-reported state of a device.
type DeviceAttributes struct {
	Information Information   `json:"information"`
	ChargeState ChargeState   `json:"chargeState"`
	Config      BatteryConfig `json:"config"`
	Vendor      Value         `json:"vendor"`
	LastSeen    Value         `json:"lastSeen"`
}

// Information is the static description of a battery.
type Information struct {
	Brand    Value `json:"brand"`
	Model    Value `json:"model"`
	SiteName Value `json:"siteName"`
}

// ChargeState is the live charge reading of a battery.
type ChargeState struct {
	BatteryLevel    Value `json:"batteryLevel"`
	BatteryCapacity Value `json:"batteryCapacity"`
	Status          Value `json:"status"`
	LastUpdated     Value `json:"lastUpdated"`
}

// BatteryConfig is the control configuration of a battery.
type BatteryConfig struct {
	OperationMode Value `json:"operationMode"`
}

// BatteryStatus is the response of GET /api/batteries/{externalCode}.
type BatteryStatus struct {
	ChargeState ChargeState   `json:"chargeState"`
	Config      BatteryConfig `json:"config"`
	Information Information   `json:"information"`
}

// SetOperationModeRequest is the body of POST .../operation-mode.
type SetOperationModeRequest struct {
	BatteryID     string        `json:"batteryId"`
	OperationMode OperationMode `json:"operationMode"`
}

// PricePoint is one day-ahead market price.
type PricePoint struct {
	Time  string `json:"time"` // ISO-8601 timestamp
	Price Value  `json:"price"`
}

type systemsEnvelope struct {
	Data struct {
		Systems []Asset `json:"systems"`
	} `json:"data"`
}

type sitesEnvelope struct {
	Data struct {
		Sites []Asset `json:"sites"`
	} `json:"data"`
}

type vehiclesEnvelope struct {
	Data struct {
		Vehicles []Asset `json:"vehicles"`
	} `json:"data"`
}

type devicesEnvelope struct {
	Data struct {
		Devices []Device `json:"systemdevices"`
	} `json:"data"`
}

type pricesEnvelope struct {
	Data []PricePoint `json:"data"`
}
