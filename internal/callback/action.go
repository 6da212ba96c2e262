package callback

import (
	"github.com/energyops/assetbot/internal/remote"
)

// Tag names the kind of an Action. Tags are used in logs; the wire format is
// decided by Encode.
type Tag string

const (
	TagShowDeviceList     Tag = "show_device_list"
	TagShowDeviceControls Tag = "show_device_controls"
	TagShowDeviceDetails  Tag = "show_device_details"
	TagSetOperationMode   Tag = "set_operation_mode"
	TagShowBatteryStatus  Tag = "show_battery_status"
	TagShowPrices         Tag = "show_prices"
	TagChangeCountry      Tag = "change_country"
	TagShowSiteList       Tag = "show_site_list"
	TagShowSite           Tag = "show_site"
	TagShowVehicleList    Tag = "show_vehicle_list"
	TagShowVehicle        Tag = "show_vehicle"
	TagShowSystemList     Tag = "show_system_list"
	TagUnknown            Tag = "unknown"
)

// Action is a button target. The set of implementations is closed.
type Action interface {
	Tag() Tag
	params() []string
}

// ShowDeviceList re-runs the device list handler.
type ShowDeviceList struct{}

// ShowDeviceControls opens the control panel of a device.
type ShowDeviceControls struct {
	DeviceID string
}

// ShowDeviceDetails is accepted from older screens and opens the control panel.
type ShowDeviceDetails struct {
	DeviceID string
}

// SetOperationMode switches a device to Mode.
type SetOperationMode struct {
	DeviceID string
	Mode     remote.OperationMode
}

// ShowBatteryStatus reads the live status of a device.
type ShowBatteryStatus struct {
	DeviceID string
}

// ShowPrices shows day-ahead prices for a region code.
type ShowPrices struct {
	CountryCode string
}

// ChangeCountry shows the country menu.
type ChangeCountry struct{}

// ShowSiteList re-runs the site list handler.
type ShowSiteList struct{}

// ShowSite targets a single site.
type ShowSite struct {
	SiteID string
}

// ShowVehicleList re-runs the vehicle list handler.
type ShowVehicleList struct{}

// ShowVehicle targets a single vehicle.
type ShowVehicle struct {
	VehicleID string
}

// ShowSystemList re-runs the system list handler.
type ShowSystemList struct{}

func (ShowDeviceList) Tag() Tag     { return TagShowDeviceList }
func (ShowDeviceControls) Tag() Tag { return TagShowDeviceControls }
func (ShowDeviceDetails) Tag() Tag  { return TagShowDeviceDetails }
func (SetOperationMode) Tag() Tag   { return TagSetOperationMode }
func (ShowBatteryStatus) Tag() Tag  { return TagShowBatteryStatus }
func (ShowPrices) Tag() Tag         { return TagShowPrices }
func (ChangeCountry) Tag() Tag      { return TagChangeCountry }
func (ShowSiteList) Tag() Tag       { return TagShowSiteList }
func (ShowSite) Tag() Tag           { return TagShowSite }
func (ShowVehicleList) Tag() Tag    { return TagShowVehicleList }
func (ShowVehicle) Tag() Tag        { return TagShowVehicle }
func (ShowSystemList) Tag() Tag     { return TagShowSystemList }

func (ShowDeviceList) params() []string       { return nil }
func (a ShowDeviceControls) params() []string { return []string{a.DeviceID} }
func (a ShowDeviceDetails) params() []string  { return []string{a.DeviceID} }
func (a SetOperationMode) params() []string   { return []string{a.DeviceID, string(a.Mode)} }
func (a ShowBatteryStatus) params() []string  { return []string{a.DeviceID} }
func (a ShowPrices) params() []string         { return []string{a.CountryCode} }
func (ChangeCountry) params() []string        { return nil }
func (ShowSiteList) params() []string         { return nil }
func (a ShowSite) params() []string           { return []string{a.SiteID} }
func (ShowVehicleList) params() []string      { return nil }
func (a ShowVehicle) params() []string        { return []string{a.VehicleID} }
func (ShowSystemList) params() []string       { return nil }
