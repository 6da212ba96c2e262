package callback

import (
	"fmt"
	"strings"

	"github.com/energyops/assetbot/internal/remote"
)

// MaxTokenLength is the chat platform's limit on callback data, in bytes.
const MaxTokenLength = 64

// Delimiter separates a prefix from its parameters.
const Delimiter = "_"

// Fixed tokens
const (
	TokenDeviceList    = "back_to_devices"
	TokenSiteList      = "back_to_sites"
	TokenVehicleList   = "back_to_vehicles"
	TokenSystemList    = "show_systems"
	TokenChangeCountry = "change_country"
)

// Parameterized token prefixes
const (
	PrefixDeviceControls = "device_control_"
	PrefixDeviceDetails  = "device_details_"
	PrefixSetMode        = "set_mode_"
	PrefixBatteryStatus  = "battery_status_"
	PrefixPrices         = "prices_"
	PrefixShowSite       = "show_site_"
	PrefixShowVehicle    = "show_vehicle_"
)

var fixedTokens = map[string]Action{
	TokenDeviceList:    ShowDeviceList{},
	TokenSiteList:      ShowSiteList{},
	TokenVehicleList:   ShowVehicleList{},
	TokenSystemList:    ShowSystemList{},
	TokenChangeCountry: ChangeCountry{},
}

// singleParam maps each one-parameter prefix to its action constructor.
var singleParam = []struct {
	prefix string
	tag    Tag
	build  func(string) Action
}{
	{PrefixDeviceControls, TagShowDeviceControls, func(id string) Action { return ShowDeviceControls{DeviceID: id} }},
	{PrefixDeviceDetails, TagShowDeviceDetails, func(id string) Action { return ShowDeviceDetails{DeviceID: id} }},
	{PrefixBatteryStatus, TagShowBatteryStatus, func(id string) Action { return ShowBatteryStatus{DeviceID: id} }},
	{PrefixPrices, TagShowPrices, func(code string) Action { return ShowPrices{CountryCode: code} }},
	{PrefixShowSite, TagShowSite, func(id string) Action { return ShowSite{SiteID: id} }},
	{PrefixShowVehicle, TagShowVehicle, func(id string) Action { return ShowVehicle{VehicleID: id} }},
}

// Encode serializes an action into its wire token.
func Encode(a Action) (string, error) {
	for _, p := range a.params() {
		if p == "" {
			return "", fmt.Errorf("%w: %s", ErrEmptyParam, a.Tag())
		}
	}

	var token string
	switch a := a.(type) {
	case ShowDeviceList:
		token = TokenDeviceList
	case ShowSiteList:
		token = TokenSiteList
	case ShowVehicleList:
		token = TokenVehicleList
	case ShowSystemList:
		token = TokenSystemList
	case ChangeCountry:
		token = TokenChangeCountry
	case ShowDeviceControls:
		token = PrefixDeviceControls + a.DeviceID
	case ShowDeviceDetails:
		token = PrefixDeviceDetails + a.DeviceID
	case ShowBatteryStatus:
		token = PrefixBatteryStatus + a.DeviceID
	case ShowPrices:
		token = PrefixPrices + a.CountryCode
	case ShowSite:
		token = PrefixShowSite + a.SiteID
	case ShowVehicle:
		token = PrefixShowVehicle + a.VehicleID
	case SetOperationMode:
		if !a.Mode.Valid() {
			return "", fmt.Errorf("%w: %q", ErrInvalidMode, a.Mode)
		}
		token = PrefixSetMode + a.DeviceID + Delimiter + string(a.Mode)
	default:
		return "", fmt.Errorf("callback: cannot encode %T", a)
	}

	if len(token) > MaxTokenLength {
		return "", fmt.Errorf("%w: %d bytes for %s", ErrTooLong, len(token), a.Tag())
	}
	return token, nil
}

// Fits reports whether a can be encoded within MaxTokenLength.
func Fits(a Action) bool {
	_, err := Encode(a)
	return err == nil
}

// Decode parses a wire token. It never panics: a token naming a known action
// with a malformed parameter list yields an ErrTypeInvalid *DecodeError, any
// other unrecognized token an ErrTypeUnknown one.
func Decode(token string) (Action, error) {
	if a, ok := fixedTokens[token]; ok {
		return a, nil
	}

	if rest, ok := strings.CutPrefix(token, PrefixSetMode); ok {
		return decodeSetMode(token, rest)
	}

	for _, sp := range singleParam {
		rest, ok := strings.CutPrefix(token, sp.prefix)
		if !ok {
			continue
		}
		if rest == "" {
			return nil, newInvalid(sp.tag, token, "missing parameter")
		}
		return sp.build(rest), nil
	}

	return nil, newUnknown(token)
}

// decodeSetMode splits "<deviceID>_<MODE>". The mode is matched as a known
// suffix so that a device id containing the delimiter survives intact.
func decodeSetMode(token, rest string) (Action, error) {
	for _, mode := range remote.OperationModes {
		id, ok := strings.CutSuffix(rest, Delimiter+string(mode))
		if !ok {
			continue
		}
		if id == "" {
			return nil, newInvalid(TagSetOperationMode, token, "missing device id")
		}
		return SetOperationMode{DeviceID: id, Mode: mode}, nil
	}
	return nil, newInvalid(TagSetOperationMode, token, "expected <device>_<mode> with a supported mode")
}
