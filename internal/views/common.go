package views

import (
	"fmt"

	"github.com/energyops/assetbot/internal/callback"
	"github.com/energyops/assetbot/internal/remote"
)

// Fixed user-visible texts
const (
	TextNetworkFailure  = "⚠️ Failed to connect to the server. Please try again later."
	TextGenericFailure  = "❌ Failed to load data. Please try again later."
	TextInvalidRequest  = "❌ Invalid request."
	TextUnknownCommand  = "❌ Unknown command"
	TextNotControllable = "⚠️ This device does not support operation mode control."
	TextBatteryLoading  = "🔋 Fetching battery status..."
	TextBatteryFailure  = "⚠️ Failed to fetch battery status. Please try again later."
	TextModeFailure     = "⚠️ Failed to update operation mode. Please try again later."
	TextPricesLoading   = "⏳ Fetching market prices..."
	TextPricesEmpty     = "ℹ️ No price data available for this country."
	TextPricesFailure   = "⚠️ Failed to fetch prices. Please try again later."
	TextSelectCountry   = "🌍 Select a country for market prices:"
)

// Button labels
const (
	LabelBackToList     = "⬅️ Back to List"
	LabelBack           = "⬅️ Back"
	LabelBackToControls = "🔙 Back to Controls"
	LabelRefresh        = "🔄 Refresh"
	LabelRetry          = "🔄 Retry"
	LabelGetStatus      = "🔄 Get Battery Status"
	LabelChangeCountry  = "🌍 Change Country"
)

// Loading is the placeholder shown before a list is fetched.
func Loading(resource string) Screen {
	return Screen{Text: fmt.Sprintf("⏳ Fetching %s data...", resource)}
}

// Empty is shown when a list request succeeds with no entries.
func Empty(resource string) Screen {
	return Screen{Text: fmt.Sprintf("ℹ️ No %s found.", resource)}
}

// FailureText picks the user-visible message for a failed remote call.
// Unreachable hosts, timeouts and non-2xx statuses read as a connection
// problem; everything else is generic.
func FailureText(err error) string {
	if remote.IsNetworkError(err) {
		return TextNetworkFailure
	}
	return TextGenericFailure
}

// ListFailure replaces a list placeholder when the fetch fails. The retry
// button re-runs the same list.
func ListFailure(err error, retry callback.Action) Screen {
	return Screen{
		Text: FailureText(err),
		Rows: [][]Button{row(LabelRetry, retry)},
	}
}

// InvalidRequest is shown for a callback whose parameters are malformed.
func InvalidRequest() Screen {
	return Screen{
		Text: TextInvalidRequest,
		Rows: [][]Button{row(LabelBackToList, callback.ShowDeviceList{})},
	}
}

// UnknownCommand is shown for a callback that matches no action.
func UnknownCommand() Screen {
	return Screen{Text: TextUnknownCommand}
}

// InternalFailure is shown when a handler fails unexpectedly.
func InternalFailure() Screen {
	return Screen{
		Text: TextGenericFailure,
		Rows: [][]Button{row(LabelBackToList, callback.ShowDeviceList{})},
	}
}

// NotImplemented is the terminal screen for actions that have no handler yet.
func NotImplemented(what string, back callback.Action) Screen {
	return Screen{
		Text: fmt.Sprintf("🚧 %s is not available yet.", what),
		Rows: [][]Button{row(LabelBack, back)},
	}
}

// StartMenu is the top-level menu. It is the only screen without a way back.
func StartMenu() Screen {
	return Screen{
		Text: "👋 Welcome! What would you like to browse?",
		Rows: [][]Button{
			row("🔋 Devices", callback.ShowDeviceList{}),
			row("🏢 Sites", callback.ShowSiteList{}),
			row("📊 Systems", callback.ShowSystemList{}),
			row("🚗 Vehicles", callback.ShowVehicleList{}),
			row("💶 Market Prices", callback.ChangeCountry{}),
		},
	}
}
