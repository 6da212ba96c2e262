package views

import (
	"fmt"
	"strings"

	"github.com/energyops/assetbot/internal/callback"
	"github.com/energyops/assetbot/internal/remote"
)

var modeLabels = map[remote.OperationMode]string{
	remote.ModeTimeOfUse:    "⏰ Time of Use",
	remote.ModeExportFocus:  "📤 Export Focus",
	remote.ModeImportFocus:  "📥 Import Focus",
	remote.ModeSelfReliance: "🔋 Self Reliance",
}

// ModeLabel returns the button label for a mode.
func ModeLabel(m remote.OperationMode) string {
	if label, ok := modeLabels[m]; ok {
		return label
	}
	return m.Display()
}

// NotControllable is shown when a device has no external code.
func NotControllable() Screen {
	return Screen{
		Text: TextNotControllable,
		Rows: [][]Button{row(LabelBackToList, callback.ShowDeviceList{})},
	}
}

// panelFits reports whether the control button and every mode button of the
// device's panel fit the token limit.
func panelFits(deviceID string) bool {
	if !callback.Fits(callback.ShowDeviceControls{DeviceID: deviceID}) {
		return false
	}
	for _, m := range remote.OperationModes {
		if !callback.Fits(callback.SetOperationMode{DeviceID: deviceID, Mode: m}) {
			return false
		}
	}
	return true
}

// ControlPanel offers the four operation modes, two per row, and a way back.
// Modes whose token would exceed the platform limit are left out and the
// text says so.
func ControlPanel(deviceID string) Screen {
	var rows [][]Button
	var current []Button
	missing := 0
	for _, m := range remote.OperationModes {
		action := callback.SetOperationMode{DeviceID: deviceID, Mode: m}
		if !callback.Fits(action) {
			missing++
			continue
		}
		current = append(current, Button{Label: ModeLabel(m), Action: action})
		if len(current) == 2 {
			rows = append(rows, current)
			current = nil
		}
	}
	if len(current) > 0 {
		rows = append(rows, current)
	}
	rows = append(rows, row(LabelBack, callback.ShowDeviceList{}))

	text := fmt.Sprintf("🔧 *Operation Mode Control*\n\nDevice: %s\nSelect new operation mode:",
		code(deviceID))
	if missing > 0 {
		text += fmt.Sprintf("\n\n⚠️ %d mode(s) unavailable: the device id is too long.", missing)
	}

	return Screen{
		Text:     text,
		Markdown: true,
		Rows:     rows,
	}
}

// deviceNav is the navigation shared by every screen reached from the
// control panel: status, back to controls, back to list.
func deviceNav(deviceID string, statusLabel string) [][]Button {
	var rows [][]Button
	if status := (callback.ShowBatteryStatus{DeviceID: deviceID}); callback.Fits(status) {
		rows = append(rows, row(statusLabel, status))
	}
	if controls := (callback.ShowDeviceControls{DeviceID: deviceID}); callback.Fits(controls) {
		rows = append(rows, row(LabelBackToControls, controls))
	}
	return append(rows, row(LabelBackToList, callback.ShowDeviceList{}))
}

// SettingMode is the interim screen shown while a mode change is in flight.
func SettingMode(mode remote.OperationMode) Screen {
	return Screen{Text: fmt.Sprintf("🔄 Setting %s mode...", mode.Display())}
}

// ModeChanged confirms a successful mode change.
func ModeChanged(deviceID string, mode remote.OperationMode) Screen {
	return Screen{
		Text: fmt.Sprintf("✅ Successfully set operation mode to *%s*\n\nDevice: %s\nNew Mode: %s",
			mode.Display(), code(deviceID), escape(string(mode))),
		Markdown: true,
		Rows:     deviceNav(deviceID, LabelGetStatus),
	}
}

// ModeFailed reports a failed mode change without losing navigation.
func ModeFailed(deviceID string) Screen {
	return Screen{
		Text: TextModeFailure,
		Rows: deviceNav(deviceID, LabelGetStatus),
	}
}

// BatteryStatus renders a live battery reading.
func BatteryStatus(deviceID string, status *remote.BatteryStatus) Screen {
	info := status.Information
	charge := status.ChargeState
	mode := strings.ReplaceAll(status.Config.OperationMode.Or(Placeholder), "_", " ")

	var b strings.Builder
	b.WriteString("🔋 *Battery Status*\n\n")
	fmt.Fprintf(&b, "🏷️ Model: %s\n", escape(info.Model.Or(Placeholder)))
	fmt.Fprintf(&b, "📍 Site: %s\n\n", escape(info.SiteName.Or(Placeholder)))
	fmt.Fprintf(&b, "⚡ Charge Level: %s%%\n", escape(charge.BatteryLevel.Or(Placeholder)))
	fmt.Fprintf(&b, "🔋 Capacity: %s kWh\n", escape(charge.BatteryCapacity.Or(Placeholder)))
	fmt.Fprintf(&b, "🔌 Status: %s\n", escape(charge.Status.Or(Placeholder)))
	fmt.Fprintf(&b, "🔄 Operation Mode: %s\n", escape(mode))
	fmt.Fprintf(&b, "⏱️ Last Updated: %s", escape(charge.LastUpdated.Or(Placeholder)))

	return Screen{
		Text:     b.String(),
		Markdown: true,
		Rows:     deviceNav(deviceID, LabelRefresh),
	}
}

// BatteryFailed reports a failed status read; refresh retries it.
func BatteryFailed(deviceID string) Screen {
	return Screen{
		Text: TextBatteryFailure,
		Rows: deviceNav(deviceID, LabelRefresh),
	}
}
