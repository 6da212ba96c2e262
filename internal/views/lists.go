package views

import (
	"fmt"
	"strings"

	"github.com/energyops/assetbot/internal/callback"
	"github.com/energyops/assetbot/internal/remote"
)

// Display caps
const (
	MaxListEntries   = 10
	MaxDeviceEntries = 5
)

func moreNotice(total, shown int) string {
	return fmt.Sprintf("...and %d more.", total-shown)
}

// Systems renders the system list. Systems have no per-item action.
func Systems(systems []remote.Asset) Screen {
	if len(systems) == 0 {
		return Empty("systems")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📊 *Systems List* (%d found)\n\n", len(systems))

	shown := min(len(systems), MaxListEntries)
	for _, s := range systems[:shown] {
		fmt.Fprintf(&b, "🏢 *%s*\n", escape(s.Name.Or("Unnamed System")))
		fmt.Fprintf(&b, "🆔 ID: %s\n", code(s.ID.Or(Placeholder)))
		fmt.Fprintf(&b, "👤 Assigned: %s\n", escape(s.AssignTo.Or(Placeholder)))
		fmt.Fprintf(&b, "📝 %s\n\n", escape(s.Description.Or("No description")))
	}
	if len(systems) > shown {
		b.WriteString(moreNotice(len(systems), shown))
	}

	return Screen{Text: strings.TrimRight(b.String(), "\n"), Markdown: true}
}

// Sites renders the site list with a "Show Site" button per entry.
func Sites(sites []remote.Asset) Screen {
	return assetList("sites", "Show Site", sites, func(id string) callback.Action {
		return callback.ShowSite{SiteID: id}
	})
}

// Vehicles renders the vehicle list with a "Show Vehicle" button per entry.
func Vehicles(vehicles []remote.Asset) Screen {
	return assetList("vehicles", "Show Vehicle", vehicles, func(id string) callback.Action {
		return callback.ShowVehicle{VehicleID: id}
	})
}

func assetList(resource, label string, assets []remote.Asset, target func(string) callback.Action) Screen {
	if len(assets) == 0 {
		return Empty(resource)
	}

	var b strings.Builder
	var rows [][]Button
	fmt.Fprintf(&b, "✅ Found %d %s:\n\n", len(assets), resource)

	shown := min(len(assets), MaxListEntries)
	for _, a := range assets[:shown] {
		name := a.Name.Or("Unnamed")
		fmt.Fprintf(&b, "🏢 Name: %s\n", escape(name))
		fmt.Fprintf(&b, "🆔 ID: %s\n", escape(a.ID.Or(Placeholder)))
		fmt.Fprintf(&b, "👤 Assigned To: %s\n", escape(a.AssignTo.Or(Placeholder)))
		fmt.Fprintf(&b, "📝 Description: %s\n\n", escape(a.Description.Or("No description")))

		if action := target(a.ID.String()); callback.Fits(action) {
			rows = append(rows, row(label+": "+name, action))
		}
	}
	if len(assets) > shown {
		b.WriteString(moreNotice(len(assets), shown))
	}

	return Screen{Text: strings.TrimRight(b.String(), "\n"), Markdown: true, Rows: rows}
}

// Devices renders the first MaxDeviceEntries devices. Devices without an
// external code cannot be controlled and are skipped; the "more" notice
// counts everything beyond the considered window.
func Devices(devices []remote.Device) Screen {
	if len(devices) == 0 {
		return Empty("devices")
	}

	var b strings.Builder
	var rows [][]Button
	fmt.Fprintf(&b, "✅ Found %d devices:\n\n", len(devices))

	considered := min(len(devices), MaxDeviceEntries)
	rendered := 0
	for _, d := range devices[:considered] {
		if !d.Controllable() {
			continue
		}
		rendered++
		b.WriteString(deviceEntry(d))

		id := d.ExternalCode.String()
		if panelFits(id) {
			rows = append(rows, row("🔧 Control "+d.Name.Or("Unnamed"), callback.ShowDeviceControls{DeviceID: id}))
		}
	}
	if rendered == 0 {
		if len(devices) <= considered {
			return Empty("controllable devices")
		}
		fmt.Fprintf(&b, "None of the first %d devices can be controlled.\n\n", considered)
	}
	if len(devices) > considered {
		b.WriteString(moreNotice(len(devices), considered))
	}

	return Screen{Text: strings.TrimRight(b.String(), "\n"), Markdown: true, Rows: rows}
}

func deviceEntry(d remote.Device) string {
	attrs := d.Attributes
	charge := attrs.ChargeState
	system := d.SystemName()
	if system == "" {
		system = Placeholder
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🔋 *%s*\n", escape(d.Name.Or("Unnamed")))
	fmt.Fprintf(&b, "📟 External Code: %s\n", code(d.ExternalCode.String()))
	fmt.Fprintf(&b, "⚙️ System: %s\n", escape(system))
	fmt.Fprintf(&b, "🏭 Manufacturer: %s (%s)\n",
		escape(attrs.Vendor.Or(Placeholder)), escape(attrs.Information.Brand.Or(Placeholder)))
	fmt.Fprintf(&b, "📺 Model: %s\n", escape(attrs.Information.Model.Or(Placeholder)))
	fmt.Fprintf(&b, "⚡ Battery: %s%% | %s kWh | %s\n",
		escape(charge.BatteryLevel.Or(Placeholder)),
		escape(charge.BatteryCapacity.Or(Placeholder)),
		escape(charge.Status.Or(Placeholder)))
	fmt.Fprintf(&b, "🛠 Operation Mode: %s\n", escape(attrs.Config.OperationMode.Or(Placeholder)))
	fmt.Fprintf(&b, "📍 Last Seen: %s\n\n", escape(attrs.LastSeen.Or(Placeholder)))
	return b.String()
}
