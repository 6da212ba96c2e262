// Package callback encodes navigation state into the opaque strings attached
// to inline buttons and decodes them back when a button is tapped.
//
// Every button target is an Action, a tagged variant carrying typed
// parameters. Actions are serialized only at the transport boundary:
//
//	token, err := callback.Encode(callback.ShowDeviceControls{DeviceID: "bat-42"})
//	// token == "device_control_bat-42"
//
//	action, err := callback.Decode(token)
//	switch a := action.(type) {
//	case callback.ShowDeviceControls:
//		...
//	}
//
// # Wire format
//
// Tokens are either a fixed word ("back_to_devices", "change_country") or a
// prefix followed by parameters joined with '_'. Parameters may themselves
// contain '_': single-parameter tokens keep everything after the prefix, and
// "set_mode_" tokens are split on the known operation mode suffix.
//
// Chat platforms cap callback data at MaxTokenLength bytes. Encode refuses
// longer tokens so a button is never rendered with truncated data.
package callback
