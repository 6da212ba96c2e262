// Package bot is the navigation engine: it turns commands and button taps
// into REST calls and rendered screens.
//
// A Bot is transport agnostic. Transports deliver a Command or a Callback
// and implement Messenger to show the result. Each delivery is one
// interaction: it gets a correlation id, runs strictly in order (placeholder,
// request, final screen) and always ends on a screen the user can navigate
// away from. Interactions share no mutable state, so transports may run them
// concurrently.
//
// # Callback handling
//
// A tap is acknowledged before anything else, then its token is decoded with
// package callback and dispatched by action type:
//
//	back_to_devices             device list
//	device_control_<id>         control panel
//	device_details_<id>         control panel
//	set_mode_<id>_<MODE>        mode change, then confirmation or failure
//	battery_status_<id>         live battery status
//	prices_<code>               day-ahead prices
//	change_country              country menu
//	back_to_sites, show_systems, back_to_vehicles
//	show_site_<id>, show_vehicle_<id>   not yet available
//
// Malformed tokens render an "invalid request" screen with a way back to the
// device list; unrecognized tokens render "unknown command".
package bot
