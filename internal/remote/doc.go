// Package remote is the REST API client used by the bot.
//
// It is the only package that performs network I/O against the API. Every
// request carries "Authorization: Bearer <token>" and "Accept:
// application/json"; POSTs also send "Content-Type: application/json".
//
// # Result Model
//
// Each call returns either its payload or an *APIError. There is no partial
// result:
//
//   - ErrTypeNetwork: transport failure, timeout, or a non-2xx status
//   - ErrTypeDecode: a 2xx response whose body is not the expected JSON
//   - ErrTypeValidation: a request refused before sending (empty external
//     code, unsupported operation mode)
//
// Network errors carry a NetworkErrorSubtype for logging.
//
// # Timeouts
//
// Battery status reads use StatusTimeout (default 5s); list reads and control
// writes use Timeout (default 10s). A timeout is an ordinary network error.
//
// # Usage Example
//
//	client := remote.NewClient("https://api.example.com", token)
//	devices, err := client.ListDevices(ctx)
//	if remote.IsNetworkError(err) {
//	    // could not reach server
//	}
package remote
