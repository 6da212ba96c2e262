// Package config loads assetbot's startup configuration.
//
// Two sources are combined:
//
//   - Environment variables (optionally seeded from a .env file) for the REST
//     API location and credential, the chat transport credential, timeouts and
//     the optional NATS audit publisher.
//   - The country registry used by the market price flow. It defaults to five
//     ENTSO-E bidding zones and can be replaced by a YAML file named in
//     COUNTRIES_FILE.
//
// # Usage Example
//
//	_ = config.LoadEnvFile()
//	cfg := config.Load()
//	if err := cfg.Validate(true); err != nil {
//	    return err
//	}
//
//	countries, err := config.LoadCountries(cfg.CountriesFile)
//	if err != nil {
//	    return err
//	}
//
// # Security
//
// Credentials are only ever read from the environment. They are never written
// to disk and never embedded in callback tokens.
//
// # Thread Safety
//
// A CountryRegistry is immutable once constructed and may be shared by every
// in-flight interaction without locking.
package config
