// Package logging provides structured logging for assetbot.
//
// This package wraps a zap logger with package-level convenience functions.
// Logging is silent unless a level is configured, either explicitly through
// Initialize or through the ASSETBOT_LOG_LEVEL environment variable.
//
// # Structured Logging
//
// All log functions take structured fields:
//
//	logging.Info("Operation mode changed",
//	    zap.String("interaction_id", id),
//	    zap.String("device_id", "bat-42"),
//	    zap.String("mode", "EXPORT_FOCUS"),
//	)
//
// # Interaction Logging
//
// Handlers use the domain helpers so every line of one interaction can be
// correlated by its interaction id:
//
//	logging.LogInteraction(id, chatID, "callback", "set_mode_bat-42_EXPORT_FOCUS")
//	logging.LogFailure(id, "set_operation_mode", "/api/batteries/bat-42/operation-mode", err)
//
// # Configuration
//
//	if err := logging.Initialize("debug"); err != nil {
//	    return err
//	}
//	defer logging.Sync()
//
// # Thread Safety
//
// All logging functions are safe for concurrent use once Initialize has
// returned. Initialize itself should be called once at startup.
package logging
