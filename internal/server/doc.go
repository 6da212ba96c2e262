// Package server implements the operations HTTP endpoint of the bot.
//
// The endpoint is optional and only started when an address is configured.
// It serves three read-only routes:
//
//	GET /health   liveness probe, always {"status":"ok"}
//	GET /version  build version and commit
//	GET /stats    interaction counters (active, handled, failures)
//
// # Usage Example
//
//	srv := server.New(&server.Config{Addr: ":8081"}, assetBot)
//	if err := srv.Start(); err != nil {
//	    log.Fatal(err)
//	}
//	defer srv.Shutdown(context.Background())
package server
