/*
Package log holds the registry's root zerolog logger.

Init configures it once at startup; every package then derives its own
child through WithComponent and attaches request-scoped fields (crate,
vers, user_id) at the call site:

	log.Init(log.Config{Level: "info", JSON: true})

	logger := log.WithComponent("storage")
	logger.Info().Str("crate", name).Msg("crate published")

JSON output is for production deployments where logs are shipped to an
aggregator; the console writer is for interactive use. The level is
carried on the logger itself, so tests can build quiet loggers without
touching global zerolog state.
*/
package log
