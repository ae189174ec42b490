// Package helpers provides shared test helpers.
//
//   - NewObservedLogger: a logger.Logger whose entries can be asserted on
//   - ClearEnv: blanks environment variables the commands read
//   - WriteFile: writes a fixture into a test's temp directory
//
// # Example
//
//	log, recorded := helpers.NewObservedLogger(zapcore.DebugLevel)
//	client, _ := github.NewClient(token, github.WithLogger(log))
//	// ...
//	assert.Equal(t, 1, recorded.FilterMessage("github_api_request").Len())
package helpers
