package simulate

import "os"

// ShowHelp prints usage information for the simulator.
func ShowHelp() {
	os.Stdout.WriteString(`swiftrivia play simulator
=========================

Plays random trivia and emoji sessions against a running progress server
and verifies what it reads back.

Usage:
  go run ./cmd/play-sim [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -sessions int
        Number of sessions to play (default 200)
  -replays int
        Number of finished sessions to submit again (default 10)
  -workers int
        Number of concurrent submitters (default 4)
  -seed int
        Generator seed (default: current time)
  -capacity int
        Expected leaderboard capacity (default 50)
  -timeout duration
        HTTP request timeout (default 10s)
  -username string
        Profile name to register (default "Simulator")
  -verbose
        Log the top of the leaderboard
  -help
        Show this help message
`)
}
