package main

// Exit codes for the CLI
const (
	ExitSuccess          = 0
	ExitGeneralError     = 1
	ExitInvalidReference = 2
	ExitCycleDetected    = 3
	ExitPersistence      = 4
	ExitBlocked          = 5
	ExitServerNotRunning = 6
)
