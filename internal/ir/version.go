package ir

// Version constants for the IR schema and engine.
const (
	// IRVersion is the problem/trace schema version.
	IRVersion = "1"

	// EngineVersion is the gatesimp engine version. Stored alongside cached
	// reductions so results from an older engine can be told apart.
	EngineVersion = "0.1.0"
)
