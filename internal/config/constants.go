package config

// Default paths
const (
	// DefaultDatabasePath is the default path for the main application database
	DefaultDatabasePath = "./quotes.db"

	// DefaultAuditDir is where import payloads are archived
	DefaultAuditDir = "./audit"
)
