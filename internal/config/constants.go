package config

// Default paths and tunables
const (
	// DefaultDatabasePath is the default path for the sqlite catalog database
	DefaultDatabasePath = "./bookstore.db"

	// DefaultAuditDir holds price snapshots taken before bulk adjustments
	DefaultAuditDir = "./audit"

	// DefaultPriceAdjustFactor is the multiplier applied by the bulk price update
	DefaultPriceAdjustFactor = 0.1

	// DefaultCORSOrigins lists the frontends allowed to call the API
	DefaultCORSOrigins = "http://localhost:3000,http://localhost,http://localhost:80"
)

// Supported database drivers
const (
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)
