package config

const (
	// DefaultDatabasePath is the default path for the SQLite database
	DefaultDatabasePath = "./fullsco.db"

	// DefaultAPIPrefix is where the JSON API is mounted when API_PREFIX is unset
	DefaultAPIPrefix = "/api"
)
