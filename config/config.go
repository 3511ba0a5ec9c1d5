package config

// AppConfig holds the application configuration
type AppConfig struct {
	DBURL        string
	RedisAddress string
	Port         string
	// BaseURL is the public address prefixed to the confirmation links
	// embedded in booking emails.
	BaseURL string
}
