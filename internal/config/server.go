package config

// ServerConfig holds fixture storefront settings
type ServerConfig struct {
	Port string
	// Markup picks the default selector variant served: testid, semantic or class
	Markup string
}

// LoadServerConfig loads server configuration from environment variables
func LoadServerConfig(getenv func(string) string) ServerConfig {
	port := getenv("PORT")
	if port == "" {
		port = "8080"
	}

	markup := getenv("STOREFRONT_MARKUP")
	if markup == "" {
		markup = "testid"
	}

	return ServerConfig{
		Port:   port,
		Markup: markup,
	}
}
