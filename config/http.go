package config

// HTTPConfig contains HTTP server configuration.
type HTTPConfig struct {
	// Addr is the address to bind the HTTP server to.
	Addr string `env:"HTTP_ADDR" envDefault:":8080"`

	// BaseURL is the base URL of the application (e.g., "https://portal.example.edu").
	// Used for generating absolute URLs in notifications and OIDC redirects.
	BaseURL string `env:"APP_BASE_URL" envDefault:"http://localhost:8080"`

	// AllowedOrigins lists origins permitted to call the API from a browser.
	// The portal SPA origin belongs here in deployments where it is served
	// from a different host than the API.
	AllowedOrigins []string `env:"APP_ALLOWED_ORIGINS" envDefault:"" envSeparator:","`
}
