package configs

// HTTP defines configuration for the HTTP server. The Port specifies
// which port the server will bind to. AllowedOrigins lists the browser
// origins accepted by the CORS middleware.
type HTTP struct {
	// Port is the TCP port the HTTP server will listen on. Defaults to 8080.
	Port uint16 `env:"PORT" envDefault:"8080"`
	// AllowedOrigins is a comma separated list of CORS origins.
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envDefault:"http://localhost:3000" envSeparator:","`
}
