package configs

import "time"

// Redis configures the view cache. An empty Addr disables caching and
// invalidation signals are dropped.
type Redis struct {
	Addr           string        `env:"ADDRESS" envDefault:""`
	Password       string        `env:"PASSWORD" envDefault:""`
	DB             int           `env:"DB" envDefault:"0"`
	TTL            time.Duration `env:"TTL" envDefault:"5m"`
	ConnectTimeout time.Duration `env:"CONNECT_TIMEOUT" envDefault:"15s"`
}

// Enabled reports whether a Redis server is configured.
func (c Redis) Enabled() bool {
	return c.Addr != ""
}
