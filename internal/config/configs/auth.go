package configs

// Auth configures session verification. Sessions are HS256 tokens signed
// with JWTSecret; requests without a valid session are redirected to
// LoginURL.
type Auth struct {
	JWTSecret string `env:"JWT_SECRET,required,notEmpty,unset"`
	Issuer    string `env:"ISSUER" envDefault:""`
	LoginURL  string `env:"LOGIN_URL" envDefault:"/login"`
}
