package jwtmw

import "os"

// EnvKeyJWTSecret is the environment variable holding the HMAC signing secret.
const EnvKeyJWTSecret = "JWT_SECRET"

// LoadSecret returns the signing secret from the environment.
func LoadSecret() string {
	return os.Getenv(EnvKeyJWTSecret)
}
