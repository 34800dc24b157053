package config

import "strings"

// Environment constants
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// NormalizeEnvironment lowercases env and falls back to development when it is blank.
func NormalizeEnvironment(env string) string {
	env = strings.ToLower(strings.TrimSpace(env))
	if env == "" {
		return EnvDevelopment
	}
	return env
}

// IsProductionLike reports whether env is staging or production.
// Broker settings pointing at localhost are rejected there.
func IsProductionLike(env string) bool {
	switch NormalizeEnvironment(env) {
	case EnvStaging, EnvProduction:
		return true
	}
	return false
}

// IsDevelopment returns true if the server runs in the development environment.
func (c ServerConfig) IsDevelopment() bool {
	return NormalizeEnvironment(c.Environment) == EnvDevelopment
}
