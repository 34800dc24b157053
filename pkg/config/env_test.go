package config

import "testing"

func TestNormalizeEnvironment(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", EnvDevelopment},
		{"   ", EnvDevelopment},
		{"Production", EnvProduction},
		{" staging ", EnvStaging},
		{"test", "test"},
	}

	for _, tt := range tests {
		if got := NormalizeEnvironment(tt.in); got != tt.want {
			t.Errorf("NormalizeEnvironment(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsProductionLike(t *testing.T) {
	tests := []struct {
		env  string
		want bool
	}{
		{"", false},
		{EnvDevelopment, false},
		{EnvStaging, true},
		{"PRODUCTION", true},
		{"test", false},
	}

	for _, tt := range tests {
		if got := IsProductionLike(tt.env); got != tt.want {
			t.Errorf("IsProductionLike(%q) = %v, want %v", tt.env, got, tt.want)
		}
	}
}

func TestServerConfig_IsDevelopment(t *testing.T) {
	if !(ServerConfig{}).IsDevelopment() {
		t.Error("empty environment should count as development")
	}
	if (ServerConfig{Environment: EnvProduction}).IsDevelopment() {
		t.Error("production should not count as development")
	}
}
