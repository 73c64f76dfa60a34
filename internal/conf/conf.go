package conf

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the config structure.
type Config struct {
	Server   Server   `yaml:"server"`
	Database Database `yaml:"database"`
	Keycloak Keycloak `yaml:"keycloak"`
	Auth     Auth     `yaml:"auth"`
}

// Server is the HTTP server config.
type Server struct {
	Addr    string `yaml:"addr"`
	BaseURL string `yaml:"base_url"`
}

// Database is the local persistence config.
type Database struct {
	Path string `yaml:"path"`
}

// Keycloak is the identity provider config.
type Keycloak struct {
	ServerURL    string `yaml:"server_url"`
	Realm        string `yaml:"realm"`
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	// TokenPath overrides the token endpoint path relative to the realm.
	// Defaults to the standard openid-connect token path.
	TokenPath string `yaml:"token_path"`
}

// Auth is the inbound authentication config.
type Auth struct {
	Enabled bool `yaml:"enabled"`
}

// RealmURL returns the public realm URL, which is also the token issuer.
func (k *Keycloak) RealmURL() string {
	return strings.TrimSuffix(k.ServerURL, "/") + "/realms/" + k.Realm
}

// TokenURL returns the token endpoint URL used by all OAuth2 grants.
func (k *Keycloak) TokenURL() string {
	path := k.TokenPath
	if path == "" {
		path = "/protocol/openid-connect/token"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return k.RealmURL() + path
}

// AdminRealmURL returns the base URL of the admin REST surface for the realm.
func (k *Keycloak) AdminRealmURL() string {
	return strings.TrimSuffix(k.ServerURL, "/") + "/admin/realms/" + k.Realm
}

// Load loads config from file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// Set defaults if not configured
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Server.BaseURL == "" {
		cfg.Server.BaseURL = "http://localhost:8080"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "data/users.db"
	}

	// Override config from env vars if present
	if addr := os.Getenv("SERVER_ADDR"); addr != "" {
		cfg.Server.Addr = addr
	}
	if dbPath := os.Getenv("DATABASE_PATH"); dbPath != "" {
		cfg.Database.Path = dbPath
	}
	if serverURL := os.Getenv("KEYCLOAK_SERVER_URL"); serverURL != "" {
		cfg.Keycloak.ServerURL = serverURL
	}
	if secret := os.Getenv("KEYCLOAK_CLIENT_SECRET"); secret != "" {
		cfg.Keycloak.ClientSecret = secret
	}

	if cfg.Keycloak.ServerURL == "" || cfg.Keycloak.Realm == "" {
		return nil, fmt.Errorf("keycloak server_url and realm must be configured")
	}

	return &cfg, nil
}
