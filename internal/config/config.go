package config

import (
	"fmt"
	"time"

	"github.com/joeshaw/envdecode"
)

type Config interface {
	EnvConfig
	ProviderConfig
	ClientConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	GetLogLevel() string
}

type ProviderConfig interface {
	GetClientID() string
	GetClientSecret() string
	GetRedirectURI() string
	GetWebURL() string
	GetAPIURL() string
	GetScopes() []string
	GetErrorStyle() string
}

type ClientConfig interface {
	GetClientOptions() map[string]string
	GetAsync() bool
	GetLoginTimeout() time.Duration
	GetStateTTL() time.Duration
}

type mainConfig struct {
	EnvVars
	Provider
	Client
}

// New reads the configuration from the environment.
func New() (Config, error) {
	var c mainConfig
	if err := envdecode.Decode(&c); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return c, nil
}
