package config

import (
	"fmt"
	"strings"
)

type EnvVars struct {
	Port     string `env:"PORT,default=8080"`
	AppName  string `env:"APP_NAME,default=IGO Login"`
	Env      string `env:"ENV,default=DEV"`
	LogLevel string `env:"LOG_LEVEL,default=info"`
}

var _ EnvConfig = EnvVars{}

func (e EnvVars) GetPort() string {
	port := e.Port
	if port != "" && port[0] != ':' {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (e EnvVars) GetAppName() string {
	return e.AppName
}

func (e EnvVars) GetEnv() string {
	if e.Env == "" {
		return "DEV"
	}
	return strings.ToUpper(e.Env)
}

func (e EnvVars) GetLogLevel() string {
	return e.LogLevel
}
