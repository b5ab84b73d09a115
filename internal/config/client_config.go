package config

import (
	"strconv"
	"time"
)

type Client struct {
	Timeout      string        `env:"IGO_TIMEOUT"`
	Proxy        string        `env:"IGO_PROXY"`
	VerifyTLS    string        `env:"IGO_VERIFY_TLS"`
	Async        bool          `env:"IGO_ASYNC,default=false"`
	LoginTimeout time.Duration `env:"IGO_LOGIN_TIMEOUT,default=5m"`
	StateTTL     time.Duration `env:"IGO_STATE_TTL,default=10m"`
}

var _ ClientConfig = Client{}

// GetClientOptions returns the HTTP client options that were set.
func (c Client) GetClientOptions() map[string]string {
	opts := map[string]string{}
	if c.Timeout != "" {
		opts["timeout"] = c.Timeout
	}
	if c.Proxy != "" {
		opts["proxy"] = c.Proxy
	}
	if c.VerifyTLS != "" {
		if v, err := strconv.ParseBool(c.VerifyTLS); err == nil {
			opts["verify"] = strconv.FormatBool(v)
		} else {
			opts["verify"] = c.VerifyTLS // CA bundle path
		}
	}
	return opts
}

func (c Client) GetAsync() bool {
	return c.Async
}

func (c Client) GetLoginTimeout() time.Duration {
	return c.LoginTimeout
}

func (c Client) GetStateTTL() time.Duration {
	return c.StateTTL
}
