package config

import (
	"fmt"
	"strings"
	"time"
)

// UploadConfig configures the proof-of-payment upload collaborator.
type UploadConfig struct {
	Endpoint string        `koanf:"endpoint"`
	Timeout  time.Duration `koanf:"timeout"`
	Breaker  struct {
		ConsecutiveFailures uint32        `koanf:"consecutivefailures"`
		OpenTimeout         time.Duration `koanf:"opentimeout"`
	} `koanf:"breaker"`
}

// String returns a string representation of the upload configuration.
func (c *UploadConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Upload ---\n")
	b.WriteString(fmt.Sprintf("  endpoint: %s\n", c.Endpoint))
	b.WriteString(fmt.Sprintf("  timeout: %s\n", c.Timeout))
	b.WriteString(fmt.Sprintf("  breaker.consecutivefailures: %d\n", c.Breaker.ConsecutiveFailures))
	b.WriteString(fmt.Sprintf("  breaker.opentimeout: %s\n", c.Breaker.OpenTimeout))
	return b.String()
}

func (c *UploadConfig) Validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("upload endpoint is not configured")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("upload timeout is not configured")
	}
	if c.Breaker.ConsecutiveFailures == 0 {
		return fmt.Errorf("upload breaker consecutive failures must be greater than zero")
	}
	if c.Breaker.OpenTimeout <= 0 {
		return fmt.Errorf("upload breaker open timeout must be greater than zero")
	}
	return nil
}
