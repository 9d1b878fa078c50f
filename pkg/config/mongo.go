package config

import (
	"fmt"
	"strings"
	"time"
)

type MongoConfig struct {
	URI        string        `koanf:"uri"`
	Database   string        `koanf:"database"`
	Collection string        `koanf:"collection"`
	Timeout    time.Duration `koanf:"timeout"`
}

// String returns a string representation of the Mongo configuration with credentials masked.
func (c *MongoConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- MongoDB ---\n")
	b.WriteString(fmt.Sprintf("  uri: %s\n", maskURI(c.URI)))
	b.WriteString(fmt.Sprintf("  database: %s\n", c.Database))
	b.WriteString(fmt.Sprintf("  collection: %s\n", c.Collection))
	b.WriteString(fmt.Sprintf("  timeout: %s\n", c.Timeout))
	return b.String()
}

func (c *MongoConfig) Validate() error {
	if c.URI == "" {
		return fmt.Errorf("mongo URI is not configured")
	}
	if !isValidMongoURI(c.URI) {
		return fmt.Errorf("mongo URI must start with 'mongodb://': %s", maskURI(c.URI))
	}
	if c.Database == "" {
		return fmt.Errorf("mongo database is not configured")
	}
	if c.Collection == "" {
		return fmt.Errorf("mongo collection is not configured")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("mongo timeout is not configured")
	}
	return nil
}

// isValidMongoURI checks if the provided URI is a valid MongoDB connection string
func isValidMongoURI(uri string) bool {
	return strings.HasPrefix(uri, "mongodb://") ||
		strings.HasPrefix(uri, "mongodb+srv://")
}

func maskURI(uri string) string {
	if uri == "" {
		return "<not configured>"
	}
	// Mask the URI by replacing the username and password with "****"
	parts := strings.Split(uri, "@")
	if len(parts) == 2 {
		return "****@" + parts[1]
	}
	return uri
}
