package cli

import (
	"fmt"
	"os"
)

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config holds CLI configuration
type Config struct {
	ServerURL string
	Output    string
	Verbose   bool
}

// DefaultConfig returns a Config with defaults, overridden by environment
func DefaultConfig() *Config {
	return &Config{
		ServerURL: getEnvOrDefault("RPSLS_SERVER", "http://localhost:8080"),
		Output:    getEnvOrDefault("RPSLS_OUTPUT", FormatText),
		Verbose:   false,
	}
}

// Validate checks flag values
func (c *Config) Validate() error {
	if c.Output != FormatText && c.Output != FormatJSON {
		return fmt.Errorf("invalid output format %q: must be text or json", c.Output)
	}
	if c.ServerURL == "" {
		return fmt.Errorf("server URL is required")
	}
	return nil
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
