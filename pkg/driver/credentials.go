package driver

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Credentials hold everything needed to reach the backend.
type Credentials struct {
	URI      string
	Username string
	Password string
	Database string
}

// Validate checks that every required field is present.
func (c Credentials) Validate() error {
	var missing []string
	if c.URI == "" {
		missing = append(missing, "uri")
	}
	if c.Username == "" {
		missing = append(missing, "username")
	}
	if c.Password == "" {
		missing = append(missing, "password")
	}
	if c.Database == "" {
		missing = append(missing, "database")
	}
	if len(missing) > 0 {
		return &ConfigError{Reason: "missing required credentials: " + strings.Join(missing, ", ")}
	}
	return nil
}

// LoadCredentials reads a KEY=VALUE credentials file (NEO4J_URI,
// NEO4J_USERNAME, NEO4J_PASSWORD, NEO4J_DATABASE). Environment variables of
// the same names take precedence over file values, so a file is optional
// when the environment is fully populated.
func LoadCredentials(path string) (Credentials, error) {
	values := map[string]string{}

	var fileErr error
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			fileErr = &ConfigError{Reason: fmt.Sprintf("credentials file not found: %s", path)}
		} else {
			fileValues, err := godotenv.Read(path)
			if err != nil {
				return Credentials{}, &ConfigError{Reason: fmt.Sprintf("unreadable credentials file %s: %v", path, err)}
			}
			values = fileValues
		}
	}

	get := func(key string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return values[key]
	}

	creds := Credentials{
		URI:      get("NEO4J_URI"),
		Username: get("NEO4J_USERNAME"),
		Password: get("NEO4J_PASSWORD"),
		Database: get("NEO4J_DATABASE"),
	}
	if err := creds.Validate(); err != nil {
		// The missing file is the likelier root cause when the result is
		// incomplete.
		if fileErr != nil {
			return Credentials{}, fileErr
		}
		return Credentials{}, err
	}
	return creds, nil
}
