package storage

import (
	"net/url"
	"strings"
)

// IsPostgres reports whether a config string is a PostgreSQL connection
// string rather than a SQLite file path.
func IsPostgres(config string) bool {
	return strings.HasPrefix(config, "postgres://") || strings.HasPrefix(config, "postgresql://")
}

// HasEmbeddedCredentials reports whether a PostgreSQL connection string
// carries a password inline. Embedded credentials are rejected; the keyring,
// environment, or .pgpass should hold them instead.
func HasEmbeddedCredentials(connStr string) bool {
	if IsPostgres(connStr) {
		u, err := url.Parse(connStr)
		if err != nil {
			return false
		}
		if u.User != nil {
			if _, hasPassword := u.User.Password(); hasPassword {
				return true
			}
		}
		return false
	}

	// DSN format: space-separated key=value pairs.
	for _, part := range strings.Fields(connStr) {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) == 2 && strings.EqualFold(kv[0], "password") {
			return true
		}
	}
	return false
}
