package store

import (
	"fmt"
	"regexp"
)

// sessionColumns maps the session table columns, in dataset.Columns order.
var sessionColumns = []string{
	"session_date", "session_time", "country", "event", "user_id", "device",
	"user_agent", "session_duration", "buffering_rate", "resolution", "ip_address",
}

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// validateTable rejects table names that cannot be interpolated safely.
func validateTable(name string) error {
	if !identifierPattern.MatchString(name) {
		return fmt.Errorf("invalid sessions table name %q", name)
	}
	return nil
}
