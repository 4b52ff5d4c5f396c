// models/session.go
package models

import (
	"strings"
	"time"
)

// SessionRecord represents one streaming session row of the dataset.
type SessionRecord struct {
	Date            time.Time `json:"date"`
	Time            time.Time `json:"time"`
	Country         string    `json:"country"`
	Event           string    `json:"event"`
	UserID          string    `json:"userId"`
	UserWeight      float64   `json:"-"`
	Device          string    `json:"device"`
	UserAgent       string    `json:"userAgent"`
	SessionDuration float64   `json:"sessionDuration"`
	BufferingRate   float64   `json:"bufferingRate"`
	Resolution      string    `json:"resolution"`
	IPAddress       string    `json:"ipAddress"`
}

// AllValues is the selector sentinel meaning "no constraint".
const AllValues = "All"

// FilterSelection is built fresh from the request on every interaction.
type FilterSelection struct {
	Country   string     `json:"country"`
	Event     string     `json:"event"`
	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`
}

// IsAll reports whether a selector value places no constraint on a column.
func IsAll(value string) bool {
	v := strings.TrimSpace(value)
	return v == "" || strings.EqualFold(v, AllValues)
}
