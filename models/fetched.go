package models

// FetchedRecord is one object returned by the remote data endpoint.
// Keys keeps the field order of the payload.
type FetchedRecord struct {
	Keys   []string
	Values map[string]any
}
