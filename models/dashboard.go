// models/dashboard.go
package models

// ViewModel is everything one render pass produces for the dashboard page.
type ViewModel struct {
	Selection    SelectionSummary `json:"selection"`
	Filters      FilterOptions    `json:"filters"`
	KPIs         KPIs             `json:"kpis"`
	Charts       Charts           `json:"charts"`
	VisitDetails Table            `json:"visitDetails"`
	Alert        *Alert           `json:"alert,omitempty"`
}

// SelectionSummary echoes the effective selection, dates as YYYY-MM-DD.
type SelectionSummary struct {
	Country   string `json:"country"`
	Event     string `json:"event"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// FilterOptions lists the selector choices and the default date range.
type FilterOptions struct {
	Countries []string `json:"countries"`
	Events    []string `json:"events"`
	MinDate   string   `json:"minDate"`
	MaxDate   string   `json:"maxDate"`
}

type KPIs struct {
	TotalVisits            KPI            `json:"totalVisits"`
	AverageSessionDuration KPI            `json:"averageSessionDuration"`
	EventViews             EventViewsCard `json:"eventViews"`
	TopCountry             TopCountryCard `json:"topCountry"`
}

// KPI is a headline value with its comparison delta.
// When Defined is false Value and Delta are null and Display reads "no data".
type KPI struct {
	Label        string `json:"label"`
	Defined      bool   `json:"defined"`
	Value        Number `json:"value"`
	Display      string `json:"display"`
	Delta        Number `json:"delta"`
	DeltaDisplay string `json:"deltaDisplay"`
	Direction    string `json:"direction"`
	Severity     string `json:"severity"`
}

const (
	DirectionUp   = "up"
	DirectionDown = "down"

	SeverityGood = "good"
	SeverityBad  = "bad"

	TierHigh   = "high"
	TierMedium = "medium"
	TierLow    = "low"

	NoData = "no data"
)

type EventViewsCard struct {
	Title      string `json:"title"`
	Views      int    `json:"views"`
	Percentage Number `json:"percentage"`
	Tier       string `json:"tier"`
	Color      string `json:"color"`
}

type TopCountryCard struct {
	Defined bool   `json:"defined"`
	Country string `json:"country"`
	Visits  int    `json:"visits"`
	Display string `json:"display"`
}

type Charts struct {
	UserAgents        Chart `json:"userAgents"`
	Devices           Chart `json:"devices"`
	UniqueVisitors    Chart `json:"uniqueVisitors"`
	TopCountries      Chart `json:"topCountries"`
	ViewsByEvent      Chart `json:"viewsByEvent"`
	BufferingRate     Chart `json:"bufferingRate"`
	ResolutionChanges Chart `json:"resolutionChanges"`
}

// Chart scopes.
const (
	ScopeFiltered = "filtered"
	ScopeAllData  = "all data"
)

type Chart struct {
	Type   string   `json:"type"`
	Title  string   `json:"title"`
	XAxis  string   `json:"xAxis,omitempty"`
	YAxis  string   `json:"yAxis,omitempty"`
	Scope  string   `json:"scope"`
	Series []Series `json:"series"`
	Colors []string `json:"colors,omitempty"`
}

type Series struct {
	Name   string  `json:"name"`
	Color  string  `json:"color,omitempty"`
	Points []Point `json:"points"`
}

type Point struct {
	Label string `json:"label"`
	Value Number `json:"value"`
}

type Table struct {
	Title   string     `json:"title"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Alert is the high-buffering notification panel.
type Alert struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
	Table   Table  `json:"table"`
}
