// Package presenter turns engine aggregates into the chart, KPI and table
// shapes the dashboard draws. It does no computation of its own beyond
// classification and formatting.
package presenter

import (
	"broadcastdash/api/dataset"
	"broadcastdash/api/engine"
	"broadcastdash/api/models"
	"broadcastdash/api/utils"
)

// Render runs one complete pass: filter, aggregate, present. It reads table
// and sel only and may be called concurrently.
func Render(table *dataset.Table, sel models.FilterSelection, s Settings) models.ViewModel {
	s = s.Normalize()
	base := engine.All(table)
	filtered := engine.Apply(table, sel)
	duration, durationErr := engine.AverageSessionDuration(filtered, s.DurationReference)

	vm := models.ViewModel{
		Selection: summarizeSelection(table, sel),
		Filters:   Options(table),
		KPIs: models.KPIs{
			TotalVisits:            totalVisitsKPI(engine.TotalVisits(filtered, base), s),
			AverageSessionDuration: durationKPI(duration, durationErr, s),
			EventViews:             eventViewsCard(engine.EventViews(filtered, s.EventViewsCapacity), sel, s),
			TopCountry:             topCountryCard(engine.TopCountry(filtered)),
		},
		Charts: models.Charts{
			UserAgents:        userAgentChart(engine.UserAgentDistribution(filtered), s),
			Devices:           deviceChart(engine.DeviceDistribution(filtered), s),
			UniqueVisitors:    uniqueVisitorChart(engine.UniqueVisitorTrend(filtered), s),
			TopCountries:      topCountriesChart(engine.TopCountriesByVisits(base, s.TopCountries), s),
			ViewsByEvent:      viewsByEventChart(engine.ViewsByEvent(filtered)),
			BufferingRate:     bufferingChart(engine.BufferingRateTrend(filtered)),
			ResolutionChanges: resolutionChart(engine.ResolutionChangesByHour(base), s),
		},
		VisitDetails: VisitDetailsTable(engine.VisitDetails(filtered)),
		Alert:        HighBufferingAlert(engine.HighBuffering(base, s.BufferingThreshold).Records()),
	}
	return vm
}

// Options lists the selector choices and the default date range.
func Options(table *dataset.Table) models.FilterOptions {
	opts := models.FilterOptions{
		Countries: append([]string{models.AllValues}, table.Countries()...),
		Events:    append([]string{models.AllValues}, table.Events()...),
	}
	if table.Len() > 0 {
		opts.MinDate = utils.FormatDate(table.MinDate())
		opts.MaxDate = utils.FormatDate(table.MaxDate())
	}
	return opts
}

func summarizeSelection(table *dataset.Table, sel models.FilterSelection) models.SelectionSummary {
	out := models.SelectionSummary{
		Country: selectorLabel(sel.Country),
		Event:   selectorLabel(sel.Event),
	}
	switch {
	case sel.StartDate != nil:
		out.StartDate = utils.FormatDate(*sel.StartDate)
	case table.Len() > 0:
		out.StartDate = utils.FormatDate(table.MinDate())
	}
	switch {
	case sel.EndDate != nil:
		out.EndDate = utils.FormatDate(*sel.EndDate)
	case table.Len() > 0:
		out.EndDate = utils.FormatDate(table.MaxDate())
	}
	return out
}

func selectorLabel(value string) string {
	if models.IsAll(value) {
		return models.AllValues
	}
	return value
}
