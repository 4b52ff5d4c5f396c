package presenter

import (
	"fmt"
	"math"

	"broadcastdash/api/engine"
	"broadcastdash/api/models"
)

func totalVisitsKPI(v engine.VisitsSummary, s Settings) models.KPI {
	k := models.KPI{
		Label:        "Total Visits",
		Defined:      true,
		Value:        models.Number(v.Count),
		Display:      fmt.Sprintf("%d", v.Count),
		Delta:        models.Number(v.Delta),
		DeltaDisplay: fmt.Sprintf("%d", v.Delta),
		Direction:    models.DirectionDown,
		Severity:     models.SeverityGood,
	}
	if v.Delta > 0 {
		k.Direction = models.DirectionUp
	}
	if v.Delta < s.VisitsDeltaThreshold {
		k.Severity = models.SeverityBad
	}
	return k
}

func durationKPI(d engine.DurationSummary, err error, s Settings) models.KPI {
	k := models.KPI{Label: "Average Session Duration"}
	if err != nil {
		k.Value = models.Number(math.NaN())
		k.Delta = models.Number(math.NaN())
		k.Display = models.NoData
		k.DeltaDisplay = models.NoData
		return k
	}

	k.Defined = true
	k.Value = models.Number(d.Mean)
	k.Display = fmt.Sprintf("%.2f seconds", d.Mean)
	k.Delta = models.Number(d.Delta)
	k.DeltaDisplay = fmt.Sprintf("%.2f", d.Delta)
	k.Direction = models.DirectionUp
	if d.Delta < 0 {
		k.Direction = models.DirectionDown
	}
	k.Severity = models.SeverityGood
	if d.Delta < s.DurationDeltaThreshold {
		k.Severity = models.SeverityBad
	}
	return k
}

func eventViewsCard(e engine.EventViewsSummary, sel models.FilterSelection, s Settings) models.EventViewsCard {
	tier := models.TierLow
	switch {
	case e.Percentage >= s.HighTierPercent:
		tier = models.TierHigh
	case e.Percentage >= s.MediumTierPercent:
		tier = models.TierMedium
	}
	return models.EventViewsCard{
		Title:      fmt.Sprintf("Views by %s in %s", selectorLabel(sel.Event), selectorLabel(sel.Country)),
		Views:      e.Views,
		Percentage: models.Number(e.Percentage),
		Tier:       tier,
		Color:      tierColors[tier],
	}
}

func topCountryCard(top engine.CategoryValue, err error) models.TopCountryCard {
	if err != nil {
		return models.TopCountryCard{Display: models.NoData}
	}
	return models.TopCountryCard{
		Defined: true,
		Country: top.Category,
		Visits:  int(top.Value),
		Display: top.Category,
	}
}
