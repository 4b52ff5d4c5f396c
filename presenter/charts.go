package presenter

import (
	"strconv"

	"broadcastdash/api/engine"
	"broadcastdash/api/models"
	"broadcastdash/api/utils"
)

// Chart types understood by the page.
const (
	ChartPie           = "pie"
	ChartLine          = "line"
	ChartBar           = "bar"
	ChartHorizontalBar = "bar_horizontal"
	ChartStackedBar    = "stacked_bar"
)

func categoryPoints(values []engine.CategoryValue) []models.Point {
	points := make([]models.Point, 0, len(values))
	for _, cv := range values {
		points = append(points, models.Point{Label: cv.Category, Value: models.Number(cv.Value)})
	}
	return points
}

func bucketPoints(values []engine.BucketValue) []models.Point {
	points := make([]models.Point, 0, len(values))
	for _, bv := range values {
		points = append(points, models.Point{Label: utils.BucketLabel(bv.Bucket), Value: models.Number(bv.Value)})
	}
	return points
}

// cycle assigns palette colors in order, wrapping around.
func cycle(palette []string, n int) []string {
	if len(palette) == 0 || n == 0 {
		return nil
	}
	out := make([]string, n)
	for i := range out {
		out[i] = palette[i%len(palette)]
	}
	return out
}

func userAgentChart(values []engine.CategoryValue, s Settings) models.Chart {
	return models.Chart{
		Type:   ChartPie,
		Title:  "User Agents",
		Scope:  models.ScopeFiltered,
		Series: []models.Series{{Name: "UserAgent", Points: categoryPoints(values)}},
		Colors: cycle(s.Palette, len(values)),
	}
}

func deviceChart(values []engine.CategoryValue, s Settings) models.Chart {
	return models.Chart{
		Type:   ChartPie,
		Title:  "Device Usage Breakdown",
		Scope:  models.ScopeFiltered,
		Series: []models.Series{{Name: "UserID", Points: categoryPoints(values)}},
		Colors: cycle(s.Palette, len(values)),
	}
}

func uniqueVisitorChart(values []engine.BucketValue, s Settings) models.Chart {
	if s.DenseBuckets {
		values = engine.DensifyHourly(values)
	}
	return models.Chart{
		Type:   ChartLine,
		Title:  "Unique Visitor Trends Over Time",
		XAxis:  "Time",
		YAxis:  "Unique Visitors",
		Scope:  models.ScopeFiltered,
		Series: []models.Series{{Name: "Unique Visitors", Points: bucketPoints(values)}},
	}
}

func topCountriesChart(values []engine.CategoryValue, s Settings) models.Chart {
	return models.Chart{
		Type:   ChartHorizontalBar,
		Title:  "Top " + strconv.Itoa(s.TopCountries) + " Countries by Visits",
		XAxis:  "Visits",
		YAxis:  "Country",
		Scope:  models.ScopeAllData,
		Series: []models.Series{{Name: "Visits", Points: categoryPoints(values)}},
	}
}

func viewsByEventChart(values []engine.CategoryValue) models.Chart {
	return models.Chart{
		Type:   ChartBar,
		Title:  "Views by Event",
		XAxis:  "Event",
		YAxis:  "Views",
		Scope:  models.ScopeFiltered,
		Series: []models.Series{{Name: "Views", Points: categoryPoints(values)}},
	}
}

func bufferingChart(values []engine.BucketValue) models.Chart {
	return models.Chart{
		Type:   ChartLine,
		Title:  "Buffering Rate Over Time",
		XAxis:  "Time",
		YAxis:  "Buffering Rate",
		Scope:  models.ScopeFiltered,
		Series: []models.Series{{Name: "Buffering Rate", Points: bucketPoints(values)}},
	}
}

// resolutionChart lays out one series per resolution over every hour that
// has data, filling absent cells with zero so the stacks line up.
func resolutionChart(cells []engine.HourResolutionCount, s Settings) models.Chart {
	var hours []int
	seenHour := make(map[int]bool)
	var resolutions []string
	counts := make(map[string]map[int]int)
	for _, c := range cells {
		if !seenHour[c.Hour] {
			seenHour[c.Hour] = true
			hours = append(hours, c.Hour)
		}
		if _, ok := counts[c.Resolution]; !ok {
			counts[c.Resolution] = make(map[int]int)
			resolutions = append(resolutions, c.Resolution)
		}
		counts[c.Resolution][c.Hour] += c.Count
	}

	colors := cycle(s.Palette, len(resolutions))
	series := make([]models.Series, 0, len(resolutions))
	for i, res := range resolutions {
		points := make([]models.Point, 0, len(hours))
		for _, h := range hours {
			points = append(points, models.Point{Label: strconv.Itoa(h), Value: models.Number(counts[res][h])})
		}
		series = append(series, models.Series{Name: res, Color: colors[i], Points: points})
	}

	return models.Chart{
		Type:   ChartStackedBar,
		Title:  "Resolution Changes Over Time (1-Hour Intervals)",
		XAxis:  "Hour of the Day",
		YAxis:  "Count",
		Scope:  models.ScopeAllData,
		Series: series,
		Colors: colors,
	}
}
