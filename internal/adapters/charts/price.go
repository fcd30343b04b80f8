package charts

import (
	"io"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"airbnb_hub/internal/domain"
)

// CityLabel names the series built from the empty-neighbourhood rollup rows.
const CityLabel = "All neighbourhoods"

// PriceAvailability renders an HTML page with one average-price line per
// neighbourhood over the calendar dates in rows. Dates a neighbourhood has no
// group for are left as gaps.
func PriceAvailability(w io.Writer, rows []domain.PriceAvailability) error {
	dateSet := map[string]struct{}{}
	byHood := map[string]map[string]float64{}
	for _, r := range rows {
		d := r.Date.String()
		dateSet[d] = struct{}{}
		if byHood[r.Neighbourhood] == nil {
			byHood[r.Neighbourhood] = map[string]float64{}
		}
		byHood[r.Neighbourhood][d] = r.AvgPrice
	}

	dates := make([]string, 0, len(dateSet))
	for d := range dateSet {
		dates = append(dates, d)
	}
	sort.Strings(dates) // YYYY-MM-DD sorts chronologically

	hoods := make([]string, 0, len(byHood))
	for h := range byHood {
		hoods = append(hoods, h)
	}
	sort.Strings(hoods)

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Price & availability",
			Width:     "1200px",
			Height:    "600px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Average nightly price",
			Subtitle: "available calendar nights priced at or below $500",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider"}),
	)
	line.SetXAxis(dates)

	for _, h := range hoods {
		prices := byHood[h]
		data := make([]opts.LineData, len(dates))
		for i, d := range dates {
			if p, ok := prices[d]; ok {
				data[i] = opts.LineData{Value: p}
			} else {
				data[i] = opts.LineData{Value: "-"} // echarts gap
			}
		}
		name := h
		if name == "" {
			name = CityLabel
		}
		line.AddSeries(name, data)
	}

	return line.Render(w)
}
