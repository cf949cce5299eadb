package graphing

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"ResultAggregator/pkg/exporting"
	"ResultAggregator/pkg/utils"
)

// series is one pershot value sequence. Flattened rows arrive in shot order,
// so the slice order is the shot order.
type series struct {
	name   string
	values []float64
}

// averageBar is one average snapshot bar group: mean (and optional variance)
// per memory slot.
type averageBar struct {
	name      string
	memories  []string
	means     []float64
	variances []float64
	hasVar    bool
}

func buildPershotSeries(rows []exporting.Record) []*series {
	byName := make(map[string]*series)
	for _, r := range rows {
		val, ok := utils.ToFloat64Ok(r["value"])
		if !ok {
			continue
		}
		name := fmt.Sprintf("%v/%v", r["type"], r["label"])
		s, ok := byName[name]
		if !ok {
			s = &series{name: name}
			byName[name] = s
		}
		s.values = append(s.values, val)
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]*series, 0, len(names))
	for _, name := range names {
		out = append(out, byName[name])
	}
	return out
}

func buildAverageBars(rows []exporting.Record) []*averageBar {
	byName := make(map[string]*averageBar)
	for _, r := range rows {
		mean, ok := utils.ToFloat64Ok(r["value"])
		if !ok {
			continue
		}
		name := fmt.Sprintf("%v/%v", r["type"], r["label"])
		b, ok := byName[name]
		if !ok {
			b = &averageBar{name: name}
			byName[name] = b
		}
		b.memories = append(b.memories, utils.FormatValue(r["memory"]))
		b.means = append(b.means, mean)
		if v, ok := utils.ToFloat64Ok(r["variance"]); ok {
			b.variances = append(b.variances, v)
			b.hasVar = true
		} else {
			b.variances = append(b.variances, 0)
		}
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]*averageBar, 0, len(names))
	for _, name := range names {
		out = append(out, byName[name])
	}
	return out
}

func createSeriesLineChart(s *series) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: s.name + " (pershot)"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Name: "shot"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider", Start: 0, End: 100}),
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "400px"}),
	)

	xLabels := make([]string, len(s.values))
	data := make([]opts.LineData, len(s.values))
	for i, v := range s.values {
		xLabels[i] = strconv.Itoa(i)
		data[i] = opts.LineData{Value: v}
	}

	line.SetXAxis(xLabels).AddSeries("", data,
		charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(true)}),
	)
	return line
}

func createAverageBarChart(b *averageBar) *charts.Bar {
	bar := charts.NewBar()

	subtitle := ""
	if b.hasVar {
		subtitle = "second series: variance"
	}
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: b.name + " (average)", Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Name: "memory"}),
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "400px"}),
	)

	means := make([]opts.BarData, len(b.means))
	for i, v := range b.means {
		means[i] = opts.BarData{Value: v}
	}
	bar.SetXAxis(b.memories).AddSeries("mean", means)

	if b.hasVar {
		variances := make([]opts.BarData, len(b.variances))
		for i, v := range b.variances {
			variances[i] = opts.BarData{Value: v}
		}
		bar.AddSeries("variance", variances)
	}
	return bar
}
