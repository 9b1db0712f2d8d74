package view

import (
	"fmt"
	"html/template"
	"math"
	"strings"
)

const (
	FinishedColor   = "#10b981"
	UnfinishedColor = "#ef4444"

	chartSize   = 160
	chartRadius = 70
)

type slice struct {
	Label string
	Value int64
	Color string
}

// PieChart draws the finished/unfinished split as an inline SVG. It returns
// an empty string when there is nothing to draw.
func PieChart(finished, unfinished int64) template.HTML {
	total := finished + unfinished
	if total <= 0 {
		return ""
	}

	slices := []slice{
		{Label: "Finished", Value: finished, Color: FinishedColor},
		{Label: "Unfinished", Value: unfinished, Color: UnfinishedColor},
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<svg class="pie-chart" viewBox="0 0 %d %d" width="%d" height="%d" role="img" aria-label="Task completion">`,
		chartSize, chartSize, chartSize, chartSize)

	c := float64(chartSize) / 2
	angle := -math.Pi / 2
	for _, s := range slices {
		if s.Value == 0 {
			continue
		}
		if s.Value == total {
			fmt.Fprintf(&b, `<circle cx="%g" cy="%g" r="%d" fill="%s"><title>%s: %d</title></circle>`,
				c, c, chartRadius, s.Color, s.Label, s.Value)
			break
		}

		sweep := 2 * math.Pi * float64(s.Value) / float64(total)
		x1, y1 := point(c, angle)
		x2, y2 := point(c, angle+sweep)
		large := 0
		if sweep > math.Pi {
			large = 1
		}
		fmt.Fprintf(&b, `<path d="M%g,%g L%.2f,%.2f A%d,%d 0 %d 1 %.2f,%.2f Z" fill="%s"><title>%s: %d</title></path>`,
			c, c, x1, y1, chartRadius, chartRadius, large, x2, y2, s.Color, s.Label, s.Value)
		angle += sweep
	}
	b.WriteString(`</svg>`)
	return template.HTML(b.String())
}

func point(c, angle float64) (float64, float64) {
	return c + chartRadius*math.Cos(angle), c + chartRadius*math.Sin(angle)
}
