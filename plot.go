package linreg

import (
	"github.com/aouyang1/go-linreg/dataset"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// LineFit generates an echart line chart for a given fit result plotting the actual
// training values along with the fitted values and any extrapolated horizon values.
func LineFit(td *dataset.Dataset, fitRes, horizonRes *Results) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: "Regression Fit",
			},
		),
	)

	x := make([]float64, 0, len(fitRes.X)+len(horizonRes.X))
	x = append(x, fitRes.X...)
	x = append(x, horizonRes.X...)

	lineDataActual := make([]opts.LineData, 0, len(td.Y))
	lineDataFit := make([]opts.LineData, 0, len(x))

	for i := 0; i < len(td.Y); i++ {
		lineDataActual = append(lineDataActual, opts.LineData{Value: td.Y[i]})
	}
	for i := 0; i < len(fitRes.Predicted); i++ {
		lineDataFit = append(lineDataFit, opts.LineData{Value: fitRes.Predicted[i]})
	}
	for i := 0; i < len(horizonRes.Predicted); i++ {
		lineDataFit = append(lineDataFit, opts.LineData{Value: horizonRes.Predicted[i]})
	}

	line.SetXAxis(x).
		AddSeries("Actual", lineDataActual).
		AddSeries("Fit", lineDataFit)
	return line
}

// LineCostHistory generates an echart line chart of the training cost per epoch.
func LineCostHistory(costHistory []float64) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: "Training Cost",
			},
		),
	)

	epochs := make([]int, 0, len(costHistory))
	lineData := make([]opts.LineData, 0, len(costHistory))
	for i, cost := range costHistory {
		epochs = append(epochs, i)
		lineData = append(lineData, opts.LineData{Value: cost})
	}

	line.SetXAxis(epochs).
		AddSeries("Cost", lineData)
	return line
}
