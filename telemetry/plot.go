package telemetry

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// ScoreHistory accumulates per-generation scores for plotting.
type ScoreHistory struct {
	Generation []float64
	Best       []float64
	Mean       []float64
}

// Add appends one generation's summary.
func (h *ScoreHistory) Add(s GenerationStats) {
	h.Generation = append(h.Generation, float64(s.Generation))
	h.Best = append(h.Best, float64(s.BestScore))
	h.Mean = append(h.Mean, s.MeanScore)
}

// Len returns the number of generations recorded.
func (h *ScoreHistory) Len() int {
	return len(h.Generation)
}

// PlotHistory draws best and mean score per generation and saves it to path.
// The image format follows the file extension.
func PlotHistory(h *ScoreHistory, title, path string) error {
	if h.Len() == 0 {
		return fmt.Errorf("no generations to plot")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Generation"
	p.Y.Label.Text = "Score"

	bestPts := make(plotter.XYs, h.Len())
	meanPts := make(plotter.XYs, h.Len())
	for i := range h.Generation {
		bestPts[i].X = h.Generation[i]
		bestPts[i].Y = h.Best[i]
		meanPts[i].X = h.Generation[i]
		meanPts[i].Y = h.Mean[i]
	}

	bestLine, err := plotter.NewLine(bestPts)
	if err != nil {
		return err
	}
	meanLine, err := plotter.NewLine(meanPts)
	if err != nil {
		return err
	}
	meanLine.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}

	p.Add(bestLine, meanLine, plotter.NewGrid())
	p.Legend.Add("best", bestLine)
	p.Legend.Add("mean", meanLine)
	p.Legend.Top = true
	p.Legend.Left = true

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("saving plot: %w", err)
	}
	return nil
}
