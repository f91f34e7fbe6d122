package sim

import (
	"fmt"
	"image/color"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// New2DPlot creates new plot of a single-regressor fit from the three
// data sources:
// truth:    noiseless model values
// measured: measurement values
// fitted:   values of the fitted model
// Every data matrix stores one (x, y) point per row.
// It returns error if the plot fails to be created. This can be due to
// either of the following conditions:
// * either of the supplied data matrices is nil
// * either of the supplied data matrices does not have at least 2 columns
func New2DPlot(truth, measured, fitted *mat.Dense) (*plot.Plot, error) {
	if truth == nil || measured == nil || fitted == nil {
		return nil, fmt.Errorf("invalid data supplied")
	}

	_, ct := truth.Dims()
	_, cm := measured.Dims()
	_, cf := fitted.Dims()

	if ct < 2 || cm < 2 || cf < 2 {
		return nil, fmt.Errorf("invalid data dimensions")
	}

	p := plot.New()

	p.Title.Text = "Weighted least squares fit"
	p.X.Label.Text = "X"
	p.Y.Label.Text = "Y"

	legend := plot.NewLegend()
	legend.Top = true
	p.Legend = legend

	// Make a scatter plotter for truth data
	truthScatter, err := plotter.NewScatter(makePoints(truth))
	if err != nil {
		return nil, err
	}
	truthScatter.GlyphStyle.Color = color.RGBA{R: 255, B: 128, A: 255}
	truthScatter.Shape = draw.PyramidGlyph{}
	truthScatter.GlyphStyle.Radius = vg.Points(3)

	p.Add(truthScatter)
	p.Legend.Add("truth", truthScatter)

	// Make a scatter plotter for measurement data
	measScatter, err := plotter.NewScatter(makePoints(measured))
	if err != nil {
		return nil, err
	}
	measScatter.GlyphStyle.Color = color.RGBA{G: 255, A: 128}
	measScatter.GlyphStyle.Radius = vg.Points(3)

	p.Add(measScatter)
	p.Legend.Add("measurement", measScatter)

	// Make a scatter plotter for fitted data
	fitScatter, err := plotter.NewScatter(makePoints(fitted))
	if err != nil {
		return nil, fmt.Errorf("failed to create scatter: %v", err)
	}
	fitScatter.GlyphStyle.Color = color.RGBA{R: 169, G: 169, B: 169}
	fitScatter.Shape = draw.CrossGlyph{}
	fitScatter.GlyphStyle.Radius = vg.Points(3)

	p.Add(fitScatter)
	p.Legend.Add("fitted", fitScatter)

	return p, nil
}

func makePoints(m *mat.Dense) plotter.XYs {
	r, _ := m.Dims()
	pts := make(plotter.XYs, r)
	for i := 0; i < r; i++ {
		pts[i].X = m.At(i, 0)
		pts[i].Y = m.At(i, 1)
	}

	return pts
}
