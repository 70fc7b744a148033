package room

import (
	"bytes"
	"image"
	"image/png"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

func (s ScanResult) plot() (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Angle scan"
	p.X.Label.Text = "Launch angle (deg)"
	p.Y.Label.Text = "Path length"

	lengths := make(plotter.XYs, 0, len(s.Samples))
	aimed := make(plotter.XYs, 0)
	for _, sample := range s.Samples {
		lengths = append(lengths, plotter.XY{X: sample.Angle, Y: sample.Length})
		if sample.HitAim {
			aimed = append(aimed, plotter.XY{X: sample.Angle, Y: sample.Length})
		}
	}

	line, err := plotter.NewLine(lengths)
	if err != nil {
		return nil, err
	}
	p.Add(line)
	p.Legend.Add("path length", line)

	if len(aimed) > 0 {
		hits, err := plotter.NewScatter(aimed)
		if err != nil {
			return nil, err
		}
		hits.GlyphStyle.Radius = vg.Points(3)
		p.Add(hits)
		p.Legend.Add("reaches aim", hits)
	}
	return p, nil
}

// PlotScan charts path length against launch angle and marks the angles that
// reach the aim.
func (s ScanResult) PlotScan(X, Y int) (image.Image, error) {
	p, err := s.plot()
	if err != nil {
		return nil, err
	}
	w, err := p.WriterTo(font.Length(X), font.Length(Y), "png")
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, err
	}
	return png.Decode(&buf)
}

func (s ScanResult) SavePlot(X, Y int, filename string) error {
	p, err := s.plot()
	if err != nil {
		return err
	}
	return p.Save(font.Length(X), font.Length(Y), filename)
}
