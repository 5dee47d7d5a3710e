package selection

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	sterrors "github.com/sthascelik/stepwise/pkg/errors"
)

// PlotCriterionPath renders the criterion values a finished run accepted,
// round by round, as a PNG line chart. Useful for eyeballing how much
// each entered or eliminated variable moved the criterion.
//
// Returns a ValueError when the run was not criterion-gated, since there
// is no path to draw.
func PlotCriterionPath(iterLog *IterationLog, title, path string) error {
	values := iterLog.CriterionPath()
	if len(values) == 0 {
		return sterrors.NewValueError("selection.PlotCriterionPath", "log has no criterion values")
	}

	pts := make(plotter.XYs, len(values))
	for i, v := range values {
		pts[i].X = float64(i)
		pts[i].Y = v
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Round"
	p.Y.Label.Text = "Criterion"

	line, err := plotter.NewLine(pts)
	if err != nil {
		return sterrors.Wrap(err, "selection.PlotCriterionPath")
	}
	p.Add(line, plotter.NewGrid())

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return sterrors.Wrap(err, "selection.PlotCriterionPath")
	}
	p.Add(scatter)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return sterrors.Wrap(err, "selection.PlotCriterionPath")
	}
	return nil
}
