package linreg

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/aouyang1/go-linreg/models"
)

// Model represents a serializeable format of a fit regressor storing the fit options,
// scores, and learned weights
type Model struct {
	Options *Options       `json:"options"`
	Weights Weights        `json:"weights"`
	Scores  *models.Scores `json:"scores"`
}

func (m Model) TablePrint(w io.Writer, prefix, indent string) error {
	if _, err := fmt.Fprintf(w, "%sRegression:\n", prefix); err != nil {
		return err
	}

	if m.Options != nil {
		if _, err := fmt.Fprintf(w, "%s%sLearning Rates: %v\n", prefix, indentExpand(indent, 1), m.Options.LearningRates); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s%sEpochs: %d    Tolerance: %g    Seed: %d\n",
			prefix, indentExpand(indent, 1),
			m.Options.Epochs, m.Options.Tolerance, m.Options.Seed); err != nil {
			return err
		}
	}

	if m.Scores != nil {
		if _, err := fmt.Fprintf(w, "%sScores:\n", prefix); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s%sMAPE: %.3f    MSE: %.3f    R2: %.3f\n",
			prefix, indentExpand(indent, 1),
			m.Scores.MAPE,
			m.Scores.MSE,
			m.Scores.R2,
		); err != nil {
			return err
		}
	}

	return m.Weights.tablePrint(w, prefix, indent)
}

// Weights stores the learned parameters of the linear unit
type Weights struct {
	Weight float64 `json:"weight"`
	Bias   float64 `json:"bias"`
}

func (w Weights) tablePrint(wr io.Writer, prefix, indent string) error {
	if _, err := fmt.Fprintf(wr, "%sWeights:\n", prefix); err != nil {
		return err
	}
	tbl := tabwriter.NewWriter(wr, 0, 0, 1, ' ', tabwriter.AlignRight)
	if _, err := fmt.Fprintf(tbl, "%s%sLabel\tValue\t\n", prefix, indentExpand(indent, 1)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(tbl, "%s%sbias\t%.3f\t\n", prefix, indentExpand(indent, 1), w.Bias); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(tbl, "%s%sweight\t%.3f\t\n", prefix, indentExpand(indent, 1), w.Weight); err != nil {
		return err
	}
	return tbl.Flush()
}

func indentExpand(indent string, growth int) string {
	return strings.Repeat(indent, growth)
}
