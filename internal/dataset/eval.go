package dataset

import (
	"context"

	"tourismd/pkg/types"
)

// Predictor classifies one text against candidate labels.
type Predictor interface {
	Predict(ctx context.Context, text string, candidateLabels []string) (types.PredictionResult, error)
}

// Failure records a question whose prediction errored.
type Failure struct {
	Question string
	Err      error
}

// Report summarizes an evaluation run. Accuracy is computed over the
// questions that produced a prediction.
type Report struct {
	Total          int
	Correct        int
	FalsePositives int
	FalseNegatives int
	Failures       []Failure
}

// Scored is the number of questions that produced a prediction.
func (r Report) Scored() int { return r.Total - len(r.Failures) }

// Accuracy returns Correct/Scored, or 0 when nothing was scored.
func (r Report) Accuracy() float64 {
	if r.Scored() == 0 {
		return 0
	}
	return float64(r.Correct) / float64(r.Scored())
}

// Evaluate runs every question through p. A prediction of labels[0] counts
// as tourism and is compared against the expected label. It stops early only
// when ctx is done.
func Evaluate(ctx context.Context, p Predictor, qs []Question, labels []string) (Report, error) {
	var rep Report
	for _, q := range qs {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		rep.Total++
		res, err := p.Predict(ctx, q.Text, labels)
		if err != nil {
			rep.Failures = append(rep.Failures, Failure{Question: q.Text, Err: err})
			continue
		}
		positive := len(labels) > 0 && res.Prediction == labels[0]
		switch {
		case positive == q.IsTourism:
			rep.Correct++
		case positive:
			rep.FalsePositives++
		default:
			rep.FalseNegatives++
		}
	}
	return rep, nil
}
