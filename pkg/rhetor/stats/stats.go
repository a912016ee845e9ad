// Package stats compares linguistic feature distributions between two
// speaker groups with independent two-sample t-tests and Cohen's d
// effect sizes.
package stats

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/cognicore/rhetor/pkg/rhetor/internalerr"
)

// DefaultAlpha is the significance level used when none is given.
const DefaultAlpha = 0.05

// Result holds one t-test comparison between two groups on a feature.
type Result struct {
	Feature        string  `json:"feature"`
	Group1Mean     float64 `json:"group1_mean"`
	Group2Mean     float64 `json:"group2_mean"`
	Group1Std      float64 `json:"group1_std"`
	Group2Std      float64 `json:"group2_std"`
	Group1N        int     `json:"group1_n"`
	Group2N        int     `json:"group2_n"`
	MeanDifference float64 `json:"mean_difference"`
	TStatistic     float64 `json:"t_statistic"`
	PValue         float64 `json:"p_value"`
	CohensD        float64 `json:"cohens_d"`
	EffectSize     string  `json:"effect_size"`
	Significant    bool    `json:"is_significant"`
	Alpha          float64 `json:"alpha"`
}

// Tester runs comparisons at a fixed significance level.
type Tester struct {
	alpha float64
}

// NewTester returns a Tester. Alpha values at or below zero fall back
// to DefaultAlpha.
func NewTester(alpha float64) *Tester {
	if alpha <= 0 {
		alpha = DefaultAlpha
	}
	return &Tester{alpha: alpha}
}

// Alpha reports the significance level in use.
func (t *Tester) Alpha() float64 { return t.alpha }

// TTest runs an independent two-sample t-test with pooled variance.
// Each group needs at least two samples and the pooled variance must be
// nonzero, otherwise ErrInvalidInput is returned.
func (t *Tester) TTest(group1, group2 []float64, feature string) (Result, error) {
	n1, n2 := len(group1), len(group2)
	if n1 < 2 || n2 < 2 {
		return Result{}, fmt.Errorf("t-test %s: each group needs at least two samples: %w",
			feature, internalerr.ErrInvalidInput)
	}

	mean1 := stat.Mean(group1, nil)
	mean2 := stat.Mean(group2, nil)
	std1 := stat.StdDev(group1, nil)
	std2 := stat.StdDev(group2, nil)

	df := float64(n1 + n2 - 2)
	pooledVar := (float64(n1-1)*std1*std1 + float64(n2-1)*std2*std2) / df
	if pooledVar == 0 {
		return Result{}, fmt.Errorf("t-test %s: zero variance in both groups: %w",
			feature, internalerr.ErrInvalidInput)
	}
	pooledStd := math.Sqrt(pooledVar)

	tStat := (mean1 - mean2) / (pooledStd * math.Sqrt(1/float64(n1)+1/float64(n2)))
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	pValue := 2 * dist.Survival(math.Abs(tStat))
	cohensD := (mean1 - mean2) / pooledStd

	return Result{
		Feature:        feature,
		Group1Mean:     mean1,
		Group2Mean:     mean2,
		Group1Std:      std1,
		Group2Std:      std2,
		Group1N:        n1,
		Group2N:        n2,
		MeanDifference: mean1 - mean2,
		TStatistic:     tStat,
		PValue:         pValue,
		CohensD:        cohensD,
		EffectSize:     InterpretCohensD(cohensD),
		Significant:    pValue < t.alpha,
		Alpha:          t.alpha,
	}, nil
}

// CompareFeatures t-tests every named feature, reading each group's
// samples from its map. Features whose samples cannot support a test
// are skipped. Results come back most significant first, ties broken
// by feature name.
func (t *Tester) CompareFeatures(group1, group2 map[string][]float64, features []string) []Result {
	out := make([]Result, 0, len(features))
	for _, f := range features {
		r, err := t.TTest(group1[f], group2[f], f)
		if err != nil {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PValue != out[j].PValue {
			return out[i].PValue < out[j].PValue
		}
		return out[i].Feature < out[j].Feature
	})
	return out
}

// InterpretCohensD names the conventional effect-size band of d,
// using its magnitude.
func InterpretCohensD(d float64) string {
	switch d = math.Abs(d); {
	case d < 0.2:
		return "Negligible"
	case d < 0.5:
		return "Small"
	case d < 0.8:
		return "Medium"
	default:
		return "Large"
	}
}

// InterpretP describes a p-value in plain language.
func InterpretP(p float64) string {
	switch {
	case p < 0.001:
		return "Very strong evidence of difference (p < 0.001)"
	case p < 0.01:
		return "Strong evidence of difference (p < 0.01)"
	case p < 0.05:
		return "Moderate evidence of difference (p < 0.05)"
	default:
		return "No significant evidence of difference (p >= 0.05)"
	}
}

// SigMarker returns the conventional significance stars for a p-value.
func SigMarker(p float64) string {
	switch {
	case p < 0.001:
		return "***"
	case p < 0.01:
		return "**"
	case p < 0.05:
		return "*"
	default:
		return ""
	}
}
