// Package scoring wraps the pre-trained LightGBM artifact and the decision
// policy applied to its output.
package scoring

import (
	"fmt"
	"math"

	"github.com/dmitryikh/leaves"

	"credscore/internal/schema"
)

// Scorer produces the positive-class (default) probability for a validated
// feature vector.
type Scorer interface {
	PredictDefault(fv schema.FeatureVector) (float64, error)
}

// Model is a long-lived, read-only handle to the loaded scoring artifact.
// It is not mutated after Load, so concurrent requests may share it without
// coordination.
type Model struct {
	ensemble *leaves.Ensemble
}

// Load reads the LightGBM text-format artifact from path. Called once at
// process startup; on failure the server keeps running and reports itself
// unhealthy instead of crash-looping.
func Load(path string) (*Model, error) {
	ensemble, err := leaves.LGEnsembleFromFile(path, true)
	if err != nil {
		return nil, fmt.Errorf("load scoring artifact %s: %w", path, err)
	}
	if n := ensemble.NFeatures(); n != schema.NumFeatures {
		return nil, fmt.Errorf("scoring artifact expects %d features, want %d", n, schema.NumFeatures)
	}
	return &Model{ensemble: ensemble}, nil
}

// PredictDefault arranges the features into the artifact's column order and
// returns the probability of default. Deterministic for identical input.
func (m *Model) PredictDefault(fv schema.FeatureVector) (float64, error) {
	row := fv.Row()
	p := m.ensemble.PredictSingle(row[:], 0)
	if math.IsNaN(p) || p < 0 || p > 1 {
		return 0, fmt.Errorf("scoring artifact produced probability %v outside [0, 1]", p)
	}
	return p, nil
}

// NumTrees returns the number of trees in the loaded ensemble.
func (m *Model) NumTrees() int {
	return m.ensemble.NEstimators()
}
