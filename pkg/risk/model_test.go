/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: model_test.go
Description: Tests for the collector risk model. Covers the risk level
thresholds, the score formula and its bounds, factor and behavior derivation,
and classification of packages absent from the reference table.
*/

package risk_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kleascm/liora-scanner/pkg/collectors"
	"github.com/kleascm/liora-scanner/pkg/risk"
)

// stubTable is an in-memory TableLookup for classifier tests.
type stubTable map[string]collectors.Entry

func (t stubTable) Lookup(packageID string) (*collectors.Entry, bool) {
	entry, ok := t[packageID]
	if !ok {
		return nil, false
	}
	return &entry, true
}

func TestLevelForFrequency(t *testing.T) {
	tests := []struct {
		frequency int
		expected  risk.Level
	}{
		{0, risk.LevelLow},
		{25, risk.LevelLow},
		{26, risk.LevelMedium},
		{75, risk.LevelMedium},
		{76, risk.LevelHigh},
		{200, risk.LevelHigh},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, risk.LevelForFrequency(tt.frequency),
			"frequency %d", tt.frequency)
	}
}

func TestScore(t *testing.T) {
	// Exact formula: min(100, f * (1 + 0.1*len(types)))
	assert.Equal(t, 0.0, risk.Score(0, nil))
	assert.Equal(t, 50.0, risk.Score(50, nil))
	assert.Equal(t, 82.5, risk.Score(75, []string{"location"}))
	assert.Equal(t, 100.0, risk.Score(200, []string{"location", "contacts"}))

	// Always within [0, 100]
	assert.LessOrEqual(t, risk.Score(1000, []string{"a", "b", "c"}), 100.0)
	assert.GreaterOrEqual(t, risk.Score(0, nil), 0.0)
}

func TestScoreMonotonic(t *testing.T) {
	types := []string{"location", "contacts", "camera"}

	// Non-decreasing in frequency
	prev := 0.0
	for f := 0; f <= 120; f += 10 {
		score := risk.Score(f, nil)
		assert.GreaterOrEqual(t, score, prev)
		prev = score
	}

	// Non-decreasing in the number of data types
	prev = 0.0
	for i := 0; i <= len(types); i++ {
		score := risk.Score(40, types[:i])
		assert.GreaterOrEqual(t, score, prev)
		prev = score
	}
}

func TestFactorsOrder(t *testing.T) {
	factors := risk.Factors(200, []string{"microphone", "camera", "contacts", "location"})
	assert.Equal(t, []string{
		"High data collection frequency",
		"Collects location data",
		"Accesses contact information",
		"Uses camera",
		"Uses microphone",
	}, factors)

	factors = risk.Factors(50, []string{"location"})
	assert.Equal(t, []string{
		"Moderate data collection frequency",
		"Collects location data",
	}, factors)

	assert.Empty(t, risk.Factors(10, nil))
}

func TestKnownBehaviors(t *testing.T) {
	behaviors := risk.KnownBehaviors(30, []string{"location", "contacts"})
	assert.Equal(t, []string{
		"Collects data approximately 30 times per day",
		"Known to collect location data",
		"Known to collect contacts data",
	}, behaviors)

	// No frequency summary when the app never collects
	assert.Equal(t, []string{"Known to collect camera data"}, risk.KnownBehaviors(0, []string{"camera"}))
	assert.Empty(t, risk.KnownBehaviors(0, nil))
}

func TestClassifyKnownApp(t *testing.T) {
	table := stubTable{
		"com.test.app1": {
			PackageID:           "com.test.app1",
			CollectionFrequency: 200,
			DataTypes:           []string{"location", "contacts"},
		},
		"com.test.app2": {
			PackageID:           "com.test.app2",
			CollectionFrequency: 75,
			DataTypes:           []string{"location"},
		},
	}
	classifier := risk.NewClassifier(table)

	assessment := classifier.Classify("com.test.app1")
	require.Equal(t, risk.LevelHigh, assessment.Level)
	assert.Equal(t, 100.0, assessment.Score)
	assert.Equal(t, []string{
		"High data collection frequency",
		"Collects location data",
		"Accesses contact information",
	}, assessment.Factors)

	// 75 is not > 75, so the level stays MEDIUM
	assessment = classifier.Classify("com.test.app2")
	require.Equal(t, risk.LevelMedium, assessment.Level)
	assert.Equal(t, 82.5, assessment.Score)
}

func TestClassifyNotFound(t *testing.T) {
	classifier := risk.NewClassifier(stubTable{})

	assessment := classifier.Classify("com.unknown.app")
	assert.Equal(t, risk.LevelNotFound, assessment.Level)
	assert.Equal(t, 0.0, assessment.Score)
	assert.Empty(t, assessment.Factors)
	assert.Empty(t, assessment.KnownBehaviors)

	_, _, ok := classifier.Details("com.unknown.app")
	assert.False(t, ok)
}

func TestClassifierDetails(t *testing.T) {
	table := stubTable{
		"com.test.app1": {
			PackageID:           "com.test.app1",
			CollectionFrequency: 42,
			DataTypes:           []string{"location"},
		},
	}
	classifier := risk.NewClassifier(table)

	frequency, types, ok := classifier.Details("com.test.app1")
	require.True(t, ok)
	assert.Equal(t, 42, frequency)
	assert.Equal(t, []string{"location"}, types)
}
