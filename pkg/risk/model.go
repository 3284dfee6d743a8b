/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: model.go
Description: Collector risk model. Classifies a package identifier against the
reference table into a risk level, a 0-100 score, ordered human-readable risk
factors, and known collection behaviors. Classification is a pure read: a package
absent from the table degrades to NOT_FOUND, never to an error.
*/

package risk

import (
	"fmt"

	"github.com/kleascm/liora-scanner/pkg/collectors"
)

// TableLookup is the read-only view of the reference table the model needs.
type TableLookup interface {
	Lookup(packageID string) (*collectors.Entry, bool)
}

// Assessment is the derived risk classification for one package. It has no
// identity of its own; it is recomputed from the table on demand.
type Assessment struct {
	Level          Level    `json:"level"`
	Score          float64  `json:"score"`
	Factors        []string `json:"factors"`
	KnownBehaviors []string `json:"known_behaviors"`
}

// Classifier derives risk assessments from a reference table.
type Classifier struct {
	table TableLookup
}

// NewClassifier creates a classifier over the given table.
func NewClassifier(table TableLookup) *Classifier {
	return &Classifier{table: table}
}

// Classify returns the risk assessment for a package identifier. Packages not
// in the table yield {NOT_FOUND, 0, empty, empty}.
func (c *Classifier) Classify(packageID string) Assessment {
	entry, ok := c.table.Lookup(packageID)
	if !ok {
		return Assessment{Level: LevelNotFound, Factors: []string{}, KnownBehaviors: []string{}}
	}

	return Assessment{
		Level:          LevelForFrequency(entry.CollectionFrequency),
		Score:          Score(entry.CollectionFrequency, entry.DataTypes),
		Factors:        Factors(entry.CollectionFrequency, entry.DataTypes),
		KnownBehaviors: KnownBehaviors(entry.CollectionFrequency, entry.DataTypes),
	}
}

// Details exposes the raw table values behind an assessment, for reporting.
// A package absent from the table yields zero values and ok=false.
func (c *Classifier) Details(packageID string) (frequency int, dataTypes []string, ok bool) {
	entry, ok := c.table.Lookup(packageID)
	if !ok {
		return 0, nil, false
	}
	return entry.CollectionFrequency, entry.DataTypes, true
}

// Score computes the 0-100 risk score: the collection frequency with a 10%
// multiplicative bonus per distinct data type, capped at 100.
func Score(frequency int, dataTypes []string) float64 {
	score := float64(frequency) * (1.0 + 0.1*float64(len(dataTypes)))
	if score > 100 {
		return 100
	}
	return score
}

// Factors derives the ordered list of human-readable risk factors. Frequency
// factors come first, then data-type factors in a fixed order.
func Factors(frequency int, dataTypes []string) []string {
	factors := []string{}

	if frequency > 75 {
		factors = append(factors, "High data collection frequency")
	} else if frequency > 25 {
		factors = append(factors, "Moderate data collection frequency")
	}

	types := make(map[string]bool, len(dataTypes))
	for _, t := range dataTypes {
		types[t] = true
	}
	if types["location"] {
		factors = append(factors, "Collects location data")
	}
	if types["contacts"] {
		factors = append(factors, "Accesses contact information")
	}
	if types["camera"] {
		factors = append(factors, "Uses camera")
	}
	if types["microphone"] {
		factors = append(factors, "Uses microphone")
	}

	return factors
}

// KnownBehaviors derives the ordered list of known collection behaviors: a
// frequency summary when the app collects at all, then one line per data type
// in table order.
func KnownBehaviors(frequency int, dataTypes []string) []string {
	behaviors := []string{}

	if frequency > 0 {
		behaviors = append(behaviors, fmt.Sprintf("Collects data approximately %d times per day", frequency))
	}
	for _, t := range dataTypes {
		behaviors = append(behaviors, fmt.Sprintf("Known to collect %s data", t))
	}

	return behaviors
}
