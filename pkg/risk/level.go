/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: level.go
Description: Risk level taxonomy and the frequency threshold function. The level
derivation is a pure total function over the collection frequency, kept separate
from any table lookup so it is independently testable.
*/

package risk

// Level classifies an app's data-collection risk.
type Level string

const (
	LevelHigh     Level = "HIGH"
	LevelMedium   Level = "MEDIUM"
	LevelLow      Level = "LOW"
	LevelNotFound Level = "NOT_FOUND"
)

// LevelForFrequency maps a collection frequency to a risk level:
// f > 75 is HIGH, 25 < f <= 75 is MEDIUM, f <= 25 is LOW. NOT_FOUND is never
// produced here; it is reserved for packages absent from the reference table.
func LevelForFrequency(frequency int) Level {
	switch {
	case frequency > 75:
		return LevelHigh
	case frequency > 25:
		return LevelMedium
	default:
		return LevelLow
	}
}
