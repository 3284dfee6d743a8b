/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: database.go
Description: Static reference table of known data collectors. Loads a CSV source
keyed by the APK column once at startup into an ordered row slice with an index,
and exposes an immutable read-only lookup for the risk model. Frequency and
data-type values are normalized at load time and never fail.
*/

package collectors

import (
	"encoding/csv"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	columnPackageID = "APK"
	columnFrequency = "collection_frequency"
	columnDataTypes = "data_types"
)

var digitRunPattern = regexp.MustCompile(`\d+`)

// Entry is one normalized reference-table row.
type Entry struct {
	PackageID           string
	CollectionFrequency int
	DataTypes           []string
}

// Database is the in-memory reference table. Read-only after Load, so lookups
// are safe for concurrent readers.
type Database struct {
	rows  []Entry
	index map[string]int
}

// Load reads the CSV source and builds the lookup index. An unreadable source,
// a missing header, or a header without the APK column is a fatal error: no
// scan is possible without the table. Duplicate package identifiers keep the
// first row and log a warning.
func Load(path string, logger *logrus.Logger) (*Database, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open collectors database: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse collectors database: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("collectors database %s is empty", path)
	}

	columns := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		columns[strings.TrimSpace(name)] = i
	}
	pkgCol, ok := columns[columnPackageID]
	if !ok {
		return nil, fmt.Errorf("collectors database %s has no %q column", path, columnPackageID)
	}
	freqCol, hasFreq := columns[columnFrequency]
	typesCol, hasTypes := columns[columnDataTypes]

	db := &Database{index: make(map[string]int)}
	for _, row := range records[1:] {
		if pkgCol >= len(row) {
			continue
		}
		packageID := strings.TrimSpace(row[pkgCol])
		if packageID == "" {
			continue
		}

		if _, exists := db.index[packageID]; exists {
			logger.WithField("package", packageID).Warn("Duplicate package in collectors database, keeping first row")
			continue
		}

		entry := Entry{PackageID: packageID}
		if hasFreq && freqCol < len(row) {
			entry.CollectionFrequency = ParseFrequency(row[freqCol])
		}
		if hasTypes && typesCol < len(row) {
			entry.DataTypes = ParseDataTypes(row[typesCol])
		}

		db.index[packageID] = len(db.rows)
		db.rows = append(db.rows, entry)
	}

	logger.WithFields(logrus.Fields{
		"path": path,
		"apps": len(db.rows),
	}).Info("Collectors database loaded")

	return db, nil
}

// Lookup returns the entry for a package identifier. Matching is
// case-sensitive and exact; absence is not an error.
func (db *Database) Lookup(packageID string) (*Entry, bool) {
	i, ok := db.index[packageID]
	if !ok {
		return nil, false
	}
	return &db.rows[i], true
}

// Len returns the number of distinct entries in the table.
func (db *Database) Len() int { return len(db.rows) }

// ParseFrequency coerces a raw frequency value to a non-negative integer. The
// first run of decimal digits is used; anything else defaults to 0. It never
// fails.
func ParseFrequency(value string) int {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	match := digitRunPattern.FindString(value)
	if match == "" {
		return 0
	}
	n, err := strconv.Atoi(match)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// ParseDataTypes splits a raw data-type value on commas into a trimmed,
// lower-cased set. Empty tokens are dropped; duplicates keep their first
// position.
func ParseDataTypes(value string) []string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}

	var types []string
	seen := make(map[string]bool)
	for _, token := range strings.Split(value, ",") {
		token = strings.ToLower(strings.TrimSpace(token))
		if token == "" || seen[token] {
			continue
		}
		seen[token] = true
		types = append(types, token)
	}
	return types
}
