/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: scanner.go
Description: Scan orchestrator for the Liora Privacy Scanner. Drives the device
collaborator and the risk classifier over every installed package, aggregating one
AppRecord plus RiskAssessment per app. Per-app failures are logged and skipped;
only package enumeration failures abort the scan.
*/

package scanner

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/kleascm/liora-scanner/pkg/device"
	"github.com/kleascm/liora-scanner/pkg/risk"
)

// ErrNotConnected is returned when Scan is invoked without a device.
var ErrNotConnected = errors.New("no device connected")

// AppResult pairs one parsed app record with its risk assessment. The
// assessment is always computed from the same package identifier as the
// record.
type AppResult struct {
	Record *device.AppRecord `json:"record"`
	Risk   risk.Assessment   `json:"risk"`

	// Raw reference-table values, zero when the package is not in the table.
	CollectionFrequency int      `json:"collection_frequency"`
	DataTypes           []string `json:"data_types"`
}

// Result is the aggregate outcome of one scan. It is built once and owned by
// the report renderer afterwards; nothing mutates it after Scan returns.
type Result struct {
	SessionID     string                `json:"session_id"`
	Device        *device.Identity      `json:"device"`
	Apps          map[string]*AppResult `json:"apps"`
	TotalPackages int                   `json:"total_packages"`
	Scanned       int                   `json:"scanned"`
	StartedAt     time.Time             `json:"started_at"`
	CompletedAt   time.Time             `json:"completed_at"`
}

// Scanner walks a connected device and classifies every installed app.
type Scanner struct {
	device     device.Device
	classifier *risk.Classifier
	logger     *logrus.Logger

	// progressEvery controls how often the scan loop logs progress.
	progressEvery int
}

// New creates a scanner over an already-connected device.
func New(dev device.Device, classifier *risk.Classifier, logger *logrus.Logger) *Scanner {
	return &Scanner{
		device:        dev,
		classifier:    classifier,
		logger:        logger,
		progressEvery: 10,
	}
}

// Scan enumerates all installed packages and assembles a Result with one
// AppResult per successfully processed package. A package whose detail fetch
// fails is skipped and does not appear in the result. Cancelling the context
// stops the loop; the in-flight package is discarded.
func (s *Scanner) Scan(ctx context.Context) (*Result, error) {
	if s.device == nil {
		return nil, ErrNotConnected
	}

	result := &Result{
		SessionID: uuid.New().String(),
		Apps:      make(map[string]*AppResult),
		StartedAt: time.Now(),
	}

	result.Device = device.CollectIdentity(ctx, s.device, s.logger)

	packages, err := s.device.ListPackages(ctx)
	if err != nil {
		return nil, err
	}
	result.TotalPackages = len(packages)
	s.logger.WithField("packages", len(packages)).Info("Starting app scan")

	for i, packageID := range packages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if s.progressEvery > 0 && (i+1)%s.progressEvery == 0 {
			s.logger.WithFields(logrus.Fields{
				"scanned": i + 1,
				"total":   len(packages),
			}).Info("Scan progress")
		}

		dump, err := s.device.DumpPackageDetails(ctx, packageID)
		if err != nil {
			s.logger.WithError(err).WithField("package", packageID).Error("Skipping package")
			continue
		}

		record := device.ParsePackageDump(packageID, dump)
		assessment := s.classifier.Classify(packageID)
		frequency, dataTypes, _ := s.classifier.Details(packageID)

		if assessment.Level == risk.LevelHigh {
			s.logger.WithFields(logrus.Fields{
				"package": packageID,
				"app":     record.AppName,
				"score":   assessment.Score,
			}).Warn("High-risk app found")
		}

		result.Apps[packageID] = &AppResult{
			Record:              record,
			Risk:                assessment,
			CollectionFrequency: frequency,
			DataTypes:           dataTypes,
		}
	}

	result.Scanned = len(result.Apps)
	result.CompletedAt = time.Now()
	s.logger.WithFields(logrus.Fields{
		"scanned": result.Scanned,
		"total":   result.TotalPackages,
	}).Info("Scan completed")

	return result, nil
}

// CountByLevel tallies the scanned apps per risk level.
func (r *Result) CountByLevel() map[risk.Level]int {
	counts := make(map[risk.Level]int, 4)
	for _, app := range r.Apps {
		counts[app.Risk.Level]++
	}
	return counts
}
