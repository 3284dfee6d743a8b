/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: report.go
Description: Report generator for the Liora Privacy Scanner. Consumes one scan
result and writes a machine-readable JSON document and a human-readable HTML
document into a timestamped directory derived from the device identity.
*/

package reporting

import (
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kleascm/liora-scanner/pkg/device"
	"github.com/kleascm/liora-scanner/pkg/risk"
	"github.com/kleascm/liora-scanner/pkg/scanner"
)

// ScannerVersion is stamped into every report.
const ScannerVersion = "1.0.0"

// Generator writes scan reports under a base directory.
type Generator struct {
	baseDir   string
	logger    *logrus.Logger
	templates *template.Template
}

// NewGenerator creates a report generator rooted at baseDir.
func NewGenerator(baseDir string, logger *logrus.Logger) *Generator {
	return &Generator{
		baseDir:   baseDir,
		logger:    logger,
		templates: template.Must(template.New("report").Funcs(template.FuncMap{
			"join": strings.Join,
		}).Parse(reportTemplate)),
	}
}

// Document is the machine-readable report structure.
type Document struct {
	ScanInfo   ScanInfo         `json:"scan_info"`
	DeviceInfo *device.Identity `json:"device_info"`
	Summary    Summary          `json:"summary"`
	Apps       []AppReport      `json:"apps"`
}

// ScanInfo identifies one scanner invocation.
type ScanInfo struct {
	Timestamp      time.Time `json:"timestamp"`
	ScannerVersion string    `json:"scanner_version"`
	SessionID      string    `json:"session_id"`
}

// Summary aggregates risk levels and permission counts across all apps.
type Summary struct {
	TotalApps          int                `json:"total_apps"`
	RiskLevels         RiskLevelCounts    `json:"risk_levels"`
	PermissionsSummary PermissionsSummary `json:"permissions_summary"`
}

// RiskLevelCounts tallies apps per risk level.
type RiskLevelCounts struct {
	High    int `json:"high"`
	Medium  int `json:"medium"`
	Low     int `json:"low"`
	Unknown int `json:"unknown"`
}

// PermissionsSummary totals permissions across the whole scan.
type PermissionsSummary struct {
	TotalRequested int `json:"total_permissions_requested"`
	TotalGranted   int `json:"total_permissions_granted"`
	TotalDenied    int `json:"total_permissions_denied"`
}

// AppReport is the per-app block of the JSON document.
type AppReport struct {
	AppInfo        AppInfo            `json:"app_info"`
	RiskAssessment risk.Assessment    `json:"risk_assessment"`
	Permissions    AppPermissions     `json:"permissions"`
	DataCollection DataCollectionInfo `json:"data_collection"`
}

// AppInfo carries the parsed install metadata for one app.
type AppInfo struct {
	Name             string `json:"name"`
	PackageID        string `json:"package_id"`
	InstallSource    string `json:"install_source"`
	FirstInstallTime string `json:"first_install_time"`
	LastUpdateTime   string `json:"last_update_time"`
}

// AppPermissions summarizes and categorizes one app's permissions.
type AppPermissions struct {
	Summary     PermissionCounts             `json:"summary"`
	Categorized *risk.CategorizedPermissions `json:"categorized"`
	Details     PermissionDetails            `json:"details"`
}

// PermissionCounts tallies one app's permission set.
type PermissionCounts struct {
	TotalRequested int `json:"total_requested"`
	TotalGranted   int `json:"total_granted"`
	TotalDenied    int `json:"total_denied"`
}

// PermissionDetails lists the runtime-resolved permissions.
type PermissionDetails struct {
	Granted []string `json:"granted"`
	Denied  []string `json:"denied"`
}

// DataCollectionInfo reports what the reference table knows about an app.
type DataCollectionInfo struct {
	Frequency      int      `json:"frequency"`
	Types          []string `json:"types"`
	KnownBehaviors []string `json:"known_behaviors"`
}

// Generate writes the JSON and HTML reports for one scan result and returns
// their paths. Filenames are deterministic for a given device and date.
func (g *Generator) Generate(result *scanner.Result) (jsonPath, htmlPath string, err error) {
	deviceName := deviceName(result)
	outputDir := filepath.Join(g.baseDir, fmt.Sprintf("%s_%s", time.Now().Format("2006-01-02"), deviceName))

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", "", fmt.Errorf("failed to create report directory: %w", err)
	}
	g.logger.WithField("dir", outputDir).Info("Writing reports")

	base := "report_" + deviceName
	jsonPath = filepath.Join(outputDir, base+".json")
	htmlPath = filepath.Join(outputDir, base+".html")

	doc := g.buildDocument(result)
	if err := writeJSON(jsonPath, doc); err != nil {
		return "", "", err
	}
	if err := g.writeHTML(htmlPath, result); err != nil {
		return "", "", err
	}

	g.logger.WithFields(logrus.Fields{
		"json": jsonPath,
		"html": htmlPath,
	}).Info("Reports generated")

	return jsonPath, htmlPath, nil
}

// deviceName builds the report directory suffix from the device identity,
// falling back to placeholders when fields are missing.
func deviceName(result *scanner.Result) string {
	manufacturer := result.Device.Manufacturer
	if manufacturer == "" {
		manufacturer = "unknown"
	}
	model := result.Device.Model
	if model == "" {
		model = "device"
	}
	androidID := result.Device.Identifiers.AndroidID
	if len(androidID) > 5 {
		androidID = androidID[len(androidID)-5:]
	}
	return fmt.Sprintf("%s_%s_%s", manufacturer, model, androidID)
}

func (g *Generator) buildDocument(result *scanner.Result) *Document {
	doc := &Document{
		ScanInfo: ScanInfo{
			Timestamp:      time.Now(),
			ScannerVersion: ScannerVersion,
			SessionID:      result.SessionID,
		},
		DeviceInfo: result.Device,
		Apps:       make([]AppReport, 0, len(result.Apps)),
	}

	counts := result.CountByLevel()
	doc.Summary = Summary{
		TotalApps: len(result.Apps),
		RiskLevels: RiskLevelCounts{
			High:    counts[risk.LevelHigh],
			Medium:  counts[risk.LevelMedium],
			Low:     counts[risk.LevelLow],
			Unknown: counts[risk.LevelNotFound],
		},
	}

	for _, packageID := range sortedPackageIDs(result) {
		app := result.Apps[packageID]
		perms := app.Record.Permissions

		doc.Summary.PermissionsSummary.TotalRequested += len(perms.Requested)
		doc.Summary.PermissionsSummary.TotalGranted += len(perms.Granted)
		doc.Summary.PermissionsSummary.TotalDenied += len(perms.Denied)

		doc.Apps = append(doc.Apps, AppReport{
			AppInfo: AppInfo{
				Name:             app.Record.AppName,
				PackageID:        app.Record.PackageID,
				InstallSource:    app.Record.InstallSource,
				FirstInstallTime: app.Record.FirstInstallTime,
				LastUpdateTime:   app.Record.LastUpdateTime,
			},
			RiskAssessment: app.Risk,
			Permissions: AppPermissions{
				Summary: PermissionCounts{
					TotalRequested: len(perms.Requested),
					TotalGranted:   len(perms.Granted),
					TotalDenied:    len(perms.Denied),
				},
				Categorized: risk.Categorize(perms.Requested),
				Details: PermissionDetails{
					Granted: perms.Granted,
					Denied:  perms.Denied,
				},
			},
			DataCollection: DataCollectionInfo{
				Frequency:      app.CollectionFrequency,
				Types:          app.DataTypes,
				KnownBehaviors: app.Risk.KnownBehaviors,
			},
		})
	}

	return doc
}

func sortedPackageIDs(result *scanner.Result) []string {
	ids := make([]string, 0, len(result.Apps))
	for id := range result.Apps {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func writeJSON(path string, doc *Document) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create JSON report: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode JSON report: %w", err)
	}
	return nil
}

// htmlSection groups apps of one risk level for the HTML template.
type htmlSection struct {
	Title string
	Class string
	Apps  []htmlApp
}

type htmlApp struct {
	Name          string
	PackageID     string
	Frequency     int
	DataTypes     string
	Requested     int
	InstallSource string
	FirstInstall  string
	LastUpdate    string
}

type htmlData struct {
	GeneratedAt string
	Device      *device.Identity
	Identifiers device.IdentifierSet
	TotalApps   int
	High        int
	Medium      int
	Low         int
	Unknown     int
	Sections    []htmlSection
}

func (g *Generator) writeHTML(path string, result *scanner.Result) error {
	counts := result.CountByLevel()
	data := &htmlData{
		GeneratedAt: time.Now().Format("2006-01-02 15:04:05"),
		Device:      result.Device,
		Identifiers: result.Device.Identifiers,
		TotalApps:   len(result.Apps),
		High:        counts[risk.LevelHigh],
		Medium:      counts[risk.LevelMedium],
		Low:         counts[risk.LevelLow],
		Unknown:     counts[risk.LevelNotFound],
	}

	sections := []struct {
		level risk.Level
		title string
		class string
	}{
		{risk.LevelHigh, "High Risk Apps", "risk-high"},
		{risk.LevelMedium, "Medium Risk Apps", "risk-medium"},
		{risk.LevelLow, "Low Risk Apps", "risk-low"},
		{risk.LevelNotFound, "Apps Not Found in Database", "risk-unknown"},
	}
	for _, section := range sections {
		s := htmlSection{Title: section.title, Class: section.class}
		for _, packageID := range sortedPackageIDs(result) {
			app := result.Apps[packageID]
			if app.Risk.Level != section.level {
				continue
			}
			s.Apps = append(s.Apps, htmlApp{
				Name:          app.Record.AppName,
				PackageID:     app.Record.PackageID,
				Frequency:     app.CollectionFrequency,
				DataTypes:     strings.Join(app.DataTypes, ", "),
				Requested:     len(app.Record.Permissions.Requested),
				InstallSource: app.Record.InstallSource,
				FirstInstall:  app.Record.FirstInstallTime,
				LastUpdate:    app.Record.LastUpdateTime,
			})
		}
		data.Sections = append(data.Sections, s)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create HTML report: %w", err)
	}
	defer file.Close()

	if err := g.templates.Execute(file, data); err != nil {
		return fmt.Errorf("failed to execute report template: %w", err)
	}
	return nil
}
