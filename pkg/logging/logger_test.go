/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: logger_test.go
Description: Tests for the logging system. Covers configuration validation,
logger construction with file output, defaults, and log file cleanup.
*/

package logging_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kleascm/liora-scanner/pkg/logging"
)

func TestLoggerConfigValidate(t *testing.T) {
	valid := &logging.LoggerConfig{
		Level:    logging.LogLevelInfo,
		Format:   logging.LogFormatText,
		MaxFiles: 5,
	}
	assert.NoError(t, valid.Validate())

	invalid := &logging.LoggerConfig{Level: logging.LogLevelInfo, Format: logging.LogFormatText, MaxFiles: 0}
	assert.Error(t, invalid.Validate())

	invalid = &logging.LoggerConfig{Level: logging.LogLevelInfo, Format: "xml", MaxFiles: 5}
	assert.Error(t, invalid.Validate())

	invalid = &logging.LoggerConfig{Level: "trace", Format: logging.LogFormatJSON, MaxFiles: 5}
	assert.Error(t, invalid.Validate())
}

func TestNewLogger(t *testing.T) {
	dir := t.TempDir()
	logger, err := logging.NewLogger(&logging.LoggerConfig{
		Level:     logging.LogLevelDebug,
		Format:    logging.LogFormatJSON,
		OutputDir: dir,
		MaxFiles:  3,
		Timestamp: true,
	})
	require.NoError(t, err)
	defer logger.Close()

	require.NotNil(t, logger.GetLogger())

	logger.LogScanStart("ABC123XYZ", 42)
	logger.LogHighRiskApp("com.test.app1", "App One", 100.0)
	logger.LogReportWritten("/tmp/report.json", "/tmp/report.html")

	files, err := filepath.Glob(filepath.Join(dir, "liora-scanner_*.log"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	info, err := os.Stat(files[0])
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestNewLoggerDefaults(t *testing.T) {
	// Relative default output dir; run inside a temp working directory
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	defer os.Chdir(wd)

	logger, err := logging.NewLogger(nil)
	require.NoError(t, err)
	defer logger.Close()

	assert.NotNil(t, logger.GetLogger())
	assert.DirExists(t, "logs")
}

func TestLoggerCleanup(t *testing.T) {
	dir := t.TempDir()

	// Seed old log files beyond the retention limit
	for i := 0; i < 4; i++ {
		path := filepath.Join(dir, time.Now().Add(time.Duration(i)*time.Second).Format("liora-scanner_2006-01-02_15-04-05.log"))
		require.NoError(t, os.WriteFile(path, []byte("old"), 0644))
	}

	logger, err := logging.NewLogger(&logging.LoggerConfig{
		Level:     logging.LogLevelInfo,
		Format:    logging.LogFormatText,
		OutputDir: dir,
		MaxFiles:  2,
	})
	require.NoError(t, err)
	require.NoError(t, logger.Close())

	files, err := filepath.Glob(filepath.Join(dir, "liora-scanner_*.log"))
	require.NoError(t, err)
	assert.Len(t, files, 2)
}
