/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: scan.go
Description: Scan command implementation for the Liora Privacy Scanner. Connects
to the device, loads the collectors database, runs the full scan pipeline, writes
the reports, and prints a device and risk summary.
*/

package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kleascm/liora-scanner/pkg/collectors"
	"github.com/kleascm/liora-scanner/pkg/device"
	"github.com/kleascm/liora-scanner/pkg/reporting"
	"github.com/kleascm/liora-scanner/pkg/risk"
	"github.com/kleascm/liora-scanner/pkg/scanner"
)

// RunScan executes the full scan pipeline
func RunScan(cmd *cobra.Command, args []string) error {
	fmt.Println("🔍 Liora Privacy Scanner - Starting Device Scan")
	fmt.Println("===============================================")
	fmt.Println()

	// Load configuration first
	if err := LoadConfig(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Setup logging
	lgr, err := SetupLogging()
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	defer lgr.Close()
	log := lgr.GetLogger()

	// Load the collectors database; no scan is possible without it
	db, err := collectors.Load(viper.GetString("database"), log)
	if err != nil {
		return err
	}

	// Connect to the device
	dev, err := device.ConnectADB(viper.GetString("device_serial"), log)
	if err != nil {
		return err
	}

	// Set up signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\n🛑 Received shutdown signal, stopping scan...")
		cancel()
	}()

	// Run the scan
	sc := scanner.New(dev, risk.NewClassifier(db), log)
	result, err := sc.Scan(ctx)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	// Generate reports
	generator := reporting.NewGenerator(viper.GetString("reports_dir"), log)
	jsonPath, htmlPath, err := generator.Generate(result)
	if err != nil {
		return fmt.Errorf("report generation failed: %w", err)
	}
	lgr.LogReportWritten(jsonPath, htmlPath)

	printSummary(result, jsonPath, htmlPath)
	return nil
}

func printSummary(result *scanner.Result, jsonPath, htmlPath string) {
	info := result.Device
	ids := info.Identifiers

	fmt.Println("\n📱 Device Information:")
	fmt.Printf("Manufacturer: %s\n", orUnknown(info.Manufacturer))
	fmt.Printf("Model: %s\n", orUnknown(info.Model))
	fmt.Printf("Brand: %s\n", orUnknown(info.Brand))
	fmt.Printf("Android Version: %s\n", orUnknown(info.AndroidVersion))
	fmt.Printf("Security Patch: %s\n", orUnknown(info.SecurityPatch))

	fmt.Println("\n🔑 Device Identifiers:")
	fmt.Printf("  Serial Number: %s\n", orNotAvailable(ids.Serial))
	fmt.Printf("  Android ID: %s\n", orNotAvailable(ids.AndroidID))
	fmt.Printf("  Bluetooth MAC: %s\n", orNotAvailable(ids.BluetoothMAC))
	fmt.Printf("  IP Addresses: %s\n", orNotAvailable(strings.Join(ids.IPAddresses, ", ")))

	counts := result.CountByLevel()
	fmt.Println("\n📊 App Summary:")
	fmt.Printf("Total installed apps: %d\n", result.TotalPackages)
	fmt.Printf("Apps scanned: %d\n", result.Scanned)
	fmt.Printf("High risk apps: %d\n", counts[risk.LevelHigh])
	fmt.Printf("Medium risk apps: %d\n", counts[risk.LevelMedium])
	fmt.Printf("Low risk apps: %d\n", counts[risk.LevelLow])
	fmt.Printf("Unknown apps: %d\n", counts[risk.LevelNotFound])

	fmt.Println("\n📄 Reports:")
	fmt.Printf("- HTML Report: %s\n", htmlPath)
	fmt.Printf("- Full JSON Data: %s\n", jsonPath)
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

func orNotAvailable(s string) string {
	if s == "" {
		return "Not available"
	}
	return s
}
