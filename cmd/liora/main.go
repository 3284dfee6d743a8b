/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: main.go
Description: Main command-line interface for the Liora Privacy Scanner. Provides
the scan, devices, and lookup commands with configuration management and
structured logging for inventorying installed apps on a connected Android device.
*/

package main

import (
	"fmt"
	"os"

	"github.com/kleascm/liora-scanner/cmd/liora/commands"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Configuration
	configFile string
	logLevel   string
	jsonLogs   bool

	// Logging configuration
	logDir      string
	logFormat   string
	logMaxFiles int

	// Scan configuration
	databasePath string
	reportsDir   string
	deviceSerial string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "liora",
		Short: "Liora Privacy Scanner - Android app privacy analysis over ADB",
		Long: `Liora Privacy Scanner inventories the apps installed on a connected Android
device, cross-references each one against a reference table of known data
collectors, assigns a risk classification, and generates JSON and HTML reports.`,
		Version: "1.0.0",
	}

	// Add persistent flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Logging level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "Use JSON log format")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "./logs", "Log output directory")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format (text, json)")
	rootCmd.PersistentFlags().IntVar(&logMaxFiles, "log-max-files", 10, "Maximum number of log files to keep")

	// Bind flags to viper
	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("json_logs", rootCmd.PersistentFlags().Lookup("json-logs"))
	viper.BindPFlag("log_dir", rootCmd.PersistentFlags().Lookup("log-dir"))
	viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("log_max_files", rootCmd.PersistentFlags().Lookup("log-max-files"))

	// Add scan command
	scanCmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan the connected device and generate privacy reports",
		Long: `Scan every app installed on the connected Android device, classify each one
against the collectors database, and write a JSON and an HTML report into a
timestamped directory derived from the device identity.`,
		RunE: commands.RunScan,
	}

	scanCmd.Flags().StringVar(&databasePath, "database", "data/collectors_database.csv", "Path to the collectors database CSV file")
	scanCmd.Flags().StringVar(&reportsDir, "reports-dir", "./reports", "Base directory for reports")
	scanCmd.Flags().StringVar(&deviceSerial, "device-serial", "", "ADB device serial (default: first device)")

	viper.BindPFlag("database", scanCmd.Flags().Lookup("database"))
	viper.BindPFlag("reports_dir", scanCmd.Flags().Lookup("reports-dir"))
	viper.BindPFlag("device_serial", scanCmd.Flags().Lookup("device-serial"))

	rootCmd.AddCommand(scanCmd)

	// Add devices command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "devices",
		Short: "List Android devices visible to the local ADB server",
		RunE:  commands.RunDevices,
	})

	// Add lookup command
	lookupCmd := &cobra.Command{
		Use:   "lookup <package-id>",
		Short: "Classify a single package against the collectors database",
		Long: `Look up one package identifier in the collectors database and print its risk
level, score, factors, and known behaviors without connecting to a device.`,
		Args: cobra.ExactArgs(1),
		RunE: commands.RunLookup,
	}

	lookupCmd.Flags().StringVar(&databasePath, "database", "data/collectors_database.csv", "Path to the collectors database CSV file")
	viper.BindPFlag("database", lookupCmd.Flags().Lookup("database"))

	rootCmd.AddCommand(lookupCmd)

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
