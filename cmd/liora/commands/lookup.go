/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: lookup.go
Description: Lookup command implementation. Classifies a single package
identifier against the collectors database and prints its risk assessment
without touching a device.
*/

package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kleascm/liora-scanner/pkg/collectors"
	"github.com/kleascm/liora-scanner/pkg/risk"
)

// RunLookup classifies one package against the collectors database
func RunLookup(cmd *cobra.Command, args []string) error {
	if err := LoadConfig(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	lgr, err := SetupLogging()
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	defer lgr.Close()

	db, err := collectors.Load(viper.GetString("database"), lgr.GetLogger())
	if err != nil {
		return err
	}

	packageID := args[0]
	classifier := risk.NewClassifier(db)
	assessment := classifier.Classify(packageID)

	fmt.Printf("📦 %s\n", packageID)
	fmt.Printf("Risk Level: %s\n", assessment.Level)
	fmt.Printf("Risk Score: %.1f\n", assessment.Score)

	if len(assessment.Factors) > 0 {
		fmt.Println("\nRisk Factors:")
		for _, factor := range assessment.Factors {
			fmt.Printf("  - %s\n", factor)
		}
	}
	if len(assessment.KnownBehaviors) > 0 {
		fmt.Println("\nKnown Behaviors:")
		for _, behavior := range assessment.KnownBehaviors {
			fmt.Printf("  - %s\n", behavior)
		}
	}
	if assessment.Level == risk.LevelNotFound {
		fmt.Println("\nPackage not found in the collectors database")
	}
	return nil
}
