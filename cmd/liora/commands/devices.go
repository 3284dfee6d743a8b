/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: devices.go
Description: Devices command implementation. Lists every Android device visible
to the local ADB server with its serial, model, and connection state.
*/

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kleascm/liora-scanner/pkg/device"
)

// RunDevices lists connected devices
func RunDevices(cmd *cobra.Command, args []string) error {
	devices, err := device.ListConnectedDevices()
	if err != nil {
		return err
	}

	if len(devices) == 0 {
		fmt.Println("No Android devices connected")
		return nil
	}

	fmt.Println("📱 Connected Devices:")
	for _, d := range devices {
		model := d.Model
		if model == "" {
			model = "unknown model"
		}
		fmt.Printf("  %s  %s  [%s]\n", d.Serial, model, d.State)
	}
	return nil
}
