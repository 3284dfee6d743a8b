/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: adb.go
Description: ADB-backed implementation of the Device interface using the goadb
client library. Handles server availability and device selection at connect time,
then serves every query as a plain shell command returning raw text.
*/

package device

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	adb "github.com/zach-klippenstein/goadb"
)

var (
	// ErrServerUnavailable means the ADB server could not be reached at all.
	ErrServerUnavailable = errors.New("adb server unavailable")
	// ErrNoDevices means the server is up but no device is connected.
	ErrNoDevices = errors.New("no android devices connected")
)

// ADBDevice talks to one connected device through the local ADB server.
type ADBDevice struct {
	client *adb.Adb
	device *adb.Device
	serial string
	logger *logrus.Logger
}

// ConnectADB verifies the ADB server is reachable and at least one device is
// connected, then binds to the device with the given serial (or the first
// device when serial is empty). Both failure modes are fatal setup errors.
func ConnectADB(serial string, logger *logrus.Logger) (*ADBDevice, error) {
	client, err := adb.New()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServerUnavailable, err)
	}
	if _, err := client.ServerVersion(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServerUnavailable, err)
	}

	devices, err := client.ListDevices()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServerUnavailable, err)
	}
	if len(devices) == 0 {
		return nil, ErrNoDevices
	}

	if serial == "" {
		serial = devices[0].Serial
	}
	found := false
	for _, info := range devices {
		if info.Serial == serial {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("%w: serial %q not found", ErrNoDevices, serial)
	}

	logger.WithField("serial", serial).Info("Connected to device")

	return &ADBDevice{
		client: client,
		device: client.Device(adb.DeviceWithSerial(serial)),
		serial: serial,
		logger: logger,
	}, nil
}

// Serial returns the serial the connection is bound to.
func (d *ADBDevice) Serial() string { return d.serial }

func (d *ADBDevice) run(cmd string, args ...string) (string, error) {
	output, err := d.device.RunCommand(cmd, args...)
	if err != nil {
		return "", fmt.Errorf("adb command %q failed: %w", cmd, err)
	}
	return output, nil
}

// ListPackages enumerates all installed package identifiers.
func (d *ADBDevice) ListPackages(ctx context.Context) ([]string, error) {
	output, err := d.run("pm", "list", "packages")
	if err != nil {
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}

	var packages []string
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		packages = append(packages, strings.TrimPrefix(line, "package:"))
	}
	return packages, nil
}

// DumpPackageDetails returns the raw package-manager dump for one package.
func (d *ADBDevice) DumpPackageDetails(ctx context.Context, packageID string) (string, error) {
	output, err := d.run("pm", "dump", packageID)
	if err != nil {
		return "", fmt.Errorf("package dump failed for %s: %w", packageID, err)
	}
	return output, nil
}

// DumpDeviceProperties returns the raw system property dump.
func (d *ADBDevice) DumpDeviceProperties(ctx context.Context) (string, error) {
	return d.run("getprop")
}

// QueryAndroidID returns the secure Android ID setting.
func (d *ADBDevice) QueryAndroidID(ctx context.Context) (string, error) {
	return d.run("settings", "get", "secure", "android_id")
}

// QueryBluetoothMac returns the secure bluetooth_address setting.
func (d *ADBDevice) QueryBluetoothMac(ctx context.Context) (string, error) {
	return d.run("settings", "get", "secure", "bluetooth_address")
}

// DumpNetworkInterfaces returns the raw interface listing.
func (d *ADBDevice) DumpNetworkInterfaces(ctx context.Context) (string, error) {
	return d.run("ip", "addr", "show")
}

// ConnectedDevice summarizes one device visible to the ADB server.
type ConnectedDevice struct {
	Serial string `json:"serial"`
	Model  string `json:"model"`
	State  string `json:"state"`
}

// ListConnectedDevices reports every device the local ADB server can see,
// without binding to any of them.
func ListConnectedDevices() ([]ConnectedDevice, error) {
	client, err := adb.New()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServerUnavailable, err)
	}
	infos, err := client.ListDevices()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServerUnavailable, err)
	}

	devices := make([]ConnectedDevice, 0, len(infos))
	for _, info := range infos {
		state := "unknown"
		if s, err := client.Device(adb.DeviceWithSerial(info.Serial)).State(); err == nil {
			state = stateName(s)
		}
		devices = append(devices, ConnectedDevice{
			Serial: info.Serial,
			Model:  info.Model,
			State:  state,
		})
	}
	return devices, nil
}

func stateName(state adb.DeviceState) string {
	switch state {
	case adb.StateOnline:
		return "online"
	case adb.StateOffline:
		return "offline"
	case adb.StateUnauthorized:
		return "unauthorized"
	default:
		return "unknown"
	}
}
