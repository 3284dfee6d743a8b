/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: device.go
Description: Core device types and the Device collaborator interface for the Liora
Privacy Scanner. Defines Identity, IdentifierSet, PermissionSet, and AppRecord, plus
the raw-text query surface every device backend must expose.
*/

package device

import "context"

// Device abstracts the connected Android device. Every method returns raw
// diagnostic text; parsing happens entirely on our side so backends stay thin.
type Device interface {
	// ListPackages returns the package identifiers of all installed apps.
	// A failure here is fatal to the whole scan.
	ListPackages(ctx context.Context) ([]string, error)

	// DumpPackageDetails returns the raw package-manager dump for one package.
	// A failure is fatal for that package only.
	DumpPackageDetails(ctx context.Context, packageID string) (string, error)

	// DumpDeviceProperties returns the raw system property dump.
	DumpDeviceProperties(ctx context.Context) (string, error)

	// QueryAndroidID returns the secure Android ID setting.
	QueryAndroidID(ctx context.Context) (string, error)

	// QueryBluetoothMac returns the secure bluetooth_address setting.
	QueryBluetoothMac(ctx context.Context) (string, error)

	// DumpNetworkInterfaces returns the raw interface listing.
	DumpNetworkInterfaces(ctx context.Context) (string, error)
}

// IdentifierSet holds the unique identifiers collected from a device.
// Absent identifiers are empty strings / empty slices, never errors.
type IdentifierSet struct {
	Serial       string   `json:"serial"`
	AndroidID    string   `json:"android_id"`
	BluetoothMAC string   `json:"mac_bluetooth"`
	IPAddresses  []string `json:"ip_addresses"`
}

// Identity describes the scanned device. Created once per scan and treated as
// immutable afterwards.
type Identity struct {
	Manufacturer   string        `json:"manufacturer"`
	Model          string        `json:"model"`
	Brand          string        `json:"brand"`
	Device         string        `json:"device"`
	AndroidVersion string        `json:"android_version"`
	SecurityPatch  string        `json:"security_patch"`
	Identifiers    IdentifierSet `json:"identifiers"`
}

// PermissionSet partitions an app's permissions by their runtime state.
type PermissionSet struct {
	Requested []string `json:"requested"`
	Granted   []string `json:"granted"`
	Denied    []string `json:"denied"`
}

// AppRecord is the structured result of parsing one package dump. AppName
// falls back to the package identifier when no label can be extracted.
// Records are parsed fresh per app and never mutated afterwards.
type AppRecord struct {
	PackageID        string        `json:"package_id"`
	AppName          string        `json:"app_name"`
	Permissions      PermissionSet `json:"permissions"`
	InstallSource    string        `json:"install_source"`
	FirstInstallTime string        `json:"first_install_time"`
	LastUpdateTime   string        `json:"last_update_time"`

	// Auxiliary context, not used by risk scoring.
	NetworkPermissions []string `json:"network_permissions,omitempty"`
	SharedLibraries    []string `json:"shared_libraries,omitempty"`
	SharedUserIDs      []string `json:"shared_user_ids,omitempty"`
}
