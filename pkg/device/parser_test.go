/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: parser_test.go
Description: Tests for the diagnostic text parsers. Covers package dump
extraction (sections, labels, install metadata), property dump parsing,
MAC validation, IP extraction, and identity collection over a fake device.
*/

package device_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kleascm/liora-scanner/pkg/device"
)

const samplePackageDump = `Packages:
  Package [com.example.app] (a1b2c3):
    userId=10123
    pkg=Package{f00 com.example.app}
    applicationInfo=ApplicationInfo{123 com.example.app} label="Example App" icon=0x7f
    firstInstallTime=2024-03-01 10:15:00
    lastUpdateTime=2024-06-12 08:30:00
    installInitiator: com.android.vending
    sharedUser=SharedUserSetting{456 android.uid.shared/10010}
    usesLibraryInfos:
      libraryInfo{name=org.apache.http.legacy}
    requested permissions:
      android.permission.INTERNET
      android.permission.CAMERA
      android.permission.ACCESS_FINE_LOCATION
      android.permission.CAMERA
    install permissions:
      android.permission.INTERNET: granted=true
    runtime permissions:
      android.permission.CAMERA: granted=true
      android.permission.ACCESS_FINE_LOCATION: granted=false
`

func TestParsePackageDump(t *testing.T) {
	record := device.ParsePackageDump("com.example.app", samplePackageDump)
	require.NotNil(t, record)

	assert.Equal(t, "com.example.app", record.PackageID)
	assert.Equal(t, "Example App", record.AppName)
	assert.Equal(t, "com.android.vending", record.InstallSource)
	assert.Equal(t, "2024-03-01", record.FirstInstallTime)
	assert.Equal(t, "2024-06-12", record.LastUpdateTime)

	// Requested permissions keep dump order, duplicates included
	assert.Equal(t, []string{
		"android.permission.INTERNET",
		"android.permission.CAMERA",
		"android.permission.ACCESS_FINE_LOCATION",
		"android.permission.CAMERA",
	}, record.Permissions.Requested)

	assert.Equal(t, []string{"android.permission.CAMERA"}, record.Permissions.Granted)
	assert.Equal(t, []string{"android.permission.ACCESS_FINE_LOCATION"}, record.Permissions.Denied)

	assert.NotEmpty(t, record.NetworkPermissions)
	assert.Len(t, record.SharedLibraries, 1)
	assert.Equal(t, []string{"SharedUserSetting{456 android.uid.shared/10010}"}, record.SharedUserIDs)
}

func TestParsePackageDumpUnquotedLabel(t *testing.T) {
	dump := "applicationInfo=ApplicationInfo{abc com.example.app} label=Example icon=0x7f\n"
	record := device.ParsePackageDump("com.example.app", dump)
	assert.Equal(t, "Example", record.AppName)
}

func TestParsePackageDumpDefaults(t *testing.T) {
	record := device.ParsePackageDump("com.example.app", "garbage that matches nothing\n\n!!!\n")
	require.NotNil(t, record)

	// App name falls back to the package identifier
	assert.Equal(t, "com.example.app", record.AppName)
	assert.Empty(t, record.InstallSource)
	assert.Empty(t, record.FirstInstallTime)
	assert.Empty(t, record.Permissions.Requested)
	assert.Empty(t, record.Permissions.Granted)
	assert.Empty(t, record.Permissions.Denied)
}

func TestParsePackageDumpFirstMatchWins(t *testing.T) {
	dump := `applicationInfo=ApplicationInfo{a com.example.app} label="First"
applicationInfo=ApplicationInfo{b com.example.app} label="Second"
installInitiator: com.android.vending
installInitiator: com.other.store
`
	record := device.ParsePackageDump("com.example.app", dump)
	assert.Equal(t, "First", record.AppName)
	assert.Equal(t, "com.android.vending", record.InstallSource)
}

func TestParseProperties(t *testing.T) {
	props := `[ro.product.manufacturer]: [Google]
[ro.product.model]: [Pixel 7]
[ro.product.brand]: [google]
[ro.product.device]: [panther]
[ro.build.version.release]: [14]
[ro.build.version.security_patch]: [2024-05-05]
[ro.serialno]: [ABC123XYZ]
[ro.some.other.prop]: [ignored]
not a property line at all
`
	id := device.ParseProperties(props)
	assert.Equal(t, "Google", id.Manufacturer)
	assert.Equal(t, "Pixel 7", id.Model)
	assert.Equal(t, "google", id.Brand)
	assert.Equal(t, "panther", id.Device)
	assert.Equal(t, "14", id.AndroidVersion)
	assert.Equal(t, "2024-05-05", id.SecurityPatch)
	assert.Equal(t, "ABC123XYZ", id.Identifiers.Serial)
}

func TestValidBluetoothMAC(t *testing.T) {
	assert.True(t, device.ValidBluetoothMAC("AA:BB:CC:DD:EE:FF"))
	assert.True(t, device.ValidBluetoothMAC("aa-bb-cc-dd-ee-ff"))
	assert.False(t, device.ValidBluetoothMAC("AA:BB:CC:DD:EE"))
	assert.False(t, device.ValidBluetoothMAC("not a mac"))
	assert.False(t, device.ValidBluetoothMAC(""))
	assert.False(t, device.ValidBluetoothMAC("GG:HH:II:JJ:KK:LL"))
}

func TestExtractIPAddresses(t *testing.T) {
	listing := `1: lo: <LOOPBACK,UP> mtu 65536
    inet 127.0.0.1/8 scope host lo
24: wlan0: <BROADCAST,MULTICAST,UP> mtu 1500
    inet 192.168.1.42/24 brd 192.168.1.255 scope global wlan0
25: rmnet0: <UP> mtu 1500
    inet 10.20.30.40/29 scope global rmnet0
`
	addrs := device.ExtractIPAddresses(listing)
	assert.Equal(t, []string{"192.168.1.42", "10.20.30.40"}, addrs)

	assert.Empty(t, device.ExtractIPAddresses("inet 127.0.0.1/8 scope host lo"))
}

// fakeDevice implements Device with canned responses per query.
type fakeDevice struct {
	packages     []string
	dumps        map[string]string
	dumpErrs     map[string]error
	props        string
	propsErr     error
	androidID    string
	androidIDErr error
	btMAC        string
	btMACErr     error
	ifaces       string
	ifacesErr    error
	listErr      error
}

func (f *fakeDevice) ListPackages(ctx context.Context) ([]string, error) {
	return f.packages, f.listErr
}

func (f *fakeDevice) DumpPackageDetails(ctx context.Context, packageID string) (string, error) {
	if err, ok := f.dumpErrs[packageID]; ok {
		return "", err
	}
	return f.dumps[packageID], nil
}

func (f *fakeDevice) DumpDeviceProperties(ctx context.Context) (string, error) {
	return f.props, f.propsErr
}

func (f *fakeDevice) QueryAndroidID(ctx context.Context) (string, error) {
	return f.androidID, f.androidIDErr
}

func (f *fakeDevice) QueryBluetoothMac(ctx context.Context) (string, error) {
	return f.btMAC, f.btMACErr
}

func (f *fakeDevice) DumpNetworkInterfaces(ctx context.Context) (string, error) {
	return f.ifaces, f.ifacesErr
}

func discardLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestCollectIdentity(t *testing.T) {
	dev := &fakeDevice{
		props:     "[ro.product.manufacturer]: [Google]\n[ro.product.model]: [Pixel 7]\n",
		androidID: "1a2b3c4d5e6f7890\n",
		btMAC:     "AA:BB:CC:DD:EE:FF\n",
		ifaces:    "inet 127.0.0.1/8 scope host lo\ninet 192.168.1.42/24 scope global wlan0\n",
	}

	id := device.CollectIdentity(context.Background(), dev, discardLogger())
	require.NotNil(t, id)

	assert.Equal(t, "Google", id.Manufacturer)
	assert.Equal(t, "Pixel 7", id.Model)
	assert.Equal(t, "1a2b3c4d5e6f7890", id.Identifiers.AndroidID)
	assert.Equal(t, "AA:BB:CC:DD:EE:FF", id.Identifiers.BluetoothMAC)
	assert.Equal(t, []string{"192.168.1.42"}, id.Identifiers.IPAddresses)
}

func TestCollectIdentityPartialFailure(t *testing.T) {
	dev := &fakeDevice{
		props:        "[ro.product.model]: [Pixel 7]\n",
		androidIDErr: errors.New("settings query failed"),
		btMAC:        "not a mac",
		ifacesErr:    errors.New("ip command missing"),
	}

	id := device.CollectIdentity(context.Background(), dev, discardLogger())
	require.NotNil(t, id)

	// Failing queries leave their fields empty without aborting collection
	assert.Equal(t, "Pixel 7", id.Model)
	assert.Empty(t, id.Identifiers.AndroidID)
	assert.Empty(t, id.Identifiers.BluetoothMAC)
	assert.Empty(t, id.Identifiers.IPAddresses)
}
