/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: parser.go
Description: Best-effort line-oriented parsers for device diagnostic text. Turns
package-manager dumps into AppRecords and system property dumps into a device
Identity. Extraction rules are independent of each other; a line that matches no
rule is skipped and fields keep their defaults. Parsing never fails.
*/

package device

import (
	"bufio"
	"context"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
)

// dump section, switched by the permission section headers
type dumpSection int

const (
	sectionNone dumpSection = iota
	sectionRequested
	sectionRuntime
	sectionInstall
)

const permissionPrefix = "android.permission."

var (
	propLinePattern     = regexp.MustCompile(`^\[(.+?)\]: \[(.*?)\]$`)
	bluetoothMACPattern = regexp.MustCompile(`^([0-9A-Fa-f]{2}[:-]){5}[0-9A-Fa-f]{2}$`)
	inetPattern         = regexp.MustCompile(`inet (\d+\.\d+\.\d+\.\d+)/`)
)

// dumpState carries the record under construction plus the current section tag.
type dumpState struct {
	record  *AppRecord
	section dumpSection
}

// extractRule inspects one trimmed line and updates the state when it matches.
// Rules are applied in order but never depend on each other's results; only the
// section tag is shared state.
type extractRule func(s *dumpState, line string)

var dumpRules = []extractRule{
	extractSectionHeader,
	extractAppName,
	extractInstallSource,
	extractInstallTimes,
	extractRequestedPermission,
	extractRuntimePermission,
	extractNetworkPermission,
	extractSharedLibrary,
	extractSharedUserID,
}

// ParsePackageDump parses the raw package-manager dump for one package into an
// AppRecord. Malformed lines are skipped; the record is always usable.
func ParsePackageDump(packageID, dump string) *AppRecord {
	state := &dumpState{
		record: &AppRecord{
			PackageID: packageID,
			AppName:   packageID,
		},
	}

	scanner := bufio.NewScanner(strings.NewReader(dump))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		for _, rule := range dumpRules {
			rule(state, line)
		}
	}

	return state.record
}

func extractSectionHeader(s *dumpState, line string) {
	switch {
	case strings.Contains(line, "requested permissions:"):
		s.section = sectionRequested
	case strings.Contains(line, "runtime permissions:"):
		s.section = sectionRuntime
	case strings.Contains(line, "install permissions:"):
		s.section = sectionInstall
	}
}

// extractAppName pulls the display label from an applicationInfo line. Labels
// appear quoted or as a bare token; the first successful extraction wins.
func extractAppName(s *dumpState, line string) {
	if s.record.AppName != s.record.PackageID {
		return
	}
	if !strings.Contains(line, "applicationInfo") || !strings.Contains(line, "label=") {
		return
	}
	labelPart := line[strings.Index(line, "label=")+len("label="):]
	if strings.Contains(labelPart, `"`) {
		parts := strings.Split(labelPart, `"`)
		if len(parts) >= 2 {
			s.record.AppName = parts[1]
		}
		return
	}
	if fields := strings.Fields(labelPart); len(fields) > 0 {
		s.record.AppName = fields[0]
	}
}

func extractInstallSource(s *dumpState, line string) {
	if s.record.InstallSource != "" {
		return
	}
	if idx := strings.Index(line, "installInitiator:"); idx >= 0 {
		s.record.InstallSource = strings.TrimSpace(line[idx+len("installInitiator:"):])
	}
}

// extractInstallTimes takes the token immediately following each time marker.
func extractInstallTimes(s *dumpState, line string) {
	if s.record.FirstInstallTime == "" {
		if idx := strings.Index(line, "firstInstallTime="); idx >= 0 {
			s.record.FirstInstallTime = firstToken(line[idx+len("firstInstallTime="):])
		}
	}
	if s.record.LastUpdateTime == "" {
		if idx := strings.Index(line, "lastUpdateTime="); idx >= 0 {
			s.record.LastUpdateTime = firstToken(line[idx+len("lastUpdateTime="):])
		}
	}
}

// Duplicates are kept as they appear in the dump.
func extractRequestedPermission(s *dumpState, line string) {
	if s.section != sectionRequested {
		return
	}
	if strings.HasPrefix(line, permissionPrefix) {
		s.record.Permissions.Requested = append(s.record.Permissions.Requested, line)
	}
}

func extractRuntimePermission(s *dumpState, line string) {
	if s.section != sectionRuntime {
		return
	}
	perm := strings.TrimSpace(strings.SplitN(line, ":", 2)[0])
	switch {
	case strings.Contains(line, "granted=true"):
		s.record.Permissions.Granted = append(s.record.Permissions.Granted, perm)
	case strings.Contains(line, "granted=false"):
		s.record.Permissions.Denied = append(s.record.Permissions.Denied, perm)
	}
}

func extractNetworkPermission(s *dumpState, line string) {
	if strings.Contains(line, "INTERNET") || strings.Contains(line, "NETWORK") {
		s.record.NetworkPermissions = append(s.record.NetworkPermissions, line)
	}
}

func extractSharedLibrary(s *dumpState, line string) {
	if strings.Contains(line, "libraryInfo") {
		s.record.SharedLibraries = append(s.record.SharedLibraries, line)
	}
}

func extractSharedUserID(s *dumpState, line string) {
	if idx := strings.Index(line, "sharedUser="); idx >= 0 {
		s.record.SharedUserIDs = append(s.record.SharedUserIDs, strings.TrimSpace(line[idx+len("sharedUser="):]))
	}
}

func firstToken(s string) string {
	if fields := strings.Fields(s); len(fields) > 0 {
		return fields[0]
	}
	return ""
}

// identityProps maps system property keys to Identity fields.
var identityProps = map[string]func(*Identity, string){
	"ro.product.manufacturer":         func(id *Identity, v string) { id.Manufacturer = v },
	"ro.product.model":                func(id *Identity, v string) { id.Model = v },
	"ro.product.brand":                func(id *Identity, v string) { id.Brand = v },
	"ro.product.device":               func(id *Identity, v string) { id.Device = v },
	"ro.build.version.release":        func(id *Identity, v string) { id.AndroidVersion = v },
	"ro.build.version.security_patch": func(id *Identity, v string) { id.SecurityPatch = v },
	"ro.serialno":                     func(id *Identity, v string) { id.Identifiers.Serial = v },
}

// ParseProperties extracts device identity fields from a system property dump
// using the `[key]: [value]` bracket-pair pattern. Unrecognized and malformed
// lines are ignored.
func ParseProperties(text string) *Identity {
	id := &Identity{}
	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		match := propLinePattern.FindStringSubmatch(strings.TrimSpace(scanner.Text()))
		if match == nil {
			continue
		}
		if set, ok := identityProps[match[1]]; ok {
			set(id, match[2])
		}
	}
	return id
}

// ValidBluetoothMAC reports whether s has the shape of a MAC address: six
// colon- or hyphen-separated hex pairs.
func ValidBluetoothMAC(s string) bool {
	return bluetoothMACPattern.MatchString(s)
}

// ExtractIPAddresses returns every IPv4 address assigned in an interface
// listing, excluding the loopback address.
func ExtractIPAddresses(text string) []string {
	var addrs []string
	for _, match := range inetPattern.FindAllStringSubmatch(text, -1) {
		if match[1] != "127.0.0.1" {
			addrs = append(addrs, match[1])
		}
	}
	return addrs
}

// CollectIdentity gathers the device identity over the collaborator. Each
// query is independent: a failing query leaves its fields at their defaults
// and logs a warning, it never aborts identity collection.
func CollectIdentity(ctx context.Context, dev Device, logger *logrus.Logger) *Identity {
	id := &Identity{}

	props, err := dev.DumpDeviceProperties(ctx)
	if err != nil {
		logger.WithError(err).Warn("Failed to dump device properties")
	} else {
		id = ParseProperties(props)
	}

	androidID, err := dev.QueryAndroidID(ctx)
	if err != nil {
		logger.WithError(err).Warn("Failed to query Android ID")
	} else {
		id.Identifiers.AndroidID = strings.TrimSpace(androidID)
	}

	mac, err := dev.QueryBluetoothMac(ctx)
	if err != nil {
		logger.WithError(err).Warn("Failed to query Bluetooth MAC")
	} else if mac = strings.TrimSpace(mac); ValidBluetoothMAC(mac) {
		id.Identifiers.BluetoothMAC = mac
	}

	ifaces, err := dev.DumpNetworkInterfaces(ctx)
	if err != nil {
		logger.WithError(err).Warn("Failed to dump network interfaces")
	} else {
		id.Identifiers.IPAddresses = ExtractIPAddresses(ifaces)
	}

	return id
}
