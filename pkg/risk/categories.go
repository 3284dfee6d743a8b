/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: categories.go
Description: Static permission category table and the permission categorizer.
Partitions a collection of Android permission identifiers into privacy-critical
permissions, named categories, and an uncategorized remainder. Matching is
first-match-wins over a fixed, non-overlapping category order.
*/

package risk

// permissionCategory is one named, ordered category of the static table.
type permissionCategory struct {
	name    string
	members map[string]bool
}

// permissionCategories is the fixed category table. Order matters: the first
// category containing a permission claims it.
var permissionCategories = []permissionCategory{
	{"location", set(
		"android.permission.ACCESS_FINE_LOCATION",
		"android.permission.ACCESS_COARSE_LOCATION",
		"android.permission.ACCESS_BACKGROUND_LOCATION",
	)},
	{"camera", set(
		"android.permission.CAMERA",
	)},
	{"microphone", set(
		"android.permission.RECORD_AUDIO",
	)},
	{"contacts", set(
		"android.permission.READ_CONTACTS",
		"android.permission.WRITE_CONTACTS",
		"android.permission.GET_ACCOUNTS",
	)},
	{"storage", set(
		"android.permission.READ_EXTERNAL_STORAGE",
		"android.permission.WRITE_EXTERNAL_STORAGE",
		"android.permission.MANAGE_EXTERNAL_STORAGE",
		"android.permission.ACCESS_MEDIA_LOCATION",
	)},
	{"phone", set(
		"android.permission.READ_PHONE_STATE",
		"android.permission.CALL_PHONE",
		"android.permission.READ_CALL_LOG",
		"android.permission.WRITE_CALL_LOG",
		"android.permission.ADD_VOICEMAIL",
		"android.permission.USE_SIP",
		"android.permission.PROCESS_OUTGOING_CALLS",
	)},
	{"sms", set(
		"android.permission.SEND_SMS",
		"android.permission.RECEIVE_SMS",
		"android.permission.READ_SMS",
		"android.permission.RECEIVE_WAP_PUSH",
		"android.permission.RECEIVE_MMS",
	)},
	{"calendar", set(
		"android.permission.READ_CALENDAR",
		"android.permission.WRITE_CALENDAR",
	)},
	{"sensors", set(
		"android.permission.BODY_SENSORS",
		"android.permission.USE_FINGERPRINT",
		"android.permission.USE_BIOMETRIC",
	)},
	{"activity_recognition", set(
		"android.permission.ACTIVITY_RECOGNITION",
	)},
}

func set(perms ...string) map[string]bool {
	m := make(map[string]bool, len(perms))
	for _, p := range perms {
		m[p] = true
	}
	return m
}

// CategorizedPermissions is the result of partitioning a permission set.
// Categories holds only non-empty categories. PrivacyCritical is every input
// permission that belongs to any category.
type CategorizedPermissions struct {
	PrivacyCritical []string            `json:"privacy_critical"`
	Categories      map[string][]string `json:"categories"`
	Other           []string            `json:"other"`
}

// Categorize partitions permission identifiers against the category table.
// Every input permission lands in exactly one of Categories or Other, so the
// union of all category lists plus Other reproduces the input.
func Categorize(permissions []string) *CategorizedPermissions {
	result := &CategorizedPermissions{
		PrivacyCritical: []string{},
		Categories:      make(map[string][]string),
		Other:           []string{},
	}

	for _, perm := range permissions {
		categorized := false
		for _, category := range permissionCategories {
			if category.members[perm] {
				result.Categories[category.name] = append(result.Categories[category.name], perm)
				result.PrivacyCritical = append(result.PrivacyCritical, perm)
				categorized = true
				break
			}
		}
		if !categorized {
			result.Other = append(result.Other, perm)
		}
	}

	return result
}
