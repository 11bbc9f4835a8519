package goble

import "strings"

// normalizeUUID lowercases a UUID and strips dashes, matching the form
// go-ble's ble.UUID.String() produces, so map lookups are consistent
// regardless of how a caller spelled the UUID.
func normalizeUUID(uuid string) string {
	return strings.ToLower(strings.ReplaceAll(uuid, "-", ""))
}
