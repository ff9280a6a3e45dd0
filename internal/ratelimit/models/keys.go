package models

import "strings"

// SanitizeKeySegment escapes delimiter characters in rate limit key
// segments so a caller-controlled identifier containing ':' cannot
// collide with an adjacent bucket.
func SanitizeKeySegment(s string) string {
	return strings.ReplaceAll(s, ":", "_")
}

// BucketKey builds the store key for one caller identity in one class.
func BucketKey(class EndpointClass, identity string) string {
	return "ratelimit:" + string(class) + ":" + SanitizeKeySegment(identity)
}
