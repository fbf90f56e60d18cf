// Package inputval provides pure validation helpers for request input that
// struct-tag validation cannot express cleanly: clock times, object IDs,
// and http(s) URLs. All functions are side-effect free.
package inputval

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// timeRe matches 24h clock times like "9:05" or "23:59".
var timeRe = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)

// IsValidTimeHHMM reports whether s is a valid HH:MM 24-hour clock time.
func IsValidTimeHHMM(s string) bool {
	return timeRe.MatchString(strings.TrimSpace(s))
}

// MinutesOfDay converts a valid "HH:MM" string to minutes since midnight.
// Returns -1 for input that does not match the HH:MM format.
func MinutesOfDay(s string) int {
	s = strings.TrimSpace(s)
	if !timeRe.MatchString(s) {
		return -1
	}
	parts := strings.SplitN(s, ":", 2)
	h, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])
	return h*60 + m
}

// IsValidObjectID reports whether s is a 24-char hex Mongo ObjectID.
func IsValidObjectID(s string) bool {
	_, err := primitive.ObjectIDFromHex(strings.TrimSpace(s))
	return err == nil
}

// IsValidHTTPURL reports whether s parses as an absolute http or https URL.
func IsValidHTTPURL(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != ""
}
