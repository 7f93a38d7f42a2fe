package useragent

import "strings"

// Describe turns a User-Agent header into a short "browser on os" label
// for the session history view. Unknown agents come back as "Unknown".
func Describe(ua string) string {
	if ua == "" {
		return "Unknown"
	}
	lower := strings.ToLower(ua)

	browser := "Unknown browser"
	switch {
	case strings.Contains(lower, "edg/"):
		browser = "Edge"
	case strings.Contains(lower, "opr/") || strings.Contains(lower, "opera"):
		browser = "Opera"
	case strings.Contains(lower, "chrome"):
		browser = "Chrome"
	case strings.Contains(lower, "safari"):
		browser = "Safari"
	case strings.Contains(lower, "firefox"):
		browser = "Firefox"
	case strings.Contains(lower, "curl"):
		browser = "curl"
	}

	os := "unknown OS"
	switch {
	case strings.Contains(lower, "android"):
		os = "Android"
	case strings.Contains(lower, "iphone") || strings.Contains(lower, "ipad"):
		os = "iOS"
	case strings.Contains(lower, "windows"):
		os = "Windows"
	case strings.Contains(lower, "mac os"):
		os = "macOS"
	case strings.Contains(lower, "linux"):
		os = "Linux"
	}

	return browser + " on " + os
}
