package utils

import "strings"

// Slugify converts a listing name into a URL slug: lowercased, runs of
// non-alphanumeric characters collapsed to single hyphens, no leading or
// trailing hyphen.  "The Jazz Cats!" -> "the-jazz-cats".
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
