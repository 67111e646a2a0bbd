package figma

import "regexp"

// The two accepted URL shapes for a design file. The file form is checked
// first and wins when a URL carries both segments.
var (
	fileKeyRe   = regexp.MustCompile(`(?i)/file/([a-zA-Z0-9]+)`)
	designKeyRe = regexp.MustCompile(`(?i)/design/([a-zA-Z0-9]+)`)
)

// ExtractFileKey pulls the stable file key out of a design-file URL. An URL
// matching neither shape yields ok=false; callers treat that as "unresolved",
// not as an error.
func ExtractFileKey(url string) (string, bool) {
	if m := fileKeyRe.FindStringSubmatch(url); m != nil {
		return m[1], true
	}
	if m := designKeyRe.FindStringSubmatch(url); m != nil {
		return m[1], true
	}
	return "", false
}
