package probe

import "strings"

// MaintenanceKeywords are matched against the lower-cased response body.
// The two French phrases are already covered by "maintenance"; they stay in
// the list so the matched keyword reported in logs keeps its historical value.
var MaintenanceKeywords = []string{
	"site en maintenance",
	"en cours de maintenance",
	"maintenance",
	"temporarily unavailable",
	"under construction",
}

// DetectMaintenance returns the first keyword found in body, case-insensitively.
func DetectMaintenance(body string) (string, bool) {
	content := strings.ToLower(body)
	for _, kw := range MaintenanceKeywords {
		if strings.Contains(content, kw) {
			return kw, true
		}
	}
	return "", false
}
