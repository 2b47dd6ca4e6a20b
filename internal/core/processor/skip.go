package processor

import "regexp"

var (
	skipDateRe  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}(T\d{2}:\d{2}:\d{2}(\.\d{3})?Z?)?$`)
	skipURLRe   = regexp.MustCompile(`^(https?://|www\.)\S+$`)
	skipEmailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	skipUUIDRe  = regexp.MustCompile(`(?i)^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)
	skipDigitRe = regexp.MustCompile(`^\d+$`)
	skipCodeRe  = regexp.MustCompile(`(?s)^[{\[<].*[}\]>]$`)
)

// shouldSkipTranslation reports whether a string value is machine data
// (dates, URLs, emails, ids, code) that must pass through untranslated.
func shouldSkipTranslation(value string) bool {
	return skipDateRe.MatchString(value) ||
		skipURLRe.MatchString(value) ||
		skipEmailRe.MatchString(value) ||
		skipUUIDRe.MatchString(value) ||
		skipDigitRe.MatchString(value) ||
		skipCodeRe.MatchString(value)
}
