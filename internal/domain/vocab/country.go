package vocab

import "strings"

// Domestic country constants.
const (
	// Domestic is the country token that enables country-specific strategies and discovery.
	Domestic = "한국"
	// DomesticCode is the ISO origin-country code used for domestic discovery.
	DomesticCode = "KR"
	// DomesticKeyword is the literal English keyword dropped from scoring after domestic discovery.
	DomesticKeyword = "korean"
)

var domesticAliases = map[string]struct{}{
	"한국":     {},
	"korea":  {},
	"korean": {},
}

var domesticMarkers = []string{"korea", "korean", "한국", "south korea"}

// IsDomestic reports whether country is exactly the domestic token.
func IsDomestic(country string) bool {
	return country == Domestic
}

// IsDomesticAlias reports whether country is any accepted spelling of the domestic country.
func IsDomesticAlias(country string) bool {
	_, ok := domesticAliases[country]
	return ok
}

// LooksDomestic reports whether a title carries a domestic marker: a domestic
// keyword in any field (case-insensitive) or domestic script in either title.
func LooksDomestic(title, originalTitle, overview string) bool {
	t := strings.ToLower(title)
	ot := strings.ToLower(originalTitle)
	ov := strings.ToLower(overview)
	for _, kw := range domesticMarkers {
		if strings.Contains(t, kw) || strings.Contains(ot, kw) || strings.Contains(ov, kw) {
			return true
		}
	}
	return hasHangul(title) || hasHangul(originalTitle)
}

// hasHangul reports whether s contains a Hangul compatibility jamo or syllable.
func hasHangul(s string) bool {
	for _, r := range s {
		if (r >= 'ㄱ' && r <= 'ㅎ') || (r >= 'ㅏ' && r <= 'ㅣ') || (r >= '가' && r <= '힣') {
			return true
		}
	}
	return false
}
