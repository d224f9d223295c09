package vocab

// seasonTerms maps a season label to the literal terms that evoke it.
var seasonTerms = map[string][]string{
	"봄":  {"spring", "벚꽃", "cherry blossom", "새싹", "bloom"},
	"여름": {"summer", "바다", "beach", "vacation", "hot"},
	"가을": {"autumn", "fall", "단풍", "maple", "harvest", "낙엽"},
	"겨울": {"winter", "눈", "snow", "cold", "christmas", "스키"},
}

// settingTerms maps a setting label to the literal terms that evoke it.
var settingTerms = map[string][]string{
	"자연": {"nature", "forest", "mountain", "river", "outdoor"},
	"도시": {"city", "urban", "building", "street", "downtown"},
	"시골": {"rural", "countryside", "village", "farm", "field"},
	"학교": {"school", "student", "teacher", "classroom", "campus"},
	"직장": {"office", "work", "company", "business", "corporate"},
}

// animationSynonyms are the title probes used when the genre is Animation.
var animationSynonyms = []string{"animation", "animated", "cartoon", "anime"}

// domesticProbes are the title probes used for domestic-country queries.
var domesticProbes = []string{"korean movie", "한국영화", "korea film"}

// SeasonTerms returns the terms for a season. An unknown season maps to itself.
func SeasonTerms(season string) []string {
	if t, ok := seasonTerms[season]; ok {
		return clone(t)
	}
	return []string{season}
}

// SettingTerms returns the terms for a setting. An unknown setting maps to itself.
func SettingTerms(setting string) []string {
	if t, ok := settingTerms[setting]; ok {
		return clone(t)
	}
	return []string{setting}
}

// AnimationSynonyms returns the animation title probes.
func AnimationSynonyms() []string { return clone(animationSynonyms) }

// DomesticProbes returns the domestic-country title probes.
func DomesticProbes() []string { return clone(domesticProbes) }

// Seasons lists the known season labels.
func Seasons() []string { return []string{"봄", "여름", "가을", "겨울"} }

// Settings lists the known setting labels.
func Settings() []string { return []string{"자연", "도시", "시골", "학교", "직장"} }

func clone(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}
