// Package vocab holds the fixed vocabularies used to interpret and filter queries.
package vocab

import "strings"

// Genre is a catalog genre with its English and Korean labels.
type Genre struct {
	ID     int
	Name   string
	NameKo string
}

// MovieGenres is the catalog's movie genre table.
var MovieGenres = []Genre{
	{ID: 28, Name: "Action", NameKo: "액션"},
	{ID: 12, Name: "Adventure", NameKo: "모험"},
	{ID: 16, Name: "Animation", NameKo: "애니메이션"},
	{ID: 35, Name: "Comedy", NameKo: "코미디"},
	{ID: 80, Name: "Crime", NameKo: "범죄"},
	{ID: 99, Name: "Documentary", NameKo: "다큐멘터리"},
	{ID: 18, Name: "Drama", NameKo: "드라마"},
	{ID: 10751, Name: "Family", NameKo: "가족"},
	{ID: 14, Name: "Fantasy", NameKo: "판타지"},
	{ID: 36, Name: "History", NameKo: "역사"},
	{ID: 27, Name: "Horror", NameKo: "공포"},
	{ID: 10402, Name: "Music", NameKo: "음악"},
	{ID: 9648, Name: "Mystery", NameKo: "미스터리"},
	{ID: 10749, Name: "Romance", NameKo: "로맨스"},
	{ID: 878, Name: "Science Fiction", NameKo: "SF"},
	{ID: 10770, Name: "TV Movie", NameKo: "TV 영화"},
	{ID: 53, Name: "Thriller", NameKo: "스릴러"},
	{ID: 10752, Name: "War", NameKo: "전쟁"},
	{ID: 37, Name: "Western", NameKo: "서부"},
}

// TVGenres is the catalog's TV genre table. Ids overlap with MovieGenres.
var TVGenres = []Genre{
	{ID: 10759, Name: "Action & Adventure", NameKo: "액션 & 모험"},
	{ID: 16, Name: "Animation", NameKo: "애니메이션"},
	{ID: 35, Name: "Comedy", NameKo: "코미디"},
	{ID: 80, Name: "Crime", NameKo: "범죄"},
	{ID: 99, Name: "Documentary", NameKo: "다큐멘터리"},
	{ID: 18, Name: "Drama", NameKo: "드라마"},
	{ID: 10751, Name: "Family", NameKo: "가족"},
	{ID: 10762, Name: "Kids", NameKo: "어린이"},
	{ID: 9648, Name: "Mystery", NameKo: "미스터리"},
	{ID: 10763, Name: "News", NameKo: "뉴스"},
	{ID: 10764, Name: "Reality", NameKo: "리얼리티"},
	{ID: 10765, Name: "Sci-Fi & Fantasy", NameKo: "SF & 판타지"},
	{ID: 10766, Name: "Soap", NameKo: "연속극"},
	{ID: 10767, Name: "Talk", NameKo: "토크쇼"},
	{ID: 10768, Name: "War & Politics", NameKo: "전쟁 & 정치"},
	{ID: 37, Name: "Western", NameKo: "서부"},
}

// searchGenreIDs is the label→id table the search filters use.
// It is the movie table without "TV Movie", which the interpreter is never offered.
var searchGenreIDs = map[string]int{
	"Action":          28,
	"Adventure":       12,
	"Animation":       16,
	"Comedy":          35,
	"Crime":           80,
	"Documentary":     99,
	"Drama":           18,
	"Family":          10751,
	"Fantasy":         14,
	"History":         36,
	"Horror":          27,
	"Music":           10402,
	"Mystery":         9648,
	"Romance":         10749,
	"Science Fiction": 878,
	"Thriller":        53,
	"War":             10752,
	"Western":         37,
}

// GenreID maps a canonical English genre label to its catalog id. Unknown labels map to 0.
func GenreID(label string) int {
	return searchGenreIDs[label]
}

// CanonicalGenre resolves an English (case-insensitive) or Korean genre label
// to the canonical English label. ok is false for labels outside the vocabulary.
func CanonicalGenre(label string) (string, bool) {
	label = strings.TrimSpace(label)
	if label == "" {
		return "", false
	}
	if _, ok := searchGenreIDs[label]; ok {
		return label, true
	}
	for _, g := range MovieGenres {
		if _, searchable := searchGenreIDs[g.Name]; !searchable {
			continue
		}
		if strings.EqualFold(g.Name, label) || g.NameKo == label {
			return g.Name, true
		}
	}
	return "", false
}

// GenreName returns the display name for a genre id, preferring the Korean label.
// Movie genres take precedence over TV genres for shared ids.
func GenreName(id int) (string, bool) {
	for _, g := range MovieGenres {
		if g.ID == id {
			return g.NameKo, true
		}
	}
	for _, g := range TVGenres {
		if g.ID == id {
			return g.NameKo, true
		}
	}
	return "", false
}
