package mcp

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/kailas-cloud/cinefind/internal/domain/catalog"
)

const (
	listLimit    = 10
	imageLimit   = 5
	posterBase   = "https://image.tmdb.org/t/p/w500"
	backdropBase = "https://image.tmdb.org/t/p/w1280"
	tmdbSite     = "https://www.themoviedb.org"
	imdbSite     = "https://www.imdb.com"
	youtubeURL   = "https://www.youtube.com/watch?v="

	noInfo      = "정보 없음"
	unknownYear = "연도 미상"
)

var money = message.NewPrinter(language.English)

func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// yearOf returns the year part of a catalog date as written.
func yearOf(date string) string {
	if date == "" {
		return unknownYear
	}
	y, _, _ := strings.Cut(date, "-")
	return y
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func dollars(v int64) string {
	if v <= 0 {
		return noInfo
	}
	return money.Sprintf("$%d", v)
}

func joinNames[T any](items []T, name func(T) string) string {
	names := make([]string, 0, len(items))
	for _, it := range items {
		names = append(names, name(it))
	}
	return orDefault(strings.Join(names, ", "), noInfo)
}

func headOf[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}

// movieEntries renders the detailed search listing.
func movieEntries(movies []catalog.Movie) string {
	var b strings.Builder
	for i, m := range movies {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%d. %s (%s)\n   평점: %s/10 (%d명 평가)\n   개요: %s\n   TMDB ID: %d\n",
			i+1, m.Title, yearOf(m.ReleaseDate), num(m.VoteAverage), m.VoteCount,
			orDefault(m.Overview, "개요 없음"), m.ID)
	}
	return b.String()
}

// shortMovieList renders a compact listing of at most listLimit movies, or empty when none.
func shortMovieList(movies []catalog.Movie) string {
	lines := make([]string, 0, listLimit)
	for i, m := range headOf(movies, listLimit) {
		lines = append(lines, fmt.Sprintf("%d. %s (%s)\n   평점: %s/10",
			i+1, m.Title, yearOf(m.ReleaseDate), num(m.VoteAverage)))
	}
	return strings.Join(lines, "\n")
}

func section(title, body, empty string) string {
	return "## " + title + "\n" + orDefault(body, empty)
}

func personEntries(people []catalog.Person) string {
	lines := make([]string, 0, len(people))
	for i, p := range people {
		lines = append(lines, fmt.Sprintf("%d. %s\n   전문분야: %s\n   인기도: %s\n   TMDB ID: %d",
			i+1, p.Name, p.KnownForDepartment, num(p.Popularity), p.ID))
	}
	return strings.Join(lines, "\n")
}

func showEntries(shows []catalog.TVShow) string {
	lines := make([]string, 0, len(shows))
	for i, t := range shows {
		lines = append(lines, fmt.Sprintf("%d. %s (%s)\n   평점: %s/10 (%d명 평가)\n   개요: %s\n   TMDB ID: %d",
			i+1, t.Name, yearOf(t.FirstAirDate), num(t.VoteAverage), t.VoteCount,
			orDefault(t.Overview, "개요 없음"), t.ID))
	}
	return strings.Join(lines, "\n")
}

func runtimeOf(minutes int) string {
	if minutes <= 0 {
		return noInfo
	}
	return fmt.Sprintf("%d분", minutes)
}

func imdbLink(kind, id string) string {
	if id == "" {
		return noInfo
	}
	return fmt.Sprintf("%s/%s/%s", imdbSite, kind, id)
}

func movieDetails(m catalog.MovieDetails) string {
	genre := func(g catalog.Genre) string { return g.Name }
	company := func(c catalog.ProductionCompany) string { return c.Name }

	return fmt.Sprintf(`# %s

## 기본 정보
- 원제: %s
- 개봉일: %s
- 상영시간: %s
- 장르: %s
- 평점: %s/10 (%d명 평가)
- 제작비: %s
- 박스오피스: %s

## 줄거리
%s

## 제작사
%s

## 링크
- TMDB: %s/movie/%d
- IMDb: %s`,
		m.Title, m.OriginalTitle, orDefault(m.ReleaseDate, noInfo), runtimeOf(m.Runtime),
		joinNames(m.Genres, genre), num(m.VoteAverage), m.VoteCount,
		dollars(m.Budget), dollars(m.Revenue),
		orDefault(m.Overview, "줄거리 정보 없음"),
		joinNames(m.ProductionCompanies, company),
		tmdbSite, m.ID, imdbLink("title", m.IMDbID))
}

// movieResource is the plain record served for movie:// URIs.
func movieResource(m catalog.MovieDetails) string {
	genre := func(g catalog.Genre) string { return g.Name }
	company := func(c catalog.ProductionCompany) string { return c.Name }

	return fmt.Sprintf(`제목: %s
원제: %s
개봉일: %s
상영시간: %s
장르: %s
평점: %s/10 (%d명 평가)
줄거리: %s
제작비: %s
박스오피스: %s
제작사: %s
TMDB 링크: %s/movie/%d`,
		m.Title, m.OriginalTitle, orDefault(m.ReleaseDate, noInfo), runtimeOf(m.Runtime),
		joinNames(m.Genres, genre), num(m.VoteAverage), m.VoteCount,
		orDefault(m.Overview, noInfo), dollars(m.Budget), dollars(m.Revenue),
		joinNames(m.ProductionCompanies, company), tmdbSite, m.ID)
}

var keyCrewJobs = map[string]bool{"Director": true, "Producer": true, "Writer": true}

func movieCredits(c catalog.Credits) string {
	cast := make([]string, 0, listLimit)
	for i, a := range headOf(c.Cast, listLimit) {
		cast = append(cast, fmt.Sprintf("%d. %s - %s", i+1, a.Name, a.Character))
	}

	crew := make([]string, 0, listLimit)
	for _, m := range c.Crew {
		if len(crew) == listLimit {
			break
		}
		if keyCrewJobs[m.Job] {
			crew = append(crew, fmt.Sprintf("%s - %s", m.Name, m.Job))
		}
	}

	return section("주요 출연진", strings.Join(cast, "\n"), "출연진 정보 없음") + "\n\n" +
		section("주요 제작진", strings.Join(crew, "\n"), "제작진 정보 없음")
}

func imageLinks(images []catalog.Image, base string) string {
	lines := make([]string, 0, imageLimit)
	for i, img := range headOf(images, imageLimit) {
		lines = append(lines, fmt.Sprintf("%d. %s%s", i+1, base, img.FilePath))
	}
	return strings.Join(lines, "\n")
}

func movieImages(im catalog.Images) string {
	return section("포스터", imageLinks(im.Posters, posterBase), "포스터 이미지 없음") + "\n\n" +
		section("백드롭", imageLinks(im.Backdrops, backdropBase), "백드롭 이미지 없음")
}

func videoLink(v catalog.Video) string {
	if v.Site == "YouTube" {
		return youtubeURL + v.Key
	}
	return v.Key
}

func movieVideos(v catalog.Videos) string {
	lines := make([]string, 0, listLimit)
	for i, video := range headOf(v.Results, listLimit) {
		lines = append(lines, fmt.Sprintf("%d. %s (%s)\n   - 사이트: %s\n   - 링크: %s",
			i+1, video.Name, video.Type, video.Site, videoLink(video)))
	}
	return section("비디오", strings.Join(lines, "\n"), "비디오 정보 없음")
}

func personDetails(p catalog.PersonDetails) string {
	return fmt.Sprintf(`# %s

## 기본 정보
- 본명: %s
- 생년월일: %s
- 출생지: %s
- 전문분야: %s
- 인기도: %s

## 약력
%s

## 링크
- TMDB: %s/person/%d
- IMDb: %s`,
		p.Name, orDefault(p.OriginalName, p.Name), orDefault(p.Birthday, noInfo),
		orDefault(p.PlaceOfBirth, noInfo), p.KnownForDepartment, num(p.Popularity),
		orDefault(p.Biography, "약력 정보 없음"),
		tmdbSite, p.ID, imdbLink("name", p.IMDbID))
}

func creditLines(credits []catalog.MovieCredit, role func(catalog.MovieCredit) string) string {
	lines := make([]string, 0, listLimit)
	for i, c := range headOf(credits, listLimit) {
		lines = append(lines, fmt.Sprintf("%d. %s (%s) - %s", i+1, c.Title, yearOf(c.ReleaseDate), role(c)))
	}
	return strings.Join(lines, "\n")
}

func personCredits(c catalog.PersonCredits) string {
	character := func(m catalog.MovieCredit) string { return m.Character }
	job := func(m catalog.MovieCredit) string { return m.Job }

	return section("출연작", creditLines(c.Cast, character), "출연작 정보 없음") + "\n\n" +
		section("참여작", creditLines(c.Crew, job), "참여작 정보 없음")
}

func tvDetails(t catalog.TVDetails) string {
	count := func(n int) string {
		if n <= 0 {
			return noInfo
		}
		return strconv.Itoa(n)
	}

	return fmt.Sprintf(`# %s

## 기본 정보
- 원제: %s
- 첫 방영일: %s
- 마지막 방영일: %s
- 시즌 수: %s
- 에피소드 수: %s
- 평점: %s/10 (%d명 평가)
- 상태: %s

## 줄거리
%s

## 링크
- TMDB: %s/tv/%d`,
		t.Name, t.OriginalName, orDefault(t.FirstAirDate, noInfo), orDefault(t.LastAirDate, "방영 중"),
		count(t.NumberOfSeasons), count(t.NumberOfEpisodes),
		num(t.VoteAverage), t.VoteCount, orDefault(t.Status, noInfo),
		orDefault(t.Overview, "줄거리 정보 없음"),
		tmdbSite, t.ID)
}
