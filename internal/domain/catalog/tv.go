package catalog

// TVShow is a TV series as listed by search.
type TVShow struct {
	ID               int      `json:"id"`
	Name             string   `json:"name"`
	OriginalName     string   `json:"original_name"`
	Overview         string   `json:"overview"`
	FirstAirDate     string   `json:"first_air_date"`
	VoteAverage      float64  `json:"vote_average"`
	VoteCount        int      `json:"vote_count"`
	Popularity       float64  `json:"popularity"`
	PosterPath       string   `json:"poster_path,omitempty"`
	BackdropPath     string   `json:"backdrop_path,omitempty"`
	Adult            bool     `json:"adult"`
	OriginalLanguage string   `json:"original_language"`
	GenreIDs         []int    `json:"genre_ids"`
	OriginCountry    []string `json:"origin_country"`
}

// Year returns the first-air year, or 0 when unknown.
func (t TVShow) Year() int { return ParseYear(t.FirstAirDate) }

// TVDetails is the full series record.
type TVDetails struct {
	TVShow
	LastAirDate         string              `json:"last_air_date,omitempty"`
	CreatedBy           []Creator           `json:"created_by,omitempty"`
	EpisodeRunTime      []int               `json:"episode_run_time,omitempty"`
	Genres              []Genre             `json:"genres,omitempty"`
	Homepage            string              `json:"homepage,omitempty"`
	InProduction        bool                `json:"in_production"`
	Languages           []string            `json:"languages,omitempty"`
	NumberOfEpisodes    int                 `json:"number_of_episodes,omitempty"`
	NumberOfSeasons     int                 `json:"number_of_seasons,omitempty"`
	ProductionCompanies []ProductionCompany `json:"production_companies,omitempty"`
	ProductionCountries []ProductionCountry `json:"production_countries,omitempty"`
	Seasons             []Season            `json:"seasons,omitempty"`
	SpokenLanguages     []SpokenLanguage    `json:"spoken_languages,omitempty"`
	Status              string              `json:"status,omitempty"`
	Tagline             string              `json:"tagline,omitempty"`
	Type                string              `json:"type,omitempty"`
}

// Creator is a series creator.
type Creator struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	OriginalName string `json:"original_name"`
	ProfilePath  string `json:"profile_path,omitempty"`
	CreditID     string `json:"credit_id"`
	Gender       int    `json:"gender"`
}

// Season is one season of a series.
type Season struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	Overview     string  `json:"overview"`
	AirDate      string  `json:"air_date"`
	EpisodeCount int     `json:"episode_count"`
	PosterPath   string  `json:"poster_path,omitempty"`
	SeasonNumber int     `json:"season_number"`
	VoteAverage  float64 `json:"vote_average"`
}
