package catalog

// Cast is a credited actor.
type Cast struct {
	ID                 int     `json:"id"`
	Name               string  `json:"name"`
	OriginalName       string  `json:"original_name"`
	Popularity         float64 `json:"popularity"`
	ProfilePath        string  `json:"profile_path,omitempty"`
	CastID             int     `json:"cast_id"`
	Character          string  `json:"character"`
	CreditID           string  `json:"credit_id"`
	Order              int     `json:"order"`
	Gender             int     `json:"gender"`
	KnownForDepartment string  `json:"known_for_department"`
}

// Crew is a credited crew member.
type Crew struct {
	ID                 int     `json:"id"`
	Name               string  `json:"name"`
	OriginalName       string  `json:"original_name"`
	Popularity         float64 `json:"popularity"`
	ProfilePath        string  `json:"profile_path,omitempty"`
	CreditID           string  `json:"credit_id"`
	Department         string  `json:"department"`
	Job                string  `json:"job"`
	Gender             int     `json:"gender"`
	KnownForDepartment string  `json:"known_for_department"`
}

// Credits is the cast and crew of a movie.
type Credits struct {
	ID   int    `json:"id"`
	Cast []Cast `json:"cast"`
	Crew []Crew `json:"crew"`
}

// Directors returns the crew entries with job "Director".
func (c Credits) Directors() []Crew {
	var out []Crew
	for _, m := range c.Crew {
		if m.Job == "Director" {
			out = append(out, m)
		}
	}
	return out
}

// Image is one poster, backdrop or logo.
type Image struct {
	AspectRatio float64 `json:"aspect_ratio"`
	Height      int     `json:"height"`
	Width       int     `json:"width"`
	ISO639      string  `json:"iso_639_1,omitempty"`
	FilePath    string  `json:"file_path"`
	VoteAverage float64 `json:"vote_average"`
	VoteCount   int     `json:"vote_count"`
}

// Images groups the artwork of a movie.
type Images struct {
	ID        int     `json:"id"`
	Backdrops []Image `json:"backdrops"`
	Logos     []Image `json:"logos"`
	Posters   []Image `json:"posters"`
}

// Video is a trailer, teaser or clip hosted on a video site.
type Video struct {
	ID          string `json:"id"`
	ISO639      string `json:"iso_639_1"`
	ISO3166     string `json:"iso_3166_1"`
	Key         string `json:"key"`
	Name        string `json:"name"`
	Official    bool   `json:"official"`
	PublishedAt string `json:"published_at"`
	Site        string `json:"site"`
	Size        int    `json:"size"`
	Type        string `json:"type"`
}

// Videos lists the videos of a movie.
type Videos struct {
	ID      int     `json:"id"`
	Results []Video `json:"results"`
}

// MovieBundle is a movie with its credits, artwork and videos.
type MovieBundle struct {
	Details MovieDetails `json:"details"`
	Credits Credits      `json:"credits"`
	Images  Images       `json:"images"`
	Videos  Videos       `json:"videos"`
}
