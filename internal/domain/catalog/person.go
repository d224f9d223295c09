package catalog

// Person is a cast or crew member as listed by search.
type Person struct {
	ID                 int     `json:"id"`
	Name               string  `json:"name"`
	OriginalName       string  `json:"original_name"`
	Popularity         float64 `json:"popularity"`
	ProfilePath        string  `json:"profile_path,omitempty"`
	Adult              bool    `json:"adult"`
	KnownForDepartment string  `json:"known_for_department"`
	Gender             int     `json:"gender"` // 0 unknown, 1 female, 2 male, 3 other
}

// PersonDetails is the full person record.
type PersonDetails struct {
	Person
	AlsoKnownAs  []string `json:"also_known_as,omitempty"`
	Biography    string   `json:"biography,omitempty"`
	Birthday     string   `json:"birthday,omitempty"`
	Deathday     string   `json:"deathday,omitempty"`
	PlaceOfBirth string   `json:"place_of_birth,omitempty"`
	Homepage     string   `json:"homepage,omitempty"`
	IMDbID       string   `json:"imdb_id,omitempty"`
}

// MovieCredit is one movie in a person's filmography.
type MovieCredit struct {
	Movie
	Character  string `json:"character,omitempty"`
	Job        string `json:"job,omitempty"`
	Department string `json:"department,omitempty"`
	CreditID   string `json:"credit_id"`
	Order      int    `json:"order,omitempty"`
}

// PersonCredits is a person's movie filmography.
type PersonCredits struct {
	ID   int           `json:"id"`
	Cast []MovieCredit `json:"cast"`
	Crew []MovieCredit `json:"crew"`
}
