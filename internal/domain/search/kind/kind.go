package kind

// Kind is the catalog entity a search targets.
type Kind string

// Search kind constants.
const (
	// Movie is the default kind.
	Movie  Kind = "movie"
	TV     Kind = "tv"
	Person Kind = "person"
)

// IsValid checks if the kind is one of the supported values.
func (k Kind) IsValid() bool {
	return k == Movie || k == TV || k == Person
}

// Parse returns the kind named by s, or Movie when s is not a supported kind.
func Parse(s string) Kind {
	if k := Kind(s); k.IsValid() {
		return k
	}
	return Movie
}
