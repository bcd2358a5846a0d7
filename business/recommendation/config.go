package recommendation

type Config struct {
	// number of most similar users whose views feed collaborative filtering
	SimilarUsers int

	// maximum number of products in a recommendation
	TopN int

	// minimum number of product documents a term must appear in to enter the
	// TF-IDF vocabulary
	MinDocumentFrequency int
}

const (
	defaultSimilarUsers         = 3
	defaultTopN                 = 5
	defaultMinDocumentFrequency = 2
)

func DefaultConfig() Config {
	return Config{
		SimilarUsers:         defaultSimilarUsers,
		TopN:                 defaultTopN,
		MinDocumentFrequency: defaultMinDocumentFrequency,
	}
}

// withDefaults replaces non-positive fields with their defaults.
func (c Config) withDefaults() Config {
	if c.SimilarUsers <= 0 {
		c.SimilarUsers = defaultSimilarUsers
	}
	if c.TopN <= 0 {
		c.TopN = defaultTopN
	}
	if c.MinDocumentFrequency <= 0 {
		c.MinDocumentFrequency = defaultMinDocumentFrequency
	}
	return c
}
