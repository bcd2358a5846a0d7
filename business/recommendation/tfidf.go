package recommendation

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// tokens are runs of two or more letters, digits or underscores
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

var englishStopWords = makeStopWords(`
a about above across after afterwards again against all almost alone along
already also although always am among amongst amoungst amount an and another
any anyhow anyone anything anyway anywhere are around as at back be became
because become becomes becoming been before beforehand behind being below
beside besides between beyond bill both bottom but by call can cannot cant co
con could couldnt cry de describe detail do done down due during each eg eight
either eleven else elsewhere empty enough etc even ever every everyone
everything everywhere except few fifteen fifty fill find fire first five for
former formerly forty found four from front full further get give go had has
hasnt have he hence her here hereafter hereby herein hereupon hers herself him
himself his how however hundred i ie if in inc indeed interest into is it its
itself keep last latter latterly least less ltd made many may me meanwhile
might mill mine more moreover most mostly move much must my myself name namely
neither never nevertheless next nine no nobody none noone nor not nothing now
nowhere of off often on once one only onto or other others otherwise our ours
ourselves out over own part per perhaps please put rather re same see seem
seemed seeming seems serious several she should show side since sincere six
sixty so some somehow someone something sometime sometimes somewhere still
such system take ten than that the their them themselves then thence there
thereafter thereby therefore therein thereupon these they thick thin third this
those though three through throughout thru thus to together too top toward
towards twelve twenty two un under until up upon us very via was we well were
what whatever when whence whenever where whereafter whereas whereby wherein
whereupon wherever whether which while whither who whoever whole whom whose
why will with within without would yet you your yours yourself yourselves
`)

func makeStopWords(list string) map[string]struct{} {
	words := strings.Fields(list)
	out := make(map[string]struct{}, len(words))
	for _, w := range words {
		out[w] = struct{}{}
	}
	return out
}

func tokenize(text string) []string {
	raw := tokenPattern.FindAllString(strings.ToLower(text), -1)

	out := raw[:0]
	for _, tok := range raw {
		if _, stop := englishStopWords[tok]; stop {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// tfidfVectors turns documents into L2-normalised TF-IDF vectors.
//
// Terms found in fewer than minDF documents are dropped from the vocabulary.
// Weights are raw term count times the smoothed idf ln((1+n)/(1+df)) + 1.
// The second return value is the vocabulary size; 0 means no term survived
// the frequency filter. A document with no vocabulary term gets an empty
// vector.
func tfidfVectors(docs []string, minDF int) ([]map[int]float64, int) {
	counts := make([]map[string]int, len(docs))
	df := make(map[string]int)

	for i, doc := range docs {
		counts[i] = make(map[string]int)
		for _, tok := range tokenize(doc) {
			counts[i][tok]++
		}
		for term := range counts[i] {
			df[term]++
		}
	}

	terms := make([]string, 0, len(df))
	for term, n := range df {
		if n >= minDF {
			terms = append(terms, term)
		}
	}
	if len(terms) == 0 {
		return nil, 0
	}
	sort.Strings(terms)

	vocab := make(map[string]int, len(terms))
	idf := make([]float64, len(terms))
	n := float64(len(docs))
	for i, term := range terms {
		vocab[term] = i
		idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	vectors := make([]map[int]float64, len(docs))
	for i, tc := range counts {
		vec := make(map[int]float64)
		sumSq := 0.0
		for term, c := range tc {
			idx, ok := vocab[term]
			if !ok {
				continue
			}
			w := float64(c) * idf[idx]
			vec[idx] = w
			sumSq += w * w
		}

		if sumSq > 0 {
			l2 := math.Sqrt(sumSq)
			for idx := range vec {
				vec[idx] /= l2
			}
		}
		vectors[i] = vec
	}

	return vectors, len(terms)
}
