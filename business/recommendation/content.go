package recommendation

import (
	"sort"

	"ecommerceRecommender/domain"
)

// ContentSimilarity is a symmetric product x product cosine similarity matrix
// over TF-IDF vectors of product text. Rows and columns follow ProductIDs.
type ContentSimilarity struct {
	ProductIDs []uint64

	scores [][]float64
	index  map[uint64]int
}

func (s *ContentSimilarity) Empty() bool {
	return s == nil || len(s.ProductIDs) == 0
}

func (s *ContentSimilarity) contains(productID uint64) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[productID]
	return ok
}

// similarity returns sim(a, b); ok is false if either product is absent.
func (s *ContentSimilarity) similarity(a, b uint64) (float64, bool) {
	if s == nil {
		return 0, false
	}
	i, ok := s.index[a]
	if !ok {
		return 0, false
	}
	j, ok := s.index[b]
	if !ok {
		return 0, false
	}
	return s.scores[i][j], true
}

func productFeatures(p domain.Product) string {
	return p.DescriptionText() + " " + p.CategoryText()
}

// BuildContentSimilarity vectorizes each product's description and category
// and computes pairwise cosine similarity. Products whose text has no term in
// the vocabulary are left out. Fewer than two products, or a vocabulary that
// the document-frequency filter empties, yield an empty matrix.
func BuildContentSimilarity(products []domain.Product, minDF int) *ContentSimilarity {
	empty := &ContentSimilarity{index: map[uint64]int{}}
	if len(products) < 2 {
		return empty
	}

	docs := make([]string, len(products))
	for i, p := range products {
		docs[i] = productFeatures(p)
	}

	vectors, vocabSize := tfidfVectors(docs, minDF)
	if vocabSize == 0 {
		return empty
	}

	ids := make([]uint64, 0, len(products))
	kept := make([]map[int]float64, 0, len(products))
	index := make(map[uint64]int, len(products))
	for i, p := range products {
		if len(vectors[i]) == 0 {
			continue
		}
		if _, dup := index[p.ID]; dup {
			continue
		}
		index[p.ID] = len(ids)
		ids = append(ids, p.ID)
		kept = append(kept, vectors[i])
	}

	if len(ids) == 0 {
		return empty
	}

	scores := make([][]float64, len(ids))
	for i := range scores {
		scores[i] = make([]float64, len(ids))
		scores[i][i] = 1.0
	}
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			sim := clamp01(sparseDot(kept[i], kept[j]))
			scores[i][j] = sim
			scores[j][i] = sim
		}
	}

	return &ContentSimilarity{
		ProductIDs: ids,
		scores:     scores,
		index:      index,
	}
}

// contentBased scores every product in the similarity matrix by its mean
// similarity to the products the user viewed, drops the viewed products and
// returns the n best. Viewed products missing from the matrix contribute
// nothing; if none are present the result is empty. Ties keep matrix order.
func contentBased(sim *ContentSimilarity, viewed []uint64, n int) []uint64 {
	if sim.Empty() || len(viewed) == 0 || n <= 0 {
		return nil
	}

	viewedSet := make(map[uint64]struct{}, len(viewed))
	rows := make([]int, 0, len(viewed))
	for _, pid := range viewed {
		if _, dup := viewedSet[pid]; dup {
			continue
		}
		viewedSet[pid] = struct{}{}
		if idx, ok := sim.index[pid]; ok {
			rows = append(rows, idx)
		}
	}
	if len(rows) == 0 {
		return nil
	}

	type scored struct {
		productID uint64
		score     float64
	}

	candidates := make([]scored, 0, len(sim.ProductIDs))
	for j, pid := range sim.ProductIDs {
		if _, seen := viewedSet[pid]; seen {
			continue
		}

		total := 0.0
		for _, r := range rows {
			total += sim.scores[r][j]
		}
		candidates = append(candidates, scored{productID: pid, score: total / float64(len(rows))})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	if len(candidates) > n {
		candidates = candidates[:n]
	}

	out := make([]uint64, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, c.productID)
	}
	return out
}
