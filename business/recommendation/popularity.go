package recommendation

import (
	"sort"

	"ecommerceRecommender/domain"
)

// popularProducts ranks products by number of view rows across all users.
// Equal counts keep the order in which products first appear.
func popularProducts(interactions []domain.UserInteraction, n int) []uint64 {
	if len(interactions) == 0 || n <= 0 {
		return nil
	}

	counts := make(map[uint64]int)
	order := make([]uint64, 0)
	for _, in := range interactions {
		if in.ProductID == 0 {
			continue
		}
		if _, ok := counts[in.ProductID]; !ok {
			order = append(order, in.ProductID)
		}
		counts[in.ProductID]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > n {
		order = order[:n]
	}
	return order
}
