package recommendation

import "sort"

type neighbour struct {
	userID     uint
	row        int
	similarity float64
}

// similarUsers ranks every other user by cosine similarity to the target's
// row and keeps the k best. Ties keep matrix row order. Users with no overlap
// (similarity 0) are not neighbours. A target with an all-zero row has no
// defined similarity and gets no neighbours.
func similarUsers(m *UserItemMatrix, userID uint, k int) []neighbour {
	target, ok := m.Row(userID)
	if !ok || norm(target) == 0 {
		return nil
	}

	out := make([]neighbour, 0, len(m.Users))
	for i, uid := range m.Users {
		if uid == userID {
			continue
		}

		sim, ok := cosineSimilarity(target, m.cells[i])
		if !ok || sim <= 0 {
			continue
		}

		out = append(out, neighbour{userID: uid, row: i, similarity: sim})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].similarity > out[j].similarity
	})

	if len(out) > k {
		out = out[:k]
	}
	return out
}

// userBasedCF recommends products viewed by the user's nearest neighbours
// that the user has not viewed. Candidates are emitted in order of first
// encounter: most similar neighbour first, then ascending product id within a
// neighbour. At most n ids are returned.
func userBasedCF(m *UserItemMatrix, userID uint, k, n int) []uint64 {
	if m.Empty() || !m.HasUser(userID) || n <= 0 {
		return nil
	}

	neighbours := similarUsers(m, userID, k)
	if len(neighbours) == 0 {
		return nil
	}

	target, _ := m.Row(userID)
	seen := make(map[uint64]struct{})
	out := make([]uint64, 0, n)

	for _, nb := range neighbours {
		for j, v := range m.cells[nb.row] {
			if v != 1 || target[j] == 1 {
				continue
			}

			pid := m.Products[j]
			if _, dup := seen[pid]; dup {
				continue
			}
			seen[pid] = struct{}{}

			out = append(out, pid)
			if len(out) == n {
				return out
			}
		}
	}

	return out
}
