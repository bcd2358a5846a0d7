package recommendation

import (
	"sort"

	"ecommerceRecommender/domain"
)

// UserItemMatrix is a binary user x product view matrix. Rows follow Users,
// columns follow Products; both are in ascending id order.
type UserItemMatrix struct {
	Users    []uint
	Products []uint64

	cells        [][]float64
	userIndex    map[uint]int
	productIndex map[uint64]int
}

// BuildUserItemMatrix pivots view interactions into a binary matrix. Duplicate
// (user, product) rows collapse to their maximum value before binarizing, so a
// cell is 1 iff the user has a positive view of the product. Rows without a
// user or product id are ignored; no usable rows yields an empty matrix.
func BuildUserItemMatrix(interactions []domain.UserInteraction) *UserItemMatrix {
	type pair struct {
		userID    uint
		productID uint64
	}

	maxValue := make(map[pair]int)
	users := make(map[uint]struct{})
	products := make(map[uint64]struct{})

	for _, in := range interactions {
		if in.UserID == 0 || in.ProductID == 0 {
			continue
		}

		key := pair{userID: in.UserID, productID: in.ProductID}
		if v, ok := maxValue[key]; !ok || in.InteractionValue > v {
			maxValue[key] = in.InteractionValue
		}
		users[in.UserID] = struct{}{}
		products[in.ProductID] = struct{}{}
	}

	m := &UserItemMatrix{
		Users:        make([]uint, 0, len(users)),
		Products:     make([]uint64, 0, len(products)),
		userIndex:    make(map[uint]int, len(users)),
		productIndex: make(map[uint64]int, len(products)),
	}

	for uid := range users {
		m.Users = append(m.Users, uid)
	}
	for pid := range products {
		m.Products = append(m.Products, pid)
	}
	sort.Slice(m.Users, func(i, j int) bool { return m.Users[i] < m.Users[j] })
	sort.Slice(m.Products, func(i, j int) bool { return m.Products[i] < m.Products[j] })

	for i, uid := range m.Users {
		m.userIndex[uid] = i
	}
	for j, pid := range m.Products {
		m.productIndex[pid] = j
	}

	m.cells = make([][]float64, len(m.Users))
	for i := range m.cells {
		m.cells[i] = make([]float64, len(m.Products))
	}

	for key, v := range maxValue {
		if v > 0 {
			m.cells[m.userIndex[key.userID]][m.productIndex[key.productID]] = 1
		}
	}

	return m
}

func (m *UserItemMatrix) Empty() bool {
	return m == nil || len(m.Users) == 0 || len(m.Products) == 0
}

func (m *UserItemMatrix) HasUser(userID uint) bool {
	if m == nil {
		return false
	}
	_, ok := m.userIndex[userID]
	return ok
}

// Row returns the user's interaction vector. The slice is owned by the matrix.
func (m *UserItemMatrix) Row(userID uint) ([]float64, bool) {
	if m == nil {
		return nil, false
	}
	i, ok := m.userIndex[userID]
	if !ok {
		return nil, false
	}
	return m.cells[i], true
}

// value returns the cell for (user, product), 0 when either is absent.
func (m *UserItemMatrix) value(userID uint, productID uint64) float64 {
	row, ok := m.Row(userID)
	if !ok {
		return 0
	}
	j, ok := m.productIndex[productID]
	if !ok {
		return 0
	}
	return row[j]
}

// Viewed lists the products whose cell is 1 for the user, in column order.
func (m *UserItemMatrix) Viewed(userID uint) []uint64 {
	row, ok := m.Row(userID)
	if !ok {
		return nil
	}

	out := make([]uint64, 0)
	for j, v := range row {
		if v == 1 {
			out = append(out, m.Products[j])
		}
	}
	return out
}
