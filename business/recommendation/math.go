package recommendation

import "math"

func dot(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

func norm(a []float64) float64 {
	return math.Sqrt(dot(a, a))
}

// cosineSimilarity returns a·b / (|a||b|). ok is false when either vector
// has zero length, where the similarity is undefined.
func cosineSimilarity(a, b []float64) (sim float64, ok bool) {
	if len(a) != len(b) {
		return 0, false
	}

	na, nb := norm(a), norm(b)
	if na == 0 || nb == 0 {
		return 0, false
	}

	return dot(a, b) / (na * nb), true
}

// sparseDot multiplies two sparse vectors keyed by term index.
func sparseDot(a, b map[int]float64) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}

	sum := 0.0
	for i, va := range a {
		if vb, ok := b[i]; ok {
			sum += va * vb
		}
	}
	return sum
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
