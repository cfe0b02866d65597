package usecase

import (
	"Afluencia/pkg/config"
)

// Classifier maps an afluencia score to a discrete category. Bounds come
// from configuration so the scale can be retuned without touching handlers.
type Classifier struct {
	categories []config.Category
}

// NewClassifier builds a classifier from ordered category buckets. The
// config layer guarantees bounds are strictly increasing and the last
// bucket is open-ended.
func NewClassifier(categories []config.Category) *Classifier {
	return &Classifier{categories: categories}
}

// Classify returns the category for a score. Total over finite floats:
// the score lands in the first bucket whose upper bound exceeds it,
// otherwise in the open-ended top bucket.
func (c *Classifier) Classify(score float64) config.Category {
	last := len(c.categories) - 1
	for i, cat := range c.categories {
		if i == last {
			break
		}
		if score < cat.UpperBound {
			return cat
		}
	}
	return c.categories[last]
}

// Labels returns the fixed label set in ascending order.
func (c *Classifier) Labels() []string {
	out := make([]string, 0, len(c.categories))
	for _, cat := range c.categories {
		out = append(out, cat.Label)
	}
	return out
}
