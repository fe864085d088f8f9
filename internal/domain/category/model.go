package category

// Criterion is a scored sub-item within a category. RawValue submissions are
// bounded by MaxScore; Weight converts a raw value into its weighted
// contribution (raw * weight).
type Criterion struct {
	ID       string
	Label    string
	MaxScore float64
	Weight   float64
	Order    int
}

type Category struct {
	ID       string
	Label    string
	Order    int
	Criteria []Criterion
}

// CriterionByID returns the criterion with the given id, if present.
func (c Category) CriterionByID(id string) (Criterion, bool) {
	for _, criterion := range c.Criteria {
		if criterion.ID == id {
			return criterion, true
		}
	}
	return Criterion{}, false
}
