package models

import "strings"

// Category is one of the fixed service-type labels that partition
// transactions and goals. The label itself is the stored value.
type Category string

const (
	CategoryBodyworkPaint    Category = "Funilaria e Pintura"
	CategoryPaintMirroring   Category = "Espelhamento de Pintura"
	CategoryInteriorCleaning Category = "Higienização Interna"
	CategoryWheelRim         Category = "Serviços de Aro de Roda"
	CategoryDSP              Category = "DSP"
	CategoryMechanics        Category = "Mecânica"
	CategoryHeadlights       Category = "Serviços de Farois"
	CategoryPrivate          Category = "Serviços Particulares"
	CategoryOther            Category = "Outros Serviços"
)

var categories = []Category{
	CategoryBodyworkPaint,
	CategoryPaintMirroring,
	CategoryInteriorCleaning,
	CategoryWheelRim,
	CategoryDSP,
	CategoryMechanics,
	CategoryHeadlights,
	CategoryPrivate,
	CategoryOther,
}

// Categories returns every category in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// IsValid reports whether c is one of the fixed labels.
func (c Category) IsValid() bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory trims s and returns the matching category.
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.TrimSpace(s))
	return c, c.IsValid()
}

func (c Category) String() string {
	return string(c)
}
