package models

import "fmt"

// Category is the closed set of wellness task categories.
type Category uint8

const (
	CategoryNutrition Category = iota + 1
	CategoryFitness
	CategoryMind
	CategoryEco
	CategoryBody
	CategoryWellness
	CategorySelfCare
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryNutrition,
	CategoryFitness,
	CategoryMind,
	CategoryEco,
	CategoryBody,
	CategoryWellness,
	CategorySelfCare,
}

func (c Category) String() string {
	switch c {
	case CategoryNutrition:
		return "nutrition"
	case CategoryFitness:
		return "fitness"
	case CategoryMind:
		return "mind"
	case CategoryEco:
		return "eco"
	case CategoryBody:
		return "body"
	case CategoryWellness:
		return "wellness"
	case CategorySelfCare:
		return "self-care"
	}
	return fmt.Sprintf("category(%d)", uint8(c))
}

// Icon is the default glyph for tasks of this category.
func (c Category) Icon() string {
	switch c {
	case CategoryNutrition:
		return "🥗"
	case CategoryFitness:
		return "💪"
	case CategoryMind:
		return "🧠"
	case CategoryEco:
		return "♻️"
	case CategoryBody:
		return "💧"
	case CategoryWellness:
		return "🌙"
	case CategorySelfCare:
		return "🌿"
	}
	return "•"
}

// Valid reports whether c is one of the declared categories.
func (c Category) Valid() bool {
	return c >= CategoryNutrition && c <= CategorySelfCare
}

// ParseCategory maps a category name back to its value. "mental" is accepted
// as an alias of "mind".
func ParseCategory(s string) (Category, error) {
	switch s {
	case "mental":
		return CategoryMind, nil
	case "selfcare":
		return CategorySelfCare, nil
	}
	for _, c := range Categories {
		if c.String() == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown category %q", s)
}

func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid category %d", uint8(c))
	}
	return []byte(c.String()), nil
}

func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
