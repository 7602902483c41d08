package models

// Category classifies a template within the catalog. The wire values are the
// domain's own labels and are stable across the on-disk format.
type Category string

const (
	CategoryPlanning    Category = "기획"
	CategoryProgramming Category = "프로그램"
	CategoryArt         Category = "아트"
	CategoryQA          Category = "QA"
	CategoryAll         Category = "전체"
)

// Categories lists every known category in catalog order.
func Categories() []Category {
	return []Category{CategoryPlanning, CategoryProgramming, CategoryArt, CategoryQA, CategoryAll}
}

// ParseCategory coerces free text to a category. Unrecognized values fall
// back to CategoryAll; catalog filtering treats "전체" as unfiltered, so an
// unknown category degrades to "matches everything" rather than an error.
func ParseCategory(s string) Category {
	for _, c := range Categories() {
		if string(c) == s {
			return c
		}
	}
	return CategoryAll
}

// Valid reports whether the category is a known enumeration member.
func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}
