// Package filter describes ad-hoc list conditions passed from the API layer.
package filter

// ComparisonType enumerates the supported comparison operators.
type ComparisonType string

const (
	Equal       ComparisonType = "eq"
	NotEqual    ComparisonType = "neq"
	InList      ComparisonType = "in"
	Contains    ComparisonType = "contains" // ILIKE %val%
	NotContains ComparisonType = "ncontains"
	IsNull      ComparisonType = "null"
	IsNotNull   ComparisonType = "not_null"
)

// Item is a single list condition.
type Item struct {
	Field    string         `json:"field"` // column name (snake_case)
	Operator ComparisonType `json:"operator"`
	Value    any            `json:"value"`
}

// Eq is a shorthand for an equality condition.
func Eq(field string, value any) Item {
	return Item{Field: field, Operator: Equal, Value: value}
}
