package models

// Sortable link fields, as named by API callers.
const (
	FieldDescription = "description"
	FieldURL         = "url"
	FieldCreatedAt   = "createdAt"
)

// Sort directions.
const (
	Asc  = "asc"
	Desc = "desc"
)

// OrderBy is one sort key of a feed query.
type OrderBy struct {
	Field     string `json:"field"`
	Direction string `json:"direction"`
}

// LinkQuery is a validated feed query as handed to the link store.
// Take == nil means "all remaining".
type LinkQuery struct {
	Filter  string
	OrderBy []OrderBy
	Skip    int
	Take    *int
}
