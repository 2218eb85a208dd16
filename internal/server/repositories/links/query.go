package links

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/linkfeed/internal/common"
	"github.com/dmitrijs2005/linkfeed/internal/server/models"
)

// sortColumns whitelists the fields a feed may be ordered by.
var sortColumns = map[string]string{
	models.FieldDescription: "description",
	models.FieldURL:         "url",
	models.FieldCreatedAt:   "created_at",
}

// likeEscaper neutralises LIKE wildcards so the filter is a plain substring.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// whereClause returns the filter predicate (or "") and appends its argument.
// The same clause is used for the page and for the count.
func whereClause(filter string, args []any) (string, []any) {
	if filter == "" {
		return "", args
	}
	args = append(args, "%"+likeEscaper.Replace(filter)+"%")
	n := len(args)
	return fmt.Sprintf(" WHERE (description LIKE $%d OR url LIKE $%d)", n, n), args
}

// orderClause turns the sort keys into an ORDER BY list. id is always the
// last key, so rows that tie on every requested key keep a stable order.
func orderClause(order []models.OrderBy) (string, error) {
	parts := make([]string, 0, len(order)+1)
	for _, o := range order {
		col, ok := sortColumns[o.Field]
		if !ok {
			return "", common.Validationf("unknown order field %q", o.Field)
		}
		switch strings.ToLower(o.Direction) {
		case models.Asc:
			parts = append(parts, col+" ASC")
		case models.Desc:
			parts = append(parts, col+" DESC")
		default:
			return "", common.Validationf("unknown order direction %q", o.Direction)
		}
	}
	parts = append(parts, "id ASC")
	return " ORDER BY " + strings.Join(parts, ", "), nil
}

// pageClause appends LIMIT (only when take is set) and OFFSET.
func pageClause(skip int, take *int, args []any) (string, []any) {
	var b strings.Builder
	if take != nil {
		args = append(args, *take)
		fmt.Fprintf(&b, " LIMIT $%d", len(args))
	}
	args = append(args, skip)
	fmt.Fprintf(&b, " OFFSET $%d", len(args))
	return b.String(), args
}
