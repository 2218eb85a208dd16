package httpapi

import (
	"strconv"
	"strings"

	"github.com/dmitrijs2005/linkfeed/internal/common"
	"github.com/dmitrijs2005/linkfeed/internal/server/models"
	"github.com/dmitrijs2005/linkfeed/internal/server/services"
)

type signupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type postRequest struct {
	Description string `json:"description" binding:"required"`
	URL         string `json:"url" binding:"required"`
}

type updateRequest struct {
	Description *string `json:"description"`
	URL         *string `json:"url"`
}

// feedRequest is bound from the query string. Each orderBy value has the
// form field or field:direction.
type feedRequest struct {
	Filter  string   `form:"filter"`
	Skip    *int     `form:"skip"`
	Take    *int     `form:"take"`
	OrderBy []string `form:"orderBy"`
}

func (r feedRequest) args() services.FeedArgs {
	args := services.FeedArgs{Filter: r.Filter, Skip: r.Skip, Take: r.Take}
	for _, raw := range r.OrderBy {
		field, dir, found := strings.Cut(raw, ":")
		if !found {
			dir = models.Asc
		}
		args.OrderBy = append(args.OrderBy, models.OrderBy{Field: field, Direction: dir})
	}
	return args
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, common.Validationf("invalid id %q", raw)
	}
	return id, nil
}
