// Package query holds the paging and sorting parameters shared by list endpoints.
package query

import (
	"fmt"
	"strings"

	"github.com/hubverse/hub-services/internal/pkg/apperr"
	"github.com/hubverse/hub-services/internal/pkg/validators"
)

// Paging defaults
const (
	DefaultLimit  = 20
	MaxLimit      = 100
	DefaultSortBy = "date_time_created"
	SortAsc       = "asc"
	SortDesc      = "desc"
)

// ListQuery is embedded by every entity query.
type ListQuery struct {
	Limit     int    `validate:"gte=0,lte=100"`
	Offset    int    `validate:"gte=0"`
	SortBy    string `validate:"omitempty,max=64"`
	SortOrder string `validate:"omitempty,oneof=asc desc"`
}

// New returns a ListQuery with default paging.
func New() ListQuery {
	return ListQuery{Limit: DefaultLimit, SortOrder: SortDesc}
}

// Normalize validates q and fills defaults. SortBy must be one of allowedSort;
// the first allowed column is used when SortBy is empty.
func (q *ListQuery) Normalize(allowedSort ...string) error {
	q.SortOrder = strings.ToLower(q.SortOrder)
	if err := validators.ValidateStruct(q); err != nil {
		return err
	}

	if q.Limit == 0 {
		q.Limit = DefaultLimit
	}
	if q.SortOrder == "" {
		q.SortOrder = SortDesc
	}

	if len(allowedSort) == 0 {
		allowedSort = []string{DefaultSortBy}
	}
	if q.SortBy == "" {
		q.SortBy = allowedSort[0]
		return nil
	}
	for _, column := range allowedSort {
		if q.SortBy == column {
			return nil
		}
	}
	return apperr.Invalid("sortBy must be one of %s", strings.Join(allowedSort, ", "))
}

// OrderClause renders the ORDER BY expression. Call Normalize first.
func (q *ListQuery) OrderClause() string {
	return fmt.Sprintf("%s %s", q.SortBy, q.SortOrder)
}
