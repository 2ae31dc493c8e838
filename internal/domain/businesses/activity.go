package businesses

import (
	"time"

	"github.com/hubverse/hub-services/internal/domain/query"
	"github.com/hubverse/hub-services/internal/pkg/validators"
)

// Activity is one recorded domain event. EventID is unique, making ingestion idempotent.
type Activity struct {
	ID               string    `validate:"required,uuid4"`
	EventID          string    `validate:"required,max=64"`
	Type             string    `validate:"required,max=100"`
	Source           string    `validate:"required,max=50"`
	SubjectID        string    `validate:"max=64"`
	ActorID          string    `validate:"max=64"`
	Payload          string
	DateTimeOccurred time.Time `validate:"required"`
	DateTimeRecorded time.Time `validate:"required"`
}

// Validate for validating Activity struct
func (a *Activity) Validate() error {
	return validators.ValidateStruct(a)
}

// ActivitySortColumns lists the columns activities can be sorted by.
var ActivitySortColumns = []string{"date_time_occurred", "date_time_recorded", "type"}

// ActivityQuery filters the activity feed.
type ActivityQuery struct {
	query.ListQuery
	Type    string `validate:"max=100"`
	Source  string `validate:"max=50"`
	ActorID string `validate:"max=64"`
}

// NewActivityQuery returns an ActivityQuery with default paging.
func NewActivityQuery() *ActivityQuery {
	return &ActivityQuery{ListQuery: query.New()}
}

// Validate checks the filter and normalizes paging.
func (q *ActivityQuery) Validate() error {
	if err := validators.ValidateStruct(q); err != nil {
		return err
	}
	return q.Normalize(ActivitySortColumns...)
}

// ActivityStat counts recorded events of one type.
type ActivityStat struct {
	Type  string
	Count int64
}
