package persistence

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hubverse/hub-services/internal/pkg/apperr"

	"gorm.io/gorm"
)

// translateError maps gorm errors onto the apperr categories. what names the entity.
func translateError(err error, what string) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.NotFound("%s not found", what)
	case isDuplicate(err):
		return apperr.Conflict("%s already exists", what)
	default:
		return fmt.Errorf("%s: %w", what, err)
	}
}

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// Fallback for driver versions that do not translate constraint errors.
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern escapes LIKE wildcards in s and wraps it for a substring match.
// Use it with "LOWER(col) LIKE ?" + likeEscape.
func likePattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}

const likeEscape = ` ESCAPE '\'`

// updateColumns writes columns on the row with id. Unlike Save it never inserts, so an
// update racing a delete answers NotFound instead of bringing the row back.
func updateColumns(db *gorm.DB, model interface{}, id, what string, columns map[string]interface{}) error {
	result := db.Model(model).Where("id = ?", id).Updates(columns)
	if result.Error != nil {
		return translateError(result.Error, what)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("%s not found", what)
	}
	return nil
}
