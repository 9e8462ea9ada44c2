package repository

import (
	"context"
	"fmt"

	"dating-app-backend/internal/models"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type operation int

const (
	opAdd operation = iota
	opUpdate
	opDelete
	opDeleteWhere
)

func (o operation) String() string {
	switch o {
	case opAdd:
		return "add"
	case opUpdate:
		return "update"
	case opDeleteWhere:
		return "conditionally delete"
	default:
		return "delete"
	}
}

type change struct {
	op      operation
	entity  models.Entity
	columns []string
	conds   []interface{}
}

// Add stages a new entity for insertion
func (r *DatingRepository) Add(entity models.Entity) {
	r.pending = append(r.pending, change{op: opAdd, entity: entity})
}

// Update stages an update of a persisted entity. With no columns every field
// is written; otherwise only the named fields are. An update never inserts:
// a row that no longer exists changes nothing.
func (r *DatingRepository) Update(entity models.Entity, columns ...string) {
	r.pending = append(r.pending, change{op: opUpdate, entity: entity, columns: columns})
}

// Delete stages the removal of a persisted entity
func (r *DatingRepository) Delete(entity models.Entity) {
	r.pending = append(r.pending, change{op: opDelete, entity: entity})
}

// DeleteWhere stages the removal of a persisted entity that only happens if
// the row still matches query when the transaction runs.
func (r *DatingRepository) DeleteWhere(entity models.Entity, query string, args ...interface{}) {
	conds := append([]interface{}{query}, args...)
	r.pending = append(r.pending, change{op: opDeleteWhere, entity: entity, conds: conds})
}

// Pending returns the number of staged changes
func (r *DatingRepository) Pending() int {
	return len(r.pending)
}

// SaveAll applies every staged change in one transaction and reports whether
// any row changed.
//
// Staged changes are cleared only after a commit that changed rows. When the
// store reports zero affected rows, or the transaction fails and is rolled
// back, they stay pending for a later attempt.
func (r *DatingRepository) SaveAll(ctx context.Context) (bool, error) {
	if len(r.pending) == 0 {
		return false, nil
	}

	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		affected = 0
		for _, c := range r.pending {
			// Each change writes its own row only; related entities are
			// staged separately.
			row := tx.Omit(clause.Associations)

			var result *gorm.DB
			switch c.op {
			case opAdd:
				result = row.Create(c.entity)
			case opUpdate:
				columns := c.columns
				if len(columns) == 0 {
					columns = []string{"*"}
				}
				result = row.Model(c.entity).Select(columns).Updates(c.entity)
			case opDelete:
				result = row.Delete(c.entity)
			case opDeleteWhere:
				result = row.Where(c.conds[0], c.conds[1:]...).Delete(c.entity)
			}
			if result.Error != nil {
				return fmt.Errorf("failed to %s %s: %w", c.op, models.EntityName(c.entity), result.Error)
			}
			affected += result.RowsAffected
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	if affected == 0 {
		log.Debug().Int("pending", len(r.pending)).Msg("Save changed no rows")
		return false, nil
	}

	r.pending = nil
	return true, nil
}
