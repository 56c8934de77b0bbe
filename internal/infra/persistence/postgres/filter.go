package postgres

import (
	"fmt"

	"crm/internal/domain/query"

	"gorm.io/gorm"
)

// applyFilters translates validated domain filters into WHERE clauses, ANDed
// together. columns maps the API field name onto the database column; a field
// missing from the map means validation was skipped upstream, so we fail loudly
// instead of silently dropping the clause.
func applyFilters(db *gorm.DB, filters []query.Filter, columns map[string]string) (*gorm.DB, error) {
	for _, f := range filters {
		column, ok := columns[f.Field]
		if !ok {
			return nil, fmt.Errorf("%w: %s", query.ErrFieldNotAllowed, f.Field)
		}

		switch f.Operator {
		case query.OpEquals:
			db = db.Where(column+" = ?", f.Value)
		case query.OpContains:
			db = db.Where(column+" ILIKE ?", "%"+fmt.Sprint(f.Value)+"%")
		case query.OpGreaterThan:
			db = db.Where(column+" > ?", f.Value)
		case query.OpLessThan:
			db = db.Where(column+" < ?", f.Value)
		case query.OpIn:
			db = db.Where(column+" IN ?", f.Value)
		default:
			return nil, fmt.Errorf("%w: %s", query.ErrUnknownOperator, f.Operator)
		}
	}

	return db, nil
}

// applySort translates a validated sort onto an ORDER BY clause using the same
// column map as applyFilters.
func applySort(db *gorm.DB, sort query.Sort, columns map[string]string) (*gorm.DB, error) {
	column, ok := columns[sort.By]
	if !ok {
		return nil, fmt.Errorf("%w: %s", query.ErrSortNotAllowed, sort.By)
	}

	direction := "DESC"
	if sort.Order == query.SortAsc {
		direction = "ASC"
	}

	return db.Order(column + " " + direction), nil
}
