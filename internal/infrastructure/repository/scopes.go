package repository

import (
	"strings"

	"github.com/sangkips/quote-engine/pkg/pagination"
	"gorm.io/gorm"
)

// Paginate returns a GORM scope that applies offset and limit for a page
func Paginate(p *pagination.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if p == nil {
			p = pagination.DefaultPagination()
		}
		p.Validate()
		return db.Offset(p.Offset()).Limit(p.PerPage)
	}
}

// SearchColumns returns a GORM scope matching term case-insensitively
// against any of the given columns. An empty term leaves the query as is.
func SearchColumns(term string, columns ...string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		term = strings.TrimSpace(term)
		if term == "" || len(columns) == 0 {
			return db
		}
		pattern := "%" + strings.ToLower(term) + "%"
		clauses := make([]string, len(columns))
		args := make([]interface{}, len(columns))
		for i, col := range columns {
			clauses[i] = "LOWER(" + col + ") LIKE ?"
			args[i] = pattern
		}
		return db.Where(strings.Join(clauses, " OR "), args...)
	}
}

// OrderBy returns a GORM scope sorting by column when it is whitelisted,
// falling back to fallback. Direction defaults to DESC.
func OrderBy(column, direction string, allowed map[string]bool, fallback string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if !allowed[column] {
			column = fallback
		}
		dir := "DESC"
		if strings.EqualFold(direction, "asc") {
			dir = "ASC"
		}
		return db.Order(column + " " + dir)
	}
}
