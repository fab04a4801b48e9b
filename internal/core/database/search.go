package database

import (
	"strings"

	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// MatchTerms is a gorm scope for admin-style search. Every whitespace
// separated term of query must appear, ignoring case, in at least one of
// columns. An empty query matches every row.
func MatchTerms(query string, columns ...string) func(*gorm.DB) *gorm.DB {
	terms := strings.Fields(strings.ToLower(query))
	return func(db *gorm.DB) *gorm.DB {
		if len(columns) == 0 {
			return db
		}
		for _, term := range terms {
			pattern := "%" + likeEscaper.Replace(term) + "%"
			conds := make([]string, len(columns))
			args := make([]interface{}, len(columns))
			for i, column := range columns {
				conds[i] = "LOWER(" + column + `) LIKE ? ESCAPE '\'`
				args[i] = pattern
			}
			db = db.Where("("+strings.Join(conds, " OR ")+")", args...)
		}
		return db
	}
}
