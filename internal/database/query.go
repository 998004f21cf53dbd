package database

import (
	"strings"

	"gorm.io/gorm"
)

// LikeEscape is the escape character used by ContainsPattern. '!' needs no
// quoting in sqlite, mysql or postgres string literals.
const LikeEscape = "!"

var likeReplacer = strings.NewReplacer(
	LikeEscape, LikeEscape+LikeEscape,
	"%", LikeEscape+"%",
	"_", LikeEscape+"_",
)

// ContainsPattern wraps q for a substring LIKE, escaping wildcard characters
// so user input matches literally. Case folding is left to ContainsClause so
// both sides go through the same LOWER().
func ContainsPattern(q string) string {
	return "%" + likeReplacer.Replace(q) + "%"
}

// ContainsClause returns a case-insensitive LIKE condition for column, to be
// bound with ContainsPattern.
func ContainsClause(column string) string {
	return "LOWER(" + column + ") LIKE LOWER(?) ESCAPE '" + LikeEscape + "'"
}

// ExactClause returns a case-sensitive equality condition for column.
// MySQL's default collations compare case-insensitively, so the comparison is
// forced to binary there.
func ExactClause(db *gorm.DB, column string) string {
	if db.Dialector.Name() == "mysql" {
		return "BINARY " + column + " = ?"
	}
	return column + " = ?"
}
