package db

import (
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// LikePattern builds a LIKE pattern matching query as a literal substring of
// LOWER(column). Statements using it must declare ESCAPE '!'. SQLite's LOWER
// folds ASCII only, so the pattern is folded the same way there.
func LikePattern(dialect, query string) string {
	folded := strings.ToLower(query)
	if dialect == TypeSQLite {
		folded = strings.Map(asciiLower, query)
	}
	return "%" + likeEscaper.Replace(folded) + "%"
}

func asciiLower(r rune) rune {
	if 'A' <= r && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

// ContainsPattern is the regular expression matching query as a literal substring.
func ContainsPattern(query string) string {
	return regexp.QuoteMeta(query)
}

// ContainsRegex is a case-insensitive BSON regex matching query as a literal substring.
func ContainsRegex(query string) primitive.Regex {
	return primitive.Regex{Pattern: ContainsPattern(query), Options: "i"}
}
