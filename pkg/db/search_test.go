package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%abc%", LikePattern(TypePostgres, "ABC"))
	assert.Equal(t, "%50!%!_off!!%", LikePattern(TypePostgres, "50%_off!"))
	assert.Equal(t, "%%", LikePattern(TypePostgres, ""))
}

func TestLikePatternFoldsLikeTheDialect(t *testing.T) {
	assert.Equal(t, "%émile%", LikePattern(TypePostgres, "ÉMILE"))
	assert.Equal(t, "%Émile%", LikePattern(TypeSQLite, "ÉMILE"))
}

func TestContainsRegex(t *testing.T) {
	re := ContainsRegex("a.b(")
	assert.Equal(t, `a\.b\(`, re.Pattern)
	assert.Equal(t, "i", re.Options)
}

func TestTextCast(t *testing.T) {
	assert.Equal(t, "CAST(i.amount AS CHAR)", TextCast(TypeMySQL, "i.amount"))
	assert.Equal(t, "CAST(i.amount AS TEXT)", TextCast("postgres", "i.amount"))
	assert.Equal(t, "CAST(i.amount AS TEXT)", TextCast("sqlite", "i.amount"))
}
