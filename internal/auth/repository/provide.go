package repository

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/dashboard/internal/auth/domain"
	"github.com/smallbiznis/dashboard/pkg/db"
)

// Provide returns the repository for the active storage backend.
func Provide(h db.Handles, genID *snowflake.Node) domain.Repository {
	if h.IsMongo() {
		return NewMongo(h.Mongo)
	}
	return NewGorm(h.Gorm, genID)
}
