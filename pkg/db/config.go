package db

import (
	"github.com/smallbiznis/dashboard/internal/config"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

const (
	TypeMongo    = "mongodb"
	TypePostgres = "postgres"
	TypeMySQL    = "mysql"
	TypeSQLite   = "sqlite"
)

// Handles carries the storage handle shared by every repository.
// Exactly one of Gorm or Mongo is set, depending on DATABASE_TYPE.
type Handles struct {
	Type  string
	Gorm  *gorm.DB
	Mongo *mongo.Database
}

// IsMongo reports whether the document store backend is active.
func (h Handles) IsMongo() bool {
	return h.Mongo != nil
}

func isRelational(cfg config.Config) bool {
	switch cfg.DBType {
	case TypePostgres, TypeMySQL, TypeSQLite:
		return true
	default:
		return false
	}
}
