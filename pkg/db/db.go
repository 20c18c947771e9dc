package db

import (
	"context"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/dashboard/internal/config"
	obslogger "github.com/smallbiznis/dashboard/internal/observability/logger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Module provides the shared storage handles.
var Module = fx.Module("db",
	fx.Provide(New),
	fx.Provide(NewRedis),
)

// New opens the backend selected by DATABASE_TYPE and registers teardown hooks.
func New(lc fx.Lifecycle, cfg config.Config, log *zap.Logger) (Handles, error) {
	log = log.Named("db")

	if cfg.DBType == TypeMongo {
		database, err := OpenMongo(context.Background(), cfg)
		if err != nil {
			return Handles{}, err
		}
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				log.Info("disconnecting mongo client")
				return database.Client().Disconnect(ctx)
			},
		})
		log.Info("connected to document store",
			zap.String("database", database.Name()),
		)
		return Handles{Type: TypeMongo, Mongo: database}, nil
	}

	if !isRelational(cfg) {
		return Handles{}, fmt.Errorf("unsupported %s type", cfg.DBType)
	}

	conn, err := Open(cfg)
	if err != nil {
		return Handles{}, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	})
	log.Info("connected to relational store",
		zap.String("type", cfg.DBType),
		zap.String("database", cfg.DBName),
	)
	return Handles{Type: cfg.DBType, Gorm: conn}, nil
}

// Open opens a gorm connection and applies the pool settings.
func Open(cfg config.Config) (*gorm.DB, error) {
	dialect, err := Dialect(cfg)
	if err != nil {
		return nil, err
	}

	conn, err := gorm.Open(dialect, &gorm.Config{
		Logger: obslogger.NewGormLogger(gormlogger.Warn, obslogger.SlowQueryThreshold),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, err
	}
	if cfg.DBMaxIdleConn > 0 {
		sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConn)
	}
	if cfg.DBMaxOpenConn > 0 {
		sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConn)
	}
	if cfg.DBConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(cfg.DBConnMaxLifetime) * time.Second)
	}
	if cfg.DBConnMaxIdleTime > 0 {
		sqlDB.SetConnMaxIdleTime(time.Duration(cfg.DBConnMaxIdleTime) * time.Second)
	}

	return conn, nil
}

// OpenMongo connects to the document store and verifies the connection.
func OpenMongo(ctx context.Context, cfg config.Config) (*mongo.Database, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.DBURI))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return client.Database(cfg.DBName), nil
}

// NewTest opens an isolated in-memory sqlite database.
func NewTest() (*gorm.DB, error) {
	dsn := fmt.Sprintf("file:test-%d?mode=memory&cache=shared", time.Now().UnixNano())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: obslogger.NewGormLogger(gormlogger.Silent, 0),
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := conn.DB()
	if err != nil {
		return nil, err
	}
	// concurrent readers share a single connection so the in-memory database stays visible
	sqlDB.SetMaxOpenConns(1)
	return conn, nil
}
