package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/dashboard/internal/auth/domain"
	"github.com/smallbiznis/dashboard/pkg/db"
	"gorm.io/gorm"
)

type gormRepo struct {
	db    *gorm.DB
	genID *snowflake.Node
}

func NewGorm(conn *gorm.DB, genID *snowflake.Node) domain.Repository {
	return &gormRepo{db: conn, genID: genID}
}

func (r *gormRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.User{}).Count(&count).Error
	return count, err
}

func (r *gormRepo) Create(ctx context.Context, user *domain.User) error {
	if user.PK == 0 {
		user.PK = r.genID.Generate()
	}
	err := r.db.WithContext(ctx).Create(user).Error
	if db.IsDuplicateKeyErr(err) {
		return domain.ErrUserExists
	}
	return err
}

func (r *gormRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
