package user

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"chatapp/internal/dbmysql"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepository interface {
	CreateUser(ctx context.Context, user *dbmysql.User) error
	GetUserByID(ctx context.Context, userID string) (*dbmysql.User, error)
	GetUserByHandle(ctx context.Context, handle string) (*dbmysql.User, error)
	CheckUserExists(ctx context.Context, handle string) (bool, error)
	UpdateUser(ctx context.Context, user *dbmysql.User) error
}

type userRepo struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) CreateUser(ctx context.Context, user *dbmysql.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *userRepo) GetUserByID(ctx context.Context, userID string) (*dbmysql.User, error) {
	var user dbmysql.User

	err := r.db.WithContext(ctx).First(&user, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	return &user, nil
}

func (r *userRepo) GetUserByHandle(ctx context.Context, handle string) (*dbmysql.User, error) {
	var user dbmysql.User

	err := r.db.WithContext(ctx).First(&user, "handle = ?", handle).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	return &user, nil
}

func (r *userRepo) CheckUserExists(ctx context.Context, handle string) (bool, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Model(&dbmysql.User{}).
		Where("handle = ?", handle).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check handle: %w", err)
	}

	return count > 0, nil
}

func (r *userRepo) UpdateUser(ctx context.Context, user *dbmysql.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}
