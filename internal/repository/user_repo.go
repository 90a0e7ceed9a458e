package repository

import (
	"context"

	"shoptrack/internal/model"

	"gorm.io/gorm"
)

// UserRepository defines data access for auth identities.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context, page, limit int) ([]model.User, int64, error)
	SaveRefreshToken(ctx context.Context, token *model.RefreshToken) error
	GetRefreshToken(ctx context.Context, token string) (*model.RefreshToken, error)
	DeleteRefreshToken(ctx context.Context, token string) error
	DeleteRefreshTokensForUser(ctx context.Context, userID string) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return withRetry(ctx, func() error {
		return translate(GetDB(ctx, r.db).Create(user).Error)
	})
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := withRetry(ctx, func() error {
		return translate(GetDB(ctx, r.db).First(&user, "id = ?", id).Error)
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := withRetry(ctx, func() error {
		return translate(GetDB(ctx, r.db).First(&user, "email = ?", email).Error)
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context, page, limit int) ([]model.User, int64, error) {
	var users []model.User
	var total int64

	// Fresh query per finisher; reusing the chain after Count leaks its
	// clauses into the Find.
	err := withRetry(ctx, func() error {
		return translate(GetDB(ctx, r.db).Model(&model.User{}).Count(&total).Error)
	})
	if err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err = withRetry(ctx, func() error {
		return translate(GetDB(ctx, r.db).
			Order("created_at ASC").
			Offset(offset).Limit(limit).
			Find(&users).Error)
	})
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *userRepository) SaveRefreshToken(ctx context.Context, token *model.RefreshToken) error {
	return withRetry(ctx, func() error {
		return translate(GetDB(ctx, r.db).Create(token).Error)
	})
}

func (r *userRepository) GetRefreshToken(ctx context.Context, token string) (*model.RefreshToken, error) {
	var rt model.RefreshToken
	err := withRetry(ctx, func() error {
		return translate(GetDB(ctx, r.db).First(&rt, "token = ?", token).Error)
	})
	if err != nil {
		return nil, err
	}
	return &rt, nil
}

func (r *userRepository) DeleteRefreshToken(ctx context.Context, token string) error {
	return withRetry(ctx, func() error {
		return translate(GetDB(ctx, r.db).Where("token = ?", token).Delete(&model.RefreshToken{}).Error)
	})
}

func (r *userRepository) DeleteRefreshTokensForUser(ctx context.Context, userID string) error {
	return withRetry(ctx, func() error {
		return translate(GetDB(ctx, r.db).Where("user_id = ?", userID).Delete(&model.RefreshToken{}).Error)
	})
}
