package repository

import (
	"context"

	"shoptrack/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProfileRepository maintains the directory rows mirroring auth identities.
type ProfileRepository interface {
	Upsert(ctx context.Context, profile *model.Profile) error
	GetByID(ctx context.Context, id string) (*model.Profile, error)
	List(ctx context.Context) ([]model.Profile, error)
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// Upsert inserts or refreshes the row keyed by the auth identity. Profiles
// are never deleted by the application.
func (r *profileRepository) Upsert(ctx context.Context, profile *model.Profile) error {
	return withRetry(ctx, func() error {
		return translate(GetDB(ctx, r.db).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				DoUpdates: clause.AssignmentColumns([]string{"email", "role", "updated_at"}),
			}).
			Create(profile).Error)
	})
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*model.Profile, error) {
	var profile model.Profile
	err := withRetry(ctx, func() error {
		return translate(GetDB(ctx, r.db).First(&profile, "id = ?", id).Error)
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) List(ctx context.Context) ([]model.Profile, error) {
	var profiles []model.Profile
	err := withRetry(ctx, func() error {
		return translate(GetDB(ctx, r.db).Order("email ASC").Find(&profiles).Error)
	})
	if err != nil {
		return nil, err
	}
	return profiles, nil
}
