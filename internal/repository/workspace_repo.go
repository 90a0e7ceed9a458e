package repository

import (
	"context"

	"shoptrack/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WorkspaceRepository stores the per-owner configuration row.
type WorkspaceRepository interface {
	GetByOwner(ctx context.Context, ownerID uuid.UUID) (*model.Workspace, error)
	Create(ctx context.Context, workspace *model.Workspace) error
	Update(ctx context.Context, workspace *model.Workspace) error
}

type workspaceRepository struct {
	db *gorm.DB
}

func NewWorkspaceRepository(db *gorm.DB) WorkspaceRepository {
	return &workspaceRepository{db: db}
}

func (r *workspaceRepository) GetByOwner(ctx context.Context, ownerID uuid.UUID) (*model.Workspace, error) {
	var workspace model.Workspace
	err := withRetry(ctx, func() error {
		return translate(GetDB(ctx, r.db).First(&workspace, "owner_id = ?", ownerID).Error)
	})
	if err != nil {
		return nil, err
	}
	return &workspace, nil
}

func (r *workspaceRepository) Create(ctx context.Context, workspace *model.Workspace) error {
	return withRetry(ctx, func() error {
		return translate(GetDB(ctx, r.db).Create(workspace).Error)
	})
}

func (r *workspaceRepository) Update(ctx context.Context, workspace *model.Workspace) error {
	return withRetry(ctx, func() error {
		return translate(GetDB(ctx, r.db).
			Where("owner_id = ?", workspace.OwnerID).
			Save(workspace).Error)
	})
}
