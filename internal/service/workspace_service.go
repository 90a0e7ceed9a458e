package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"shoptrack/internal/model"
	"shoptrack/internal/repository"

	"github.com/google/uuid"
)

// DTOs

type WorkspaceResponse struct {
	StatusLabels        []string `json:"status_labels"`
	CategoryLabels      []string `json:"category_labels"`
	SettledLabel        string   `json:"settled_label"`
	ReturnedLabel       string   `json:"returned_label"`
	DeductStockOnSettle bool     `json:"deduct_stock_on_settle"`
}

type UpdateWorkspaceRequest struct {
	StatusLabels        []string `json:"status_labels" binding:"required,min=1"`
	CategoryLabels      []string `json:"category_labels"`
	SettledLabel        string   `json:"settled_label" binding:"required"`
	ReturnedLabel       string   `json:"returned_label" binding:"required"`
	DeductStockOnSettle *bool    `json:"deduct_stock_on_settle"`
}

// WorkspaceService owns the per-account status/category vocabularies. Every
// component that needs "the valid statuses" reads them from here instead of
// assuming a fixed enum.
type WorkspaceService interface {
	Get(ctx context.Context, ownerID uuid.UUID) (WorkspaceResponse, error)
	Update(ctx context.Context, ownerID uuid.UUID, req UpdateWorkspaceRequest) (WorkspaceResponse, error)
	VocabularyFor(ctx context.Context, ownerID uuid.UUID) (model.Vocabulary, error)
	SettingsFor(ctx context.Context, ownerID uuid.UUID) (*model.Workspace, error)
}

type workspaceService struct {
	repo  repository.WorkspaceRepository
	audit AuditService
}

func NewWorkspaceService(repo repository.WorkspaceRepository, audit AuditService) WorkspaceService {
	return &workspaceService{repo: repo, audit: audit}
}

// SettingsFor loads the owner's config, seeding the default vocabulary on
// first access.
func (s *workspaceService) SettingsFor(ctx context.Context, ownerID uuid.UUID) (*model.Workspace, error) {
	workspace, err := s.repo.GetByOwner(ctx, ownerID)
	if errors.Is(err, repository.ErrNotFound) {
		seeded := model.DefaultWorkspace(ownerID)
		if createErr := s.repo.Create(ctx, &seeded); createErr != nil {
			return nil, fmt.Errorf("failed to seed workspace config: %w", createErr)
		}
		return &seeded, nil
	}
	if err != nil {
		return nil, err
	}
	return workspace, nil
}

func (s *workspaceService) Get(ctx context.Context, ownerID uuid.UUID) (WorkspaceResponse, error) {
	workspace, err := s.SettingsFor(ctx, ownerID)
	if err != nil {
		return WorkspaceResponse{}, err
	}
	return toWorkspaceResponse(workspace), nil
}

func (s *workspaceService) Update(ctx context.Context, ownerID uuid.UUID, req UpdateWorkspaceRequest) (WorkspaceResponse, error) {
	labels := normalizeLabels(req.StatusLabels)
	if len(labels) == 0 {
		return WorkspaceResponse{}, errValidation("status vocabulary cannot be empty")
	}
	if !containsLabel(labels, req.SettledLabel) {
		return WorkspaceResponse{}, errValidation("settled label %q is not in the status vocabulary", req.SettledLabel)
	}
	if !containsLabel(labels, req.ReturnedLabel) {
		return WorkspaceResponse{}, errValidation("returned label %q is not in the status vocabulary", req.ReturnedLabel)
	}

	workspace, err := s.SettingsFor(ctx, ownerID)
	if err != nil {
		return WorkspaceResponse{}, err
	}

	workspace.SetStatuses(labels)
	if categories := normalizeLabels(req.CategoryLabels); len(categories) > 0 {
		workspace.SetCategories(categories)
	}
	workspace.SettledLabel = req.SettledLabel
	workspace.ReturnedLabel = req.ReturnedLabel
	if req.DeductStockOnSettle != nil {
		workspace.DeductStockOnSettle = *req.DeductStockOnSettle
	}

	if err := s.repo.Update(ctx, workspace); err != nil {
		return WorkspaceResponse{}, err
	}

	s.audit.Record(ctx, &ownerID, model.ActionUpdateWorkspace, workspace.ID.String(), "workspace", map[string]interface{}{
		"status_labels":  labels,
		"settled_label":  req.SettledLabel,
		"returned_label": req.ReturnedLabel,
	})

	return toWorkspaceResponse(workspace), nil
}

func (s *workspaceService) VocabularyFor(ctx context.Context, ownerID uuid.UUID) (model.Vocabulary, error) {
	workspace, err := s.SettingsFor(ctx, ownerID)
	if err != nil {
		return model.Vocabulary{}, err
	}
	return workspace.Vocabulary(), nil
}

func toWorkspaceResponse(w *model.Workspace) WorkspaceResponse {
	return WorkspaceResponse{
		StatusLabels:        w.Statuses(),
		CategoryLabels:      w.Categories(),
		SettledLabel:        w.SettledLabel,
		ReturnedLabel:       w.ReturnedLabel,
		DeductStockOnSettle: w.DeductStockOnSettle,
	}
}

// normalizeLabels trims entries and drops empties and duplicates while
// preserving the operator's ordering.
func normalizeLabels(labels []string) []string {
	seen := make(map[string]bool, len(labels))
	result := make([]string, 0, len(labels))
	for _, label := range labels {
		label = strings.TrimSpace(label)
		if label == "" || seen[label] {
			continue
		}
		seen[label] = true
		result = append(result, label)
	}
	return result
}

func containsLabel(labels []string, target string) bool {
	for _, label := range labels {
		if label == target {
			return true
		}
	}
	return false
}
