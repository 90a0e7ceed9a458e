package service

import (
	"context"
	"encoding/json"
	"log"

	"shoptrack/internal/model"
	"shoptrack/internal/repository"

	"github.com/google/uuid"
)

type AuditEntryResponse struct {
	ID         string      `json:"id"`
	UserID     *string     `json:"user_id"`
	UserEmail  string      `json:"user_email,omitempty"`
	Action     string      `json:"action"`
	EntityID   string      `json:"entity_id"`
	EntityName string      `json:"entity_name,omitempty"`
	Details    interface{} `json:"details"`
	CreatedAt  string      `json:"created_at"`
}

// AuditService writes the who/what/when trail for mutations. Recording is
// best-effort: a failed audit write is logged, never allowed to fail the
// business operation that triggered it.
type AuditService interface {
	Record(ctx context.Context, userID *uuid.UUID, action, entityID, entityName string, details map[string]interface{})
	List(ctx context.Context, action string, page, limit int) ([]AuditEntryResponse, int64, error)
}

type auditService struct {
	repo repository.AuditRepository
}

func NewAuditService(repo repository.AuditRepository) AuditService {
	return &auditService{repo: repo}
}

func (s *auditService) Record(ctx context.Context, userID *uuid.UUID, action, entityID, entityName string, details map[string]interface{}) {
	payload, _ := json.Marshal(details)
	entry := model.AuditLog{
		UserID:     userID,
		Action:     action,
		EntityID:   entityID,
		EntityName: entityName,
		Details:    string(payload),
	}
	if err := s.repo.Create(ctx, &entry); err != nil {
		log.Printf("audit write failed for %s on %s: %v", action, entityID, err)
	}
}

func (s *auditService) List(ctx context.Context, action string, page, limit int) ([]AuditEntryResponse, int64, error) {
	entries, total, err := s.repo.List(ctx, action, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]AuditEntryResponse, 0, len(entries))
	for _, e := range entries {
		resp := AuditEntryResponse{
			ID:         e.ID.String(),
			Action:     e.Action,
			EntityID:   e.EntityID,
			EntityName: e.EntityName,
			CreatedAt:  e.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
		if e.UserID != nil {
			id := e.UserID.String()
			resp.UserID = &id
		}
		if e.User != nil {
			resp.UserEmail = e.User.Email
		}
		var details interface{}
		if e.Details != "" {
			_ = json.Unmarshal([]byte(e.Details), &details)
		}
		resp.Details = details
		result = append(result, resp)
	}
	return result, total, nil
}
