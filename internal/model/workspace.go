package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Default workspace vocabulary. Businesses rename these freely; stored
// orders may keep labels that were later removed from the set.
var DefaultStatusLabels = []string{"Pending", "Processing", "Shipped", "Settled", "Cancelled", "Returned"}

var DefaultCategoryLabels = []string{"General"}

const (
	DefaultSettledLabel  = "Settled"
	DefaultReturnedLabel = "Returned"
)

// Workspace holds the per-owner configuration: the ordered status and
// category vocabularies, which label counts as the terminal success state,
// which one opens the return workflow, and the stock-deduction policy.
type Workspace struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"owner_id"`

	StatusLabels   string `gorm:"type:jsonb" json:"-"`
	CategoryLabels string `gorm:"type:jsonb" json:"-"`

	SettledLabel  string `gorm:"type:varchar(50);not null" json:"settled_label"`
	ReturnedLabel string `gorm:"type:varchar(50);not null" json:"returned_label"`

	// DeductStockOnSettle controls whether settling an order decrements the
	// referenced item's stock level once.
	DeductStockOnSettle bool `gorm:"default:true" json:"deduct_stock_on_settle"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Statuses decodes the stored status vocabulary, falling back to the
// default set when the column is empty or corrupt.
func (w *Workspace) Statuses() []string {
	return decodeLabels(w.StatusLabels, DefaultStatusLabels)
}

// Categories decodes the stored category vocabulary.
func (w *Workspace) Categories() []string {
	return decodeLabels(w.CategoryLabels, DefaultCategoryLabels)
}

// SetStatuses encodes the ordered status vocabulary.
func (w *Workspace) SetStatuses(labels []string) {
	w.StatusLabels = encodeLabels(labels)
}

// SetCategories encodes the ordered category vocabulary.
func (w *Workspace) SetCategories(labels []string) {
	w.CategoryLabels = encodeLabels(labels)
}

// Vocabulary is the aggregation module's view of the workspace config.
type Vocabulary struct {
	Statuses      []string
	SettledLabel  string
	ReturnedLabel string
}

// Vocabulary extracts the status vocabulary the reporting code consumes.
func (w *Workspace) Vocabulary() Vocabulary {
	return Vocabulary{
		Statuses:      w.Statuses(),
		SettledLabel:  w.SettledLabel,
		ReturnedLabel: w.ReturnedLabel,
	}
}

// DefaultVocabulary returns the out-of-the-box status vocabulary.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Statuses:      append([]string(nil), DefaultStatusLabels...),
		SettledLabel:  DefaultSettledLabel,
		ReturnedLabel: DefaultReturnedLabel,
	}
}

// DefaultWorkspace builds the config seeded on an owner's first read.
func DefaultWorkspace(ownerID uuid.UUID) Workspace {
	w := Workspace{
		OwnerID:             ownerID,
		SettledLabel:        DefaultSettledLabel,
		ReturnedLabel:       DefaultReturnedLabel,
		DeductStockOnSettle: true,
	}
	w.SetStatuses(DefaultStatusLabels)
	w.SetCategories(DefaultCategoryLabels)
	return w
}

func decodeLabels(raw string, fallback []string) []string {
	if raw == "" {
		return append([]string(nil), fallback...)
	}
	var labels []string
	if err := json.Unmarshal([]byte(raw), &labels); err != nil || len(labels) == 0 {
		return append([]string(nil), fallback...)
	}
	return labels
}

func encodeLabels(labels []string) string {
	b, _ := json.Marshal(labels)
	return string(b)
}
