package entity

import (
	"context"
	"time"

	"pharmabill/internal/core/id"
)

// Validatable is implemented by entities that check their own
// invariants. Validation never touches the database; referential
// checks belong to the services.
type Validatable interface {
	Validate(ctx context.Context) error
}

// BaseEntity is embedded by every stored row. Version backs
// optimistic locking: repositories refuse writes whose version no
// longer matches the row.
type BaseEntity struct {
	ID           id.ID `db:"id" json:"id"`
	DeletionMark bool  `db:"deletion_mark" json:"deletionMark"`
	Version      int   `db:"version" json:"version"`
}

func NewBaseEntity() BaseEntity {
	return BaseEntity{
		ID:      id.New(),
		Version: 1,
	}
}

// Touch bumps the version.
func (b *BaseEntity) Touch() {
	b.Version++
}

// BaseCatalog scopes reference data to its owning organization.
// Products, customers and suppliers all embed it through Catalog.
type BaseCatalog struct {
	BaseEntity

	OrganizationID id.ID `db:"organization_id" json:"organizationId"`
}

func NewBaseCatalog(organizationID id.ID) BaseCatalog {
	return BaseCatalog{
		BaseEntity:     NewBaseEntity(),
		OrganizationID: organizationID,
	}
}

// BaseDocument adds the audit trail fields documents carry.
type BaseDocument struct {
	BaseEntity

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
	CreatedBy string    `db:"created_by" json:"createdBy,omitempty"`
	UpdatedBy string    `db:"updated_by" json:"updatedBy,omitempty"`
}

func NewBaseDocument() BaseDocument {
	now := time.Now().UTC()
	return BaseDocument{
		BaseEntity: NewBaseEntity(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Touch refreshes UpdatedAt and bumps the version.
func (b *BaseDocument) Touch() {
	b.UpdatedAt = time.Now().UTC()
	b.BaseEntity.Touch()
}
