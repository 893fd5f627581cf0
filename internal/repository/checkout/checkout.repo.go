package checkout

import (
	"context"

	"storefront-checkout/internal/common/models"
	database "storefront-checkout/internal/pkg/db"
)

type IRepository interface {
	Create(ctx context.Context, session *models.CheckoutSession) error
	FindByCartKey(ctx context.Context, cartKey string) (*models.CheckoutSession, error)
	Save(ctx context.Context, session *models.CheckoutSession) error
	UpdateFields(ctx context.Context, cartKey string, updates map[string]any) error
}

type Repository struct {
	db *database.Database
}

func NewRepo(db *database.Database) IRepository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, session *models.CheckoutSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *Repository) FindByCartKey(ctx context.Context, cartKey string) (*models.CheckoutSession, error) {
	var session models.CheckoutSession
	err := r.db.WithContext(ctx).Where("cart_key = ?", cartKey).First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *Repository) Save(ctx context.Context, session *models.CheckoutSession) error {
	return r.db.WithContext(ctx).Save(session).Error
}

// UpdateFields writes only the named columns so concurrent writers on
// the same session row cannot clobber each other's columns.
func (r *Repository) UpdateFields(ctx context.Context, cartKey string, updates map[string]any) error {
	return r.db.WithContext(ctx).Model(&models.CheckoutSession{}).Where("cart_key = ?", cartKey).Updates(updates).Error
}
