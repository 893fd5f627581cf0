package cart

import (
	"context"

	"storefront-checkout/internal/common/models"
	database "storefront-checkout/internal/pkg/db"
)

type IRepository interface {
	Create(ctx context.Context, cart *models.Cart) error
	FindByKey(ctx context.Context, cartKey string) (*models.Cart, error)
	Save(ctx context.Context, cart *models.Cart) error
	Delete(ctx context.Context, cartKey string) error
}

type Repository struct {
	db *database.Database
}

func NewRepo(db *database.Database) IRepository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, cart *models.Cart) error {
	return r.db.WithContext(ctx).Create(cart).Error
}

func (r *Repository) FindByKey(ctx context.Context, cartKey string) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.WithContext(ctx).Where("cart_key = ?", cartKey).First(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *Repository) Save(ctx context.Context, cart *models.Cart) error {
	return r.db.WithContext(ctx).Save(cart).Error
}

func (r *Repository) Delete(ctx context.Context, cartKey string) error {
	return r.db.WithContext(ctx).Where("cart_key = ?", cartKey).Delete(&models.Cart{}).Error
}
