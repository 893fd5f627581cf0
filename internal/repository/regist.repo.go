package repository

import (
	cartRepo "storefront-checkout/internal/repository/cart"
	checkoutRepo "storefront-checkout/internal/repository/checkout"
	transactionRepo "storefront-checkout/internal/repository/transaction"
)

// IRepository is a container for all repository interfaces
type IRepository struct {
	Cart        cartRepo.IRepository
	Checkout    checkoutRepo.IRepository
	Transaction transactionRepo.IRepository
}
