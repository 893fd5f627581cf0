package transaction

import (
	"context"
	"testing"
	"time"

	"storefront-checkout/internal/common/enum"
	"storefront-checkout/internal/common/models"
	"storefront-checkout/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeTrxRepo struct {
	transactions map[string]*models.Transaction
}

func newFakeTrxRepo() *fakeTrxRepo {
	return &fakeTrxRepo{transactions: map[string]*models.Transaction{}}
}

func (f *fakeTrxRepo) Create(_ context.Context, trx *models.Transaction) error {
	f.transactions[trx.OrderID] = trx
	return nil
}

func (f *fakeTrxRepo) FindByOrderID(_ context.Context, orderID string) (*models.Transaction, error) {
	trx, ok := f.transactions[orderID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *trx
	return &copied, nil
}

func (f *fakeTrxRepo) FindPendingOlderThan(_ context.Context, age time.Duration, limit int) ([]models.Transaction, error) {
	cutoff := time.Now().Add(-age)
	var out []models.Transaction
	for _, trx := range f.transactions {
		if trx.Status == enum.ORDER_PENDING && trx.CreatedAt.Before(cutoff) && len(out) < limit {
			out = append(out, *trx)
		}
	}
	return out, nil
}

func (f *fakeTrxRepo) UpdateStatus(_ context.Context, orderID string, updates map[string]any) error {
	trx, ok := f.transactions[orderID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if status, ok := updates["status"].(enum.OrderStatusEnum); ok {
		trx.Status = status
	}
	if receiptID, ok := updates["receipt_id"].(int64); ok {
		trx.ReceiptID = receiptID
	}
	if redirectURL, ok := updates["redirect_url"].(string); ok {
		trx.RedirectURL = redirectURL
	}
	return nil
}

func pollService(repo *fakeTrxRepo) *Service {
	return &Service{
		ctx: context.Background(),
		rp:  repository.IRepository{Transaction: repo},
	}
}

func TestPollOrderStatusReturnsTerminalImmediately(t *testing.T) {
	repo := newFakeTrxRepo()
	repo.transactions["ord-1"] = &models.Transaction{OrderID: "ord-1", Status: enum.ORDER_SUCCESS}

	status, err := pollService(repo).PollOrderStatus(context.Background(), "ord-1")
	require.NoError(t, err)
	assert.Equal(t, enum.ORDER_SUCCESS, status)
}

func TestPollOrderStatusStopsOnCancellation(t *testing.T) {
	repo := newFakeTrxRepo()
	repo.transactions["ord-1"] = &models.Transaction{OrderID: "ord-1", Status: enum.ORDER_PENDING}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	status, err := pollService(repo).PollOrderStatus(ctx, "ord-1")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, enum.ORDER_PENDING, status)
}

func TestPollOrderStatusUnknownOrder(t *testing.T) {
	status, err := pollService(newFakeTrxRepo()).PollOrderStatus(context.Background(), "missing")
	assert.Error(t, err)
	assert.Equal(t, enum.ORDER_UNKNOWN, status)
}
