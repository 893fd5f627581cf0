package models

import (
	"time"

	"storefront-checkout/internal/common/enum"
)

type Transaction struct {
	ID              string                         `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderID         string                         `json:"order_id" gorm:"type:varchar(100);uniqueIndex;not null"`
	CartKey         string                         `json:"cart_key" gorm:"type:varchar(64);index;not null"`
	UserID          string                         `json:"user_id" gorm:"type:varchar(64);index"`
	ProcessorID     string                         `json:"processor_id" gorm:"type:varchar(50);not null"`
	CustomerName    string                         `json:"customer_name" gorm:"type:varchar(255)"`
	CustomerEmail   string                         `json:"customer_email" gorm:"type:varchar(255)"`
	GrossAmount     int64                          `json:"gross_amount" gorm:"not null"`
	Items           JSONB                          `json:"items" gorm:"type:jsonb;not null"`
	ResponseType    enum.ProcessorResponseTypeEnum `json:"response_type" gorm:"type:varchar(20)"`
	RedirectURL     string                         `json:"redirect_url" gorm:"type:text"`
	ManualPayload   JSONB                          `json:"manual_payload" gorm:"type:jsonb"`
	ReceiptID       int64                          `json:"receipt_id"`
	Purchases       JSONB                          `json:"purchases" gorm:"type:jsonb"`
	FailedPurchases JSONB                          `json:"failed_purchases" gorm:"type:jsonb"`
	Status          enum.OrderStatusEnum           `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	CreatedAt       time.Time                      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time                      `json:"updated_at" gorm:"autoUpdateTime"`
	PaidAt          *time.Time                     `json:"paid_at"`
}

func (Transaction) TableName() string {
	return "transactions"
}
