package models

import (
	"time"

	"storefront-checkout/internal/common/enum"
)

// StepState is the persisted state of one generically-sequenced wizard
// step. The order-review and summary panels are not steps; their
// visibility lives in the session booleans below.
type StepState struct {
	StepID   string              `json:"step_id"`
	Status   enum.StepStatusEnum `json:"status"`
	Position int                 `json:"position"`
}

// ManagedContactField is one entry of the managed contact-details map.
type ManagedContactField struct {
	Value     string   `json:"value"`
	IsTouched bool     `json:"is_touched"`
	Errors    []string `json:"errors,omitempty"`
}

type CheckoutSession struct {
	ID             string              `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CartKey        string              `json:"cart_key" gorm:"type:varchar(64);uniqueIndex;not null"`
	Steps          JSONB               `json:"steps" gorm:"type:jsonb;not null"`
	FormStatus     enum.FormStatusEnum `json:"form_status" gorm:"type:varchar(20);not null;default:'ready'"`
	ContactDetails JSONB               `json:"contact_details" gorm:"type:jsonb"`
	ReviewOpen     bool                `json:"review_open" gorm:"not null;default:false"`
	SummaryOpen    bool                `json:"summary_open" gorm:"not null;default:false"`
	ConsentGiven   bool                `json:"consent_given" gorm:"not null;default:false"`
	IsLoggedOut    bool                `json:"is_logged_out" gorm:"not null;default:false"`
	CreatedAt      time.Time           `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time           `json:"updated_at" gorm:"autoUpdateTime"`
}

func (CheckoutSession) TableName() string {
	return "checkout_sessions"
}
