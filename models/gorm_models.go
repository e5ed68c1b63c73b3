package models

import (
	"time"

	"gorm.io/gorm"
)

// GORM-compatible models with proper tags

// WalletGorm represents the wallets table with GORM tags
type WalletGorm struct {
	ID        uint           `gorm:"primaryKey;column:id" json:"id"`
	AccountID int            `gorm:"column:account_id;not null;uniqueIndex" json:"account_id"`
	Balance   int64          `gorm:"column:balance;not null;default:0" json:"balance"`
	CreatedAt time.Time      `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for WalletGorm
func (WalletGorm) TableName() string {
	return "wallets"
}

// PaymentTransactionGorm represents the payment_transactions table with GORM tags
type PaymentTransactionGorm struct {
	ID                uint       `gorm:"primaryKey;column:id" json:"id"`
	Reference         string     `gorm:"column:reference;not null;uniqueIndex" json:"reference"`
	AccountID         int        `gorm:"column:account_id;not null" json:"account_id"`
	QuotationID       *int       `gorm:"column:quotation_id" json:"quotation_id,omitempty"`
	DesignQuotationID *int       `gorm:"column:design_quotation_id" json:"design_quotation_id,omitempty"`
	Method            string     `gorm:"column:method;not null" json:"method"`
	Price             int64      `gorm:"column:price;not null" json:"price"`
	ServiceFee        int64      `gorm:"column:service_fee;not null" json:"service_fee"`
	Amount            int64      `gorm:"column:amount;not null" json:"amount"`
	Deposit           bool       `gorm:"column:deposit;not null;default:false" json:"deposit"`
	Status            string     `gorm:"column:status;not null;default:'processing'" json:"status"` // processing, completed, failed
	GatewayURL        string     `gorm:"column:gateway_url" json:"gateway_url,omitempty"`
	CreatedAt         time.Time  `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt         time.Time  `gorm:"column:updated_at;not null" json:"updated_at"`
	CompletedAt       *time.Time `gorm:"column:completed_at" json:"completed_at,omitempty"`
}

// TableName specifies the table name for PaymentTransactionGorm
func (PaymentTransactionGorm) TableName() string {
	return "payment_transactions"
}
