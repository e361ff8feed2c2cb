package model

import "github.com/google/uuid"

const TransactionCompleted = "Completed"

// Transaction is an immutable ledger entry for one completed sale. Entries
// are append-only: no update or delete path exists, and all reporting derives
// from them.
type Transaction struct {
	BaseModel
	CashierID uuid.UUID `gorm:"type:uuid;not null;index" json:"cashier_id"`
	Cashier   *User     `gorm:"foreignKey:CashierID" json:"cashier,omitempty"`

	Items []TransactionItem `gorm:"foreignKey:TransactionID" json:"items"`

	// Invariant: TotalAmount and Profit equal the sums over Items.
	TotalAmount float64 `gorm:"not null" json:"total_amount"`
	Profit      float64 `gorm:"not null" json:"profit"`

	// Free-form label; cash, mpesa and bank get their own report buckets.
	PaymentMethod string `gorm:"type:varchar(30)" json:"payment_method"`
	Status        string `gorm:"type:varchar(20);default:'Completed'" json:"status"`
}

// TransactionItem is one product/quantity/price line within a ledger entry.
// Price and CostPrice are snapshots taken at sale time; the catalog may drift
// afterwards without affecting past entries.
type TransactionItem struct {
	BaseModel
	TransactionID uuid.UUID `gorm:"type:uuid;not null;index" json:"transaction_id"`

	ProductID *uuid.UUID `gorm:"type:uuid" json:"product_id,omitempty"`
	Product   *Product   `gorm:"foreignKey:ProductID" json:"product,omitempty"`

	// ProductName is snapshotted so reports survive product deletion.
	ProductName string `gorm:"type:varchar(255)" json:"product_name"`

	Quantity  int     `gorm:"not null" json:"quantity"`
	Price     float64 `gorm:"not null" json:"price"`
	CostPrice float64 `json:"cost_price"`

	// Invariant: TotalAmount = Quantity*Price, Profit = (Price-CostPrice)*Quantity.
	TotalAmount float64 `gorm:"not null" json:"total_amount"`
	Profit      float64 `json:"profit"`
}
