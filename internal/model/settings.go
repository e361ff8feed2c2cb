package model

// Settings is the singleton store-configuration record. The repository
// enforces the at-most-one-row invariant with read-or-create-on-write
// semantics; there is no process-wide mutable state.
type Settings struct {
	BaseModel
	StoreName    string `gorm:"type:varchar(255)" json:"store_name"`
	StoreAddress string `gorm:"type:varchar(255)" json:"store_address"`
	StoreEmail   string `gorm:"type:varchar(255)" json:"store_email"`
	StorePhone   string `gorm:"type:varchar(50)" json:"store_phone"`
	StoreLogo    string `gorm:"type:varchar(255)" json:"store_logo"`

	TaxRate  float64 `gorm:"default:0" json:"tax_rate"`
	Currency string  `gorm:"type:varchar(10);default:'Ksh'" json:"currency"`

	// The toggles carry no column default: gorm drops zero-valued fields
	// with a default tag from the INSERT, which would flip an explicit
	// false back to true on the creating write. GetOrInit supplies the
	// enabled-by-default starting values instead.
	EmailNotifications bool   `json:"email_notifications"`
	SMSNotifications   bool   `json:"sms_notifications"`
	Theme              string `gorm:"type:varchar(20);default:'light'" json:"theme"`
}
