package mockapi

import "time"

// gorm rows emulating the real backend's state. This store belongs to the
// mock service only; the orchestrator itself never persists anything.

type Session struct {
	ID          string    `gorm:"type:char(36);primaryKey" json:"id"`
	CountryCode string    `gorm:"type:char(2);not null" json:"countryCode"`
	State       string    `gorm:"type:varchar(32)" json:"state"`
	Currency    string    `gorm:"type:char(3);not null" json:"currency"`
	Purchased   bool      `gorm:"not null;default:false" json:"purchased"`
	CreatedAt   time.Time `gorm:"type:datetime(3);not null" json:"-"`
	UpdatedAt   time.Time `gorm:"type:datetime(3);not null" json:"-"`
}

func (Session) TableName() string { return "sessions" }

type Cart struct {
	ID          string     `gorm:"type:varchar(64);primaryKey" json:"id"`
	SessionID   string     `gorm:"type:char(36);not null;index:ix_carts_session_id" json:"sessionId"`
	Paid        bool       `gorm:"not null;default:false" json:"paid"`
	PaidPayload *string    `gorm:"type:text" json:"-"`
	Items       []CartItem `gorm:"foreignKey:CartID" json:"items"`
	CreatedAt   time.Time  `gorm:"type:datetime(3);not null" json:"-"`
	UpdatedAt   time.Time  `gorm:"type:datetime(3);not null" json:"-"`
}

func (Cart) TableName() string { return "carts" }

type CartItem struct {
	ID          string  `gorm:"type:char(36);primaryKey" json:"-"`
	CartID      string  `gorm:"type:varchar(64);not null;index:ix_cart_items_cart_id" json:"-"`
	ProductID   string  `gorm:"type:char(36);not null" json:"productId"`
	ProductName string  `gorm:"type:varchar(255);not null" json:"productName"`
	Price       float64 `gorm:"not null" json:"price"`
	Quantity    int     `gorm:"not null" json:"quantity"`
}

func (CartItem) TableName() string { return "cart_items" }

type Payment struct {
	ID          string    `gorm:"type:char(36);primaryKey" json:"id"`
	ReferenceID string    `gorm:"type:char(36);not null;index:ix_payments_reference_id" json:"referenceId"`
	Provider    string    `gorm:"type:varchar(64);not null" json:"provider"`
	ChargeID    string    `gorm:"type:varchar(128)" json:"chargeId"`
	CreatedAt   time.Time `gorm:"type:datetime(3);not null" json:"-"`
}

func (Payment) TableName() string { return "payments" }

type Charge struct {
	ID       string  `gorm:"type:char(36);primaryKey" json:"id"`
	OrderID  string  `gorm:"type:varchar(128);not null;index:ix_charges_order_id" json:"orderId"`
	Provider string  `gorm:"type:varchar(64);not null" json:"provider"`
	Amount   float64 `gorm:"not null" json:"amount"`
	Currency string  `gorm:"type:char(3);not null" json:"currency"`
	Status   string  `gorm:"type:varchar(32);not null" json:"status"`

	CreatedAt time.Time `gorm:"type:datetime(3);not null" json:"-"`
}

func (Charge) TableName() string { return "charges" }
