package domain

import "time"

// TransactionStatus is the tri-state outcome of a simulated payment attempt.
type TransactionStatus string

const (
	TransactionApproved TransactionStatus = "approved"
	TransactionDeclined TransactionStatus = "declined"
	TransactionFailed   TransactionStatus = "failed"
)

func (s TransactionStatus) Valid() bool {
	return s == TransactionApproved || s == TransactionDeclined || s == TransactionFailed
}

// String representation (for logging)
func (s TransactionStatus) String() string {
	return string(s)
}

// ProductSelection is the denormalized product info embedded in an order,
// captured at submission time so the order stays displayable even if the
// catalog changes later.
type ProductSelection struct {
	ProductID       string  `json:"product_id"`
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	SelectedVariant string  `json:"selected_variant,omitempty"`
	Quantity        int     `json:"quantity"`
}

// Order is the persisted record of a single checkout attempt. One record is
// created per submission regardless of outcome; records are never updated or
// deleted. Only the last 4 digits of the card number are kept, the CVV never is.
type Order struct {
	OrderNumber  string
	CustomerName string
	Email        string
	Phone        string
	Address      string
	City         string
	State        string
	ZipCode      string
	Product      ProductSelection
	Subtotal     float64
	Total        float64
	CardLast4    string
	ExpiryDate   string
	Status       TransactionStatus
	CreatedAt    time.Time
}
