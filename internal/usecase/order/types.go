package order

import "time"

const (
	PaymentPending   = "PENDING"
	PaymentPaid      = "PAID"
	PaymentCancelled = "CANCELLED"

	MethodCash     = "CASH"
	MethodTransfer = "TRANSFER"

	WorkNotStarted = "NOT_STARTED"
	WorkCompleted  = "COMPLETED"
	WorkCancelled  = "CANCELLED"
)

// Customer carries the order's buyer record. CompanyName, TaxCode and
// CompanyAddress are mandatory only when the order has VAT.
type Customer struct {
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	Address        string `json:"address,omitempty"`
	BuyerName      string `json:"buyerName,omitempty"`
	CompanyName    string `json:"companyName,omitempty"`
	TaxCode        string `json:"taxCode,omitempty"`
	CompanyAddress string `json:"companyAddress,omitempty"`
	SocialLink     string `json:"socialLink,omitempty"`
}

// Item is a committed line item. STT is the 1-based sequence number
// stamped at commit.
type Item struct {
	ID        string  `json:"id"`
	STT       int     `json:"stt"`
	Service   string  `json:"service"`
	Quantity  int     `json:"quantity"`
	UnitPrice int64   `json:"unitPrice"`
	Note      string  `json:"note"`
	ProductID *string `json:"productId,omitempty"`
	Image     *string `json:"image,omitempty"`
}

// Order is created exactly once, at commit. Only payment status,
// payment method and work status mutate afterwards.
type Order struct {
	ID            string    `json:"id"`
	CreatedAt     time.Time `json:"createdAt"`
	Customer      Customer  `json:"customer"`
	Items         []Item    `json:"items"`
	SubTotal      int64     `json:"subTotal"`
	VAT           int64     `json:"vat"`
	Total         int64     `json:"total"`
	HasVat        bool      `json:"hasVat"`
	PaymentStatus string    `json:"paymentStatus"`
	WorkStatus    string    `json:"workStatus"`
	PaymentMethod string    `json:"paymentMethod"`
	EmployeeID    string    `json:"employeeId"`
}

// CommitInput is the validated-draft snapshot handed to Commit.
type CommitInput struct {
	Items      []Item   `json:"items"`
	HasVat     bool     `json:"hasVat"`
	Customer   Customer `json:"customer"`
	EmployeeID string   `json:"-"`
}

type UpdateStatusInput struct {
	Status string `json:"status"`
}

type UpdateMethodInput struct {
	Method string `json:"method"`
}
