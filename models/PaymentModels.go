package models

// Payment methods accepted by the payment URL endpoint.
const (
	PaymentMethodGateway = "gateway"
	PaymentMethodWallet  = "wallet"
)

// PaymentURLRequest asks for a redirect URL to settle a picked quotation.
// QuotationID and DesignQuotationID are mutually exclusive.
type PaymentURLRequest struct {
	Method            string `json:"method" binding:"required" example:"gateway"`
	QuotationID       int    `json:"quotationId,omitempty" example:"1"`
	DesignQuotationID int    `json:"designQuotationId,omitempty"`
	AccountID         int    `json:"accountId" binding:"required" example:"7"`
	ReturnURL         string `json:"returnUrl,omitempty" example:"https://admin.example.com/payment/result"`
}

// PaymentURLResponse carries the redirect URL the console navigates to, plus
// the breakdown it shows in the confirmation step.
type PaymentURLResponse struct {
	URL           string `json:"url"`
	Reference     string `json:"reference" example:"PAY-4f6b1c2a"`
	Price         int64  `json:"price" example:"5000000"`
	ServiceFee    int64  `json:"serviceFee" example:"100000"`
	PaymentAmount int64  `json:"paymentAmount" example:"2600000"`
	Deposit       bool   `json:"deposit"`
}

// WalletResponse is the GET /api/wallets/:account_id payload.
type WalletResponse struct {
	AccountID int   `json:"accountId" example:"7"`
	Balance   int64 `json:"balance" example:"12000000"`
}
