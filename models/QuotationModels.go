package models

import "time"

// Quotation is an offer submitted by a garment factory against a school order.
type Quotation struct {
	ID                 int             `json:"id" example:"1"`
	OrderID            int             `json:"orderId" example:"1"`
	Price              int64           `json:"price" example:"5000000"`
	AcceptanceDeadline *time.Time      `json:"acceptanceDeadline,omitempty"`
	EarlyDeliveryDate  *time.Time      `json:"earlyDeliveryDate,omitempty"`
	DepositRate        float64         `json:"depositRate" example:"50"`
	Note               string          `json:"note" example:"Includes embroidery"`
	Status             string          `json:"status" example:"pending"`
	Garment            *GarmentProfile `json:"garment,omitempty"`
	CreatedAt          time.Time       `json:"createdAt"`
}

// GarmentProfile is the factory summary shown beside a quotation.
type GarmentProfile struct {
	ID       int     `json:"id" example:"3"`
	Customer string  `json:"customer" example:"May Viet Tien"`
	Rating   float64 `json:"rating" example:"4.5"`
}

// DesignRequest is a school's request for a uniform design.
type DesignRequest struct {
	ID         int       `json:"id" example:"1"`
	SchoolName string    `json:"schoolName" example:"THCS Le Loi"`
	Status     string    `json:"status" example:"pending"`
	Name       string    `json:"name" example:"Summer uniform 2026"`
	Private    bool      `json:"private"`
	CreatedAt  time.Time `json:"createdAt"`
}

// DesignQuotation is a designer's offer (a "package") against a design request.
// It shares the Quotation shape; Garment here is the designer profile.
type DesignQuotation struct {
	ID                 int             `json:"id" example:"1"`
	DesignRequestID    int             `json:"designRequestId" example:"1"`
	Price              int64           `json:"price" example:"1500000"`
	AcceptanceDeadline *time.Time      `json:"acceptanceDeadline,omitempty"`
	EarlyDeliveryDate  *time.Time      `json:"earlyDeliveryDate,omitempty"`
	DepositRate        float64         `json:"depositRate" example:"50"`
	Note               string          `json:"note"`
	Status             string          `json:"status" example:"pending"`
	Designer           *GarmentProfile `json:"designer,omitempty"`
	CreatedAt          time.Time       `json:"createdAt"`
}
