package models

import "time"

// Order is a school's uniform production order as listed in the admin console.
type Order struct {
	ID           int           `json:"id" example:"1"`
	SchoolName   string        `json:"schoolName" example:"THPT Nguyen Du"`
	Status       string        `json:"status" example:"pending"`
	Deadline     *time.Time    `json:"deadline,omitempty"`
	Price        int64         `json:"price" example:"5000000"`
	ServiceFee   int64         `json:"serviceFee" example:"100000"`
	DepositRate  float64       `json:"depositRate" example:"50"`
	CreatedAt    time.Time     `json:"createdAt"`
	OrderDetails []OrderDetail `json:"orderDetails,omitempty"`
}

// OrderDetail is one size/quantity line of an order.
type OrderDetail struct {
	ID           int           `json:"id" example:"10"`
	Size         string        `json:"size" example:"S"`
	Quantity     int           `json:"quantity" example:"40"`
	DeliveryItem *DeliveryItem `json:"deliveryItem,omitempty"`
}

// DeliveryItem carries the design artifacts attached to an order line.
type DeliveryItem struct {
	DesignItem     *DesignItem `json:"designItem,omitempty"`
	BaseLogoHeight float64     `json:"baseLogoHeight" example:"8"`
	BaseLogoWidth  float64     `json:"baseLogoWidth" example:"8"`
	FrontImageURL  string      `json:"frontImageUrl"`
	BackImageURL   string      `json:"backImageUrl"`
}

// DesignItem describes the garment a delivery item belongs to.
type DesignItem struct {
	Category     string `json:"category" example:"regular"`
	Gender       string `json:"gender" example:"boy"`
	Type         string `json:"type" example:"shirt"`
	Color        string `json:"color" example:"#FFFFFF"`
	LogoPosition string `json:"logoPosition" example:"chest-left"`
}

// GroupedItem is a derived aggregation row for the merged-cell order table.
// One row per (category, gender, type); the rowspan metadata tells the console
// how many rows share the category/gender cell so it can merge them.
type GroupedItem struct {
	Category      string         `json:"category"`
	Gender        string         `json:"gender"`
	Type          string         `json:"type"`
	Sizes         []string       `json:"sizes"`
	Quantities    map[string]int `json:"quantities"`
	TotalQuantity int            `json:"totalQuantity"`
	Color         string         `json:"color"`
	LogoPosition  string         `json:"logoPosition"`
	FrontImageURL string         `json:"frontImageUrl"`
	BackImageURL  string         `json:"backImageUrl"`

	IsFirstInCategory bool `json:"isFirstInCategory"`
	CategoryRowSpan   int  `json:"categoryRowSpan"`
	IsFirstInGender   bool `json:"isFirstInGender"`
	GenderRowSpan     int  `json:"genderRowSpan"`
}

// OrderDetailResponse is the GET /api/orders/:id payload.
type OrderDetailResponse struct {
	Order        Order         `json:"order"`
	GroupedItems []GroupedItem `json:"groupedItems"`
}
