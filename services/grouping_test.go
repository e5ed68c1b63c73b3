package services

import (
	"testing"

	"backend/models"
)

func detail(size string, qty int, category, gender, garmentType string) models.OrderDetail {
	return models.OrderDetail{
		Size:     size,
		Quantity: qty,
		DeliveryItem: &models.DeliveryItem{
			DesignItem: &models.DesignItem{
				Category:     category,
				Gender:       gender,
				Type:         garmentType,
				Color:        "#FFFFFF",
				LogoPosition: "chest-left",
			},
			FrontImageURL: "front.png",
			BackImageURL:  "back.png",
		},
	}
}

func TestSortSizes(t *testing.T) {
	tests := []struct {
		name   string
		input  []string
		expect []string
	}{
		{"already sorted", []string{"S", "M", "L"}, []string{"S", "M", "L"}},
		{"mixed order", []string{"M", "S", "XL"}, []string{"S", "M", "XL"}},
		{"extended sizes", []string{"4XL", "XXL", "3XL", "XL"}, []string{"XL", "XXL", "3XL", "4XL"}},
		{"unknown sorts last", []string{"FREESIZE", "M", "S"}, []string{"S", "M", "FREESIZE"}},
		{"multiple unknowns keep order", []string{"B", "A", "S"}, []string{"S", "B", "A"}},
		{"empty", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SortSizes(tt.input)
			if len(got) != len(tt.expect) {
				t.Fatalf("SortSizes(%v) = %v, want %v", tt.input, got, tt.expect)
			}
			for i := range got {
				if got[i] != tt.expect[i] {
					t.Errorf("SortSizes(%v) = %v, want %v", tt.input, got, tt.expect)
					break
				}
			}
		})
	}
}

func TestGroupOrderItems(t *testing.T) {
	details := []models.OrderDetail{
		detail("M", 30, "regular", "boy", "shirt"),
		detail("S", 20, "regular", "boy", "shirt"),
		detail("S", 25, "regular", "boy", "pants"),
		detail("M", 15, "regular", "girl", "skirt"),
		detail("L", 10, "pe", "boy", "shirt"),
	}

	groups := GroupOrderItems(details)
	if len(groups) != 4 {
		t.Fatalf("expected 4 groups, got %d", len(groups))
	}

	// Category-major ordering, genders inside categories, types in insertion order.
	expect := []struct {
		category, gender, garmentType string
		total                         int
		categoryRowSpan               int
		genderRowSpan                 int
		firstInCategory               bool
		firstInGender                 bool
	}{
		{"regular", "boy", "shirt", 50, 3, 2, true, true},
		{"regular", "boy", "pants", 25, 3, 2, false, false},
		{"regular", "girl", "skirt", 15, 3, 1, false, true},
		{"pe", "boy", "shirt", 10, 1, 1, true, true},
	}

	for i, want := range expect {
		got := groups[i]
		if got.Category != want.category || got.Gender != want.gender || got.Type != want.garmentType {
			t.Errorf("row %d = (%s,%s,%s), want (%s,%s,%s)",
				i, got.Category, got.Gender, got.Type, want.category, want.gender, want.garmentType)
		}
		if got.TotalQuantity != want.total {
			t.Errorf("row %d total = %d, want %d", i, got.TotalQuantity, want.total)
		}
		if got.CategoryRowSpan != want.categoryRowSpan || got.IsFirstInCategory != want.firstInCategory {
			t.Errorf("row %d category span/first = %d/%v, want %d/%v",
				i, got.CategoryRowSpan, got.IsFirstInCategory, want.categoryRowSpan, want.firstInCategory)
		}
		if got.GenderRowSpan != want.genderRowSpan || got.IsFirstInGender != want.firstInGender {
			t.Errorf("row %d gender span/first = %d/%v, want %d/%v",
				i, got.GenderRowSpan, got.IsFirstInGender, want.genderRowSpan, want.firstInGender)
		}
	}

	// Sizes inside a group come out canonically ordered.
	if groups[0].Sizes[0] != "S" || groups[0].Sizes[1] != "M" {
		t.Errorf("group sizes = %v, want [S M]", groups[0].Sizes)
	}
	if groups[0].Color != "#FFFFFF" || groups[0].FrontImageURL != "front.png" {
		t.Errorf("descriptive fields not taken from first item: %+v", groups[0])
	}
}

func TestGroupOrderItemsQuantityInvariants(t *testing.T) {
	details := []models.OrderDetail{
		detail("S", 10, "regular", "boy", "shirt"),
		detail("M", 20, "regular", "boy", "shirt"),
		detail("S", 5, "pe", "girl", "shirt"),
		detail("L", 7, "", "", ""),
	}

	groups := GroupOrderItems(details)

	inputTotal := 0
	for _, d := range details {
		inputTotal += d.Quantity
	}

	groupTotal := 0
	for _, g := range groups {
		sum := 0
		for _, q := range g.Quantities {
			sum += q
		}
		if sum != g.TotalQuantity {
			t.Errorf("group (%s,%s,%s): quantities sum %d != totalQuantity %d",
				g.Category, g.Gender, g.Type, sum, g.TotalQuantity)
		}
		groupTotal += g.TotalQuantity
	}

	if groupTotal != inputTotal {
		t.Errorf("grouped total %d != input total %d", groupTotal, inputTotal)
	}
}

func TestGroupOrderItemsDefaultsAndRepeats(t *testing.T) {
	details := []models.OrderDetail{
		{Size: "M", Quantity: 10},
		{Size: "M", Quantity: 12}, // same size repeats in a group: last write wins
	}

	groups := GroupOrderItems(details)
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}

	g := groups[0]
	if g.Category != "regular" || g.Gender != "unknown" || g.Type != "item" {
		t.Errorf("default key = (%s,%s,%s), want (regular,unknown,item)", g.Category, g.Gender, g.Type)
	}
	if g.Quantities["M"] != 12 || g.TotalQuantity != 12 {
		t.Errorf("repeat size: quantity %d, total %d, want 12/12", g.Quantities["M"], g.TotalQuantity)
	}
	if len(g.Sizes) != 1 {
		t.Errorf("sizes union = %v, want single M", g.Sizes)
	}
}
