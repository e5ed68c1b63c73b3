package services

import (
	"testing"
	"time"

	"backend/models"
)

func quotationFixture() []models.Quotation {
	day := func(d int) *time.Time {
		t := time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC)
		return &t
	}
	return []models.Quotation{
		{ID: 1, Price: 5_000_000, AcceptanceDeadline: day(10), EarlyDeliveryDate: day(20), Garment: &models.GarmentProfile{Customer: "May Viet Tien", Rating: 4.5}},
		{ID: 2, Price: 4_500_000, AcceptanceDeadline: day(12), EarlyDeliveryDate: day(18), Garment: &models.GarmentProfile{Customer: "Det May Thanh Cong", Rating: 4.8}},
		{ID: 3, Price: 5_000_000, AcceptanceDeadline: day(8), EarlyDeliveryDate: day(25), Garment: &models.GarmentProfile{Customer: "May 10", Rating: 4.2}},
		{ID: 4, Price: 4_800_000, Garment: &models.GarmentProfile{Customer: "Garmex", Rating: 3.9}},
	}
}

func rankedIDs(quotations []models.Quotation) []int {
	ids := make([]int, len(quotations))
	for i, q := range quotations {
		ids[i] = q.ID
	}
	return ids
}

func equalIDs(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestRankQuotations(t *testing.T) {
	tests := []struct {
		name       string
		keys       []SortKey
		directions map[SortKey]SortDirection
		expect     []int
	}{
		{
			"no active keys keeps input order",
			nil,
			nil,
			[]int{1, 2, 3, 4},
		},
		{
			"price ascending, ties keep input order",
			[]SortKey{SortByPrice},
			map[SortKey]SortDirection{SortByPrice: SortAsc},
			[]int{2, 4, 1, 3},
		},
		{
			"price descending",
			[]SortKey{SortByPrice},
			map[SortKey]SortDirection{SortByPrice: SortDesc},
			[]int{1, 3, 4, 2},
		},
		{
			"price then deadline breaks the tie",
			[]SortKey{SortByPrice, SortByValidUntil},
			map[SortKey]SortDirection{SortByPrice: SortAsc, SortByValidUntil: SortAsc},
			[]int{2, 4, 3, 1},
		},
		{
			"rating primary descending",
			[]SortKey{SortByRating},
			map[SortKey]SortDirection{SortByRating: SortDesc},
			[]int{2, 1, 3, 4},
		},
		{
			"missing delivery date sorts as epoch",
			[]SortKey{SortByEstDelivery},
			map[SortKey]SortDirection{SortByEstDelivery: SortAsc},
			[]int{4, 2, 1, 3},
		},
		{
			"direction toggle flips only the sign",
			[]SortKey{SortByEstDelivery},
			map[SortKey]SortDirection{SortByEstDelivery: SortDesc},
			[]int{3, 1, 2, 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := quotationFixture()
			got := RankQuotations(input, tt.keys, tt.directions)
			if !equalIDs(rankedIDs(got), tt.expect) {
				t.Errorf("RankQuotations order = %v, want %v", rankedIDs(got), tt.expect)
			}
			// Input must never be reordered in place.
			if !equalIDs(rankedIDs(input), []int{1, 2, 3, 4}) {
				t.Errorf("input mutated: %v", rankedIDs(input))
			}
		})
	}
}

func TestRankQuotationsIdempotent(t *testing.T) {
	keys := []SortKey{SortByPrice, SortByRating}
	directions := map[SortKey]SortDirection{SortByPrice: SortAsc, SortByRating: SortDesc}

	once := RankQuotations(quotationFixture(), keys, directions)
	twice := RankQuotations(once, keys, directions)
	if !equalIDs(rankedIDs(once), rankedIDs(twice)) {
		t.Errorf("ranking not idempotent: %v then %v", rankedIDs(once), rankedIDs(twice))
	}
}

func TestParseSortKeys(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		expect []SortKey
	}{
		{"empty", "", nil},
		{"single", "price", []SortKey{SortByPrice}},
		{"ordered pair", "rating,price", []SortKey{SortByRating, SortByPrice}},
		{"unknown dropped", "price,bogus,estDelivery", []SortKey{SortByPrice, SortByEstDelivery}},
		{"duplicates dropped", "price,price,rating", []SortKey{SortByPrice, SortByRating}},
		{"whitespace tolerated", " price , validUntil ", []SortKey{SortByPrice, SortByValidUntil}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseSortKeys(tt.raw)
			if len(got) != len(tt.expect) {
				t.Fatalf("ParseSortKeys(%q) = %v, want %v", tt.raw, got, tt.expect)
			}
			for i := range got {
				if got[i] != tt.expect[i] {
					t.Errorf("ParseSortKeys(%q)[%d] = %q, want %q", tt.raw, i, got[i], tt.expect[i])
				}
			}
		})
	}
}

func TestParseSortDirections(t *testing.T) {
	directions := ParseSortDirections("price:desc,rating:asc,estDelivery:sideways")
	if directions[SortByPrice] != SortDesc {
		t.Errorf("price direction = %q, want desc", directions[SortByPrice])
	}
	if directions[SortByRating] != SortAsc {
		t.Errorf("rating direction = %q, want asc", directions[SortByRating])
	}
	// Anything that is not desc falls back to asc.
	if directions[SortByEstDelivery] != SortAsc {
		t.Errorf("estDelivery direction = %q, want asc", directions[SortByEstDelivery])
	}
}

func TestRankDesignQuotations(t *testing.T) {
	quotations := []models.DesignQuotation{
		{ID: 1, Price: 1_500_000, Designer: &models.GarmentProfile{Rating: 4.0}},
		{ID: 2, Price: 1_200_000, Designer: &models.GarmentProfile{Rating: 4.9}},
		{ID: 3, Price: 1_500_000},
	}

	got := RankDesignQuotations(quotations,
		[]SortKey{SortByPrice, SortByRating},
		map[SortKey]SortDirection{SortByPrice: SortAsc, SortByRating: SortDesc})

	want := []int{2, 1, 3}
	for i, q := range got {
		if q.ID != want[i] {
			t.Fatalf("RankDesignQuotations order = %v..., want %v", q.ID, want)
		}
	}
}
