package services

import (
	"sort"

	"backend/models"
)

// canonicalSizeOrder is the fixed display order for uniform sizes.
var canonicalSizeOrder = []string{"S", "M", "L", "XL", "XXL", "3XL", "4XL", "5XL"}

// Group key defaults for order lines missing design metadata.
const (
	defaultCategory = "regular"
	defaultGender   = "unknown"
	defaultType     = "item"
)

// SizeOrderIndex returns the canonical position of a size. Unknown sizes get
// len(canonicalSizeOrder) so they sort after every known size instead of
// scattering to the front.
func SizeOrderIndex(size string) int {
	for i, s := range canonicalSizeOrder {
		if s == size {
			return i
		}
	}
	return len(canonicalSizeOrder)
}

// SortSizes returns the sizes in canonical order (S, M, L, XL, XXL, 3XL, 4XL,
// 5XL), unknown sizes last in their original relative order.
func SortSizes(sizes []string) []string {
	sorted := make([]string, len(sizes))
	copy(sorted, sizes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return SizeOrderIndex(sorted[i]) < SizeOrderIndex(sorted[j])
	})
	return sorted
}

// GroupOrderItems aggregates order lines by (category, gender, garment type)
// for the merged-cell order table. Within a group it unions the distinct
// sizes, maps size to quantity (same-size entries should not repeat within a
// group in well-formed input; the last one wins), sums the total quantity and
// takes the descriptive fields from the first line seen. Rows come out
// grouped by category in first-seen order, then by gender within the
// category, then by type insertion order; each row carries the rowspan
// metadata for its category and gender blocks.
func GroupOrderItems(details []models.OrderDetail) []models.GroupedItem {
	type genderBlock struct {
		gender string
		groups []*models.GroupedItem
	}
	type categoryBlock struct {
		category string
		genders  []*genderBlock
	}

	var categories []*categoryBlock
	categoryIndex := make(map[string]*categoryBlock)
	genderIndex := make(map[string]*genderBlock)
	groupIndex := make(map[string]*models.GroupedItem)

	for _, detail := range details {
		category, gender, garmentType := defaultCategory, defaultGender, defaultType
		var item *models.DesignItem
		if detail.DeliveryItem != nil {
			item = detail.DeliveryItem.DesignItem
		}
		if item != nil {
			if item.Category != "" {
				category = item.Category
			}
			if item.Gender != "" {
				gender = item.Gender
			}
			if item.Type != "" {
				garmentType = item.Type
			}
		}

		groupKey := category + "|" + gender + "|" + garmentType
		group, ok := groupIndex[groupKey]
		if !ok {
			group = &models.GroupedItem{
				Category:   category,
				Gender:     gender,
				Type:       garmentType,
				Quantities: make(map[string]int),
			}
			if item != nil {
				group.Color = item.Color
				group.LogoPosition = item.LogoPosition
			}
			if detail.DeliveryItem != nil {
				group.FrontImageURL = detail.DeliveryItem.FrontImageURL
				group.BackImageURL = detail.DeliveryItem.BackImageURL
			}
			groupIndex[groupKey] = group

			cat, ok := categoryIndex[category]
			if !ok {
				cat = &categoryBlock{category: category}
				categoryIndex[category] = cat
				categories = append(categories, cat)
			}
			genderKey := category + "|" + gender
			gen, ok := genderIndex[genderKey]
			if !ok {
				gen = &genderBlock{gender: gender}
				genderIndex[genderKey] = gen
				cat.genders = append(cat.genders, gen)
			}
			gen.groups = append(gen.groups, group)
		}

		if old, exists := group.Quantities[detail.Size]; exists {
			group.TotalQuantity -= old
		} else {
			group.Sizes = append(group.Sizes, detail.Size)
		}
		group.Quantities[detail.Size] = detail.Quantity
		group.TotalQuantity += detail.Quantity
	}

	var rows []models.GroupedItem
	for _, cat := range categories {
		categoryRows := 0
		for _, gen := range cat.genders {
			categoryRows += len(gen.groups)
		}
		firstInCategory := true
		for _, gen := range cat.genders {
			firstInGender := true
			for _, group := range gen.groups {
				row := *group
				row.Sizes = SortSizes(row.Sizes)
				row.IsFirstInCategory = firstInCategory
				row.CategoryRowSpan = categoryRows
				row.IsFirstInGender = firstInGender
				row.GenderRowSpan = len(gen.groups)
				rows = append(rows, row)
				firstInCategory = false
				firstInGender = false
			}
		}
	}
	return rows
}
