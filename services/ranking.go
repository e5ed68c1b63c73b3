package services

import (
	"sort"
	"strings"
	"time"

	"backend/models"
)

// SortKey identifies one quotation ranking criterion. The console lets the
// reviewer stack keys in priority order and flip each key's direction live.
type SortKey string

const (
	SortByPrice       SortKey = "price"
	SortByValidUntil  SortKey = "validUntil"
	SortByRating      SortKey = "rating"
	SortByEstDelivery SortKey = "estDelivery"
)

// SortDirection is "asc" or "desc" per key.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// RankQuotations orders quotations by the active keys: the first key is the
// primary comparator and ties cascade to the next. Missing values compare as
// zero (epoch for dates). An empty key list returns the input order, and full
// ties keep their original relative order, so ranking is stable and
// idempotent. The input slice is never mutated.
func RankQuotations(quotations []models.Quotation, activeKeys []SortKey, directions map[SortKey]SortDirection) []models.Quotation {
	ranked := make([]models.Quotation, len(quotations))
	copy(ranked, quotations)
	if len(activeKeys) == 0 {
		return ranked
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		for _, key := range activeKeys {
			a := quotationSortValue(ranked[i], key)
			b := quotationSortValue(ranked[j], key)
			if a == b {
				continue
			}
			if directions[key] == SortDesc {
				return a > b
			}
			return a < b
		}
		return false
	})
	return ranked
}

// RankDesignQuotations applies the same multi-key ordering to designer offers.
func RankDesignQuotations(quotations []models.DesignQuotation, activeKeys []SortKey, directions map[SortKey]SortDirection) []models.DesignQuotation {
	ranked := make([]models.DesignQuotation, len(quotations))
	copy(ranked, quotations)
	if len(activeKeys) == 0 {
		return ranked
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		for _, key := range activeKeys {
			a := designQuotationSortValue(ranked[i], key)
			b := designQuotationSortValue(ranked[j], key)
			if a == b {
				continue
			}
			if directions[key] == SortDesc {
				return a > b
			}
			return a < b
		}
		return false
	})
	return ranked
}

func quotationSortValue(q models.Quotation, key SortKey) float64 {
	switch key {
	case SortByPrice:
		return float64(q.Price)
	case SortByValidUntil:
		return epochMillis(q.AcceptanceDeadline)
	case SortByRating:
		if q.Garment != nil {
			return q.Garment.Rating
		}
		return 0
	case SortByEstDelivery:
		return epochMillis(q.EarlyDeliveryDate)
	}
	return 0
}

func designQuotationSortValue(q models.DesignQuotation, key SortKey) float64 {
	switch key {
	case SortByPrice:
		return float64(q.Price)
	case SortByValidUntil:
		return epochMillis(q.AcceptanceDeadline)
	case SortByRating:
		if q.Designer != nil {
			return q.Designer.Rating
		}
		return 0
	case SortByEstDelivery:
		return epochMillis(q.EarlyDeliveryDate)
	}
	return 0
}

func epochMillis(t *time.Time) float64 {
	if t == nil {
		return 0
	}
	return float64(t.UnixMilli())
}

// ParseSortKeys reads a comma-separated sort parameter into an ordered key
// list, dropping unknown and repeated keys. An empty parameter means no
// sorting.
func ParseSortKeys(raw string) []SortKey {
	var keys []SortKey
	seen := make(map[SortKey]bool)
	for _, part := range strings.Split(raw, ",") {
		key := SortKey(strings.TrimSpace(part))
		switch key {
		case SortByPrice, SortByValidUntil, SortByRating, SortByEstDelivery:
			if !seen[key] {
				keys = append(keys, key)
				seen[key] = true
			}
		}
	}
	return keys
}

// ParseSortDirections reads a comma-separated "key:dir" parameter. Keys
// without an entry default to ascending.
func ParseSortDirections(raw string) map[SortKey]SortDirection {
	directions := make(map[SortKey]SortDirection)
	for _, part := range strings.Split(raw, ",") {
		kv := strings.SplitN(strings.TrimSpace(part), ":", 2)
		if len(kv) != 2 {
			continue
		}
		if SortDirection(kv[1]) == SortDesc {
			directions[SortKey(kv[0])] = SortDesc
		} else {
			directions[SortKey(kv[0])] = SortAsc
		}
	}
	return directions
}
