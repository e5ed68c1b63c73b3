package models

// Type and category tags derived from fabric membership flags. A fabric with no
// true flag in a group reports TagUnknown so callers never deal with an empty set.
const (
	TagShirt   = "shirt"
	TagPants   = "pants"
	TagSkirt   = "skirt"
	TagRegular = "regular"
	TagPE      = "pe"
	TagUnknown = "unknown"
)

// Fabric represents one catalog fabric. The boolean flags define membership in
// one or more garment types (shirt/pants/skirt) and uniform categories
// (regular/physical-education); a fabric may belong to several at once.
type Fabric struct {
	ID          int         `json:"id" example:"1"`
	Name        string      `json:"name" example:"Kate Silk"`
	Description string      `json:"description" example:"Breathable blend for shirts"`
	ForShirt    bool        `json:"forShirt"`
	ForPants    bool        `json:"forPants"`
	ForSkirt    bool        `json:"forSkirt"`
	ForRegular  bool        `json:"forRegular"`
	ForPE       bool        `json:"forPE"`
	Sizes       []SizePrice `json:"sizes,omitempty"`
}

// Types returns the garment-type tags in shirt, pants, skirt order.
func (f Fabric) Types() []string {
	var types []string
	if f.ForShirt {
		types = append(types, TagShirt)
	}
	if f.ForPants {
		types = append(types, TagPants)
	}
	if f.ForSkirt {
		types = append(types, TagSkirt)
	}
	if len(types) == 0 {
		return []string{TagUnknown}
	}
	return types
}

// Categories returns the uniform-category tags.
func (f Fabric) Categories() []string {
	var categories []string
	if f.ForRegular {
		categories = append(categories, TagRegular)
	}
	if f.ForPE {
		categories = append(categories, TagPE)
	}
	if len(categories) == 0 {
		return []string{TagUnknown}
	}
	return categories
}

// PrimaryType is the first true type flag in shirt, pants, skirt order.
// Size-price requirements are keyed off this type.
func (f Fabric) PrimaryType() string {
	return f.Types()[0]
}

// SizePrice is one gender-specific size row with its fitting ranges. Grouping
// by Size collapses the male/female variants into a single canonical size.
type SizePrice struct {
	EnumName  string `json:"enumName" example:"MALE_S"`
	Name      string `json:"name" example:"Male S"`
	Size      string `json:"size" example:"S"`
	Price     int64  `json:"price" example:"85000"`
	MinHeight int    `json:"minHeight" example:"150"`
	MaxHeight int    `json:"maxHeight" example:"160"`
	MinWeight int    `json:"minWeight" example:"40"`
	MaxWeight int    `json:"maxWeight" example:"50"`
	Type      string `json:"type" example:"shirt"`
}

// FabricListResponse splits the catalog into fabrics the garment factory has
// not priced yet and fabrics it already sells.
type FabricListResponse struct {
	NonPrice []Fabric `json:"nonPrice"`
	HasPrice []Fabric `json:"hasPrice"`
}

// UpdateFabricPricesRequest is the PUT body for a garment factory's fabric
// price matrix.
type UpdateFabricPricesRequest struct {
	Fabrics []FabricPriceUpdate `json:"fabrics" binding:"required"`
}

type FabricPriceUpdate struct {
	FabricID   int              `json:"fabricId" binding:"required" example:"1"`
	SizePrices []SizePriceEntry `json:"sizePrices" binding:"required"`
}

type SizePriceEntry struct {
	SizeEnumName string `json:"sizeEnumName" binding:"required" example:"MALE_S"`
	Price        int64  `json:"price" binding:"required" example:"85000"`
}
