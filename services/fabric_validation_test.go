package services

import (
	"testing"

	"backend/models"
)

func shirtFabric() *models.Fabric {
	return &models.Fabric{ID: 1, Name: "Kate Silk", ForShirt: true, ForRegular: true}
}

func shirtSizes() []models.SizePrice {
	return []models.SizePrice{
		{EnumName: "MALE_S", Name: "Male S", Size: "S", Type: "shirt"},
		{EnumName: "FEMALE_S", Name: "Female S", Size: "S", Type: "shirt"},
		{EnumName: "MALE_M", Name: "Male M", Size: "M", Type: "shirt"},
		{EnumName: "FEMALE_M", Name: "Female M", Size: "M", Type: "shirt"},
		{EnumName: "PANTS_S", Name: "Pants S", Size: "S", Type: "pants"},
	}
}

func TestRequiredSizes(t *testing.T) {
	groups := RequiredSizes(*shirtFabric(), shirtSizes())
	if len(groups) != 2 {
		t.Fatalf("expected 2 canonical sizes, got %d", len(groups))
	}
	if len(groups["S"]) != 2 {
		t.Errorf("S variants = %d, want 2 (gender variants collapse)", len(groups["S"]))
	}
	if _, ok := groups["M"]; !ok {
		t.Errorf("M missing from required sizes")
	}
}

func TestRequiredSizesFallback(t *testing.T) {
	// No size matches the fabric's primary type: every size becomes required.
	fabric := models.Fabric{ID: 2, Name: "Twill", ForSkirt: true}
	groups := RequiredSizes(fabric, shirtSizes())
	if len(groups) != 2 {
		t.Fatalf("fallback should require all canonical sizes, got %d", len(groups))
	}
}

func TestRequiredSizesUnknownType(t *testing.T) {
	fabric := models.Fabric{ID: 3, Name: "Mystery"}
	if fabric.PrimaryType() != models.TagUnknown {
		t.Fatalf("PrimaryType = %q, want unknown", fabric.PrimaryType())
	}
	groups := RequiredSizes(fabric, shirtSizes())
	if len(groups) != 2 {
		t.Fatalf("unknown type requires all sizes, got %d groups", len(groups))
	}
}

func TestValidateFabricPrices(t *testing.T) {
	tests := []struct {
		name        string
		fabric      *models.Fabric
		entered     map[string]string
		wantValid   bool
		wantMessage string
		wantErrors  int
	}{
		{
			"no fabric selected",
			nil,
			nil,
			false,
			MsgSelectFabric,
			0,
		},
		{
			"nothing entered",
			shirtFabric(),
			map[string]string{},
			false,
			MsgCompletePrices,
			0,
		},
		{
			"partially entered",
			shirtFabric(),
			map[string]string{"MALE_S": "85.000"},
			false,
			MsgCompletePrices,
			0,
		},
		{
			"all entered and valid",
			shirtFabric(),
			map[string]string{"MALE_S": "85.000", "MALE_M": "90000"},
			true,
			MsgReadyToSubmit,
			0,
		},
		{
			"female variant satisfies the canonical size",
			shirtFabric(),
			map[string]string{"FEMALE_S": "85.000", "MALE_M": "90.000"},
			true,
			MsgReadyToSubmit,
			0,
		},
		{
			"non-numeric entry",
			shirtFabric(),
			map[string]string{"MALE_S": "abc", "MALE_M": "90.000"},
			false,
			MsgFixInvalidPrices,
			1,
		},
		{
			"below minimum",
			shirtFabric(),
			map[string]string{"MALE_S": "999", "MALE_M": "90.000"},
			false,
			MsgFixInvalidPrices,
			1,
		},
		{
			"above maximum",
			shirtFabric(),
			map[string]string{"MALE_S": "10.000.001", "MALE_M": "90.000"},
			false,
			MsgFixInvalidPrices,
			1,
		},
		{
			"exactly at both bounds",
			shirtFabric(),
			map[string]string{"MALE_S": "1.000", "MALE_M": "10.000.000"},
			true,
			MsgReadyToSubmit,
			0,
		},
		{
			"missing wins over invalid",
			shirtFabric(),
			map[string]string{"MALE_S": "abc"},
			false,
			MsgCompletePrices,
			1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateFabricPrices(tt.fabric, shirtSizes(), tt.entered)
			if got.IsValid != tt.wantValid {
				t.Errorf("IsValid = %v, want %v", got.IsValid, tt.wantValid)
			}
			if got.Message != tt.wantMessage {
				t.Errorf("Message = %q, want %q", got.Message, tt.wantMessage)
			}
			if len(got.FieldErrors) != tt.wantErrors {
				t.Errorf("FieldErrors = %v, want %d entries", got.FieldErrors, tt.wantErrors)
			}
		})
	}
}

func TestValidateFabricPricesBoundMessages(t *testing.T) {
	entered := map[string]string{"MALE_S": "999", "MALE_M": "10.000.001"}
	got := ValidateFabricPrices(shirtFabric(), shirtSizes(), entered)

	if got.FieldErrors["MALE_S"] != "Minimum price is "+FormatVND(FabricPriceMin) {
		t.Errorf("min message = %q", got.FieldErrors["MALE_S"])
	}
	if got.FieldErrors["MALE_M"] != "Maximum price is "+FormatVND(FabricPriceMax) {
		t.Errorf("max message = %q", got.FieldErrors["MALE_M"])
	}
}

func TestValidateSizePriceEntries(t *testing.T) {
	entries := []models.SizePriceEntry{
		{SizeEnumName: "MALE_S", Price: FabricPriceMin},
		{SizeEnumName: "MALE_M", Price: FabricPriceMax},
		{SizeEnumName: "MALE_L", Price: FabricPriceMin - 1},
		{SizeEnumName: "MALE_XL", Price: FabricPriceMax + 1},
		{SizeEnumName: "MALE_XXL", Price: 0},
	}

	errors := ValidateSizePriceEntries(entries)
	if len(errors) != 3 {
		t.Fatalf("expected 3 field errors, got %v", errors)
	}
	if _, ok := errors["MALE_S"]; ok {
		t.Errorf("price at minimum bound should be valid")
	}
	if _, ok := errors["MALE_M"]; ok {
		t.Errorf("price at maximum bound should be valid")
	}
	if errors["MALE_XXL"] != "Enter a valid price" {
		t.Errorf("zero price message = %q", errors["MALE_XXL"])
	}
}
