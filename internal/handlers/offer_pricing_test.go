package handlers

import "testing"

func TestValidateOfferFieldsOfferAtOrAbovePrice(t *testing.T) {
	tests := []float64{1000, 1200}
	for _, offerPrice := range tests {
		err := validateOfferFields(1000, offerPrice)
		if err == nil {
			t.Fatalf("expected validation error for offerPrice=%v", offerPrice)
		}
	}
}

func TestValidateOfferFieldsZeroClearsOffer(t *testing.T) {
	if err := validateOfferFields(1000, 0); err != nil {
		t.Fatalf("expected no error for offerPrice=0, got %v", err)
	}
}

func TestValidateOfferFieldsNegative(t *testing.T) {
	if err := validateOfferFields(1000, -5); err == nil {
		t.Fatal("expected validation error for negative offerPrice")
	}
}

func TestEffectiveProductPriceUsesOfferWhenActive(t *testing.T) {
	if got := effectiveProductPrice(1000, 750); got != 750 {
		t.Fatalf("expected offer price 750, got %v", got)
	}
	if got := effectiveProductPrice(1000, 0); got != 1000 {
		t.Fatalf("expected regular price 1000 without offer, got %v", got)
	}
	if got := effectiveProductPrice(1000, 1200); got != 1000 {
		t.Fatalf("expected regular price 1000 when offer exceeds price, got %v", got)
	}
}

func TestResolveOfferUpdateRevalidatesAgainstNewPrice(t *testing.T) {
	// Lowering the price below the stored offer must fail.
	newPrice := 500.0
	_, err := resolveOfferUpdate(1000, 750, offerUpdateInput{Price: &newPrice})
	if err == nil {
		t.Fatal("expected error when new price drops below stored offerPrice")
	}
}

func TestResolveOfferUpdateClearOffer(t *testing.T) {
	zero := 0.0
	result, err := resolveOfferUpdate(1000, 750, offerUpdateInput{OfferPrice: &zero})
	if err != nil {
		t.Fatalf("resolveOfferUpdate returned error: %v", err)
	}
	if !result.SetOfferPrice || result.OfferPrice != 0 {
		t.Fatalf("expected offer cleared, got %+v", result)
	}
}
