package handlers

import "fmt"

type offerUpdateInput struct {
	Price      *float64
	OfferPrice *float64
}

type offerUpdateResult struct {
	Price         float64
	OfferPrice    float64
	SetOfferPrice bool
}

// isProductOnOffer reports whether the offer price is active: set, positive
// and strictly below the regular price.
func isProductOnOffer(price, offerPrice float64) bool {
	return offerPrice > 0 && offerPrice < price
}

func effectiveProductPrice(price, offerPrice float64) float64 {
	if isProductOnOffer(price, offerPrice) {
		return offerPrice
	}
	return price
}

func validateOfferFields(price, offerPrice float64) error {
	if offerPrice == 0 {
		return nil
	}
	if offerPrice < 0 {
		return fmt.Errorf("offerPrice must be greater than 0")
	}
	if offerPrice >= price {
		return fmt.Errorf("offerPrice must be less than price")
	}
	return nil
}

// resolveOfferUpdate merges an offer-price patch against the stored values
// and re-validates the resulting pair. Setting offerPrice to 0 clears the
// offer.
func resolveOfferUpdate(existingPrice, existingOfferPrice float64, input offerUpdateInput) (offerUpdateResult, error) {
	result := offerUpdateResult{
		Price:      existingPrice,
		OfferPrice: existingOfferPrice,
	}

	if input.Price != nil {
		result.Price = *input.Price
	}
	if input.OfferPrice != nil {
		result.OfferPrice = *input.OfferPrice
		result.SetOfferPrice = true
	}

	if err := validateOfferFields(result.Price, result.OfferPrice); err != nil {
		return offerUpdateResult{}, err
	}

	return result, nil
}
