package models

import (
	"github.com/gestiloc/inventory-service/internal/utils"
)

// RatingValue is the ordinal condition scale used on every inspected
// element: 1 (very poor) to 5 (excellent).
type RatingValue int

const (
	RatingVeryPoor  RatingValue = 1
	RatingPoor      RatingValue = 2
	RatingAverage   RatingValue = 3
	RatingGood      RatingValue = 4
	RatingExcellent RatingValue = 5
)

// SeverityBand groups ratings for display and reporting.
type SeverityBand string

const (
	BandPoor    SeverityBand = "POOR"    // ratings 1-2
	BandAverage SeverityBand = "AVERAGE" // rating 3
	BandGood    SeverityBand = "GOOD"    // ratings 4-5
)

// RatingDescription is the display contract for one scale value.
type RatingDescription struct {
	Label       string       `json:"label"`
	ShortLabel  string       `json:"short_label"`
	Description string       `json:"description"`
	Band        SeverityBand `json:"band"`
}

var ratingDescriptions = map[RatingValue]RatingDescription{
	RatingVeryPoor: {
		Label:       "Très mauvais état",
		ShortLabel:  "Très mauvais",
		Description: "Élément hors d'usage ou fortement dégradé, remplacement à prévoir",
		Band:        BandPoor,
	},
	RatingPoor: {
		Label:       "Mauvais état",
		ShortLabel:  "Mauvais",
		Description: "Dégradations marquées au-delà de l'usage normal",
		Band:        BandPoor,
	},
	RatingAverage: {
		Label:       "État d'usage",
		ShortLabel:  "Moyen",
		Description: "Traces d'usage normales compte tenu de l'ancienneté",
		Band:        BandAverage,
	},
	RatingGood: {
		Label:       "Bon état",
		ShortLabel:  "Bon",
		Description: "Élément fonctionnel, usure légère",
		Band:        BandGood,
	},
	RatingExcellent: {
		Label:       "Très bon état",
		ShortLabel:  "Très bon",
		Description: "Élément neuf ou quasi neuf",
		Band:        BandGood,
	},
}

// Valid reports whether r sits inside the legal 1..5 scale.
func (r RatingValue) Valid() bool {
	return r >= RatingVeryPoor && r <= RatingExcellent
}

// DescribeRating is a pure lookup; the only failure mode is an
// out-of-range rating.
func DescribeRating(r RatingValue) (RatingDescription, error) {
	desc, ok := ratingDescriptions[r]
	if !ok {
		return RatingDescription{}, utils.NewValidationError("rating", "rating must be between 1 and 5")
	}
	return desc, nil
}
