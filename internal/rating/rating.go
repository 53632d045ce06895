package rating

import (
	"errors"
	"fmt"

	"github.com/AtexDEPR/Sistema-CarMotors-sub000/internal/models"
)

var (
	ErrRatingOutOfRange = errors.New("rating must be between 1 and 5")
	ErrUnknownAxis      = errors.New("unknown rating axis")
)

// Axis is one of the four dimensions a supplier is scored on.
type Axis string

const (
	AxisDelivery      Axis = "delivery"
	AxisQuality       Axis = "quality"
	AxisPrice         Axis = "price"
	AxisCommunication Axis = "communication"
)

// ParseAxis converts a raw string into an Axis.
func ParseAxis(s string) (Axis, error) {
	switch Axis(s) {
	case AxisDelivery, AxisQuality, AxisPrice, AxisCommunication:
		return Axis(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAxis, s)
	}
}

// SetRating stores a score for one axis and recomputes the derived total.
// Out-of-range values leave the evaluation untouched. Axes not yet scored
// count as 0 in the mean, matching default construction.
func SetRating(eval *models.SupplierEvaluation, axis Axis, value int) error {
	if value < 1 || value > 5 {
		return ErrRatingOutOfRange
	}
	switch axis {
	case AxisDelivery:
		eval.DeliveryRating = value
	case AxisQuality:
		eval.QualityRating = value
	case AxisPrice:
		eval.PriceRating = value
	case AxisCommunication:
		eval.CommunicationRating = value
	default:
		return ErrUnknownAxis
	}
	Recompute(eval)
	return nil
}

// Recompute derives TotalRating as the mean of the four axes. It is the only
// way TotalRating changes; the field is never assigned independently.
func Recompute(eval *models.SupplierEvaluation) {
	sum := eval.DeliveryRating + eval.QualityRating + eval.PriceRating + eval.CommunicationRating
	eval.TotalRating = float64(sum) / 4.0
}

// Validate checks all four axes before an evaluation is persisted. Any axis
// out of range rejects the whole evaluation.
func Validate(eval *models.SupplierEvaluation) error {
	for _, v := range []int{
		eval.DeliveryRating,
		eval.QualityRating,
		eval.PriceRating,
		eval.CommunicationRating,
	} {
		if v < 1 || v > 5 {
			return ErrRatingOutOfRange
		}
	}
	return nil
}

// AverageRating is the arithmetic mean of TotalRating across a supplier's
// evaluations. An empty list averages to 0.
func AverageRating(evals []models.SupplierEvaluation) float64 {
	if len(evals) == 0 {
		return 0
	}
	var sum float64
	for i := range evals {
		sum += evals[i].TotalRating
	}
	return sum / float64(len(evals))
}
