package dialogue

import (
	"strings"

	"comanda/internal/models"
)

// defaultPickupETAMin is applied when a pickup client never states a time.
const defaultPickupETAMin = "30"

// MissingRequired returns the still-missing mandatory client fields in the
// fixed asking order: name, phone, delivery type, payment method, then
// address for delivery or pickup ETA otherwise. When the client chose pickup
// and no ETA is known, the default is filled in place and the field is not
// reported missing.
func MissingRequired(info *models.ClientInfo) []string {
	required := []string{
		models.FieldName,
		models.FieldPhone,
		models.FieldDeliveryType,
		models.FieldPaymentMethod,
	}
	if info.DeliveryType == models.DeliveryTypeDelivery {
		required = append(required, models.FieldAddress)
	} else {
		required = append(required, models.FieldPickupETAMin)
	}

	var missing []string
	for _, f := range required {
		if strings.TrimSpace(info.Field(f)) == "" {
			missing = append(missing, f)
		}
	}

	if info.DeliveryType == models.DeliveryTypePickup {
		for i, f := range missing {
			if f == models.FieldPickupETAMin {
				info.PickupETAMin = defaultPickupETAMin
				missing = append(missing[:i], missing[i+1:]...)
				break
			}
		}
	}
	return missing
}
