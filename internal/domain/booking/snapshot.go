package booking

import (
	"strconv"
)

// FormSnapshot is the full value of every booking form field at one point in time.
// Its JSON shape is the payload sent to the booking service.
type FormSnapshot struct {
	FirstName      string `json:"firstName" validate:"notblank"`
	LastName       string `json:"lastName" validate:"notblank"`
	Email          string `json:"email" validate:"notblank,loose_email"`
	PhoneNumber    string `json:"phoneNumber" validate:"notblank"`
	CardNumber     string `json:"cardNumber" validate:"notblank,card_number"`
	ExpirationDate string `json:"expirationDate" validate:"notblank,card_expiry"`
	CVV            string `json:"cvv" validate:"notblank,cvv"`
	BillingAddress string `json:"billingAddress" validate:"notblank"`
	CheckInDate    string `json:"checkInDate" validate:"required"`
	CheckOutDate   string `json:"checkOutDate" validate:"required"`
	Guests         int    `json:"guests"`
	PropertyID     string `json:"propertyId,omitempty"`
}

// NewSnapshot returns an empty snapshot for the given property.
func NewSnapshot(propertyID string) FormSnapshot {
	return FormSnapshot{
		Guests:     defaultGuestsCount,
		PropertyID: propertyID,
	}
}

// Get returns the stored value of a field in its string form.
func (s *FormSnapshot) Get(f Field) string {
	switch f {
	case FieldFirstName:
		return s.FirstName
	case FieldLastName:
		return s.LastName
	case FieldEmail:
		return s.Email
	case FieldPhoneNumber:
		return s.PhoneNumber
	case FieldCardNumber:
		return s.CardNumber
	case FieldExpirationDate:
		return s.ExpirationDate
	case FieldCVV:
		return s.CVV
	case FieldBillingAddress:
		return s.BillingAddress
	case FieldCheckInDate:
		return s.CheckInDate
	case FieldCheckOutDate:
		return s.CheckOutDate
	case FieldGuests:
		return strconv.Itoa(s.Guests)
	case FieldPropertyID:
		return s.PropertyID
	}
	return ""
}

// set stores an already formatted value.
func (s *FormSnapshot) set(f Field, v string) {
	switch f {
	case FieldFirstName:
		s.FirstName = v
	case FieldLastName:
		s.LastName = v
	case FieldEmail:
		s.Email = v
	case FieldPhoneNumber:
		s.PhoneNumber = v
	case FieldCardNumber:
		s.CardNumber = v
	case FieldExpirationDate:
		s.ExpirationDate = v
	case FieldCVV:
		s.CVV = v
	case FieldBillingAddress:
		s.BillingAddress = v
	case FieldCheckInDate:
		s.CheckInDate = v
	case FieldCheckOutDate:
		s.CheckOutDate = v
	case FieldGuests:
		s.Guests = ParseGuests(v)
	case FieldPropertyID:
		s.PropertyID = v
	}
}

// Values returns the snapshot keyed by wire name.
func (s *FormSnapshot) Values() map[string]any {
	out := make(map[string]any, fieldCount)
	for _, f := range Fields() {
		if f == FieldGuests {
			out[f.String()] = s.Guests
			continue
		}
		out[f.String()] = s.Get(f)
	}
	return out
}
