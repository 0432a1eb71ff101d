package booking

// Field identifies one input of the booking form.
type Field int

const (
	FieldFirstName Field = iota
	FieldLastName
	FieldEmail
	FieldPhoneNumber
	FieldCardNumber
	FieldExpirationDate
	FieldCVV
	FieldBillingAddress
	FieldCheckInDate
	FieldCheckOutDate
	FieldGuests
	FieldPropertyID

	fieldCount
)

// formatter turns raw keystroke input into the stored representation.
type formatter func(raw string) string

// fieldSpec pairs a field's wire name with its formatter. Validation rules live on the
// FormSnapshot struct tags and are keyed by the same wire name.
type fieldSpec struct {
	name     string
	format   formatter
	editable bool
}

// fieldSpecs is indexed by Field; a missing entry is caught by TestFieldSpecsComplete.
var fieldSpecs = [fieldCount]fieldSpec{
	FieldFirstName:      {name: "firstName", format: passThrough, editable: true},
	FieldLastName:       {name: "lastName", format: passThrough, editable: true},
	FieldEmail:          {name: "email", format: passThrough, editable: true},
	FieldPhoneNumber:    {name: "phoneNumber", format: passThrough, editable: true},
	FieldCardNumber:     {name: "cardNumber", format: FormatCardNumber, editable: true},
	FieldExpirationDate: {name: "expirationDate", format: passThrough, editable: true},
	FieldCVV:            {name: "cvv", format: FormatCVV, editable: true},
	FieldBillingAddress: {name: "billingAddress", format: passThrough, editable: true},
	FieldCheckInDate:    {name: "checkInDate", format: passThrough, editable: true},
	FieldCheckOutDate:   {name: "checkOutDate", format: passThrough, editable: true},
	FieldGuests:         {name: "guests", format: formatGuests, editable: true},
	FieldPropertyID:     {name: "propertyId", format: passThrough, editable: false},
}

var fieldsByName = func() map[string]Field {
	m := make(map[string]Field, fieldCount)
	for f := Field(0); f < fieldCount; f++ {
		m[fieldSpecs[f].name] = f
	}
	return m
}()

// ParseField resolves a wire name such as "cardNumber".
func ParseField(name string) (Field, bool) {
	f, ok := fieldsByName[name]
	return f, ok
}

// Fields lists every form field in display order.
func Fields() []Field {
	out := make([]Field, 0, fieldCount)
	for f := Field(0); f < fieldCount; f++ {
		out = append(out, f)
	}
	return out
}

// String returns the wire name.
func (f Field) String() string {
	if f < 0 || f >= fieldCount {
		return "unknown"
	}
	return fieldSpecs[f].name
}

// Editable reports whether user input may change the field.
func (f Field) Editable() bool {
	return f >= 0 && f < fieldCount && fieldSpecs[f].editable
}

// Format applies the field's formatter to raw input.
func (f Field) Format(raw string) string {
	if f < 0 || f >= fieldCount {
		return raw
	}
	return fieldSpecs[f].format(raw)
}
