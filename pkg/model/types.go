package model

// FieldID identifies one input of the form.
type FieldID string

const (
	FieldName    FieldID = "name"
	FieldDOB     FieldID = "dob"
	FieldGender  FieldID = "gender"
	FieldEmail   FieldID = "email"
	FieldPhone   FieldID = "phone"
	FieldAddress FieldID = "address"
)

// Fields returns every field identifier in display order.
func Fields() []FieldID {
	return []FieldID{FieldName, FieldDOB, FieldGender, FieldEmail, FieldPhone, FieldAddress}
}

// Valid reports whether id is one of the known field identifiers.
func (id FieldID) Valid() bool {
	for _, field := range Fields() {
		if field == id {
			return true
		}
	}
	return false
}

// Label returns the human readable label used in summaries.
func (id FieldID) Label() string {
	switch id {
	case FieldName:
		return "Name"
	case FieldDOB:
		return "Date of Birth"
	case FieldGender:
		return "Gender"
	case FieldEmail:
		return "Email"
	case FieldPhone:
		return "Phone"
	case FieldAddress:
		return "Address"
	default:
		return string(id)
	}
}

// FormData is the flat record persisted under a single storage key. The zero
// value is the default record.
type FormData struct {
	Name    string `json:"name"`
	DOB     string `json:"dob"`
	Gender  string `json:"gender"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Get returns the value stored for field, or "" for unknown identifiers.
func (d FormData) Get(field FieldID) string {
	switch field {
	case FieldName:
		return d.Name
	case FieldDOB:
		return d.DOB
	case FieldGender:
		return d.Gender
	case FieldEmail:
		return d.Email
	case FieldPhone:
		return d.Phone
	case FieldAddress:
		return d.Address
	default:
		return ""
	}
}

// Set writes value into field. Unknown identifiers are ignored.
func (d *FormData) Set(field FieldID, value string) {
	switch field {
	case FieldName:
		d.Name = value
	case FieldDOB:
		d.DOB = value
	case FieldGender:
		d.Gender = value
	case FieldEmail:
		d.Email = value
	case FieldPhone:
		d.Phone = value
	case FieldAddress:
		d.Address = value
	}
}

// Empty reports whether every field holds the default value.
func (d FormData) Empty() bool {
	return d == FormData{}
}

// SummaryItem is one labelled row of the read-only review panel.
type SummaryItem struct {
	Field FieldID `json:"field"`
	Label string  `json:"label"`
	Value string  `json:"value"`
}

// Summary lists every field of a record in display order.
type Summary []SummaryItem

// Summary builds the review rows straight from the record.
func (d FormData) Summary() Summary {
	fields := Fields()
	out := make(Summary, 0, len(fields))
	for _, field := range fields {
		out = append(out, SummaryItem{
			Field: field,
			Label: field.Label(),
			Value: d.Get(field),
		})
	}
	return out
}
