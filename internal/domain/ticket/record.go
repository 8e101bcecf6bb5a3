package ticket

import "fmt"

// Field names used when a record is stored as a cache hash. The rendering
// pipeline and the order creation path must agree on these.
const (
	FieldReference        = "reference"
	FieldName             = "name"
	FieldPhone            = "phone"
	FieldEventName        = "event_name"
	FieldDescription      = "description"
	FieldEventCoordinates = "event_coordinates"
	FieldStartDate        = "start_date"
	FieldEndDate          = "end_date"
	FieldTicketID         = "ticket_id"
	FieldTicketType       = "ticket_type"
	FieldPassword         = "password"
)

// Record is the transient ticket payload that drives receipt rendering.
// Dates are pre-formatted display strings; formatting happens at order
// creation time, not during rendering.
type Record struct {
	Reference        string `json:"reference"`
	Name             string `json:"name"`
	Phone            string `json:"phone"`
	EventName        string `json:"event_name"`
	Description      string `json:"description"`
	EventCoordinates string `json:"event_coordinates"`
	StartDate        string `json:"start_date"`
	EndDate          string `json:"end_date"`
	TicketID         string `json:"ticket_id"`
	TicketType       string `json:"ticket_type"`
	Password         string `json:"password"`
}

// FromFields builds a Record from a cache field map. Unknown fields are
// ignored, absent fields stay empty.
func FromFields(fields map[string]string) Record {
	return Record{
		Reference:        fields[FieldReference],
		Name:             fields[FieldName],
		Phone:            fields[FieldPhone],
		EventName:        fields[FieldEventName],
		Description:      fields[FieldDescription],
		EventCoordinates: fields[FieldEventCoordinates],
		StartDate:        fields[FieldStartDate],
		EndDate:          fields[FieldEndDate],
		TicketID:         fields[FieldTicketID],
		TicketType:       fields[FieldTicketType],
		Password:         fields[FieldPassword],
	}
}

// Fields returns the record as a cache field map, the inverse of FromFields.
func (r Record) Fields() map[string]string {
	return map[string]string{
		FieldReference:        r.Reference,
		FieldName:             r.Name,
		FieldPhone:            r.Phone,
		FieldEventName:        r.EventName,
		FieldDescription:      r.Description,
		FieldEventCoordinates: r.EventCoordinates,
		FieldStartDate:        r.StartDate,
		FieldEndDate:          r.EndDate,
		FieldTicketID:         r.TicketID,
		FieldTicketType:       r.TicketType,
		FieldPassword:         r.Password,
	}
}

func (r Record) field(name string) string {
	return r.Fields()[name]
}

// Validate checks that every field the variant hard-requires is present.
// It runs before any page output so a receipt is never partially emitted.
func (r Record) Validate(v Variant, protected bool) error {
	var missing []string
	for _, name := range v.RequiredFields(protected) {
		if r.field(name) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s receipt missing required fields %v", ErrRender, v, missing)
	}
	return nil
}
