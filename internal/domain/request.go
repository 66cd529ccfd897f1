// Package domain contains core business types and interfaces.
//
// This file defines the document request form types: the fixed employee
// roster, urgency levels, form validation, and the payload forwarded to
// the workflow webhook.
package domain

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// =============================================================================
// Urgency
// =============================================================================

// Urgency is the priority of a document request. The numeric level is what
// the workflow webhook receives; the channel determines how the requester
// is contacted.
type Urgency int

const (
	UrgencyUrgent Urgency = 1 // contact by phone
	UrgencyMedium Urgency = 2 // contact by SMS
	UrgencyLow    Urgency = 3 // contact by email
)

// Valid reports whether u is one of the three known levels.
func (u Urgency) Valid() bool {
	return u >= UrgencyUrgent && u <= UrgencyLow
}

// Channel returns the contact channel associated with the urgency level.
func (u Urgency) Channel() string {
	switch u {
	case UrgencyUrgent:
		return "phone"
	case UrgencyMedium:
		return "sms"
	case UrgencyLow:
		return "email"
	default:
		return ""
	}
}

// String returns the lowercase level name. Display casing is applied at
// render time.
func (u Urgency) String() string {
	switch u {
	case UrgencyUrgent:
		return "urgent"
	case UrgencyMedium:
		return "medium"
	case UrgencyLow:
		return "low"
	default:
		return "unknown"
	}
}

// Urgencies lists the selectable urgency levels in display order.
func Urgencies() []Urgency {
	return []Urgency{UrgencyUrgent, UrgencyMedium, UrgencyLow}
}

// =============================================================================
// Employees
// =============================================================================

// Employee identifiers are a fixed roster; the form only accepts these.
var EmployeeNames = map[string]string{
	"EMP001": "Jordan Reyes",
	"EMP002": "Priya Nair",
	"EMP003": "Sam Okafor",
}

// EmployeeIDs returns the roster identifiers in stable order.
func EmployeeIDs() []string {
	return []string{"EMP001", "EMP002", "EMP003"}
}

// ValidEmployee reports whether id is on the roster.
func ValidEmployee(id string) bool {
	_, ok := EmployeeNames[id]
	return ok
}

// =============================================================================
// Form Parameters & Validation
// =============================================================================

// SubmitRequestParams carries the raw form values of a submission attempt.
// Values are kept as strings so a failed attempt can re-render the form
// exactly as the user left it.
type SubmitRequestParams struct {
	Employee string `validate:"required,employee"`
	ClientID string `validate:"required,uuid"`
	Urgency  string `validate:"required,oneof=1 2 3"`
	Request  string `validate:"required"`
}

var formValidator = newFormValidator()

func newFormValidator() *validator.Validate {
	v := validator.New()
	// Roster membership can't be expressed with the built-in tags.
	_ = v.RegisterValidation("employee", func(fl validator.FieldLevel) bool {
		return ValidEmployee(fl.Field().String())
	})
	return v
}

// fieldMessages maps struct field names to the messages rendered beneath
// the corresponding inputs.
var fieldMessages = map[string]string{
	"Employee": "Please select an employee",
	"ClientID": "Please select a client from the search results",
	"Urgency":  "Please select an urgency level",
	"Request":  "Please describe the document you need",
}

// fieldNames maps struct field names to form field names.
var fieldNames = map[string]string{
	"Employee": "employee",
	"ClientID": "client_id",
	"Urgency":  "urgency",
	"Request":  "request",
}

// Validate recomputes the full error set for a submission attempt.
// It returns nil when every field is present and well-formed, otherwise a
// ValidationError keyed by form field name.
func (p SubmitRequestParams) Validate() error {
	const op = "request.validate"

	checked := p
	checked.Request = strings.TrimSpace(p.Request)

	err := formValidator.Struct(checked)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return Internal(err, op, "form validation failed")
	}

	ve := &ValidationError{Op: op, Fields: make(map[string]string)}
	for _, fe := range verrs {
		field, ok := fieldNames[fe.StructField()]
		if !ok {
			field = strings.ToLower(fe.StructField())
		}
		msg, ok := fieldMessages[fe.StructField()]
		if !ok {
			msg = "This field is invalid"
		}
		ve.Fields[field] = msg
	}
	return ve
}

// ParsedUrgency converts the form's urgency string to its numeric level.
// Only meaningful after Validate has passed.
func (p SubmitRequestParams) ParsedUrgency() Urgency {
	switch p.Urgency {
	case "1":
		return UrgencyUrgent
	case "2":
		return UrgencyMedium
	case "3":
		return UrgencyLow
	default:
		return 0
	}
}

// =============================================================================
// Webhook Payload
// =============================================================================

// SubmissionPayload is the JSON document POSTed to the workflow webhook.
type SubmissionPayload struct {
	Employee  string `json:"employee"`
	Client    Client `json:"client"`
	Urgency   int    `json:"urgency"`
	Request   string `json:"request"`
	Timestamp string `json:"timestamp"` // ISO-8601, generated at send time
}

// NewSubmissionPayload assembles the webhook payload for a validated
// submission. The timestamp is generated here, at send time.
func NewSubmissionPayload(employee string, client Client, urgency Urgency, request string, now time.Time) SubmissionPayload {
	return SubmissionPayload{
		Employee:  employee,
		Client:    client,
		Urgency:   int(urgency),
		Request:   strings.TrimSpace(request),
		Timestamp: now.UTC().Format(time.RFC3339),
	}
}

// =============================================================================
// Submission Audit Record
// =============================================================================

// DocumentRequest is the audit record of a successfully forwarded
// submission.
type DocumentRequest struct {
	ID          uuid.UUID
	Employee    string
	ClientID    uuid.UUID
	Urgency     Urgency
	RequestText string
	SubmittedAt time.Time
}

// RecordRequestParams contains parameters for recording a forwarded
// submission.
type RecordRequestParams struct {
	Employee    string
	ClientID    uuid.UUID
	Urgency     Urgency
	RequestText string
	SubmittedAt time.Time
}
