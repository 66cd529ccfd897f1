package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitRequestParams_Validate(t *testing.T) {
	validID := uuid.NewString()

	tests := []struct {
		name       string
		params     SubmitRequestParams
		wantFields []string
	}{
		{
			name: "all fields valid",
			params: SubmitRequestParams{
				Employee: "EMP002",
				ClientID: validID,
				Urgency:  "1",
				Request:  "Need W-9",
			},
			wantFields: nil,
		},
		{
			name:       "all fields empty",
			params:     SubmitRequestParams{},
			wantFields: []string{"employee", "client_id", "urgency", "request"},
		},
		{
			name: "unknown employee",
			params: SubmitRequestParams{
				Employee: "EMP999",
				ClientID: validID,
				Urgency:  "2",
				Request:  "Contract copy",
			},
			wantFields: []string{"employee"},
		},
		{
			name: "missing client",
			params: SubmitRequestParams{
				Employee: "EMP001",
				Urgency:  "3",
				Request:  "Invoice",
			},
			wantFields: []string{"client_id"},
		},
		{
			name: "client id not a uuid",
			params: SubmitRequestParams{
				Employee: "EMP001",
				ClientID: "c1",
				Urgency:  "3",
				Request:  "Invoice",
			},
			wantFields: []string{"client_id"},
		},
		{
			name: "urgency out of range",
			params: SubmitRequestParams{
				Employee: "EMP001",
				ClientID: validID,
				Urgency:  "4",
				Request:  "Invoice",
			},
			wantFields: []string{"urgency"},
		},
		{
			name: "whitespace-only request text",
			params: SubmitRequestParams{
				Employee: "EMP001",
				ClientID: validID,
				Urgency:  "2",
				Request:  "   \t\n  ",
			},
			wantFields: []string{"request"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()

			if len(tt.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Len(t, ve.Fields, len(tt.wantFields))
			for _, field := range tt.wantFields {
				assert.Contains(t, ve.Fields, field)
				assert.NotEmpty(t, ve.Fields[field])
			}
		})
	}
}

func TestSubmitRequestParams_Validate_RecomputesWholesale(t *testing.T) {
	// A second attempt with one field fixed must drop that field's error
	// and keep the remaining ones.
	params := SubmitRequestParams{Urgency: "2"}

	var ve *ValidationError
	require.ErrorAs(t, params.Validate(), &ve)
	assert.NotContains(t, ve.Fields, "urgency")
	assert.Contains(t, ve.Fields, "employee")

	params.Employee = "EMP003"
	require.ErrorAs(t, params.Validate(), &ve)
	assert.NotContains(t, ve.Fields, "employee")
	assert.Contains(t, ve.Fields, "client_id")
	assert.Contains(t, ve.Fields, "request")
}

func TestUrgency_String(t *testing.T) {
	assert.Equal(t, "urgent", UrgencyUrgent.String())
	assert.Equal(t, "medium", UrgencyMedium.String())
	assert.Equal(t, "low", UrgencyLow.String())
	assert.Equal(t, "unknown", Urgency(9).String())
}

func TestUrgency_Channel(t *testing.T) {
	tests := []struct {
		urgency Urgency
		channel string
	}{
		{UrgencyUrgent, "phone"},
		{UrgencyMedium, "sms"},
		{UrgencyLow, "email"},
		{Urgency(0), ""},
		{Urgency(4), ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.channel, tt.urgency.Channel())
	}
}

func TestSubmitRequestParams_ParsedUrgency(t *testing.T) {
	assert.Equal(t, UrgencyUrgent, SubmitRequestParams{Urgency: "1"}.ParsedUrgency())
	assert.Equal(t, UrgencyMedium, SubmitRequestParams{Urgency: "2"}.ParsedUrgency())
	assert.Equal(t, UrgencyLow, SubmitRequestParams{Urgency: "3"}.ParsedUrgency())
	assert.Equal(t, Urgency(0), SubmitRequestParams{Urgency: "urgent"}.ParsedUrgency())
}

func TestNewSubmissionPayload(t *testing.T) {
	client := Client{
		ID:      uuid.New(),
		Name:    "Acme Co",
		Email:   "a@acme.com",
		Company: "Acme",
	}
	now := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	payload := NewSubmissionPayload("EMP002", client, UrgencyUrgent, "  Need W-9  ", now)

	assert.Equal(t, "EMP002", payload.Employee)
	assert.Equal(t, client, payload.Client)
	assert.Equal(t, 1, payload.Urgency)
	assert.Equal(t, "Need W-9", payload.Request)
	assert.Equal(t, "2026-03-14T09:26:53Z", payload.Timestamp)

	// Timestamp must round-trip as ISO-8601.
	_, err := time.Parse(time.RFC3339, payload.Timestamp)
	assert.NoError(t, err)
}

func TestSubmissionPayload_JSONShape(t *testing.T) {
	client := Client{ID: uuid.New(), Name: "Acme Co", Email: "a@acme.com", Company: "Acme"}
	payload := NewSubmissionPayload("EMP002", client, UrgencyUrgent, "Need W-9", time.Now())

	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.ElementsMatch(t,
		[]string{"employee", "client", "urgency", "request", "timestamp"},
		keys(decoded),
	)

	// Urgency is forwarded as a number, not a string.
	assert.Equal(t, float64(1), decoded["urgency"])

	clientObj, ok := decoded["client"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Acme Co", clientObj["name"])
	assert.Equal(t, "a@acme.com", clientObj["email"])
	assert.Equal(t, "Acme", clientObj["company"])
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func TestClient_Label(t *testing.T) {
	c := Client{Name: "Acme Co", Company: "Acme"}
	assert.Equal(t, "Acme Co (Acme)", c.Label())

	c.Company = ""
	assert.Equal(t, "Acme Co", c.Label())
}

func TestValidEmployee(t *testing.T) {
	for _, id := range EmployeeIDs() {
		assert.True(t, ValidEmployee(id))
	}
	assert.False(t, ValidEmployee("EMP004"))
	assert.False(t, ValidEmployee(""))
}
