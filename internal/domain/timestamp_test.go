package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicketDecodesBackendPayload(t *testing.T) {
	payload := `{
		"id": 7,
		"asunto": "Impresora no funciona en Secretaría",
		"descripcion": "No imprime",
		"status": "CERRADO",
		"prioridad": "ALTA",
		"canal": "APP_MOVIL",
		"juzgadoNombre": "Juzgado Civil N° 1",
		"tecnicoNombre": "Técnico Soporte",
		"createdAt": "2025-03-01 09:15",
		"updatedAt": "2025-03-02T10:00:00",
		"closedAt": "2025-03-02 10:00"
	}`

	var ticket Ticket
	require.NoError(t, json.Unmarshal([]byte(payload), &ticket))

	assert.Equal(t, int64(7), ticket.ID)
	assert.Equal(t, TicketStatusClosed, ticket.Status)
	assert.Equal(t, TicketPriorityHigh, ticket.Priority)
	assert.True(t, ticket.Closed())
	assert.Equal(t, time.Date(2025, 3, 1, 9, 15, 0, 0, time.UTC), ticket.CreatedAt.Time)
	assert.Equal(t, "2025-03-02 10:00", ticket.UpdatedAt.String())
	assert.False(t, ticket.ClosedAt.IsZero())
}

func TestTicketNullClosedAtIsOmitted(t *testing.T) {
	var ticket Ticket
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"asunto":"x","status":"SOLICITADO","prioridad":"MEDIA","closedAt":null}`), &ticket))
	assert.True(t, ticket.ClosedAt.IsZero())

	out, err := json.Marshal(ticket)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "closedAt")
}

func TestTimestampRejectsGarbage(t *testing.T) {
	var ts Timestamp
	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &ts))
}

func TestDateRoundTrip(t *testing.T) {
	var sw Software
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"nombre":"LEX Doctor","fechaVencimiento":"2026-12-31"}`), &sw))
	assert.Equal(t, "2026-12-31", sw.ExpiresOn.String())

	out, err := json.Marshal(sw)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"fechaVencimiento":"2026-12-31"`)
}

func TestContractExpiresWithin(t *testing.T) {
	now := time.Date(2026, 1, 10, 15, 0, 0, 0, time.UTC)
	end := func(s string) Date {
		d, err := ParseDate(s)
		require.NoError(t, err)
		return d
	}

	cases := []struct {
		name string
		ends Date
		want bool
	}{
		{"ends today", end("2026-01-10"), true},
		{"ends at limit", end("2026-02-09"), true},
		{"ends after limit", end("2026-02-10"), false},
		{"already ended", end("2026-01-09"), false},
		{"no end date", Date{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := Contract{Active: true, EndsOn: tc.ends}
			assert.Equal(t, tc.want, c.ExpiresWithin(now, 30))
		})
	}
}

func TestSessionRole(t *testing.T) {
	assert.Equal(t, Role(""), Session{}.Role())
	s := Session{Token: "t", User: &User{Username: "tecnico", Role: RoleTechnician}, Status: SessionAuthenticated}
	assert.Equal(t, RoleTechnician, s.Role())
	assert.True(t, s.Authenticated())
}
