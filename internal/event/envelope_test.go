package event

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	id := int64(42)
	env := New(TypeUpdated, "USA", Payload{
		EmployeeID:    &id,
		ChangedFields: []string{"salary"},
	})

	assert.Equal(t, TypeUpdated, env.EventType)
	assert.Equal(t, "USA", env.Country)
	assert.NotEmpty(t, env.EventID)
	assert.WithinDuration(t, time.Now(), env.Timestamp, time.Minute)

	other := New(TypeUpdated, "USA", Payload{})
	assert.NotEqual(t, env.EventID, other.EventID, "event IDs must be globally unique")
}

func TestValidate(t *testing.T) {
	env := New(TypeCreated, "Germany", Payload{})
	require.NoError(t, env.Validate())

	env.Country = ""
	assert.ErrorIs(t, env.Validate(), ErrNoCountry)
}

func TestRoundTrip(t *testing.T) {
	id := int64(7)
	env := New(TypeDeleted, "USA", Payload{
		EmployeeID: &id,
		Employee: map[string]any{
			"id":      float64(7),
			"name":    "Jane",
			"country": "USA",
		},
	})

	data, err := env.Marshal()
	require.NoError(t, err)

	got, err := Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, env.EventID, got.EventID)
	assert.Equal(t, env.EventType, got.EventType)
	assert.Equal(t, env.Country, got.Country)
	require.NotNil(t, got.Data.EmployeeID)
	assert.Equal(t, id, *got.Data.EmployeeID)
	assert.Equal(t, "Jane", got.Data.Employee["name"])
}

// The wire shape is shared with the HR-side producer; field names are part
// of the contract and must not drift.
func TestWireShape(t *testing.T) {
	env := New(TypeCreated, "USA", Payload{})
	data, err := env.Marshal()
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))

	for _, key := range []string{"event_type", "event_id", "timestamp", "country", "data"} {
		assert.Contains(t, raw, key)
	}

	var payload map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw["data"], &payload))
	for _, key := range []string{"employee_id", "changed_fields", "employee"} {
		assert.Contains(t, payload, key)
	}
}

func TestUnmarshalRejectsGarbage(t *testing.T) {
	_, err := Unmarshal([]byte(`{not json`))
	assert.Error(t, err)
}

// Envelopes produced before the country field became required still arrive;
// they decode fine and fail Validate instead of Unmarshal.
func TestUnmarshalWithoutCountry(t *testing.T) {
	env, err := Unmarshal([]byte(`{"event_type":"EmployeeUpdated","event_id":"x","data":{}}`))
	require.NoError(t, err)
	assert.ErrorIs(t, env.Validate(), ErrNoCountry)
}
