package ledger

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_MarshalJSON(t *testing.T) {
	rec := Record{Name: "Coffee", Category: "Food", Amount: Money{Cents: 350}, Timestamp: ts("2024-03-31T12:00:00Z")}

	data, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.Equal(t, `{"name":"Coffee","category":"Food","amount":3.50,"timestamp":"2024-03-31T12:00:00.000Z"}`, string(data))

	var back Record
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, rec, back)
}

func TestRecord_UnmarshalJSON_AllowsEmptyStrings(t *testing.T) {
	var rec Record
	require.NoError(t, json.Unmarshal([]byte(`{"name":"","category":"","amount":0,"timestamp":"2024-01-01T00:00:00Z"}`), &rec))
	assert.Equal(t, "", rec.Name)
	assert.Equal(t, int64(0), rec.Amount.Cents)
}
