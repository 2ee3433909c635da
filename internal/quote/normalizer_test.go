package quote

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  float64
	}{
		{name: "bare number", input: 42.0, want: 42},
		{name: "bare int", input: 42, want: 42},
		{name: "deliveryPrice key", input: map[string]any{"deliveryPrice": 15.5}, want: 15.5},
		{name: "price key", input: map[string]any{"price": 100.0}, want: 100},
		{name: "totalPrice key", input: map[string]any{"totalPrice": 7.0}, want: 7},
		{
			name:  "nested under price key",
			input: map[string]any{"deliveryPrice": map[string]any{"price": 220.0}},
			want:  220,
		},
		{
			name:  "nested under arbitrary key",
			input: map[string]any{"result": map[string]any{"deliveryPrice": 360.0}},
			want:  360,
		},
		{
			name:  "first key wins",
			input: map[string]any{"deliveryPrice": 10.0, "price": 20.0},
			want:  10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := Normalize(tt.input)
			require.True(t, q.Found)
			assert.Equal(t, tt.want, q.Amount)
			assert.Empty(t, q.Diagnostic)
		})
	}
}

func TestNormalizeUnrecognizedShape(t *testing.T) {
	q := Normalize(map[string]any{"foo": "bar"})
	assert.False(t, q.Found)
	assert.JSONEq(t, `{"foo":"bar"}`, q.Diagnostic)
}

func TestNormalizeNonNumericValues(t *testing.T) {
	q := Normalize(map[string]any{"price": "15.5"})
	assert.False(t, q.Found, "string prices are not coerced")

	q = Normalize(nil)
	assert.False(t, q.Found)

	q = Normalize("oops")
	assert.False(t, q.Found)
	assert.Equal(t, `"oops"`, q.Diagnostic)
}

func TestNormalizeJSONNumber(t *testing.T) {
	q := Normalize(json.Number("33.5"))
	require.True(t, q.Found)
	assert.Equal(t, 33.5, q.Amount)
}
