package quote

import (
	"encoding/json"
	"fmt"
)

// priceKeys are the alternate keys a tariff backend may nest a price under
var priceKeys = []string{"deliveryPrice", "price", "totalPrice"}

// Quote is a normalized price response. Exactly one of Amount and Diagnostic
// is meaningful: when no numeric value could be extracted, Diagnostic carries
// the raw structure as an opaque string.
type Quote struct {
	Amount     float64 `json:"amount"`
	Found      bool    `json:"-"`
	Diagnostic string  `json:"diagnostic,omitempty"`
}

// Normalize reconciles the inconsistent tariff response shapes into a single
// numeric quote. It tries, in order: a bare top-level number, the known keys
// at the top level, then the same keys one level down. First numeric hit
// wins; otherwise the raw structure is surfaced as a diagnostic.
func Normalize(data any) Quote {
	if amount, ok := asNumber(data); ok {
		return Quote{Amount: amount, Found: true}
	}

	if m, ok := asMap(data); ok {
		for _, key := range priceKeys {
			if amount, ok := asNumber(m[key]); ok {
				return Quote{Amount: amount, Found: true}
			}
		}

		for _, key := range priceKeys {
			if nested, ok := asMap(m[key]); ok {
				for _, inner := range priceKeys {
					if amount, ok := asNumber(nested[inner]); ok {
						return Quote{Amount: amount, Found: true}
					}
				}
			}
		}

		// One level down under any key
		for _, v := range m {
			if nested, ok := asMap(v); ok {
				for _, inner := range priceKeys {
					if amount, ok := asNumber(nested[inner]); ok {
						return Quote{Amount: amount, Found: true}
					}
				}
			}
		}
	}

	return Quote{Diagnostic: diagnostic(data)}
}

func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func asMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

func diagnostic(data any) string {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(raw)
}
