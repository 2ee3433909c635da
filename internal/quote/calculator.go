package quote

// Zone identifies a pricing zone
type Zone string

const (
	Zone1 Zone = "zone1" // Europe
	Zone2 Zone = "zone2" // Americas, Asia
	Zone3 Zone = "zone3" // Everything else
)

var zone1Countries = []string{
	"PL", "DE", "CZ", "SK", "HU", "RO", "BG", "AT", "CH", "BE", "NL", "FR",
	"IT", "ES", "PT", "GB", "IE", "DK", "SE", "NO", "FI", "GR", "TR",
}

var zone2Countries = []string{
	"US", "CA", "MX", "BR", "AR", "JP", "CN", "KR", "AU", "NZ", "SG", "MY",
	"TH", "VN", "IN", "IL", "AE", "PH",
}

type priceRow struct {
	zone1   float64
	zone2   float64
	zone3   float64
	per100g float64
}

// Base prices in UAH per calc type, plus the surcharge per extra 100g
var priceTable = map[string]priceRow{
	"SMALL_PACKAGE_PRIME": {zone1: 280, zone2: 380, zone3: 420, per100g: 25},
	"SMALL_PACKAGE":       {zone1: 220, zone2: 320, zone3: 360, per100g: 20},
	"PARCEL":              {zone1: 450, zone2: 650, zone3: 750, per100g: 35},
	"EMS":                 {zone1: 850, zone2: 1200, zone3: 1400, per100g: 55},
	"LETTER":              {zone1: 85, zone2: 120, zone3: 140, per100g: 10},
	"BANDEROLE":           {zone1: 150, zone2: 220, zone3: 260, per100g: 15},
}

// Estimate holds a locally calculated shipping price
type Estimate struct {
	DeliveryPrice float64 `json:"deliveryPrice"`
	Zone          Zone    `json:"zone"`
	Weight        int     `json:"weight"`
}

// ZoneFor resolves the pricing zone of a destination country
func ZoneFor(countryCode string) Zone {
	for _, c := range zone1Countries {
		if c == countryCode {
			return Zone1
		}
	}
	for _, c := range zone2Countries {
		if c == countryCode {
			return Zone2
		}
	}
	return Zone3
}

// Calculate produces a local price estimate: zone base price plus the
// per-100g surcharge for every full 100g above the first 100g. Unknown calc
// types fall back to SMALL_PACKAGE.
func Calculate(countryCode string, weight int, calcType string) Estimate {
	row, ok := priceTable[calcType]
	if !ok {
		row = priceTable["SMALL_PACKAGE"]
	}

	zone := ZoneFor(countryCode)

	var base float64
	switch zone {
	case Zone1:
		base = row.zone1
	case Zone2:
		base = row.zone2
	default:
		base = row.zone3
	}

	additional := weight - 100
	if additional < 0 {
		additional = 0
	}
	total := base + float64(additional/100)*row.per100g

	return Estimate{DeliveryPrice: total, Zone: zone, Weight: weight}
}
