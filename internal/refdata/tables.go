package refdata

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Country is a destination country supported for international shipments
type Country struct {
	Code  string `json:"code" yaml:"code"`
	Name  string `json:"name" yaml:"name"`
	Phone string `json:"phone" yaml:"phone"`
}

// ShipmentType describes an international shipment product
type ShipmentType struct {
	Code            string `json:"code" yaml:"code"`
	Name            string `json:"name" yaml:"name"`
	MaxWeight       int    `json:"maxWeight" yaml:"maxWeight"`
	CalcType        string `json:"calcType" yaml:"calcType"`
	PackageType     string `json:"packageType" yaml:"packageType"`
	RequiresTracked bool   `json:"requiresTracked,omitempty" yaml:"requiresTracked"`
	RequiresAvia    bool   `json:"requiresAvia,omitempty" yaml:"requiresAvia"`
}

// Category is a customs category for shipment contents
type Category struct {
	Code string `json:"code" yaml:"code"`
	Name string `json:"name" yaml:"name"`
}

// ClassificationCode is a UKTZED customs classification entry
type ClassificationCode struct {
	Code        string `json:"code" yaml:"code"`
	Description string `json:"description" yaml:"description"`
}

// Tables holds all reference data served by the portal
type Tables struct {
	Countries     []Country            `yaml:"countries"`
	ShipmentTypes []ShipmentType       `yaml:"shipment_types"`
	Categories    []Category           `yaml:"categories"`
	Currencies    []string             `yaml:"currencies"`
	Codes         []ClassificationCode `yaml:"hs_codes"`
}

// HomeCountryCode is the sender's home country, used as the attachment
// origin-country default.
const HomeCountryCode = "UA"

// Defaults returns the built-in reference tables
func Defaults() *Tables {
	return &Tables{
		Countries:     defaultCountries(),
		ShipmentTypes: defaultShipmentTypes(),
		Categories:    defaultCategories(),
		Currencies:    []string{"UAH", "USD", "EUR", "GBP"},
		Codes:         defaultCodes(),
	}
}

// Load returns the built-in tables overlaid with any sections present in the
// YAML file at path. An empty path means defaults only.
func Load(path string) (*Tables, error) {
	tables := Defaults()
	if path == "" {
		return tables, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read reference data file: %w", err)
	}

	var overlay Tables
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return nil, fmt.Errorf("failed to parse reference data file: %w", err)
	}

	if len(overlay.Countries) > 0 {
		tables.Countries = overlay.Countries
	}
	if len(overlay.ShipmentTypes) > 0 {
		tables.ShipmentTypes = overlay.ShipmentTypes
	}
	if len(overlay.Categories) > 0 {
		tables.Categories = overlay.Categories
	}
	if len(overlay.Currencies) > 0 {
		tables.Currencies = overlay.Currencies
	}
	if len(overlay.Codes) > 0 {
		tables.Codes = overlay.Codes
	}

	return tables, nil
}

// CountryByCode returns the country with the given ISO code
func (t *Tables) CountryByCode(code string) (Country, bool) {
	upper := strings.ToUpper(code)
	for _, c := range t.Countries {
		if c.Code == upper {
			return c, true
		}
	}
	return Country{}, false
}

// ResolveCountryCode accepts either an ISO code or a full country name and
// returns the ISO code. Unknown values longer than two characters are
// rejected; two-letter values pass through unchanged, as the original form
// allowed codes outside the curated list.
func (t *Tables) ResolveCountryCode(value string) (string, bool) {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) == 2 {
		return strings.ToUpper(trimmed), true
	}

	for _, c := range t.Countries {
		if strings.EqualFold(c.Name, trimmed) {
			return c.Code, true
		}
	}
	return "", false
}

// CallingCode returns the phone calling code for a country code
func (t *Tables) CallingCode(code string) string {
	if c, ok := t.CountryByCode(code); ok {
		return c.Phone
	}
	return ""
}

// ShipmentTypeByCode returns the shipment type with the given code
func (t *Tables) ShipmentTypeByCode(code string) (ShipmentType, bool) {
	for _, st := range t.ShipmentTypes {
		if st.Code == code {
			return st, true
		}
	}
	return ShipmentType{}, false
}

// CalcTypeFor maps a shipment type code to its tariff calculation type,
// defaulting to SMALL_PACKAGE for unknown codes.
func (t *Tables) CalcTypeFor(code string) string {
	if st, ok := t.ShipmentTypeByCode(code); ok && st.CalcType != "" {
		return st.CalcType
	}
	return "SMALL_PACKAGE"
}

// ValidCurrency reports whether the currency is supported
func (t *Tables) ValidCurrency(currency string) bool {
	for _, c := range t.Currencies {
		if c == currency {
			return true
		}
	}
	return false
}

func defaultShipmentTypes() []ShipmentType {
	return []ShipmentType{
		{Code: "PRIME", Name: "PRIME (Експрес міжнародний)", MaxWeight: 30000, CalcType: "PRIME", PackageType: "PRIME", RequiresTracked: true, RequiresAvia: true},
		{Code: "SMALL_BAG", Name: "Small bag (Мале відправлення)", MaxWeight: 2000, CalcType: "SMALL_PACKAGE", PackageType: "SMALL_BAG"},
		{Code: "PARCEL", Name: "Parcel (Посилка)", MaxWeight: 30000, CalcType: "PARCEL", PackageType: "PARCEL"},
		{Code: "EMS", Name: "EMS Express", MaxWeight: 30000, CalcType: "EMS", PackageType: "EMS"},
		{Code: "LETTER", Name: "Letter (Лист)", MaxWeight: 500, CalcType: "LETTER", PackageType: "LETTER"},
	}
}

func defaultCategories() []Category {
	return []Category{
		{Code: "GIFT", Name: "Gift (Подарунок)"},
		{Code: "SALE_OF_GOODS", Name: "Sale of goods (Продаж товарів)"},
		{Code: "COMMERCIAL_SAMPLE", Name: "Commercial sample (Комерційний зразок)"},
		{Code: "RETURNING_GOODS", Name: "Return of goods (Повернення товару)"},
		{Code: "DOCUMENTS", Name: "Documents (Документи)"},
		{Code: "MIXED_CONTENT", Name: "Mixed content (Змішаний вміст)"},
	}
}

func defaultCountries() []Country {
	return []Country{
		{Code: "US", Name: "United States", Phone: "+1"},
		{Code: "GB", Name: "United Kingdom", Phone: "+44"},
		{Code: "DE", Name: "Germany", Phone: "+49"},
		{Code: "FR", Name: "France", Phone: "+33"},
		{Code: "PL", Name: "Poland", Phone: "+48"},
		{Code: "CA", Name: "Canada", Phone: "+1"},
		{Code: "AU", Name: "Australia", Phone: "+61"},
		{Code: "PH", Name: "Philippines", Phone: "+63"},
		{Code: "JP", Name: "Japan", Phone: "+81"},
		{Code: "CN", Name: "China", Phone: "+86"},
		{Code: "IT", Name: "Italy", Phone: "+39"},
		{Code: "ES", Name: "Spain", Phone: "+34"},
		{Code: "NL", Name: "Netherlands", Phone: "+31"},
		{Code: "BE", Name: "Belgium", Phone: "+32"},
		{Code: "AT", Name: "Austria", Phone: "+43"},
		{Code: "CH", Name: "Switzerland", Phone: "+41"},
		{Code: "CZ", Name: "Czech Republic", Phone: "+420"},
		{Code: "SK", Name: "Slovakia", Phone: "+421"},
		{Code: "HU", Name: "Hungary", Phone: "+36"},
		{Code: "RO", Name: "Romania", Phone: "+40"},
		{Code: "BG", Name: "Bulgaria", Phone: "+359"},
		{Code: "TR", Name: "Turkey", Phone: "+90"},
		{Code: "IL", Name: "Israel", Phone: "+972"},
		{Code: "AE", Name: "United Arab Emirates", Phone: "+971"},
		{Code: "KR", Name: "South Korea", Phone: "+82"},
		{Code: "SG", Name: "Singapore", Phone: "+65"},
		{Code: "MY", Name: "Malaysia", Phone: "+60"},
		{Code: "TH", Name: "Thailand", Phone: "+66"},
		{Code: "VN", Name: "Vietnam", Phone: "+84"},
		{Code: "IN", Name: "India", Phone: "+91"},
		{Code: "BR", Name: "Brazil", Phone: "+55"},
		{Code: "MX", Name: "Mexico", Phone: "+52"},
		{Code: "AR", Name: "Argentina", Phone: "+54"},
		{Code: "SE", Name: "Sweden", Phone: "+46"},
		{Code: "NO", Name: "Norway", Phone: "+47"},
		{Code: "DK", Name: "Denmark", Phone: "+45"},
		{Code: "FI", Name: "Finland", Phone: "+358"},
		{Code: "PT", Name: "Portugal", Phone: "+351"},
		{Code: "GR", Name: "Greece", Phone: "+30"},
		{Code: "IE", Name: "Ireland", Phone: "+353"},
		{Code: "NZ", Name: "New Zealand", Phone: "+64"},
	}
}

func defaultCodes() []ClassificationCode {
	return []ClassificationCode{
		{Code: "6109100000", Description: "T-shirts, singlets, vests of cotton"},
		{Code: "6109909000", Description: "T-shirts of other textile materials"},
		{Code: "6110200000", Description: "Jerseys, pullovers, cardigans of cotton"},
		{Code: "6110309000", Description: "Jerseys, pullovers of man-made fibres"},
		{Code: "6203420000", Description: "Men's trousers of cotton"},
		{Code: "6204620000", Description: "Women's trousers of cotton"},
		{Code: "6402990000", Description: "Footwear with rubber/plastic soles"},
		{Code: "6403990000", Description: "Footwear with leather uppers"},
		{Code: "4202210000", Description: "Handbags with leather surface"},
		{Code: "4202220000", Description: "Handbags with plastic surface"},
		{Code: "4202320000", Description: "Wallets, purses of leather"},
		{Code: "7113110000", Description: "Jewelry of silver"},
		{Code: "7113190000", Description: "Jewelry of other precious metal"},
		{Code: "7117190000", Description: "Imitation jewelry"},
		{Code: "8517120000", Description: "Smartphones, mobile phones"},
		{Code: "8471300000", Description: "Laptops, portable computers"},
		{Code: "8443320000", Description: "Printers, copying machines"},
		{Code: "9102110000", Description: "Wrist-watches, electronic"},
		{Code: "9102190000", Description: "Other wrist-watches"},
		{Code: "9503009000", Description: "Toys, scale models, puzzles"},
		{Code: "9504500000", Description: "Video game consoles"},
		{Code: "4901990000", Description: "Printed books, brochures"},
		{Code: "4911100000", Description: "Advertising materials, catalogues"},
		{Code: "3304990000", Description: "Cosmetics, beauty preparations"},
		{Code: "3305100000", Description: "Shampoos"},
		{Code: "3401110000", Description: "Toilet soap"},
		{Code: "6302210000", Description: "Bed linen of cotton, printed"},
		{Code: "6302310000", Description: "Bed linen of cotton, other"},
		{Code: "8523510000", Description: "USB flash drives, memory cards"},
		{Code: "8544420000", Description: "Electric cables, conductors"},
		{Code: "6505009000", Description: "Hats, headgear knitted"},
		{Code: "6116930000", Description: "Gloves of synthetic fibres"},
		{Code: "6214200000", Description: "Shawls, scarves of wool"},
		{Code: "6217100000", Description: "Clothing accessories"},
		{Code: "4202110000", Description: "Trunks, suitcases leather"},
		{Code: "4202120000", Description: "Trunks, suitcases plastic"},
		{Code: "4202190000", Description: "Other bags, cases"},
		{Code: "9608100000", Description: "Ball point pens"},
		{Code: "9608200000", Description: "Felt pens, markers"},
		{Code: "3924900000", Description: "Household plastic articles"},
		{Code: "6912000000", Description: "Ceramic tableware"},
		{Code: "7010900000", Description: "Glass containers, jars"},
		{Code: "4823909000", Description: "Paper articles"},
		{Code: "6104430000", Description: "Women's dresses of synthetic"},
		{Code: "6106100000", Description: "Women's blouses of cotton"},
		{Code: "9006590000", Description: "Film cameras, other cameras"},
		{Code: "9006530000", Description: "Cameras for 35mm film"},
		{Code: "8525800000", Description: "Digital cameras, camcorders"},
		{Code: "9002110000", Description: "Camera lenses"},
	}
}
