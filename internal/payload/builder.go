package payload

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mustang75/ukrposhta-international-shipping/internal/domain"
	"github.com/mustang75/ukrposhta-international-shipping/internal/platform/errors"
	"github.com/mustang75/ukrposhta-international-shipping/internal/platform/middleware"
	"github.com/mustang75/ukrposhta-international-shipping/internal/refdata"
)

// RawShipmentForm mirrors the shipment creation form wire format. Attachment
// fields are parallel arrays: index i across all of them forms one row.
type RawShipmentForm struct {
	Type        string `json:"type"`
	Category    string `json:"category"`
	FullName    string `json:"fullName"`
	CallingCode string `json:"callingCode"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Country     string `json:"country"`
	Region      string `json:"region"`
	ZipCode     string `json:"zipCode"`
	City        string `json:"city"`
	Address     string `json:"address"`
	Weight      string `json:"weight"`
	Length      string `json:"length"`
	Width       string `json:"width"`
	Height      string `json:"height"`
	EUInfo      string `json:"euInfo"`

	HSCodes       []string `json:"hsCode"`
	Descriptions  []string `json:"description"`
	ItemCosts     []string `json:"itemCost"`
	ItemCurrency  []string `json:"itemCurrency"`
	ItemQty       []string `json:"itemQty"`
	ItemWeight    []string `json:"itemWeight"`
	OriginCountry []string `json:"originCountry,omitempty"`
}

// Builder assembles a validated ShipmentDraft from raw form fields. Pure
// transform: no network, the caller owns submission.
type Builder struct {
	tables   *refdata.Tables
	validate *validator.Validate
}

// NewBuilder creates a payload builder over the given reference tables
func NewBuilder(tables *refdata.Tables) *Builder {
	return &Builder{tables: tables, validate: middleware.GetValidator()}
}

// Build converts the raw form into a ShipmentDraft or a validation error.
// Every failure names the offending field, and for attachment rows the row
// number, so nothing is ever sent upstream on bad input.
func (b *Builder) Build(form *RawShipmentForm) (*domain.ShipmentDraft, *errors.AppError) {
	if form.Type == "" {
		return nil, errors.ErrValidation("shipment type is required")
	}
	if _, ok := b.tables.ShipmentTypeByCode(form.Type); !ok {
		return nil, errors.ErrValidation(fmt.Sprintf("unknown shipment type %q", form.Type))
	}
	if form.Category == "" {
		return nil, errors.ErrValidation("category is required")
	}
	if strings.TrimSpace(form.FullName) == "" {
		return nil, errors.ErrValidation("recipient name is required")
	}

	countryCode, ok := b.tables.ResolveCountryCode(form.Country)
	if !ok {
		return nil, errors.ErrValidation(fmt.Sprintf("unknown country %q", form.Country))
	}
	if strings.TrimSpace(form.City) == "" {
		return nil, errors.ErrValidation("city is required")
	}
	if strings.TrimSpace(form.Address) == "" {
		return nil, errors.ErrValidation("street address is required")
	}

	phone := buildPhone(form.CallingCode, form.Phone)
	if phone == "" {
		return nil, errors.ErrValidation("recipient phone is required")
	}

	pkg, appErr := b.buildPackage(form)
	if appErr != nil {
		return nil, appErr
	}

	attachments, appErr := b.buildAttachments(form)
	if appErr != nil {
		return nil, appErr
	}

	draft := &domain.ShipmentDraft{
		Type:     form.Type,
		Category: form.Category,
		Recipient: domain.Recipient{
			FullName: strings.TrimSpace(form.FullName),
			Phone:    phone,
			Email:    optional(form.Email),
		},
		Address: domain.DeliveryAddress{
			CountryCode: countryCode,
			City:        strings.TrimSpace(form.City),
			Street:      strings.TrimSpace(form.Address),
			Region:      optional(form.Region),
			ZipCode:     optional(form.ZipCode),
		},
		Package:     pkg,
		Attachments: attachments,
		EUInfo:      optional(form.EUInfo),
	}

	if st, ok := b.tables.ShipmentTypeByCode(form.Type); ok && pkg.Weight > st.MaxWeight {
		return nil, errors.ErrValidation(
			fmt.Sprintf("weight %dg exceeds the %dg maximum for %s", pkg.Weight, st.MaxWeight, st.Code))
	}

	if appErr := middleware.ValidateStruct(draft); appErr != nil {
		return nil, appErr
	}

	return draft, nil
}

func (b *Builder) buildPackage(form *RawShipmentForm) (domain.PackageSpec, *errors.AppError) {
	weight, appErr := parsePositiveInt(form.Weight, "weight")
	if appErr != nil {
		return domain.PackageSpec{}, appErr
	}

	length, appErr := parseDimension(form.Length, "length")
	if appErr != nil {
		return domain.PackageSpec{}, appErr
	}
	width, appErr := parseDimension(form.Width, "width")
	if appErr != nil {
		return domain.PackageSpec{}, appErr
	}
	height, appErr := parseDimension(form.Height, "height")
	if appErr != nil {
		return domain.PackageSpec{}, appErr
	}

	return domain.PackageSpec{Weight: weight, Length: length, Width: width, Height: height}, nil
}

func (b *Builder) buildAttachments(form *RawShipmentForm) ([]domain.AttachmentLine, *errors.AppError) {
	n := len(form.HSCodes)
	if n == 0 {
		return nil, errors.ErrValidation("at least one attachment row is required")
	}

	if len(form.Descriptions) != n || len(form.ItemCosts) != n ||
		len(form.ItemCurrency) != n || len(form.ItemQty) != n || len(form.ItemWeight) != n {
		return nil, errors.ErrValidation("attachment field arrays have mismatched lengths")
	}
	if len(form.OriginCountry) != 0 && len(form.OriginCountry) != n {
		return nil, errors.ErrValidation("attachment field arrays have mismatched lengths")
	}

	attachments := make([]domain.AttachmentLine, 0, n)
	for i := 0; i < n; i++ {
		row := i + 1

		code := strings.TrimSpace(form.HSCodes[i])
		if code == "" {
			return nil, rowError(row, "hsCode", "is required")
		}

		description := strings.TrimSpace(form.Descriptions[i])
		if description == "" {
			return nil, rowError(row, "description", "is required")
		}

		cost, err := strconv.ParseFloat(strings.TrimSpace(form.ItemCosts[i]), 64)
		if err != nil {
			return nil, rowError(row, "itemCost", fmt.Sprintf("%q is not a number", form.ItemCosts[i]))
		}
		if cost <= 0 {
			return nil, rowError(row, "itemCost", "must be greater than zero")
		}

		currency := strings.TrimSpace(form.ItemCurrency[i])
		if !b.tables.ValidCurrency(currency) {
			return nil, rowError(row, "itemCurrency", fmt.Sprintf("%q is not a supported currency", currency))
		}

		qty, err := strconv.Atoi(strings.TrimSpace(form.ItemQty[i]))
		if err != nil {
			return nil, rowError(row, "itemQty", fmt.Sprintf("%q is not a number", form.ItemQty[i]))
		}
		if qty < 1 {
			return nil, rowError(row, "itemQty", "must be at least 1")
		}

		weight, err := strconv.Atoi(strings.TrimSpace(form.ItemWeight[i]))
		if err != nil {
			return nil, rowError(row, "itemWeight", fmt.Sprintf("%q is not a number", form.ItemWeight[i]))
		}
		if weight < 1 {
			return nil, rowError(row, "itemWeight", "must be at least 1")
		}

		origin := refdata.HomeCountryCode
		if len(form.OriginCountry) == n {
			if v := strings.TrimSpace(form.OriginCountry[i]); v != "" {
				origin = strings.ToUpper(v)
			}
		}

		line := domain.AttachmentLine{
			HSCode:        code,
			Description:   description,
			Cost:          cost,
			Currency:      currency,
			Quantity:      qty,
			Weight:        weight,
			OriginCountry: origin,
		}
		if appErr := b.validateLine(row, line); appErr != nil {
			return nil, appErr
		}
		attachments = append(attachments, line)
	}

	return attachments, nil
}

// validateLine runs the tagged constraints over one assembled attachment so
// the error keeps its row number instead of the draft-level field path.
func (b *Builder) validateLine(row int, line domain.AttachmentLine) *errors.AppError {
	err := b.validate.Struct(line)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return errors.ErrValidation(err.Error())
	}

	fields := middleware.ValidationErrorFormatter(verrs)
	field := verrs[0].Field()
	return rowError(row, field, fields[field])
}

// buildPhone joins the calling code and the local number with no separator,
// stripping spaces and dashes from both parts.
func buildPhone(callingCode, local string) string {
	code := strings.TrimSpace(callingCode)
	number := strip(local)
	if number == "" {
		return ""
	}
	return strip(code) + number
}

func strip(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	return s
}

// optional returns nil for blank input so absent fields stay absent
func optional(s string) *string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func parsePositiveInt(s, field string) (int, *errors.AppError) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, errors.ErrValidation(field + " is required")
	}
	v, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, errors.ErrValidation(fmt.Sprintf("%s %q is not a number", field, s))
	}
	if v < 1 {
		return 0, errors.ErrValidation(field + " must be at least 1")
	}
	return v, nil
}

// parseDimension is like parsePositiveInt but defaults blanks to 10, the
// upstream API's minimum box dimension.
func parseDimension(s, field string) (int, *errors.AppError) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 10, nil
	}
	return parsePositiveInt(trimmed, field)
}

func rowError(row int, field, problem string) *errors.AppError {
	return errors.ErrValidation(fmt.Sprintf("row %d: %s %s", row, field, problem)).
		WithDetail("row", strconv.Itoa(row)).
		WithDetail("field", field)
}
