package model

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Canonical phone rule: 10-15 digits, nothing else. The stricter 10-11
// digit variant used by one of the legacy request paths was dropped in
// favour of the persistence-level constraint.
var phonePattern = regexp.MustCompile(`^[0-9]{10,15}$`)

// CustomerNumber accepts a JSON number or a numeric string on the wire
// and normalizes both to a single integer type.
type CustomerNumber int64

func (n *CustomerNumber) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		s = strings.TrimSpace(str)
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("customer_number must be numeric, got %s", s)
	}
	*n = CustomerNumber(v)
	return nil
}

// AddressCreateRequest carries the payload for POST /addresses. The
// same shape, after merging, is what update validates, so both paths
// share one rule table.
type AddressCreateRequest struct {
	FirstName      string          `json:"first_name"`
	LastName       string          `json:"last_name"`
	Street         string          `json:"street"`
	Postcode       string          `json:"postcode"`
	State          string          `json:"state"`
	Country        string          `json:"country"`
	Lat            *float64        `json:"lat"`
	Lon            *float64        `json:"lon"`
	Phone          string          `json:"phone"`
	CustomerNumber *CustomerNumber `json:"customer_number"`
}

// ToModel converts the request to an entity. Empty optional strings
// become NULLs so the uniqueness semantics of the store stay clean.
func (r *AddressCreateRequest) ToModel() *Address {
	addr := &Address{
		FirstName: strings.TrimSpace(r.FirstName),
		LastName:  strings.TrimSpace(r.LastName),
		Street:    strings.TrimSpace(r.Street),
		Postcode:  strings.TrimSpace(r.Postcode),
		Country:   strings.TrimSpace(r.Country),
		Lat:       r.Lat,
		Lon:       r.Lon,
		Phone:     strings.TrimSpace(r.Phone),
	}
	if state := strings.TrimSpace(r.State); state != "" {
		addr.State = &state
	}
	if r.CustomerNumber != nil {
		v := int64(*r.CustomerNumber)
		addr.CustomerNumber = &v
	}
	return addr
}

// AddressUpdateRequest is the partial payload for PUT /addresses/:id.
// Supplied top-level fields replace the stored ones; absent fields are
// kept. The identifier is not part of the shape, so anything a client
// sends for it is stripped by decoding.
type AddressUpdateRequest struct {
	FirstName      *string         `json:"first_name"`
	LastName       *string         `json:"last_name"`
	Street         *string         `json:"street"`
	Postcode       *string         `json:"postcode"`
	State          *string         `json:"state"`
	Country        *string         `json:"country"`
	Lat            *float64        `json:"lat"`
	Lon            *float64        `json:"lon"`
	Phone          *string         `json:"phone"`
	CustomerNumber *CustomerNumber `json:"customer_number"`
}

// ApplyTo merges the supplied fields onto a copy of the existing
// record. The identifier and timestamps are never touched.
func (r *AddressUpdateRequest) ApplyTo(existing *Address) *Address {
	merged := *existing

	if r.FirstName != nil {
		merged.FirstName = strings.TrimSpace(*r.FirstName)
	}
	if r.LastName != nil {
		merged.LastName = strings.TrimSpace(*r.LastName)
	}
	if r.Street != nil {
		merged.Street = strings.TrimSpace(*r.Street)
	}
	if r.Postcode != nil {
		merged.Postcode = strings.TrimSpace(*r.Postcode)
	}
	if r.State != nil {
		if state := strings.TrimSpace(*r.State); state == "" {
			merged.State = nil
		} else {
			merged.State = &state
		}
	}
	if r.Country != nil {
		merged.Country = strings.TrimSpace(*r.Country)
	}
	if r.Lat != nil {
		merged.Lat = r.Lat
	}
	if r.Lon != nil {
		merged.Lon = r.Lon
	}
	if r.Phone != nil {
		phone := strings.TrimSpace(*r.Phone)
		merged.Phone = phone
	}
	if r.CustomerNumber != nil {
		v := int64(*r.CustomerNumber)
		merged.CustomerNumber = &v
	}

	return &merged
}

// ValidateAddress applies the declarative field constraints. Create
// validates the incoming record directly; update validates the merged
// record, so both paths run the identical rule set. The returned error
// is a validation.Errors map keyed by field path.
func ValidateAddress(a *Address) error {
	return validation.ValidateStruct(a,
		validation.Field(&a.FirstName,
			validation.Required.Error("First name is required"),
			validation.Length(2, 50).Error("First name must be 2-50 characters"),
		),
		validation.Field(&a.LastName,
			validation.Required.Error("Last name is required"),
			validation.Length(2, 50).Error("Last name must be 2-50 characters"),
		),
		validation.Field(&a.Street,
			validation.Required.Error("Street is required"),
			validation.Length(3, 100).Error("Street must be 3-100 characters"),
		),
		validation.Field(&a.Postcode,
			validation.Required.Error("Postcode is required"),
			validation.Length(2, 20).Error("Postcode must be 2-20 characters"),
		),
		validation.Field(&a.State,
			validation.Length(0, 50).Error("State cannot exceed 50 characters"),
		),
		validation.Field(&a.Country,
			validation.Required.Error("Country is required"),
			validation.Length(2, 50).Error("Country must be 2-50 characters"),
		),
		validation.Field(&a.Lat,
			validation.Min(-90.0).Error("Latitude must be between -90 and 90"),
			validation.Max(90.0).Error("Latitude must be between -90 and 90"),
		),
		validation.Field(&a.Lon,
			validation.Min(-180.0).Error("Longitude must be between -180 and 180"),
			validation.Max(180.0).Error("Longitude must be between -180 and 180"),
		),
		validation.Field(&a.Phone,
			validation.Required.Error("Phone number is required"),
			validation.Match(phonePattern).Error("Phone number must be 10-15 digits"),
		),
	)
}
