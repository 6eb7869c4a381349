package model

import (
	"time"

	"github.com/google/uuid"
)

// Address is the sole persistent entity: one customer's contact and
// location data. Phone and customer number are unique across the
// collection; the (lat, lon) pair is an advisory uniqueness check only.
type Address struct {
	ID uuid.UUID `json:"id" db:"id"`

	FirstName string `json:"first_name" db:"first_name"`
	LastName  string `json:"last_name" db:"last_name"`

	Street   string  `json:"street" db:"street"`
	Postcode string  `json:"postcode" db:"postcode"`
	State    *string `json:"state,omitempty" db:"state"`
	Country  string  `json:"country" db:"country"`

	Lat *float64 `json:"lat,omitempty" db:"lat"`
	Lon *float64 `json:"lon,omitempty" db:"lon"`

	Phone          string `json:"phone" db:"phone"`
	CustomerNumber *int64 `json:"customer_number,omitempty" db:"customer_number"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// AddressResponse is the full public representation of an address.
type AddressResponse struct {
	ID             uuid.UUID `json:"id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Street         string    `json:"street"`
	Postcode       string    `json:"postcode"`
	State          *string   `json:"state,omitempty"`
	Country        string    `json:"country"`
	Lat            *float64  `json:"lat,omitempty"`
	Lon            *float64  `json:"lon,omitempty"`
	Phone          string    `json:"phone"`
	CustomerNumber *int64    `json:"customer_number,omitempty"`
}

// CustomerProjection is the reduced shape returned by the phone lookup.
// It deliberately omits phone and customer_number.
type CustomerProjection struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Street    string    `json:"street"`
	Postcode  string    `json:"postcode"`
	State     *string   `json:"state,omitempty"`
	Country   string    `json:"country"`
	Lat       *float64  `json:"lat,omitempty"`
	Lon       *float64  `json:"lon,omitempty"`
}

func (a *Address) ToResponse() *AddressResponse {
	return &AddressResponse{
		ID:             a.ID,
		FirstName:      a.FirstName,
		LastName:       a.LastName,
		Street:         a.Street,
		Postcode:       a.Postcode,
		State:          a.State,
		Country:        a.Country,
		Lat:            a.Lat,
		Lon:            a.Lon,
		Phone:          a.Phone,
		CustomerNumber: a.CustomerNumber,
	}
}

func (a *Address) ToProjection() *CustomerProjection {
	return &CustomerProjection{
		ID:        a.ID,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Street:    a.Street,
		Postcode:  a.Postcode,
		State:     a.State,
		Country:   a.Country,
		Lat:       a.Lat,
		Lon:       a.Lon,
	}
}
