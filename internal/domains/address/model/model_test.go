package model

import (
	"encoding/json"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validAddress() *Address {
	lat, lon := 51.509865, -0.118092
	state := "London"
	custNo := int64(7)
	return &Address{
		FirstName:      "John",
		LastName:       "Doe",
		Street:         "123 Elm Street",
		Postcode:       "E1 6AN",
		State:          &state,
		Country:        "United Kingdom",
		Lat:            &lat,
		Lon:            &lon,
		Phone:          "07063116133",
		CustomerNumber: &custNo,
	}
}

func TestValidateAddress(t *testing.T) {
	outOfRangeLat := 91.0
	outOfRangeLon := -180.5
	longState := make([]byte, 51)
	for i := range longState {
		longState[i] = 'x'
	}

	tests := []struct {
		name      string
		mutate    func(a *Address)
		wantField string
	}{
		{
			name:   "valid address passes",
			mutate: func(_ *Address) {},
		},
		{
			name: "optional fields may be absent",
			mutate: func(a *Address) {
				a.State = nil
				a.Lat = nil
				a.Lon = nil
				a.CustomerNumber = nil
			},
		},
		{
			name:      "missing first name",
			mutate:    func(a *Address) { a.FirstName = "" },
			wantField: "first_name",
		},
		{
			name:      "first name too short",
			mutate:    func(a *Address) { a.FirstName = "J" },
			wantField: "first_name",
		},
		{
			name:      "missing last name",
			mutate:    func(a *Address) { a.LastName = "" },
			wantField: "last_name",
		},
		{
			name:      "street too short",
			mutate:    func(a *Address) { a.Street = "ab" },
			wantField: "street",
		},
		{
			name:      "postcode too short",
			mutate:    func(a *Address) { a.Postcode = "E" },
			wantField: "postcode",
		},
		{
			name:      "state too long",
			mutate:    func(a *Address) { s := string(longState); a.State = &s },
			wantField: "state",
		},
		{
			name:      "country too short",
			mutate:    func(a *Address) { a.Country = "U" },
			wantField: "country",
		},
		{
			name:      "latitude out of range",
			mutate:    func(a *Address) { a.Lat = &outOfRangeLat },
			wantField: "lat",
		},
		{
			name:      "longitude out of range",
			mutate:    func(a *Address) { a.Lon = &outOfRangeLon },
			wantField: "lon",
		},
		{
			name:      "phone too short",
			mutate:    func(a *Address) { a.Phone = "123456789" },
			wantField: "phone",
		},
		{
			name:      "phone too long",
			mutate:    func(a *Address) { a.Phone = "1234567890123456" },
			wantField: "phone",
		},
		{
			name:      "phone with letters",
			mutate:    func(a *Address) { a.Phone = "07063ABC133" },
			wantField: "phone",
		},
		{
			name:      "missing phone",
			mutate:    func(a *Address) { a.Phone = "" },
			wantField: "phone",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr := validAddress()
			tt.mutate(addr)

			err := ValidateAddress(addr)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			verrs, ok := err.(validation.Errors)
			require.True(t, ok, "expected a validation.Errors map")
			assert.Contains(t, verrs, tt.wantField)
		})
	}
}

func TestCustomerNumberUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{name: "json number", input: `42`, want: 42},
		{name: "numeric string", input: `"42"`, want: 42},
		{name: "numeric string with spaces", input: `" 42 "`, want: 42},
		{name: "non-numeric string", input: `"abc"`, wantErr: true},
		{name: "float rejected", input: `4.2`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var n CustomerNumber
			err := json.Unmarshal([]byte(tt.input), &n)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, int64(n))
		})
	}
}

func TestCreateRequestToModel(t *testing.T) {
	custNo := CustomerNumber(3)
	req := &AddressCreateRequest{
		FirstName:      "  John ",
		LastName:       "Doe",
		Street:         "123 Elm Street",
		Postcode:       "E1 6AN",
		State:          "   ",
		Country:        "United Kingdom",
		Phone:          " 07063116133 ",
		CustomerNumber: &custNo,
	}

	addr := req.ToModel()

	assert.Equal(t, "John", addr.FirstName)
	assert.Equal(t, "07063116133", addr.Phone)
	assert.Nil(t, addr.State, "blank state becomes NULL")
	require.NotNil(t, addr.CustomerNumber)
	assert.Equal(t, int64(3), *addr.CustomerNumber)
}

func TestUpdateRequestApplyTo(t *testing.T) {
	existing := validAddress()

	newStreet := "456 Oak Lane"
	blankState := ""
	req := &AddressUpdateRequest{
		Street: &newStreet,
		State:  &blankState,
	}

	merged := req.ApplyTo(existing)

	assert.Equal(t, "456 Oak Lane", merged.Street)
	assert.Nil(t, merged.State, "explicit blank clears the state")
	assert.Equal(t, existing.FirstName, merged.FirstName, "absent fields keep stored values")
	assert.Equal(t, existing.Phone, merged.Phone)
	assert.Equal(t, "123 Elm Street", existing.Street, "existing record is not mutated")
}
