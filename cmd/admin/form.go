package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"addressbook-backend/internal/domains/address/model"
)

// addressRow is the table's view of one address.
type addressRow struct {
	model.AddressResponse
}

type formAction int

const (
	formNone formAction = iota
	formSubmitted
	formCancelled
)

const (
	fieldFirstName = iota
	fieldLastName
	fieldStreet
	fieldPostcode
	fieldState
	fieldCountry
	fieldLat
	fieldLon
	fieldPhone
	fieldCustomerNumber
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"First name",
	"Last name",
	"Street",
	"Postcode",
	"State",
	"Country",
	"Latitude",
	"Longitude",
	"Phone",
	"Customer number",
}

// addressForm edits all fields of one address. Server-side validation
// is the source of truth; the form only parses the numeric fields.
type addressForm struct {
	inputs   [fieldCount]textinput.Model
	focus    int
	editID   *uuid.UUID
	localErr string
}

func newAddressForm(existing *addressRow) *addressForm {
	form := &addressForm{}
	for i := range form.inputs {
		input := textinput.New()
		input.Prompt = ""
		input.CharLimit = 100
		form.inputs[i] = input
	}
	form.inputs[fieldFirstName].Focus()

	if existing != nil {
		id := existing.ID
		form.editID = &id
		form.inputs[fieldFirstName].SetValue(existing.FirstName)
		form.inputs[fieldLastName].SetValue(existing.LastName)
		form.inputs[fieldStreet].SetValue(existing.Street)
		form.inputs[fieldPostcode].SetValue(existing.Postcode)
		if existing.State != nil {
			form.inputs[fieldState].SetValue(*existing.State)
		}
		form.inputs[fieldCountry].SetValue(existing.Country)
		if existing.Lat != nil {
			form.inputs[fieldLat].SetValue(strconv.FormatFloat(*existing.Lat, 'f', -1, 64))
		}
		if existing.Lon != nil {
			form.inputs[fieldLon].SetValue(strconv.FormatFloat(*existing.Lon, 'f', -1, 64))
		}
		form.inputs[fieldPhone].SetValue(existing.Phone)
		if existing.CustomerNumber != nil {
			form.inputs[fieldCustomerNumber].SetValue(strconv.FormatInt(*existing.CustomerNumber, 10))
		}
	}
	return form
}

func (f *addressForm) Update(msg tea.KeyMsg) (*addressForm, formAction, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		return f, formCancelled, nil
	case tea.KeyCtrlS:
		return f, formSubmitted, nil
	case tea.KeyEnter:
		if f.focus == fieldCount-1 {
			return f, formSubmitted, nil
		}
		f.setFocus(f.focus + 1)
		return f, formNone, textinput.Blink
	case tea.KeyTab, tea.KeyDown:
		f.setFocus((f.focus + 1) % fieldCount)
		return f, formNone, textinput.Blink
	case tea.KeyShiftTab, tea.KeyUp:
		f.setFocus((f.focus + fieldCount - 1) % fieldCount)
		return f, formNone, textinput.Blink
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, formNone, cmd
}

func (f *addressForm) setFocus(index int) {
	f.inputs[f.focus].Blur()
	f.focus = index
	f.inputs[f.focus].Focus()
}

func (f *addressForm) View() string {
	title := "New address"
	if f.editID != nil {
		title = "Edit address"
	}

	view := StyleTitle.Render(title) + "\n\n"
	for i, input := range f.inputs {
		label := fieldLabels[i]
		if i == f.focus {
			label = StyleTitle.Render("> " + label)
		} else {
			label = "  " + label
		}
		view += fmt.Sprintf("%s\n  %s\n", label, input.View())
	}

	view += "\n" + StyleMuted.Render("enter/tab next · ctrl+s save · esc cancel")
	if f.localErr != "" {
		view += "\n" + StyleError.Render(f.localErr)
	}
	return view
}

func (f *addressForm) value(index int) string {
	return strings.TrimSpace(f.inputs[index].Value())
}

func (f *addressForm) numericFields() (lat, lon *float64, custNo *model.CustomerNumber, err error) {
	if raw := f.value(fieldLat); raw != "" {
		v, parseErr := strconv.ParseFloat(raw, 64)
		if parseErr != nil {
			return nil, nil, nil, fmt.Errorf("latitude must be a number")
		}
		lat = &v
	}
	if raw := f.value(fieldLon); raw != "" {
		v, parseErr := strconv.ParseFloat(raw, 64)
		if parseErr != nil {
			return nil, nil, nil, fmt.Errorf("longitude must be a number")
		}
		lon = &v
	}
	if raw := f.value(fieldCustomerNumber); raw != "" {
		v, parseErr := strconv.ParseInt(raw, 10, 64)
		if parseErr != nil {
			return nil, nil, nil, fmt.Errorf("customer number must be an integer")
		}
		n := model.CustomerNumber(v)
		custNo = &n
	}
	return lat, lon, custNo, nil
}

func (f *addressForm) createRequest() (*model.AddressCreateRequest, error) {
	lat, lon, custNo, err := f.numericFields()
	if err != nil {
		return nil, err
	}
	return &model.AddressCreateRequest{
		FirstName:      f.value(fieldFirstName),
		LastName:       f.value(fieldLastName),
		Street:         f.value(fieldStreet),
		Postcode:       f.value(fieldPostcode),
		State:          f.value(fieldState),
		Country:        f.value(fieldCountry),
		Lat:            lat,
		Lon:            lon,
		Phone:          f.value(fieldPhone),
		CustomerNumber: custNo,
	}, nil
}

// updateRequest sends every field, so the form behaves like a full
// replace even though the API accepts partial updates.
func (f *addressForm) updateRequest() (*model.AddressUpdateRequest, error) {
	lat, lon, custNo, err := f.numericFields()
	if err != nil {
		return nil, err
	}
	firstName := f.value(fieldFirstName)
	lastName := f.value(fieldLastName)
	street := f.value(fieldStreet)
	postcode := f.value(fieldPostcode)
	state := f.value(fieldState)
	country := f.value(fieldCountry)
	phone := f.value(fieldPhone)

	return &model.AddressUpdateRequest{
		FirstName:      &firstName,
		LastName:       &lastName,
		Street:         &street,
		Postcode:       &postcode,
		State:          &state,
		Country:        &country,
		Lat:            lat,
		Lon:            lon,
		Phone:          &phone,
		CustomerNumber: custNo,
	}, nil
}
