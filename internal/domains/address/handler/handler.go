package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	a "addressbook-backend/internal/domains/address"
	"addressbook-backend/internal/domains/address/model"
	"addressbook-backend/internal/domains/address/service"
	"addressbook-backend/internal/shared/response"
)

type AddressHandler struct {
	service service.ServiceInterface
}

func NewAddressHandler(service service.ServiceInterface) *AddressHandler {
	return &AddressHandler{
		service: service,
	}
}

// CreateAddress handles POST /addresses
func (h *AddressHandler) CreateAddress(c *gin.Context) {
	var req model.AddressCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, a.NewValidationError([]a.FieldViolation{{Path: "body", Message: err.Error()}}))
		return
	}

	result, err := h.service.CreateAddress(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Address created successfully", result)
}

// ListAddresses handles GET /addresses?search=
func (h *AddressHandler) ListAddresses(c *gin.Context) {
	results, err := h.service.ListAddresses(c.Request.Context(), c.Query("search"))
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", results)
}

// GetAddressByID handles GET /addresses/:id
func (h *AddressHandler) GetAddressByID(c *gin.Context) {
	id, ok := addressID(c)
	if !ok {
		return
	}

	result, err := h.service.GetAddressByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", result)
}

// UpdateAddress handles PUT /addresses/:id
func (h *AddressHandler) UpdateAddress(c *gin.Context) {
	id, ok := addressID(c)
	if !ok {
		return
	}

	var req model.AddressUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, a.NewValidationError([]a.FieldViolation{{Path: "body", Message: err.Error()}}))
		return
	}

	result, err := h.service.UpdateAddress(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Address updated successfully", result)
}

// DeleteAddress handles DELETE /addresses/:id
func (h *AddressHandler) DeleteAddress(c *gin.Context) {
	id, ok := addressID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteAddress(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Address deleted successfully", nil)
}

// GetByPhone handles GET /addresses/phone/:phone
func (h *AddressHandler) GetByPhone(c *gin.Context) {
	result, err := h.service.GetAddressByPhone(c.Request.Context(), c.Param("phone"))
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", result)
}

// GetByCustomerNumber handles GET /addresses/customer_number/:customer_number
func (h *AddressHandler) GetByCustomerNumber(c *gin.Context) {
	raw := c.Param("customer_number")
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		// A non-numeric number can never match a record.
		respondError(c, &a.DomainError{
			Code:    a.CodeAddressNotFound,
			Message: fmt.Sprintf("Customer not found for customer number %s", raw),
		})
		return
	}

	result, err := h.service.GetAddressByCustomerNumber(c.Request.Context(), n)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", result)
}

// respondError delegates every failure to the error normalizer and
// writes the resulting envelope. Unexpected failures are logged with
// their cause; the client only sees the generic message.
func respondError(c *gin.Context, err error) {
	statusCode, message, details := a.MapErrorToHTTP(err)

	if statusCode == http.StatusInternalServerError {
		log.Error().
			Err(err).
			Str("request_id", c.GetString("request_id")).
			Str("path", c.Request.URL.Path).
			Msg("request failed")
	}

	if details != nil {
		response.Error(c, statusCode, message, details)
		return
	}
	response.Error(c, statusCode, message, nil)
}

// addressID parses the :id route param; a malformed id is rejected
// before the service is involved.
func addressID(c *gin.Context) (uuid.UUID, bool) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		respondError(c, a.NewInvalidAddressID(idStr))
		return uuid.Nil, false
	}
	return id, true
}
