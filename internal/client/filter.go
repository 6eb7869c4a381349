package client

import (
	"strconv"
	"strings"

	"addressbook-backend/internal/domains/address/model"
)

// Filter narrows the collection against a free-text query. A numeric
// query matches the customer number exactly, so searching "7" returns
// customer 7 and not customer 70. Anything else is a case-insensitive
// substring match over the textual fields.
func Filter(addresses []model.AddressResponse, query string) []model.AddressResponse {
	query = strings.TrimSpace(query)
	if query == "" {
		return addresses
	}

	if _, err := strconv.ParseInt(query, 10, 64); err == nil {
		matched := make([]model.AddressResponse, 0)
		for _, addr := range addresses {
			if addr.CustomerNumber != nil && strconv.FormatInt(*addr.CustomerNumber, 10) == query {
				matched = append(matched, addr)
			}
		}
		return matched
	}

	needle := strings.ToLower(query)
	matched := make([]model.AddressResponse, 0)
	for _, addr := range addresses {
		if matchesText(addr, needle) {
			matched = append(matched, addr)
		}
	}
	return matched
}

func matchesText(addr model.AddressResponse, needle string) bool {
	fields := []string{
		addr.FirstName,
		addr.LastName,
		addr.Street,
		addr.Postcode,
		addr.Country,
		addr.Phone,
	}
	if addr.State != nil {
		fields = append(fields, *addr.State)
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// TotalPages reports how many pages the collection spans. An empty
// collection has zero pages.
func TotalPages(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// Paginate returns the window of addresses visible on the given
// 1-based page.
func Paginate(addresses []model.AddressResponse, page, pageSize int) []model.AddressResponse {
	if page < 1 || pageSize < 1 {
		return nil
	}
	start := (page - 1) * pageSize
	if start >= len(addresses) {
		return nil
	}
	end := start + pageSize
	if end > len(addresses) {
		end = len(addresses)
	}
	return addresses[start:end]
}
