package order

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type ValidationError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

// ValidationErrors is returned by Begin when required fields are empty.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	parts := make([]string, len(v))
	for i, e := range v {
		parts[i] = e.Description
	}
	return "order: " + strings.Join(parts, "; ")
}

// ValidateForm checks that the required fields are filled in and that the
// quantity is not above MaxQuantity. Formats such as email are not checked.
func ValidateForm(f Form) ValidationErrors {
	errs := ValidationErrors{}
	if strings.TrimSpace(f.Name) == "" {
		errs = append(errs, ValidationError{Field: "customer_name", Description: "Name is required"})
	}
	if strings.TrimSpace(f.Email) == "" {
		errs = append(errs, ValidationError{Field: "customer_email", Description: "Email is required"})
	}
	if strings.TrimSpace(f.Phone) == "" {
		errs = append(errs, ValidationError{Field: "customer_phone", Description: "Phone is required"})
	}
	if strings.TrimSpace(f.Address) == "" {
		errs = append(errs, ValidationError{Field: "customer_address", Description: "Address is required"})
	}
	if quantityTooLarge(f.Quantity) {
		errs = append(errs, ValidationError{Field: "quantity", Description: fmt.Sprintf("Quantity must be at most %d", MaxQuantity)})
	}
	return errs
}

func quantityTooLarge(raw string) bool {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return errors.Is(err, strconv.ErrRange) && !strings.HasPrefix(strings.TrimSpace(raw), "-")
	}
	return n > MaxQuantity
}
