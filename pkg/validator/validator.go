package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldErrors converts validator errors into per-field messages keyed by
// the JSON-ish field name. Non-validator errors map to a single "body" entry.
func FieldErrors(err error) map[string]string {
	fields := make(map[string]string)

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		fields["body"] = err.Error()
		return fields
	}

	for _, fieldError := range validationErrors {
		fields[fieldName(fieldError.Field())] = fieldErrorMessage(fieldError)
	}

	return fields
}

func FormatValidationError(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		var messages []string
		for _, fieldError := range validationErrors {
			messages = append(messages, fieldErrorMessage(fieldError))
		}
		return strings.Join(messages, "; ")
	}
	return err.Error()
}

func fieldErrorMessage(fe validator.FieldError) string {
	field := fieldName(fe.Field())

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "datetime":
		return fmt.Sprintf("%s must be a date in YYYY-MM-DD format", field)
	case "min":
		if fe.Type().String() == "string" {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Type().String() == "string" {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func fieldName(field string) string {
	fieldNames := map[string]string{
		"Name":           "name",
		"Email":          "email",
		"Phone":          "phone",
		"Password":       "password",
		"MatricNo":       "matricNo",
		"Department":     "department",
		"GraduationYear": "graduationYear",
		"Company":        "company",
		"Title":          "title",
		"Description":    "description",
		"Requirements":   "requirements",
		"Location":       "location",
		"SalaryRange":    "salaryRange",
		"Deadline":       "deadline",
		"Type":           "type",
		"ImageURL":       "imageUrl",
		"Date":           "date",
		"City":           "city",
		"StartAt":        "startAt",
		"EndAt":          "endAt",
		"Capacity":       "capacity",
	}

	if name, ok := fieldNames[field]; ok {
		return name
	}
	return field
}
