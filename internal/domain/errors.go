//go:generate go run github.com/abice/go-enum@v0.5.6 --marshal --sql

package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ENUM(unknown, bad_param, missing_param, already_registered, not_found, invalid_credentials, forbidden)
type ApiErrorType int

type ApiError struct {
	Type    ApiErrorType
	Details []string
}

func (res ApiError) Description() string {
	switch res.Type {
	case ApiErrorTypeBadParam:
		return "A validation error occurred"
	case ApiErrorTypeMissingParam:
		return "A required parameter is missing"
	case ApiErrorTypeAlreadyRegistered:
		return "A user with this email or nickname is already registered"
	case ApiErrorTypeNotFound:
		return "The requested resource does not exist"
	case ApiErrorTypeInvalidCredentials:
		return "Incorrect email or password"
	case ApiErrorTypeForbidden:
		return "Operation not permitted"
	default:
		return "An unknown error occurred"
	}
}

func (res ApiError) MarshalJSON() ([]byte, error) {
	details := res.Details
	if details == nil {
		details = []string{}
	}
	return json.Marshal(struct {
		Type        ApiErrorType `json:"error"`
		Description string       `json:"error_description"`
		Details     []string     `json:"error_details"`
	}{
		Type:        res.Type,
		Description: res.Description(),
		Details:     details,
	})
}

func (res *ApiError) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type    ApiErrorType `json:"error"`
		Details []string     `json:"error_details"`
	}
	err := json.Unmarshal(data, &raw)
	if err != nil {
		return err
	}
	res.Type = raw.Type
	res.Details = raw.Details
	return nil
}

func (res ApiError) Error() string {
	return fmt.Sprintf("%s: %s\n%s", res.Type, res.Description(), strings.Join(res.Details, "\n"))
}
