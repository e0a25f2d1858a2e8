package dto

import "time"

type BasicResponse struct {
	Ok        bool      `json:"ok"`
	Details   string    `json:"details"`
	Timestamp time.Time `json:"timestamp"`
}

func NewBasicResponse(ok bool, details string) BasicResponse {
	return BasicResponse{
		Ok:        ok,
		Details:   details,
		Timestamp: time.Now(),
	}
}

// FormErrorResponse is the re-rendered form: the submitted values plus field messages.
type FormErrorResponse struct {
	Ok     bool              `json:"ok"`
	Form   any               `json:"form"`
	Errors map[string]string `json:"errors"`
}

func NewFormErrorResponse(form any, errors map[string]string) FormErrorResponse {
	return FormErrorResponse{
		Ok:     false,
		Form:   form,
		Errors: errors,
	}
}
