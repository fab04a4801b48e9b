package internal

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type ErrorType string

const (
	ErrorTypeValidation ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound   ErrorType = "NOT_FOUND"
	ErrorTypeConflict   ErrorType = "CONFLICT"
	ErrorTypeInternal   ErrorType = "INTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed    ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidEmail        ErrorCode = "INVALID_EMAIL"
	ErrCodeInvalidGender       ErrorCode = "INVALID_GENDER"
	ErrCodeInvalidDate         ErrorCode = "INVALID_DATE"
	ErrCodeInvalidSkillLevel   ErrorCode = "INVALID_SKILL_LEVEL"
	ErrCodeInvalidImageOrder   ErrorCode = "INVALID_IMAGE_ORDER"
	ErrCodeInvalidFilePath     ErrorCode = "INVALID_FILE_PATH"
	ErrCodeWorkstationInactive ErrorCode = "WORKSTATION_INACTIVE"
	ErrCodeInvalidRequest      ErrorCode = "INVALID_REQUEST"

	ErrCodeEmployeeNotFound    ErrorCode = "EMPLOYEE_NOT_FOUND"
	ErrCodeWorkstationNotFound ErrorCode = "WORKSTATION_NOT_FOUND"
	ErrCodeSkillNotFound       ErrorCode = "SKILL_NOT_FOUND"
	ErrCodeImageNotFound       ErrorCode = "IMAGE_NOT_FOUND"

	ErrCodePlacementConflict ErrorCode = "PLACEMENT_CONFLICT"
	ErrCodeEmailTaken        ErrorCode = "EMAIL_TAKEN"
	ErrCodeDeskNumberTaken   ErrorCode = "DESK_NUMBER_TAKEN"
	ErrCodeSkillNameTaken    ErrorCode = "SKILL_NAME_TAKEN"
	ErrCodeImagePathTaken    ErrorCode = "IMAGE_PATH_TAKEN"
)

type AppError struct {
	Type       ErrorType   `json:"type"`
	Code       ErrorCode   `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	StatusCode int         `json:"-"`
	Cause      error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Details != nil {
		if validationErrors, ok := e.Details.(ValidationErrors); ok && len(validationErrors.Errors) > 0 {
			return validationErrors.Errors[0].Message
		}
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) GetDetailedMessage() string {
	if e.Details != nil {
		if validationErrors, ok := e.Details.(ValidationErrors); ok {
			if len(validationErrors.Errors) == 1 {
				return validationErrors.Errors[0].Message
			} else if len(validationErrors.Errors) > 1 {
				messages := make([]string, len(validationErrors.Errors))
				for i, err := range validationErrors.Errors {
					messages[i] = err.Message
				}
				return strings.Join(messages, "; ")
			}
		}
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches on Type and Code so that copies carrying details or a cause
// still match the package-level sentinels.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type && e.Code == t.Code
}

func (e *AppError) WithCause(cause error) *AppError {
	cp := *e
	cp.Cause = cause
	return &cp
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	cp := *e
	cp.Details = details
	return &cp
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewValidationFieldError(field, message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       ErrCodeValidationFailed,
		Message:    "Validation failed",
		StatusCode: http.StatusBadRequest,
		Details: ValidationErrors{
			Errors: []ValidationError{
				{Field: field, Message: message, Code: string(code)},
			},
		},
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       "INTERNAL_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

func NewConflictError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

var (
	ErrEmployeeNotFound    = NewNotFoundError("Employee not found", ErrCodeEmployeeNotFound)
	ErrWorkstationNotFound = NewNotFoundError("Workstation not found", ErrCodeWorkstationNotFound)
	ErrSkillNotFound       = NewNotFoundError("Skill not found", ErrCodeSkillNotFound)
	ErrImageNotFound       = NewNotFoundError("Image not found", ErrCodeImageNotFound)

	ErrEmailTaken      = NewConflictError("Email is already used by another employee", ErrCodeEmailTaken)
	ErrDeskNumberTaken = NewConflictError("Desk number is already used by another workstation", ErrCodeDeskNumberTaken)
	ErrSkillNameTaken  = NewConflictError("Skill name already exists", ErrCodeSkillNameTaken)
	ErrImagePathTaken  = NewConflictError("File is already used by another image", ErrCodeImagePathTaken)

	ErrWorkstationInactive = NewValidationError("Workstation is not active", ErrCodeWorkstationInactive)
)

func IsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

type Response struct {
	Error *AppError `json:"error"`
}

func (e *AppError) ToHTTPResponse() (int, interface{}) {
	return e.StatusCode, Response{Error: e}
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType   `json:"type"`
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}
