package core

// error_messages.go maps errors to user-facing messages with a support code.
//
// Sentinel and typed errors are matched first with errors.Is / errors.As.
// Anything else falls back to case-insensitive substring patterns over the
// error text, first match wins.
//
//	VAL001  Required field is empty            (*ValidationError)
//	VAL002  Required column missing from CSV   (*MissingColumnsError)
//	NF001   Record not found                   (ErrNotFound)
//	DUP001  Value already exists               (ErrAlreadyExists, "duplicate key")
//	FILE001 File exceeds size limit            (ErrFileTooLarge, "request body too large")
//	FILE002 File is not valid CSV              (*CSVError)
//	FILE003 No file selected                   (ErrNoFile)
//	FILE004 File has no header row             (ErrEmptyFile)
//	UPL001  Too many imports running           (ErrTooManyUploads)
//	DB001   Database unreachable               ("connection refused", "connection reset")
//	DB002   Operation timed out                ("timeout", context.DeadlineExceeded)
//	ERR000  Anything else

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var (
	msgNotFound = UserMessage{
		Message: "The requested record does not exist",
		Action:  "It may have been deleted. Go back to the list and try again",
		Code:    "NF001",
	}
	msgAlreadyExists = UserMessage{
		Message: "This value already exists",
		Action:  "Use the existing entry instead",
		Code:    "DUP001",
	}
	msgMissingColumn = UserMessage{
		Message: "Required column is missing from CSV",
		Action:  "Check that the header row contains every required column",
		Code:    "VAL002",
	}
	msgFileTooLarge = UserMessage{
		Message: "File exceeds maximum size limit",
		Action:  "Split the file into smaller chunks",
		Code:    "FILE001",
	}
	msgInvalidCSV = UserMessage{
		Message: "File is not a valid CSV",
		Action:  "Ensure file is comma-separated with a header row",
		Code:    "FILE002",
	}
	msgNoFile = UserMessage{
		Message: "No file was selected",
		Action:  "Please select a CSV file to upload",
		Code:    "FILE003",
	}
	msgEmptyFile = UserMessage{
		Message: "The uploaded file is empty",
		Action:  "Please upload a CSV file with a header row",
		Code:    "FILE004",
	}
	msgBusy = UserMessage{
		Message: "Too many imports in progress",
		Action:  "Please wait a moment and try again",
		Code:    "UPL001",
	}
	msgTimeout = UserMessage{
		Message: "Operation timed out",
		Action:  "Please try again later",
		Code:    "DB002",
	}
)

var errorPatterns = []errorPattern{
	{pattern: "duplicate key", msg: msgAlreadyExists},
	{pattern: "request body too large", msg: msgFileTooLarge},
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Unable to connect to database",
			Action:  "Please try again in a few moments",
			Code:    "DB001",
		},
	},
	{
		pattern: "connection reset",
		msg: UserMessage{
			Message: "Database connection was interrupted",
			Action:  "Please try again",
			Code:    "DB001",
		},
	},
	{pattern: "timeout", msg: msgTimeout},
}

var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts an error to a user-friendly message.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	var verr *ValidationError
	if errors.As(err, &verr) {
		return UserMessage{
			Message: requiredSentence(verr.Fields),
			Action:  "Fill in every required field and submit again",
			Code:    "VAL001",
		}
	}
	var colErr *MissingColumnsError
	if errors.As(err, &colErr) {
		msg := msgMissingColumn
		msg.Message = fmt.Sprintf("%s: %s", msg.Message, strings.Join(colErr.Columns, ", "))
		return msg
	}
	var csvErr *CSVError
	if errors.As(err, &csvErr) {
		return msgInvalidCSV
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return msgNotFound
	case errors.Is(err, ErrAlreadyExists):
		return msgAlreadyExists
	case errors.Is(err, ErrFileTooLarge):
		return msgFileTooLarge
	case errors.Is(err, ErrNoFile):
		return msgNoFile
	case errors.Is(err, ErrEmptyFile):
		return msgEmptyFile
	case errors.Is(err, ErrTooManyUploads):
		return msgBusy
	case errors.Is(err, context.DeadlineExceeded):
		return msgTimeout
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// IsUserFacing reports whether err maps to something more specific than ERR000.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// requiredSentence renders field names as "Name and Country are required.".
func requiredSentence(fields []string) string {
	labels := make([]string, len(fields))
	for i, f := range fields {
		labels[i] = fieldLabel(f)
	}
	switch len(labels) {
	case 0:
		return "A required field is empty."
	case 1:
		return labels[0] + " is required."
	default:
		return strings.Join(labels[:len(labels)-1], ", ") + " and " + labels[len(labels)-1] + " are required."
	}
}

func fieldLabel(f string) string {
	if f == "" {
		return f
	}
	f = strings.ReplaceAll(f, "_", " ")
	return strings.ToUpper(f[:1]) + f[1:]
}
