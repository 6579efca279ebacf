package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/DioGolang/GoBank/internal/application/usecase/operation"
	"github.com/DioGolang/GoBank/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Response is the envelope of every API answer.
type Response struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Code    int          `json:"code,omitempty"`
	Data    any          `json:"data,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func writeJSON(w http.ResponseWriter, status int, body Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// decode reads the JSON body into dst and validates it. It writes the 400
// answer itself and reports false when the request is unusable.
func decode(w http.ResponseWriter, r *http.Request, dst any, prepare func()) bool {
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
			writeJSON(w, http.StatusBadRequest, Response{Message: "malformed JSON body: " + err.Error()})
			return false
		}
	}
	if prepare != nil {
		prepare()
	}
	if errs := validateStruct(dst); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, Response{Message: "invalid request data", Errors: errs})
		return false
	}
	return true
}

func validateStruct(v any) []FieldError {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Message: err.Error(), Type: "invalid"}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Namespace(), Message: fieldMessage(fe), Type: fe.Tag()})
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if", "required_without":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "numeric":
		return "Only digits are allowed"
	case "min", "gte":
		return "Value must be at least " + fe.Param()
	case "max", "lte":
		return "Value must be at most " + fe.Param()
	case "gt":
		return "Value must be greater than " + fe.Param()
	case "len":
		return "Value must have length " + fe.Param()
	case "oneof":
		return "Value must be one of " + fe.Param()
	case "nefield":
		return "Value must differ from " + fe.Param()
	default:
		return "Invalid value"
	}
}

// pathID parses the {name} URL parameter as a positive id.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusBadRequest, Response{
			Message: "invalid path parameter",
			Errors:  []FieldError{{Field: name, Message: "Value must be a positive integer", Type: "gt"}},
		})
		return 0, false
	}
	return id, true
}

// writeResult maps an operation outcome onto the envelope.
func writeResult[T any](w http.ResponseWriter, r *http.Request, log logger.Logger, okStatus int, message string, res operation.Result[T], err error) {
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, operation.ErrIdempotencyUnavailable) {
			status = http.StatusServiceUnavailable
		}
		log.Error(r.Context(), "operation aborted",
			logger.String("path", r.URL.Path),
			logger.WithError(err),
		)
		writeJSON(w, status, Response{Message: http.StatusText(status)})
		return
	}

	if f := res.Failure(); f != nil {
		if f.Err != nil {
			log.Warn(r.Context(), "operation failed",
				logger.String("path", r.URL.Path),
				logger.String("reason", f.Reason),
				logger.WithError(f.Err),
			)
		}
		writeJSON(w, StatusFor(f.Code), Response{Message: f.Reason, Code: int(f.Code)})
		return
	}
	writeJSON(w, okStatus, Response{Success: true, Message: message, Data: res.Value()})
}

func StatusFor(code operation.Code) int {
	switch code {
	case operation.CodeNone:
		return http.StatusOK
	case operation.CodeNotFound, operation.CodeCustomerNotFound:
		return http.StatusNotFound
	case operation.CodeDuplicateRequest, operation.CodeConflict, operation.CodeInvalidState:
		return http.StatusConflict
	case operation.CodeInsufficientFunds:
		return http.StatusUnprocessableEntity
	case operation.CodeInvalidInput:
		return http.StatusBadRequest
	case operation.CodePINLocked:
		return http.StatusLocked
	default:
		return http.StatusInternalServerError
	}
}
