package utils

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/fedipost-dev/fedipost/shared/errors"
	"github.com/fedipost-dev/fedipost/shared/logger"
)

func WriteErrorAndStatusCode(w http.ResponseWriter, err error) {
	switch e := err.(type) {
	case *errors.ErrorWithStatusCode:
		http.Error(w, e.Message, e.StatusCode)
	case *errors.ValidationError:
		http.Error(w, e.Message, http.StatusUnprocessableEntity)
	case *errors.UploadBatchError:
		http.Error(w, e.Error(), http.StatusBadGateway)
	case *errors.HydrationError:
		http.Error(w, e.Reason, http.StatusBadGateway)
	case *errors.SubmissionError:
		http.Error(w, e.Reason, http.StatusBadGateway)
	default:
		// default error is 500
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func DecodeValidate(r io.ReadCloser, body any) error {
	if err := json.NewDecoder(r).Decode(body); err != nil {
		logger.Log.Debug("request body is invalid json", "error", err)
		return &errors.ErrorWithStatusCode{Message: "Body is invalid json", StatusCode: http.StatusBadRequest}
	}
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(body); err != nil {
		logger.Log.Debug("request body failed validation", "error", err)
		return &errors.ErrorWithStatusCode{Message: "Required fields missing", StatusCode: http.StatusBadRequest}
	}
	return nil
}

func WriteJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("failed to encode response", "error", err)
	}
}
