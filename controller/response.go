package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"github.com/Netcracker/qubership-web-audit-service/exception"
	"github.com/Netcracker/qubership-web-audit-service/session"
	log "github.com/sirupsen/logrus"
	"net/http"
)

func respondWithJson(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		log.Errorf("Failed to marshal response: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

func respondWithError(w http.ResponseWriter, msg string, err error) {
	log.Errorf("%s: %s", msg, err.Error())
	RespondWithCustomError(w, toCustomError(msg, err))
}

func RespondWithCustomError(w http.ResponseWriter, err *exception.CustomError) {
	log.Debugf("Request failed. Code = %d. Message = %s. Params: %v. Debug: %s", err.Status, err.Message, err.Params, err.Debug)
	respondWithJson(w, err.Status, err)
}

// toCustomError maps domain errors to their HTTP representation.
func toCustomError(msg string, err error) *exception.CustomError {
	var customError *exception.CustomError
	if errors.As(err, &customError) {
		return customError
	}
	var configurationError exception.ConfigurationError
	var upstreamError exception.UpstreamError
	var parseError exception.ParseError

	switch {
	case errors.As(err, &configurationError):
		return &exception.CustomError{
			Status:  http.StatusServiceUnavailable,
			Code:    exception.AnalysisNotConfigured,
			Message: exception.AnalysisNotConfiguredMsg,
			Params:  map[string]interface{}{"reason": configurationError.Error()},
		}
	case errors.As(err, &upstreamError):
		return &exception.CustomError{
			Status:  http.StatusBadGateway,
			Code:    exception.AnalysisUpstreamFailed,
			Message: exception.AnalysisUpstreamFailedMsg,
			Params:  map[string]interface{}{"reason": session.DisplayMessage(upstreamError)},
		}
	case errors.As(err, &parseError):
		return &exception.CustomError{
			Status:  http.StatusBadGateway,
			Code:    exception.AnalysisResponseInvalid,
			Message: exception.AnalysisResponseInvalidMsg,
			Params:  map[string]interface{}{"reason": session.DisplayMessage(parseError)},
		}
	case errors.Is(err, exception.ErrEmptyURL):
		return &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.RequiredParamsMissing,
			Message: exception.RequiredParamsMissingMsg,
			Params:  map[string]interface{}{"params": "url"},
		}
	case errors.Is(err, session.ErrSessionClosed):
		return &exception.CustomError{
			Status:  http.StatusGone,
			Code:    exception.SessionClosed,
			Message: exception.SessionClosedMsg,
		}
	case errors.Is(err, session.ErrAnalysisInProgress):
		return &exception.CustomError{
			Status:  http.StatusConflict,
			Code:    exception.AnalysisInProgress,
			Message: exception.AnalysisInProgressMsg,
		}
	}
	return &exception.CustomError{
		Status:  http.StatusInternalServerError,
		Message: msg,
		Debug:   err.Error(),
	}
}

func invalidParameter(param string, value interface{}) *exception.CustomError {
	return &exception.CustomError{
		Status:  http.StatusBadRequest,
		Code:    exception.InvalidParameterValue,
		Message: exception.InvalidParameterValueMsg,
		Params:  map[string]interface{}{"param": param, "value": fmt.Sprintf("%v", value)},
	}
}

func badRequestBody(err error) *exception.CustomError {
	return &exception.CustomError{
		Status:  http.StatusBadRequest,
		Code:    exception.BadRequestBody,
		Message: exception.BadRequestBodyMsg,
		Debug:   err.Error(),
	}
}
