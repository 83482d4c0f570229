package controller

import (
	"encoding/json"
	"github.com/Netcracker/qubership-web-audit-service/client"
	"github.com/Netcracker/qubership-web-audit-service/exception"
	"github.com/Netcracker/qubership-web-audit-service/presenter"
	"github.com/Netcracker/qubership-web-audit-service/service"
	"github.com/Netcracker/qubership-web-audit-service/session"
	"github.com/Netcracker/qubership-web-audit-service/utils"
	"github.com/Netcracker/qubership-web-audit-service/view"
	"net/http"
)

// AuditController exposes the requester directly, without a session.
type AuditController interface {
	RunAudit(w http.ResponseWriter, r *http.Request)
	GetSchema(w http.ResponseWriter, r *http.Request)
	GetOptions(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
}

func NewAuditController(analysisService service.AnalysisService) AuditController {
	return &auditControllerImpl{analysisService: analysisService}
}

type auditControllerImpl struct {
	analysisService service.AnalysisService
}

func (a auditControllerImpl) RunAudit(w http.ResponseWriter, r *http.Request) {
	var req view.AnalyzeReq
	if err := decodeBody(r, &req); err != nil {
		RespondWithCustomError(w, badRequestBody(err))
		return
	}
	if req.Device == "" {
		req.Device = view.DefaultDevice
	}
	if req.Location == "" {
		req.Location = view.DefaultLocation
	}
	if customErr := validateSettings(&req.Device, &req.Location); customErr != nil {
		RespondWithCustomError(w, customErr)
		return
	}

	result, err := a.analysisService.Analyze(r.Context(), session.NormalizeURL(req.Url), req.Device, req.Location)
	if err != nil {
		respondWithError(w, "Failed to run web audit", err)
		return
	}
	respondWithJson(w, http.StatusOK, result)
}

// GetSchema answers 304 when the client already has the current schema.
func (a auditControllerImpl) GetSchema(w http.ResponseWriter, r *http.Request) {
	schema, err := json.Marshal(client.AuditResultResponseSchema)
	if err != nil {
		respondWithError(w, "Failed to marshal audit schema", err)
		return
	}
	etag := utils.ETag(schema)
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(schema)
}

func (a auditControllerImpl) GetOptions(w http.ResponseWriter, r *http.Request) {
	respondWithJson(w, http.StatusOK, presenter.BuildOptions())
}

func (a auditControllerImpl) Export(w http.ResponseWriter, r *http.Request) {
	RespondWithCustomError(w, &exception.CustomError{
		Status:  http.StatusNotImplemented,
		Code:    exception.NotImplemented,
		Message: exception.NotImplementedMsg,
	})
}
