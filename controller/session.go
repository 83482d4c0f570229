package controller

import (
	"encoding/json"
	"errors"
	"github.com/Netcracker/qubership-web-audit-service/exception"
	"github.com/Netcracker/qubership-web-audit-service/presenter"
	"github.com/Netcracker/qubership-web-audit-service/service"
	"github.com/Netcracker/qubership-web-audit-service/session"
	"github.com/Netcracker/qubership-web-audit-service/view"
	log "github.com/sirupsen/logrus"
	"io"
	"net/http"
)

const SessionCookieName = "hihi-session"

const (
	analysisInProgressNotice = "HiHi đang phân tích, đợi chút nhé!"
	emptyUrlNotice           = "Nhập URL website trước đã nhé!"
	invalidOptionNotice      = "Lựa chọn không hợp lệ."
)

// SessionController serves the page and the JSON API of the per browser session.
type SessionController interface {
	GetPage(w http.ResponseWriter, r *http.Request)
	SubmitForm(w http.ResponseWriter, r *http.Request)
	SettingsForm(w http.ResponseWriter, r *http.Request)
	ResetForm(w http.ResponseWriter, r *http.Request)
	ExportForm(w http.ResponseWriter, r *http.Request)

	GetSession(w http.ResponseWriter, r *http.Request)
	Analyze(w http.ResponseWriter, r *http.Request)
	UpdateSettings(w http.ResponseWriter, r *http.Request)
	Reset(w http.ResponseWriter, r *http.Request)
	GetDashboard(w http.ResponseWriter, r *http.Request)
}

func NewSessionController(sessionService service.SessionService, renderer presenter.Renderer) SessionController {
	return &sessionControllerImpl{
		sessionService: sessionService,
		renderer:       renderer,
	}
}

type sessionControllerImpl struct {
	sessionService service.SessionService
	renderer       presenter.Renderer
}

func (s sessionControllerImpl) GetPage(w http.ResponseWriter, r *http.Request) {
	sess := s.getSession(w, r)
	s.renderPage(w, http.StatusOK, sess, view.ParseTab(r.URL.Query().Get("tab")), "")
}

func (s sessionControllerImpl) SubmitForm(w http.ResponseWriter, r *http.Request) {
	sess := s.getSession(w, r)
	if err := r.ParseForm(); err != nil {
		s.renderPage(w, http.StatusBadRequest, sess, view.TabOverview, invalidOptionNotice)
		return
	}
	err := applySettings(sess, optionalDevice(r.PostFormValue("device")), optionalLocation(r.PostFormValue("location")))
	if err == nil {
		err = sess.Submit(r.PostFormValue("url"))
	}
	if err != nil {
		s.renderFormError(w, sess, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s sessionControllerImpl) SettingsForm(w http.ResponseWriter, r *http.Request) {
	sess := s.getSession(w, r)
	if err := r.ParseForm(); err != nil {
		s.renderPage(w, http.StatusBadRequest, sess, view.TabOverview, invalidOptionNotice)
		return
	}
	if err := applySettings(sess, optionalDevice(r.PostFormValue("device")), optionalLocation(r.PostFormValue("location"))); err != nil {
		s.renderFormError(w, sess, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s sessionControllerImpl) ResetForm(w http.ResponseWriter, r *http.Request) {
	sess := s.getSession(w, r)
	if err := sess.Reset(); err != nil {
		s.renderFormError(w, sess, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s sessionControllerImpl) ExportForm(w http.ResponseWriter, r *http.Request) {
	sess := s.getSession(w, r)
	tab := view.TabOverview
	if err := r.ParseForm(); err == nil {
		tab = view.ParseTab(r.PostFormValue("tab"))
	}
	s.renderPage(w, http.StatusOK, sess, tab, exception.NotImplementedMsg)
}

func (s sessionControllerImpl) GetSession(w http.ResponseWriter, r *http.Request) {
	sess := s.getSession(w, r)
	respondWithJson(w, http.StatusOK, sess.Snapshot().View())
}

func (s sessionControllerImpl) Analyze(w http.ResponseWriter, r *http.Request) {
	sess := s.getSession(w, r)

	var req view.AnalyzeReq
	if err := decodeBody(r, &req); err != nil {
		RespondWithCustomError(w, badRequestBody(err))
		return
	}
	var device *view.Device
	if req.Device != "" {
		device = &req.Device
	}
	var location *view.Location
	if req.Location != "" {
		location = &req.Location
	}
	if customErr := validateSettings(device, location); customErr != nil {
		RespondWithCustomError(w, customErr)
		return
	}
	if err := applySettings(sess, device, location); err != nil {
		respondWithError(w, "Failed to apply analysis settings", err)
		return
	}
	if err := sess.Submit(req.Url); err != nil {
		respondWithError(w, "Failed to start analysis", err)
		return
	}
	respondWithJson(w, http.StatusAccepted, sess.Snapshot().View())
}

func (s sessionControllerImpl) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	sess := s.getSession(w, r)

	var req view.SettingsReq
	if err := decodeBody(r, &req); err != nil {
		RespondWithCustomError(w, badRequestBody(err))
		return
	}
	if customErr := validateSettings(req.Device, req.Location); customErr != nil {
		RespondWithCustomError(w, customErr)
		return
	}
	if err := applySettings(sess, req.Device, req.Location); err != nil {
		respondWithError(w, "Failed to update settings", err)
		return
	}
	respondWithJson(w, http.StatusOK, sess.Snapshot().View())
}

func (s sessionControllerImpl) Reset(w http.ResponseWriter, r *http.Request) {
	sess := s.getSession(w, r)
	if err := sess.Reset(); err != nil {
		respondWithError(w, "Failed to reset session", err)
		return
	}
	respondWithJson(w, http.StatusOK, sess.Snapshot().View())
}

func (s sessionControllerImpl) GetDashboard(w http.ResponseWriter, r *http.Request) {
	sess := s.getSession(w, r)
	state := sess.Snapshot()
	if state.Result == nil {
		RespondWithCustomError(w, &exception.CustomError{
			Status:  http.StatusNotFound,
			Code:    exception.NoAuditResult,
			Message: exception.NoAuditResultMsg,
			Params:  map[string]interface{}{"id": sess.Id()},
		})
		return
	}
	respondWithJson(w, http.StatusOK, presenter.BuildDashboard(*state.Result, view.ParseTab(r.URL.Query().Get("tab"))))
}

// getSession returns the session of the cookie, a new session gets a new cookie.
func (s sessionControllerImpl) getSession(w http.ResponseWriter, r *http.Request) *session.Session {
	var id string
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		id = cookie.Value
	}
	sess := s.sessionService.GetOrCreate(id)
	if sess.Id() != id {
		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookieName,
			Value:    sess.Id(),
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return sess
}

func (s sessionControllerImpl) renderPage(w http.ResponseWriter, status int, sess *session.Session, tab view.Tab, notice string) {
	page := presenter.NewPage(sess.Snapshot().View(), tab, notice)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if err := s.renderer.RenderPage(w, page); err != nil {
		log.Errorf("Failed to render page: %v", err)
	}
}

func (s sessionControllerImpl) renderFormError(w http.ResponseWriter, sess *session.Session, err error) {
	switch {
	case errors.Is(err, session.ErrAnalysisInProgress):
		s.renderPage(w, http.StatusConflict, sess, view.TabOverview, analysisInProgressNotice)
	case errors.Is(err, exception.ErrEmptyURL):
		s.renderPage(w, http.StatusBadRequest, sess, view.TabOverview, emptyUrlNotice)
	case errors.Is(err, session.ErrInvalidDevice), errors.Is(err, session.ErrInvalidLocation):
		s.renderPage(w, http.StatusBadRequest, sess, view.TabOverview, invalidOptionNotice)
	default:
		log.Errorf("Session %s: %v", sess.Id(), err)
		s.renderPage(w, http.StatusInternalServerError, sess, view.TabOverview, session.DisplayMessage(err))
	}
}

func applySettings(sess *session.Session, device *view.Device, location *view.Location) error {
	if device != nil {
		if err := sess.SelectDevice(*device); err != nil {
			return err
		}
	}
	if location != nil {
		if err := sess.SelectLocation(*location); err != nil {
			return err
		}
	}
	return nil
}

func validateSettings(device *view.Device, location *view.Location) *exception.CustomError {
	if device != nil && !device.Valid() {
		return invalidParameter("device", *device)
	}
	if location != nil && !location.Valid() {
		return invalidParameter("location", *location)
	}
	return nil
}

func optionalDevice(value string) *view.Device {
	if value == "" {
		return nil
	}
	d := view.Device(value)
	return &d
}

func optionalLocation(value string) *view.Location {
	if value == "" {
		return nil
	}
	l := view.Location(value)
	return &l
}

func decodeBody(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, v)
}
