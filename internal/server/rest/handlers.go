package rest

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/wotracker/internal/common"
	"github.com/dmitrijs2005/wotracker/internal/server/models"
)

type loginRequest struct {
	UserName string `json:"userName"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expiresAt"`
	User      models.Identity `json:"user"`
}

type sessionResponse struct {
	User      models.Identity `json:"user"`
	ExpiresAt time.Time       `json:"expiresAt"`
}

// workOrdersResponse carries the legacy wo and totalWorkOrders keys next to
// items and totalCount.
type workOrdersResponse struct {
	Items           []models.WorkOrder `json:"items"`
	TotalCount      int64              `json:"totalCount"`
	TotalPages      int64              `json:"totalPages"`
	CurrentPage     int                `json:"currentPage"`
	PageSize        int                `json:"pageSize"`
	WO              []models.WorkOrder `json:"wo"`
	TotalWorkOrders int64              `json:"totalWorkOrders"`
}

type historyResponse struct {
	Items []models.WorkOrderHistoryEntry `json:"items"`
	WO    []models.WorkOrderHistoryEntry `json:"wo"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var in loginRequest
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err != nil {
			errorJSON(w, http.StatusBadRequest, "invalid form")
			return
		}
		in.UserName = r.PostForm.Get("userName")
		in.Password = r.PostForm.Get("password")
	} else if err := decodeJSON(w, r, &in); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid json")
		return
	}

	token, session, err := s.auth.Login(r.Context(), strings.TrimSpace(in.UserName), in.Password)
	if err != nil {
		// A failed lookup is logged by the authenticator; the caller only
		// learns that sign-in failed.
		errorJSON(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	s.setSessionCookie(w, token, session)
	writeJSON(w, http.StatusOK, loginResponse{Token: token, ExpiresAt: session.ExpiresAt, User: session.Identity})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	token := s.tokenFromRequest(r)
	if token != "" {
		if session, err := s.auth.Session(r.Context(), token); err == nil {
			if err := s.auth.Logout(r.Context(), session); err != nil {
				errorJSON(w, http.StatusInternalServerError, genericFailure)
				return
			}
		}
	}
	s.clearSessionCookie(w)
	writeJSON(w, http.StatusOK, map[string]string{"status": "signed_out"})
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	session, _ := SessionFromContext(r.Context())
	writeJSON(w, http.StatusOK, sessionResponse{User: session.Identity, ExpiresAt: session.ExpiresAt})
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"loginPath": s.cfg.LoginPath})
}

func (s *Server) handleWorkOrders(w http.ResponseWriter, r *http.Request) {
	session, _ := SessionFromContext(r.Context())
	req := pageRequestFromQuery(r)

	page, err := s.workOrders.List(r.Context(), session.Identity, req)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, workOrdersResponse{
		Items:           page.Items,
		TotalCount:      page.TotalCount,
		TotalPages:      page.TotalPages,
		CurrentPage:     page.CurrentPage,
		PageSize:        page.PageSize,
		WO:              page.Items,
		TotalWorkOrders: page.TotalCount,
	})
}

func (s *Server) handleWorkOrderHistory(w http.ResponseWriter, r *http.Request) {
	number := strings.TrimSpace(r.URL.Query().Get("WO_NUMBER"))
	if number == "" {
		errorJSON(w, http.StatusBadRequest, "WO_NUMBER is required")
		return
	}

	session, _ := SessionFromContext(r.Context())
	entries, err := s.workOrders.History(r.Context(), session.Identity, number)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, historyResponse{Items: entries, WO: entries})
}

// pageRequestFromQuery reads page and pageSize (or the older limit).
// Anything that is not a positive integer falls back to the defaults.
func pageRequestFromQuery(r *http.Request) models.PageRequest {
	q := r.URL.Query()
	size := atoiOr(q.Get("limit"), 0)
	if v := atoiOr(q.Get("pageSize"), 0); v > 0 {
		size = v
	}
	return models.PageRequest{Page: atoiOr(q.Get("page"), 0), PageSize: size}.Normalize()
}

func atoiOr(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}

func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrInvalidInput):
		errorJSON(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrUnauthenticated),
		errors.Is(err, common.ErrSessionExpired),
		errors.Is(err, common.ErrSessionRevoked),
		errors.Is(err, common.ErrInvalidToken):
		errorJSON(w, http.StatusUnauthorized, "unauthorized")
	default:
		errorJSON(w, http.StatusInternalServerError, genericFailure)
	}
}
