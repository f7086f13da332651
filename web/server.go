// ABOUTME: JSON API server over the business desk
// ABOUTME: Exposes clients, pipeline, feed, and dashboard at localhost:8080
package web

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/harperreed/bizdesk/handlers"
	"github.com/harperreed/bizdesk/store"
	"github.com/harperreed/bizdesk/viz"
)

type Server struct {
	desk          *store.Desk
	clients       *handlers.ClientHandlers
	leads         *handlers.LeadHandlers
	notifications *handlers.NotificationHandlers
	dashboard     *handlers.DashboardHandlers
}

func NewServer(desk *store.Desk, database *sql.DB) *Server {
	return &Server{
		desk:          desk,
		clients:       handlers.NewClientHandlers(desk),
		leads:         handlers.NewLeadHandlers(desk),
		notifications: handlers.NewNotificationHandlers(desk),
		dashboard:     handlers.NewDashboardHandlers(database),
	}
}

func (s *Server) Start(port int) error {
	addr := fmt.Sprintf(":%d", port)
	log.Printf("Starting web server at http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Routes())
}

// Routes builds the API mux. Exposed separately so tests can mount it on
// httptest servers.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("GET /api/clients", s.handleListClients)
	mux.HandleFunc("POST /api/clients", s.handleAddClient)
	mux.HandleFunc("PATCH /api/clients/{id}", s.handleUpdateClient)
	mux.HandleFunc("DELETE /api/clients/{id}", s.handleDeleteClient)

	mux.HandleFunc("GET /api/leads", s.handleListLeads)
	mux.HandleFunc("POST /api/leads", s.handleAddLead)
	mux.HandleFunc("PATCH /api/leads/{id}", s.handleUpdateLead)
	mux.HandleFunc("DELETE /api/leads/{id}", s.handleDeleteLead)
	mux.HandleFunc("POST /api/leads/{id}/move", s.handleMoveLead)

	mux.HandleFunc("GET /api/pipeline", s.handlePipelineSummary)
	mux.HandleFunc("GET /api/pipeline/board", s.handlePipelineBoard)

	mux.HandleFunc("GET /api/notifications", s.handleListNotifications)
	mux.HandleFunc("POST /api/notifications/read", s.handleMarkNotificationsRead)
	mux.HandleFunc("DELETE /api/notifications/{id}", s.handleDeleteNotification)
	mux.HandleFunc("DELETE /api/notifications", s.handleClearNotifications)

	mux.HandleFunc("GET /api/dashboard/metrics", s.handleFinancialMetrics)
	mux.HandleFunc("POST /api/dashboard/snapshots", s.handleRecordSnapshot)

	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListClients(w http.ResponseWriter, r *http.Request) {
	input := handlers.FindClientsInput{
		Query: r.URL.Query().Get("q"),
		Type:  r.URL.Query().Get("type"),
	}
	_, out, err := s.clients.FindClients(r.Context(), nil, input)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleAddClient(w http.ResponseWriter, r *http.Request) {
	var input handlers.AddClientInput
	if !decodeBody(w, r, &input) {
		return
	}
	_, out, err := s.clients.AddClient(r.Context(), nil, input)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

func (s *Server) handleUpdateClient(w http.ResponseWriter, r *http.Request) {
	var input handlers.UpdateClientInput
	if !decodeBody(w, r, &input) {
		return
	}
	input.ID = r.PathValue("id")
	_, out, err := s.clients.UpdateClient(r.Context(), nil, input)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleDeleteClient(w http.ResponseWriter, r *http.Request) {
	input := handlers.DeleteClientInput{ID: r.PathValue("id")}
	_, out, err := s.clients.DeleteClient(r.Context(), nil, input)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if !out.Deleted {
		writeError(w, http.StatusNotFound, fmt.Errorf("client not found: %s", input.ID))
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleListLeads(w http.ResponseWriter, r *http.Request) {
	input := handlers.ListLeadsInput{
		Stage:    r.URL.Query().Get("stage"),
		ClientID: r.URL.Query().Get("client_id"),
	}
	_, out, err := s.leads.ListLeads(r.Context(), nil, input)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleAddLead(w http.ResponseWriter, r *http.Request) {
	var input handlers.AddLeadInput
	if !decodeBody(w, r, &input) {
		return
	}
	_, out, err := s.leads.AddLead(r.Context(), nil, input)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

func (s *Server) handleUpdateLead(w http.ResponseWriter, r *http.Request) {
	var input handlers.UpdateLeadInput
	if !decodeBody(w, r, &input) {
		return
	}
	input.ID = r.PathValue("id")
	_, out, err := s.leads.UpdateLead(r.Context(), nil, input)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleDeleteLead(w http.ResponseWriter, r *http.Request) {
	input := handlers.DeleteLeadInput{ID: r.PathValue("id")}
	_, out, err := s.leads.DeleteLead(r.Context(), nil, input)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if !out.Deleted {
		writeError(w, http.StatusNotFound, fmt.Errorf("lead not found: %s", input.ID))
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleMoveLead(w http.ResponseWriter, r *http.Request) {
	var input handlers.MoveLeadInput
	if !decodeBody(w, r, &input) {
		return
	}
	input.ID = r.PathValue("id")
	_, out, err := s.leads.MoveLead(r.Context(), nil, input)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handlePipelineSummary(w http.ResponseWriter, r *http.Request) {
	_, out, err := s.leads.PipelineSummary(r.Context(), nil, handlers.PipelineSummaryInput{})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handlePipelineBoard(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(viz.RenderBoard(s.desk.Pipeline.All())))
}

func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	input := handlers.ListNotificationsInput{
		UnreadOnly: r.URL.Query().Get("unread") == "true",
	}
	_, out, err := s.notifications.ListNotifications(r.Context(), nil, input)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleMarkNotificationsRead(w http.ResponseWriter, r *http.Request) {
	var input handlers.MarkNotificationReadInput
	if !decodeBody(w, r, &input) {
		return
	}
	_, out, err := s.notifications.MarkNotificationRead(r.Context(), nil, input)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleDeleteNotification(w http.ResponseWriter, r *http.Request) {
	input := handlers.ClearNotificationsInput{ID: r.PathValue("id")}
	_, out, err := s.notifications.ClearNotifications(r.Context(), nil, input)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleClearNotifications(w http.ResponseWriter, r *http.Request) {
	_, out, err := s.notifications.ClearNotifications(r.Context(), nil, handlers.ClearNotificationsInput{})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleFinancialMetrics(w http.ResponseWriter, r *http.Request) {
	_, out, err := s.dashboard.FinancialMetrics(r.Context(), nil, handlers.FinancialMetricsInput{})
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleRecordSnapshot(w http.ResponseWriter, r *http.Request) {
	var input handlers.RecordSnapshotInput
	if !decodeBody(w, r, &input) {
		return
	}
	_, out, err := s.dashboard.RecordSnapshot(r.Context(), nil, input)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return false
	}
	return true
}

// statusFor maps handler errors onto HTTP codes by their not-found suffix.
func statusFor(err error) int {
	if strings.Contains(err.Error(), "not found") ||
		strings.Contains(err.Error(), "no financial snapshots") {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("web: encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
