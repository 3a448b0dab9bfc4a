package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/egxadev/wa-webhook/internal/models"
)

// webhookHandler processes inbound platform events. It always acknowledges
// with 200 once the payload parses; a non-2xx would make the platform retry
// and the user would receive the reply twice.
func (s *Server) webhookHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}

	var payload models.WebhookPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		slog.Warn("Server.webhookHandler failed to decode payload", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid JSON format"))
		return
	}

	if !payload.IsCustomerMessage() {
		slog.Debug("Server.webhookHandler ignoring non-customer event",
			"dataEvent", payload.DataEvent, "webhookEvent", payload.WebhookEvent, "participantType", payload.ParticipantType)
		writeJSONResponse(w, http.StatusOK, models.SuccessWithMessage("Event ignored", nil))
		return
	}
	if payload.RoomID == "" {
		slog.Warn("Server.webhookHandler customer message without room_id")
		writeJSONResponse(w, http.StatusOK, models.SuccessWithMessage("Missing room_id, ignored", nil))
		return
	}

	// Resolution and delivery run on their own context; the platform only
	// needs the acknowledgment.
	ctx, cancel := context.WithTimeout(context.Background(), DefaultResolveTimeout)
	defer cancel()

	reply := s.resolver.Resolve(ctx, payload.RoomID, payload.Text)
	if err := s.msgService.SendMessage(ctx, payload.RoomID, reply); err != nil {
		// At-most-once delivery: the resolved state is not rolled back.
		slog.Error("Server.webhookHandler failed to send reply", "error", err, "roomID", payload.RoomID)
		writeJSONResponse(w, http.StatusOK, models.SuccessWithMessage("Processed, delivery failed", nil))
		return
	}

	slog.Info("Server.webhookHandler reply sent", "roomID", payload.RoomID, "type", reply.Type)
	writeJSONResponse(w, http.StatusOK, models.SuccessWithMessage("Processed", nil))
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, models.Success(map[string]string{"status": "healthy"}))
}

func (s *Server) infoHandler(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, models.Success(s.resolver.Info()))
}

func (s *Server) resetHandler(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")
	if userID == "" {
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Missing userID"))
		return
	}
	s.resolver.Reset(userID)
	slog.Info("Server.resetHandler conversation reset", "userID", userID)
	writeJSONResponse(w, http.StatusOK, models.SuccessWithMessage("Conversation reset", nil))
}

func (s *Server) inquiriesHandler(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeJSONResponse(w, http.StatusNotFound, models.Error("Inquiry store not configured"))
		return
	}
	inquiries, err := s.store.ListInquiries()
	if err != nil {
		slog.Error("Server.inquiriesHandler failed to list inquiries", "error", err)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to list inquiries"))
		return
	}
	writeJSONResponse(w, http.StatusOK, models.Success(inquiries))
}
