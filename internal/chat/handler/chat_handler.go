package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"chatapp/internal/chat/service"
	"chatapp/internal/common"
	"chatapp/internal/dbmysql"
	"chatapp/internal/delivery"
)

// ChatHandler exposes conversations, messages, and delivery tracking over
// HTTP. Every route sits behind the auth middleware; the caller id always
// comes from the token, never from the request body.
type ChatHandler struct {
	svc     service.ChatService
	queries *delivery.QueryService
}

func NewChatHandler(svc service.ChatService, queries *delivery.QueryService) *ChatHandler {
	return &ChatHandler{
		svc:     svc,
		queries: queries,
	}
}

// RegisterRoutes mounts every chat route on the router.
func (h *ChatHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/conversations/private", h.CreatePrivateConversation).Methods("POST")
	router.HandleFunc("/conversations/group", h.CreateGroupConversation).Methods("POST")
	router.HandleFunc("/conversations", h.ListConversations).Methods("GET")
	router.HandleFunc("/conversations/{conversationId}/participants", h.ListParticipants).Methods("GET")
	router.HandleFunc("/conversations/{conversationId}/messages", h.SendMessage).Methods("POST")
	router.HandleFunc("/conversations/{conversationId}/messages", h.GetMessageHistory).Methods("GET")

	router.HandleFunc("/messages/{messageId}", h.EditMessage).Methods("PATCH")
	router.HandleFunc("/messages/{messageId}/received", h.MarkReceived).Methods("POST")
	router.HandleFunc("/messages/{messageId}/delivered", h.MarkDelivered).Methods("POST")
	router.HandleFunc("/messages/{messageId}/read", h.MarkRead).Methods("POST")
	router.HandleFunc("/messages/{messageId}/status", h.ChangeStatus).Methods("PATCH")
	router.HandleFunc("/messages/{messageId}/status", h.GetOwnStatus).Methods("GET")
	router.HandleFunc("/messages/{messageId}/statuses", h.ListStatuses).Methods("GET")
	router.HandleFunc("/messages/{messageId}/summary", h.GetSummary).Methods("GET")

	router.HandleFunc("/unread", h.ListUnread).Methods("GET")
	router.HandleFunc("/unread/counts", h.UnreadCounts).Methods("GET")
}

type createPrivateRequest struct {
	OtherUserID string `json:"other_user_id"`
}

func (h *ChatHandler) CreatePrivateConversation(w http.ResponseWriter, r *http.Request) {
	callerID, ok := common.CallerID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req createPrivateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	conv, err := h.svc.CreatePrivateConversation(r.Context(), callerID, req.OtherUserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, conv)
}

type createGroupRequest struct {
	Name      string   `json:"name"`
	MemberIDs []string `json:"member_ids"`
}

func (h *ChatHandler) CreateGroupConversation(w http.ResponseWriter, r *http.Request) {
	callerID, ok := common.CallerID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req createGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	conv, err := h.svc.CreateGroupConversation(r.Context(), callerID, req.Name, req.MemberIDs)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, conv)
}

func (h *ChatHandler) ListConversations(w http.ResponseWriter, r *http.Request) {
	callerID, ok := common.CallerID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	conversations, err := h.svc.ListConversations(r.Context(), callerID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, conversations)
}

func (h *ChatHandler) ListParticipants(w http.ResponseWriter, r *http.Request) {
	callerID, ok := common.CallerID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	participants, err := h.svc.ListParticipants(r.Context(), callerID, mux.Vars(r)["conversationId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, participants)
}

type sendMessageRequest struct {
	Content      string   `json:"content"`
	MediaFileIDs []string `json:"media_file_ids,omitempty"`
}

type sendMessageResponse struct {
	Message *dbmysql.Message     `json:"message"`
	Fanout  *common.FanoutResult `json:"fanout"`
}

func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	callerID, ok := common.CallerID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	msg, result, err := h.svc.SendMessage(r.Context(), &dbmysql.Message{
		ConversationID: mux.Vars(r)["conversationId"],
		SenderID:       callerID,
		Content:        req.Content,
	}, req.MediaFileIDs)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, sendMessageResponse{Message: msg, Fanout: result})
}

func (h *ChatHandler) GetMessageHistory(w http.ResponseWriter, r *http.Request) {
	callerID, ok := common.CallerID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	limit, offset := pagination(r)
	messages, err := h.svc.GetMessageHistory(r.Context(), callerID,
		mux.Vars(r)["conversationId"], limit, offset)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messages)
}

type editMessageRequest struct {
	Content string `json:"content"`
}

func (h *ChatHandler) EditMessage(w http.ResponseWriter, r *http.Request) {
	callerID, ok := common.CallerID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	messageID, ok := messageIDFrom(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid message id")
		return
	}

	var req editMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	msg, err := h.svc.EditMessage(r.Context(), callerID, messageID, req.Content)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, msg)
}

func (h *ChatHandler) MarkReceived(w http.ResponseWriter, r *http.Request) {
	h.mark(w, r, h.svc.MarkReceived)
}

func (h *ChatHandler) MarkDelivered(w http.ResponseWriter, r *http.Request) {
	h.mark(w, r, h.svc.MarkDelivered)
}

func (h *ChatHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	h.mark(w, r, h.svc.MarkRead)
}

// mark is the shared body of the three acknowledgement endpoints.
func (h *ChatHandler) mark(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, messageID uint, callerID string) (common.DeliveryStatusView, error)) {
	callerID, ok := common.CallerID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	messageID, ok := messageIDFrom(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid message id")
		return
	}

	view, err := op(r.Context(), messageID, callerID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

type changeStatusRequest struct {
	Status string `json:"status"`
}

func (h *ChatHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	callerID, ok := common.CallerID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	messageID, ok := messageIDFrom(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid message id")
		return
	}

	var req changeStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	state, ok := common.ParseDeliveryState(req.Status)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown delivery state")
		return
	}

	view, err := h.svc.ChangeStatus(r.Context(), messageID, callerID, state)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

func (h *ChatHandler) GetOwnStatus(w http.ResponseWriter, r *http.Request) {
	callerID, ok := common.CallerID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	messageID, ok := messageIDFrom(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid message id")
		return
	}

	view, err := h.queries.StatusFor(r.Context(), messageID, callerID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

func (h *ChatHandler) ListStatuses(w http.ResponseWriter, r *http.Request) {
	callerID, ok := common.CallerID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	messageID, ok := messageIDFrom(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid message id")
		return
	}

	views, err := h.svc.ListStatuses(r.Context(), messageID, callerID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, views)
}

func (h *ChatHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	callerID, ok := common.CallerID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	messageID, ok := messageIDFrom(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid message id")
		return
	}

	summary, err := h.svc.DeliverySummary(r.Context(), messageID, callerID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

func (h *ChatHandler) ListUnread(w http.ResponseWriter, r *http.Request) {
	callerID, ok := common.CallerID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	limit, offset := pagination(r)
	views, err := h.queries.UnreadMessages(r.Context(), callerID, limit, offset)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, views)
}

func (h *ChatHandler) UnreadCounts(w http.ResponseWriter, r *http.Request) {
	callerID, ok := common.CallerID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	counts, err := h.queries.UnreadCounts(r.Context(), callerID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, counts)
}

func messageIDFrom(r *http.Request) (uint, bool) {
	raw := mux.Vars(r)["messageId"]
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func pagination(r *http.Request) (limit, offset int) {
	limit = 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 && v <= 200 {
			limit = v
		}
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			offset = v
		}
	}
	return limit, offset
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeServiceError maps the service sentinels onto HTTP status codes.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrRecordNotFound),
		errors.Is(err, common.ErrMessageNotFound),
		errors.Is(err, common.ErrMediaNotFound),
		errors.Is(err, common.ErrConversationNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, common.ErrInvalidTransition):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, common.ErrNotParticipant):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, common.ErrEmptyParticipantSet):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
