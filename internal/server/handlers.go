package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/openroom/chat-api/internal/room"
)

// userHeader carries the requesting participant's name. Identity is taken
// on trust; there is no authentication beyond this header.
const userHeader = "User"

// Handlers holds the core components the endpoints delegate to.
type Handlers struct {
	Registry *room.Registry
	Ledger   *room.Ledger
}

type registerRequest struct {
	Name string `json:"name"`
}

type postMessageRequest struct {
	To   string `json:"to"`
	Text string `json:"text"`
	Type string `json:"type"`
}

// ListParticipants handles GET /participants.
func (h *Handlers) ListParticipants(c *gin.Context) {
	participants, err := h.Registry.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, participants)
}

// RegisterParticipant handles POST /participants. Duplicate names and
// invalid payloads both answer 409.
func (h *Handlers) RegisterParticipant(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusConflict, gin.H{"message": "invalid body"})
		return
	}

	err := h.Registry.Register(c.Request.Context(), req.Name)
	switch {
	case err == nil:
		c.Status(http.StatusCreated)
	case errors.Is(err, room.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"message": "name already taken"})
	case room.IsValidation(err):
		c.JSON(http.StatusConflict, gin.H{"message": "invalid participant"})
	default:
		fail(c, err)
	}
}

// ListMessages handles GET /messages. The viewer comes from the User header
// and is not checked against the registry; limit comes from the query
// string and is ignored unless it parses as a positive integer.
func (h *Handlers) ListMessages(c *gin.Context) {
	viewer := c.GetHeader(userHeader)

	limit := 0
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}

	messages, err := h.Ledger.List(c.Request.Context(), viewer, limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

// PostMessage handles POST /messages.
func (h *Handlers) PostMessage(c *gin.Context) {
	author := c.GetHeader(userHeader)

	var req postMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "invalid body"})
		return
	}

	draft := room.Message{To: req.To, Text: req.Text, Type: req.Type}
	err := h.Ledger.Post(c.Request.Context(), author, draft)
	switch {
	case err == nil:
		c.Status(http.StatusCreated)
	case room.IsValidation(err):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "invalid message"})
	default:
		fail(c, err)
	}
}

// DeleteMessage handles DELETE /messages/:id. Deleting another author's
// message answers 401.
func (h *Handlers) DeleteMessage(c *gin.Context) {
	requester := c.GetHeader(userHeader)

	err := h.Ledger.Delete(c.Request.Context(), requester, c.Param("id"))
	switch {
	case err == nil:
		c.Status(http.StatusOK)
	case errors.Is(err, room.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "message not found"})
	case errors.Is(err, room.ErrForbidden):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "not the message author"})
	default:
		fail(c, err)
	}
}

// Heartbeat handles POST /status.
func (h *Handlers) Heartbeat(c *gin.Context) {
	err := h.Registry.Heartbeat(c.Request.Context(), c.GetHeader(userHeader))
	switch {
	case err == nil:
		c.Status(http.StatusOK)
	case errors.Is(err, room.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "participant not found"})
	default:
		fail(c, err)
	}
}

// fail answers 500 without leaking internal error detail; the detail goes
// to the log only.
func fail(c *gin.Context, err error) {
	logrus.WithError(err).WithField("request_id", c.GetString("request_id")).Error("request failed")
	c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
}
