// Package server wires the HTTP API surface: routing, middleware and the
// mapping from the room error taxonomy to response status codes. Each
// endpoint delegates 1:1 to a registry or ledger operation.
package server

import (
	"github.com/gin-gonic/gin"

	"github.com/openroom/chat-api/internal/metrics"
	"github.com/openroom/chat-api/internal/room"
)

// New builds the gin engine with all routes and middleware attached.
func New(registry *room.Registry, ledger *room.Ledger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(), CORS())

	h := &Handlers{Registry: registry, Ledger: ledger}

	r.GET("/participants", h.ListParticipants)
	r.POST("/participants", h.RegisterParticipant)
	r.GET("/messages", h.ListMessages)
	r.POST("/messages", h.PostMessage)
	r.DELETE("/messages/:id", h.DeleteMessage)
	r.POST("/status", h.Heartbeat)

	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	return r
}
