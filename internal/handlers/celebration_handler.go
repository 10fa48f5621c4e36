package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"painel/internal/celebration"
)

// BurstSubscriber hands out celebration bursts. *celebration.Broker
// satisfies it.
type BurstSubscriber interface {
	Subscribe() (bursts <-chan celebration.Burst, cancel func())
}

// CelebrationHandler streams goal-reached animations to clients.
type CelebrationHandler struct {
	subscriber BurstSubscriber
}

// NewCelebrationHandler creates a new CelebrationHandler.
func NewCelebrationHandler(subscriber BurstSubscriber) *CelebrationHandler {
	return &CelebrationHandler{subscriber: subscriber}
}

// Stream handles the celebration event stream
// @Summary     Celebration stream
// @Description Server-sent events; one "burst" event per confetti burst while a celebration runs
// @Tags        celebrations
// @Produce     text/event-stream
// @Success     200 {object} celebration.Burst "burst events"
// @Router      /celebrations/stream [get]
func (h *CelebrationHandler) Stream(c *gin.Context) {
	bursts, cancel := h.subscriber.Subscribe()
	defer cancel()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Status(http.StatusOK)
	c.Writer.Flush()

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case burst, ok := <-bursts:
			if !ok {
				return
			}
			c.SSEvent("burst", burst)
			c.Writer.Flush()
		}
	}
}
