package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/clinidesk/clinidesk-BE/internal/event"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// streamNotifications establishes an SSE connection carrying live
// notification center updates to the console.
func (server *Server) streamNotifications(c *gin.Context) {
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Status(http.StatusOK)

	clientChan := make(chan event.Event)
	server.eventSender.Register(event.TopicNotifications, clientChan)
	defer server.eventSender.Unregister(event.TopicNotifications, clientChan)

	for {
		select {
		case ev := <-clientChan:
			data, err := json.Marshal(ev.Data)
			if err != nil {
				log.Error().Err(err).Str("type", ev.Type).Msg("failed to encode event payload")
				continue
			}
			fmt.Fprintf(c.Writer, "event: %s\ndata: %s\n\n", ev.Type, data)
			c.Writer.Flush()
		case <-c.Request.Context().Done():
			return
		}
	}
}
