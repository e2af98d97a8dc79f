package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/taskboard/taskboard/internal/core/ports"
)

const (
	streamBuffer    = 32
	keepAlivePeriod = 25 * time.Second
)

// StreamHandler pushes session and task snapshots to the browser as
// Server-Sent Events.
type StreamHandler struct {
	sessions ports.SessionService
	tasks    ports.TaskService
	log      zerolog.Logger
}

func NewStreamHandler(sessions ports.SessionService, tasks ports.TaskService, log zerolog.Logger) *StreamHandler {
	return &StreamHandler{sessions: sessions, tasks: tasks, log: log}
}

type streamEvent struct {
	name string
	data any
}

// Events handles GET /events.
//
// @Summary      Subscribe to state changes
// @Description  Streams "session" and "tasks" events. The current state of both is sent first.
// @Tags         events
// @Produce      text/event-stream
// @Success      200
// @Router       /events [get]
func (h *StreamHandler) Events(c echo.Context) error {
	events := make(chan streamEvent, streamBuffer)
	push := func(ev streamEvent) {
		select {
		case events <- ev:
		default:
			h.log.Warn().Str("event", ev.name).Msg("event stream full, dropping snapshot")
		}
	}

	unsubSession := h.sessions.Subscribe(func(s ports.SessionState) {
		push(streamEvent{name: "session", data: toSessionResponse(s)})
	})
	defer unsubSession()
	unsubTasks := h.tasks.Subscribe(func(s ports.TaskState) {
		push(streamEvent{name: "tasks", data: toTaskListResponse(s)})
	})
	defer unsubTasks()

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set(echo.HeaderCacheControl, "no-cache")
	res.Header().Set(echo.HeaderConnection, "keep-alive")
	res.WriteHeader(http.StatusOK)

	if err := writeEvent(res, streamEvent{name: "session", data: toSessionResponse(h.sessions.State())}); err != nil {
		return nil
	}
	if err := writeEvent(res, streamEvent{name: "tasks", data: toTaskListResponse(h.tasks.State())}); err != nil {
		return nil
	}

	ticker := time.NewTicker(keepAlivePeriod)
	defer ticker.Stop()

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if err := writeEvent(res, ev); err != nil {
				h.log.Debug().Err(err).Msg("event stream closed")
				return nil
			}
		case <-ticker.C:
			if _, err := fmt.Fprint(res, ": keep-alive\n\n"); err != nil {
				return nil
			}
			res.Flush()
		}
	}
}

func writeEvent(res *echo.Response, ev streamEvent) error {
	payload, err := json.Marshal(ev.data)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(res, "event: %s\ndata: %s\n\n", ev.name, payload); err != nil {
		return err
	}
	res.Flush()
	return nil
}
