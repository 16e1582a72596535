package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"smart-dashboard-backend/internal/home"
	"smart-dashboard-backend/internal/model"
	"smart-dashboard-backend/internal/notification"
	"smart-dashboard-backend/internal/parse"
	"smart-dashboard-backend/internal/session"
	"smart-dashboard-backend/internal/store"
)

// CreateHomeView handles POST /api/views/home.
func (h *Handler) CreateHomeView(c *gin.Context) {
	id, v := h.sessions.CreateHome()
	c.Header("Location", "/api/views/home/"+id)
	c.JSON(http.StatusCreated, gin.H{"id": id, "view": v.Snapshot(home.Filter{})})
}

func (h *Handler) homeView(c *gin.Context) (*home.View, bool) {
	v, err := h.sessions.Home(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "view not found"})
		return nil, false
	}
	return v, true
}

// GetHomeView handles GET /api/views/home/:id. An optional ?category= narrows
// the device list.
func (h *Handler) GetHomeView(c *gin.Context) {
	v, ok := h.homeView(c)
	if !ok {
		return
	}

	var f home.Filter
	if raw := c.Query("category"); raw != "" {
		category, err := parse.Category(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		f.Category = &category
	}
	c.JSON(http.StatusOK, v.Snapshot(f))
}

type selectRoomRequest struct {
	Room *string `json:"room"`
}

// SelectRoom handles PUT /api/views/home/:id/room. A null room shows every room.
func (h *Handler) SelectRoom(c *gin.Context) {
	v, ok := h.homeView(c)
	if !ok {
		return
	}

	var req selectRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Room == nil {
		v.ClearRoom()
	} else if room, selected := parse.Room(*req.Room); selected {
		v.SelectRoom(room)
	} else {
		v.ClearRoom()
	}
	c.JSON(http.StatusOK, v.Snapshot(home.Filter{}))
}

// ToggleDevice handles POST /api/views/home/:id/devices/:device_id/toggle.
func (h *Handler) ToggleDevice(c *gin.Context) {
	v, ok := h.homeView(c)
	if !ok {
		return
	}

	deviceID := c.Param("device_id")
	change, ok := v.Toggle(deviceID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "device not found"})
		return
	}

	h.applied(c, model.EventToggle, change)
	if h.notifier != nil {
		h.notifier.Dispatch(notification.Notice{
			DeviceID:   change.After.ID,
			DeviceName: change.After.Name,
			Status:     change.After.Status,
		})
	}
	c.JSON(http.StatusOK, change)
}

type setValueRequest struct {
	Value *float64 `json:"value" binding:"required"`
}

// SetDeviceValue handles PUT /api/views/home/:id/devices/:device_id/value.
// Out-of-range values are clamped to the device's range.
func (h *Handler) SetDeviceValue(c *gin.Context) {
	v, ok := h.homeView(c)
	if !ok {
		return
	}

	var req setValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	deviceID := c.Param("device_id")
	change, ok := v.SetValue(deviceID, *req.Value)
	if !ok {
		if _, exists := v.Device(deviceID); exists {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "device has no adjustable value"})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "device not found"})
		return
	}

	if change.Clamped {
		h.metrics.ClampedValues.Inc()
	}
	if change.Changed {
		h.applied(c, model.EventSetValue, change)
	}
	c.JSON(http.StatusOK, change)
}

// applied counts a mutation and appends it to the activity log. A failed write
// is logged; the mutation itself already happened.
func (h *Handler) applied(c *gin.Context, kind model.EventKind, change home.Change) {
	h.metrics.DeviceMutations.WithLabelValues(string(kind)).Inc()

	ev := &model.DeviceEvent{
		SessionID:  c.Param("id"),
		DeviceID:   change.After.ID,
		Kind:       kind,
		OldStatus:  change.Before.Status,
		NewStatus:  change.After.Status,
		OldValue:   change.Before.Value,
		NewValue:   change.After.Value,
		Requested:  change.Requested,
		Clamped:    change.Clamped,
		ObservedAt: h.now(),
	}
	if err := h.store.RecordDeviceEvent(c.Request.Context(), ev); err != nil {
		h.log.Error("recording device event failed",
			zap.String("session", ev.SessionID),
			zap.String("device", ev.DeviceID),
			zap.Error(err))
	}
}

// GetActivity handles GET /api/views/home/:id/activity.
func (h *Handler) GetActivity(c *gin.Context) {
	if _, ok := h.homeView(c); !ok {
		return
	}

	q := store.EventQuery{
		SessionID: c.Param("id"),
		DeviceID:  c.Query("device"),
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		q.Limit = limit
	}

	events, err := h.store.ListDeviceEvents(c.Request.Context(), q)
	if err != nil {
		h.log.Error("listing device events failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load activity"})
		return
	}
	c.JSON(http.StatusOK, events)
}

// DeleteHomeView handles DELETE /api/views/home/:id.
func (h *Handler) DeleteHomeView(c *gin.Context) {
	if err := h.sessions.Delete(c.Param("id"), session.KindHome); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "view not found"})
		return
	}
	c.Status(http.StatusNoContent)
}
