package api

import (
	"log/slog"
	"net/http"

	"github.com/lexicard/lexicard-api/internal/api/shared"
	"github.com/lexicard/lexicard-api/internal/platform/logger"
	"github.com/lexicard/lexicard-api/internal/service"
)

// DeviceHandler serves the device pairing routes.
type DeviceHandler struct {
	devices service.DeviceService
	logger  *slog.Logger
}

// NewDeviceHandler creates a DeviceHandler.
func NewDeviceHandler(devices service.DeviceService, log *slog.Logger) *DeviceHandler {
	if devices == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("devices cannot be nil for DeviceHandler")
	}
	if log == nil {
		log = slog.Default()
	}
	return &DeviceHandler{
		devices: devices,
		logger:  log.With(slog.String("component", "device_handler")),
	}
}

// Pair handles POST /devices/pair. The response is the only time the API
// key is returned.
func (h *DeviceHandler) Pair(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	var req service.PairRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}

	result, err := h.devices.Pair(r.Context(), userID, req)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	shared.RespondWithSuccess(w, r, http.StatusOK, "Device paired", result)
}

// Reset handles POST /devices/reset.
func (h *DeviceHandler) Reset(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	var req DeviceResetRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}

	if err := h.devices.Reset(r.Context(), userID, req.DeviceID); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithSuccess(w, r, http.StatusOK, "Device reset", nil)
}
