package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/JohnsonOduri/Ur-OrbIIIT/database"
	"github.com/JohnsonOduri/Ur-OrbIIIT/metrics"
	"github.com/JohnsonOduri/Ur-OrbIIIT/models"
)

// Client-visible scan outcomes. Each maps to a fixed message/description
// pair; they are UI states, not HTTP failures.
const (
	ScanSuccess         = "success"
	ScanAlreadyAttended = "already-attended"
	ScanInvalidTime     = "invalid-time"
	ScanInvalid         = "invalid"
	ScanError           = "error"
)

type scanResult struct {
	Result      string     `json:"result"`
	Message     string     `json:"message"`
	Description string     `json:"description"`
	EventName   string     `json:"eventName,omitempty"`
	AttendedAt  *time.Time `json:"attendedAt,omitempty"`
}

type MessAttendanceHandler struct{}

func NewMessAttendanceHandler() *MessAttendanceHandler { return &MessAttendanceHandler{} }

type scanReq struct {
	// Payload is the raw decoded QR text, a JSON-encoded models.QRPayload.
	Payload string `json:"payload"`
}

func (h *MessAttendanceHandler) result(c echo.Context, r scanResult) error {
	metrics.AttendanceScans.WithLabelValues(r.Result).Inc()
	return c.JSON(http.StatusOK, r)
}

// POST /mess/attendance/scan
// The full per-scan protocol, in order: type tag, event existence, token
// match, liveness window, duplicate check, then record+counter as one
// transaction.
func (h *MessAttendanceHandler) Scan(c echo.Context) error {
	var req scanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}

	var p models.QRPayload
	if err := json.Unmarshal([]byte(req.Payload), &p); err != nil || p.Type != models.QRPayloadType {
		return h.result(c, scanResult{
			Result: ScanInvalid, Message: "Invalid QR Code", Description: "Not a mess attendance QR",
		})
	}

	var ev models.MessEvent
	if err := database.DB.First(&ev, "id = ?", p.EventID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return h.result(c, scanResult{
				Result: ScanError, Message: "Event Not Found", Description: "This event does not exist",
			})
		}
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}

	if ev.QRCode != p.QRCode {
		// stale or forged token
		return h.result(c, scanResult{
			Result: ScanInvalid, Message: "Invalid QR Code", Description: "QR mismatch", EventName: ev.Name,
		})
	}

	now := time.Now()
	if ev.StatusAt(now) != models.EventLive {
		return h.result(c, scanResult{
			Result:      ScanInvalidTime,
			Message:     "Event Not Active",
			Description: "Allowed between " + ev.StartTime + " and " + ev.EndTime,
			EventName:   ev.Name,
		})
	}

	uid := authUID(c)
	var existing models.MessAttendance
	err := database.DB.First(&existing, "user_id = ? AND event_id = ?", uid, ev.ID).Error
	if err == nil {
		return h.result(c, scanResult{
			Result:      ScanAlreadyAttended,
			Message:     "Already Attended",
			Description: "Attendance already recorded",
			EventName:   ev.Name,
			AttendedAt:  &existing.AttendedAt,
		})
	}
	if err != gorm.ErrRecordNotFound {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}

	rec := models.MessAttendance{UserID: uid, Email: authEmail(c), EventID: ev.ID}
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&rec).Error; err != nil {
			return err
		}
		return tx.Model(&models.MessEvent{}).
			Where("id = ?", ev.ID).
			UpdateColumn("attendee_count", gorm.Expr("attendee_count + 1")).Error
	})
	if err != nil {
		// a concurrent scan that won the unique index race is the same
		// "already done" outcome as the pre-check
		low := strings.ToLower(err.Error())
		if strings.Contains(low, "duplicate key") || strings.Contains(low, "unique") {
			if database.DB.First(&existing, "user_id = ? AND event_id = ?", uid, ev.ID).Error == nil {
				return h.result(c, scanResult{
					Result:      ScanAlreadyAttended,
					Message:     "Already Attended",
					Description: "Attendance already recorded",
					EventName:   ev.Name,
					AttendedAt:  &existing.AttendedAt,
				})
			}
		}
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}

	return h.result(c, scanResult{
		Result:      ScanSuccess,
		Message:     "Attendance Registered",
		Description: "You have been marked present",
		EventName:   ev.Name,
		AttendedAt:  &rec.AttendedAt,
	})
}

// GET /mess/attendance/mine?eventId=
func (h *MessAttendanceHandler) Mine(c echo.Context) error {
	eventID := strings.TrimSpace(c.QueryParam("eventId"))
	if eventID == "" {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}
	var rec models.MessAttendance
	err := database.DB.First(&rec, "user_id = ? AND event_id = ?", authUID(c), eventID).Error
	if err == gorm.ErrRecordNotFound {
		return c.JSON(http.StatusOK, map[string]any{"attended": false})
	}
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"attended": true, "record": rec})
}
