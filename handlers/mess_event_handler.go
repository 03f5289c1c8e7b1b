package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	qrcode "github.com/skip2/go-qrcode"
	"gorm.io/gorm"

	"github.com/JohnsonOduri/Ur-OrbIIIT/config"
	"github.com/JohnsonOduri/Ur-OrbIIIT/database"
	"github.com/JohnsonOduri/Ur-OrbIIIT/export"
	"github.com/JohnsonOduri/Ur-OrbIIIT/models"
)

type MessEventHandler struct {
	cfg *config.Config
}

func NewMessEventHandler(cfg *config.Config) *MessEventHandler {
	return &MessEventHandler{cfg: cfg}
}

// Event management belongs to the single configured mess administrator.
func (h *MessEventHandler) isAdmin(c echo.Context) bool {
	return authEmail(c) != "" && authEmail(c) == h.cfg.MessAdminEmail
}

// eventView attaches the derived liveness status; nothing ever stores it.
type eventView struct {
	models.MessEvent
	Status string `json:"status"`
}

func viewOf(e models.MessEvent, now time.Time) eventView {
	return eventView{MessEvent: e, Status: e.StatusAt(now)}
}

type createEventReq struct {
	Name      string `json:"name" validate:"required,max=120"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime string `json:"startTime" validate:"required,datetime=15:04"`
	EndTime   string `json:"endTime" validate:"required,datetime=15:04"`
}

// POST /mess/events
func (h *MessEventHandler) Create(c echo.Context) error {
	if !h.isAdmin(c) {
		return c.JSON(http.StatusForbidden, map[string]any{"error": "FORBIDDEN"})
	}
	var req createEventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_FAILED", "detail": err.Error()})
	}
	if req.StartTime >= req.EndTime { // zero-padded HH:MM compares lexically
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_TIME_WINDOW"})
	}
	if req.Date < time.Now().Format("2006-01-02") {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "DATE_IN_PAST"})
	}

	row := models.MessEvent{
		Name:      req.Name,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		QRCode:    uuid.NewString(),
		CreatedBy: authUID(c),
	}
	if err := database.DB.Create(&row).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, viewOf(row, time.Now()))
}

// GET /mess/events
func (h *MessEventHandler) List(c echo.Context) error {
	var rows []models.MessEvent
	if err := database.DB.Order("date ASC, start_time ASC, id ASC").Find(&rows).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	now := time.Now()
	out := make([]eventView, 0, len(rows))
	for _, e := range rows {
		out = append(out, viewOf(e, now))
	}
	return c.JSON(http.StatusOK, out)
}

// GET /mess/events/:id
func (h *MessEventHandler) GetByID(c echo.Context) error {
	var row models.MessEvent
	if err := database.DB.First(&row, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, viewOf(row, time.Now()))
}

// POST /mess/events/:id/regenerate-qr
// Rotates the opaque token; every previously distributed QR image is dead
// for new scans from this moment.
func (h *MessEventHandler) RegenerateQr(c echo.Context) error {
	if !h.isAdmin(c) {
		return c.JSON(http.StatusForbidden, map[string]any{"error": "FORBIDDEN"})
	}
	var row models.MessEvent
	if err := database.DB.First(&row, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	row.QRCode = uuid.NewString()
	if err := database.DB.Model(&row).Update("qr_code", row.QRCode).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, viewOf(row, time.Now()))
}

// GET /mess/events/:id/qr.png
func (h *MessEventHandler) QRImage(c echo.Context) error {
	if !h.isAdmin(c) {
		return c.JSON(http.StatusForbidden, map[string]any{"error": "FORBIDDEN"})
	}
	var row models.MessEvent
	if err := database.DB.First(&row, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	payload, err := json.Marshal(row.Payload())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "QR_ENCODE_FAILED"})
	}
	png, err := qrcode.Encode(string(payload), qrcode.Medium, 512)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "QR_ENCODE_FAILED"})
	}
	return c.Blob(http.StatusOK, "image/png", png)
}

// GET /mess/events/:id/attendance
func (h *MessEventHandler) Attendance(c echo.Context) error {
	if !h.isAdmin(c) {
		return c.JSON(http.StatusForbidden, map[string]any{"error": "FORBIDDEN"})
	}
	var rows []models.MessAttendance
	if err := database.DB.
		Where("event_id = ?", c.Param("id")).
		Order("attended_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, rows)
}

// GET /mess/events/:id/attendance.xlsx
func (h *MessEventHandler) AttendanceExcel(c echo.Context) error {
	if !h.isAdmin(c) {
		return c.JSON(http.StatusForbidden, map[string]any{"error": "FORBIDDEN"})
	}
	var row models.MessEvent
	if err := database.DB.First(&row, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	var recs []models.MessAttendance
	if err := database.DB.
		Where("event_id = ?", row.ID).
		Order("attended_at ASC, id ASC").
		Find(&recs).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}

	buf, err := export.AttendanceSheet(&row, recs)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "EXPORT_FAILED"})
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		`attachment; filename=attendance-`+row.Date+`.xlsx`)
	return c.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
