package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/JohnsonOduri/Ur-OrbIIIT/database"
	"github.com/JohnsonOduri/Ur-OrbIIIT/models"
)

type TaskHandler struct{}

func NewTaskHandler() *TaskHandler { return &TaskHandler{} }

type taskPayload struct {
	Title string `json:"title" validate:"required,max=200"`
	Date  string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Time  string `json:"time" validate:"omitempty,datetime=15:04"`
	Slot  string `json:"slot" validate:"omitempty,max=20"`
}

// POST /tasks
func (h *TaskHandler) Create(c echo.Context) error {
	var p taskPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	p.Title = strings.TrimSpace(p.Title)
	if err := validate.Struct(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_FAILED", "detail": err.Error()})
	}

	row := models.UserTask{
		Owner: authUID(c),
		Title: p.Title,
		Date:  p.Date,
		Time:  p.Time,
		Slot:  p.Slot,
		// entries vanish after a week unless purged earlier
		ExpiresAt: time.Now().Add(7 * 24 * time.Hour),
	}
	if err := database.DB.Create(&row).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, row)
}

// GET /tasks?start=YYYY-MM-DD&end=YYYY-MM-DD
func (h *TaskHandler) ListRange(c echo.Context) error {
	start := strings.TrimSpace(c.QueryParam("start"))
	end := strings.TrimSpace(c.QueryParam("end"))
	if start == "" || end == "" {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}
	var rows []models.UserTask
	if err := database.DB.
		Where("owner = ? AND date >= ? AND date <= ?", authUID(c), start, end).
		Order("date ASC, time ASC, id ASC").
		Find(&rows).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, rows)
}

type taskPatch struct {
	Completed *bool `json:"completed"`
}

// PATCH /tasks/:id
func (h *TaskHandler) Patch(c echo.Context) error {
	var body taskPatch
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if body.Completed == nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}

	var row models.UserTask
	if err := database.DB.First(&row, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	if row.Owner != authUID(c) {
		return c.JSON(http.StatusForbidden, map[string]any{"error": "FORBIDDEN"})
	}
	if err := database.DB.Model(&row).Update("completed", *body.Completed).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	row.Completed = *body.Completed
	return c.JSON(http.StatusOK, row)
}

// DELETE /tasks/expired?before=YYYY-MM-DD
// Drops the caller's tasks whose expiry (or date, when no expiry is set)
// falls before the cutoff.
func (h *TaskHandler) PurgeExpired(c echo.Context) error {
	before := strings.TrimSpace(c.QueryParam("before"))
	if before == "" {
		before = time.Now().Format("2006-01-02")
	}
	cutoff, err := time.Parse("2006-01-02", before)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_DATE"})
	}

	res := database.DB.
		Where("owner = ? AND (expires_at < ? OR (date <> '' AND date < ?))", authUID(c), cutoff, before).
		Delete(&models.UserTask{})
	if res.Error != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": res.Error.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"removed": res.RowsAffected})
}
