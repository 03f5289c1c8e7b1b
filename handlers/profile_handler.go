package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/JohnsonOduri/Ur-OrbIIIT/database"
	"github.com/JohnsonOduri/Ur-OrbIIIT/models"
)

type ProfileHandler struct{}

func NewProfileHandler() *ProfileHandler { return &ProfileHandler{} }

type profilePayload struct {
	Name       string `json:"name" validate:"required,max=120"`
	RollNumber string `json:"rollNumber" validate:"required,max=20"`
	Mobile     string `json:"mobile" validate:"required,numeric,min=10,max=15"`
	Course     string `json:"course" validate:"required,max=60"`
	Semester   string `json:"semester" validate:"required,max=10"`
	Hostel     string `json:"hostel" validate:"required,max=60"`
	RoomNumber string `json:"roomNumber" validate:"required,max=10"`
	PhotoURL   string `json:"photoURL" validate:"omitempty,url,max=255"`
}

func (p *profilePayload) normalize() {
	p.Name = strings.Join(strings.Fields(p.Name), " ")
	p.RollNumber = strings.ToUpper(strings.TrimSpace(p.RollNumber))
	p.Mobile = strings.TrimSpace(p.Mobile)
	p.Course = strings.TrimSpace(p.Course)
	p.Semester = strings.TrimSpace(p.Semester)
	p.Hostel = strings.TrimSpace(p.Hostel)
	p.RoomNumber = strings.TrimSpace(p.RoomNumber)
	p.PhotoURL = strings.TrimSpace(p.PhotoURL)
}

// GET /profile
func (h *ProfileHandler) Get(c echo.Context) error {
	var u models.User
	if err := database.DB.First(&u, "uid = ?", authUID(c)).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, u)
}

// PUT /profile. First-time setup and later edits share this endpoint.
func (h *ProfileHandler) Update(c echo.Context) error {
	var p profilePayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if err := validate.Struct(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_FAILED", "detail": err.Error()})
	}

	var u models.User
	if err := database.DB.First(&u, "uid = ?", authUID(c)).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}

	updates := map[string]any{
		"name":        p.Name,
		"roll_number": p.RollNumber,
		"mobile":      p.Mobile,
		"course":      p.Course,
		"semester":    p.Semester,
		"hostel":      p.Hostel,
		"room_number": p.RoomNumber,
	}
	if p.PhotoURL != "" {
		updates["photo_url"] = p.PhotoURL
	}
	if err := database.DB.Model(&u).Updates(updates).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}

	if err := database.DB.First(&u, "uid = ?", u.UID).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, u)
}
