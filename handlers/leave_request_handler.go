package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/JohnsonOduri/Ur-OrbIIIT/config"
	"github.com/JohnsonOduri/Ur-OrbIIIT/database"
	"github.com/JohnsonOduri/Ur-OrbIIIT/metrics"
	"github.com/JohnsonOduri/Ur-OrbIIIT/models"
)

type LeaveRequestHandler struct {
	cfg *config.Config
}

func NewLeaveRequestHandler(cfg *config.Config) *LeaveRequestHandler {
	return &LeaveRequestHandler{cfg: cfg}
}

type leaveSubmitReq struct {
	StudentAddress string `json:"studentAddress" validate:"required"`
	ContactAddress string `json:"contactAddress" validate:"required"`
	ParentMobile   string `json:"parentMobile" validate:"required,numeric,min=10,max=15"`
	ParentEmail    string `json:"parentEmail" validate:"required,email"`
	LeavePurpose   string `json:"leavePurpose" validate:"required"`
	FromDate       string `json:"fromDate" validate:"required,datetime=2006-01-02"`
	FromTime       string `json:"fromTime" validate:"required,datetime=15:04"`
	ToDate         string `json:"toDate" validate:"required,datetime=2006-01-02"`
	ToTime         string `json:"toTime" validate:"required,datetime=15:04"`
}

// POST /leave-requests
// A student may hold at most one open request; the rule lives here, not in
// the UI.
func (h *LeaveRequestHandler) Submit(c echo.Context) error {
	var req leaveSubmitReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_FAILED", "detail": err.Error()})
	}

	var u models.User
	if err := database.DB.First(&u, "uid = ?", authUID(c)).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	if !u.ProfileComplete() {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "PROFILE_INCOMPLETE"})
	}

	totalDays, workingDays, err := models.CountLeaveDays(req.FromDate, req.ToDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_DATE_RANGE"})
	}

	var open int64
	if err := database.DB.Model(&models.LeaveRequest{}).
		Where("student_uid = ? AND status IN ?", u.UID, models.OpenStages()).
		Count(&open).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	if open > 0 {
		return c.JSON(http.StatusConflict, map[string]any{"error": "OPEN_REQUEST_EXISTS"})
	}

	row := models.LeaveRequest{
		ApplicationID: models.NewApplicationID(u.RollNumber),
		StudentUID:    u.UID,
		StudentProfile: models.StudentProfile{
			Name:       u.Name,
			RollNumber: u.RollNumber,
			Mobile:     u.Mobile,
			Course:     u.Course,
			Semester:   u.Semester,
			Hostel:     u.Hostel,
			RoomNumber: u.RoomNumber,
		},
		StudentAddress: strings.TrimSpace(req.StudentAddress),
		ContactAddress: strings.TrimSpace(req.ContactAddress),
		ParentMobile:   strings.TrimSpace(req.ParentMobile),
		ParentEmail:    strings.TrimSpace(strings.ToLower(req.ParentEmail)),
		LeavePurpose:   strings.TrimSpace(req.LeavePurpose),
		FromDate:       req.FromDate,
		FromTime:       req.FromTime,
		ToDate:         req.ToDate,
		ToTime:         req.ToTime,
		TotalDays:      totalDays,
		WorkingDays:    workingDays,
		DateApplied:    time.Now().Format("2006-01-02"),
		Status:         models.StagePendingFaculty,
		Faculty:        models.ApprovalState{Status: models.ApprovalPending, Email: h.cfg.FacultyEmail},
		Warden:         models.ApprovalState{Status: models.ApprovalPending, Email: h.cfg.WardenEmail},
	}
	if err := database.DB.Create(&row).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}

	metrics.LeaveSubmitted.Inc()
	return c.JSON(http.StatusCreated, row)
}

// GET /leave-requests/mine, newest first
func (h *LeaveRequestHandler) ListMine(c echo.Context) error {
	var rows []models.LeaveRequest
	if err := database.DB.
		Where("student_uid = ?", authUID(c)).
		Order("created_at DESC, id DESC").
		Find(&rows).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, rows)
}

// GET /leave-requests/pending. The caller's queue, oldest submission first
// so review stays FIFO.
func (h *LeaveRequestHandler) ListPending(c echo.Context) error {
	stage := models.StagePendingFaculty
	if authRole(c) == models.RoleWarden {
		stage = models.StagePendingWarden
	}
	var rows []models.LeaveRequest
	if err := database.DB.
		Where("status = ?", stage).
		Order("created_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, rows)
}

// GET /leave-requests/pending-count
func (h *LeaveRequestHandler) PendingCount(c echo.Context) error {
	stage := models.StagePendingFaculty
	if authRole(c) == models.RoleWarden {
		stage = models.StagePendingWarden
	}
	var n int64
	if err := database.DB.Model(&models.LeaveRequest{}).
		Where("status = ?", stage).Count(&n).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"count": n})
}

// GET /leave-requests/:id. Owner or reviewer only; ships the derived
// tracker steps alongside the record.
func (h *LeaveRequestHandler) GetByID(c echo.Context) error {
	var row models.LeaveRequest
	if err := database.DB.First(&row, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	role := authRole(c)
	if role == models.RoleStudent && row.StudentUID != authUID(c) {
		return c.JSON(http.StatusForbidden, map[string]any{"error": "FORBIDDEN"})
	}
	return c.JSON(http.StatusOK, map[string]any{"request": row, "steps": row.Steps()})
}

type decisionReq struct {
	Comments string `json:"comments"`
}

// POST /leave-requests/:id/approve
func (h *LeaveRequestHandler) Approve(c echo.Context) error {
	return h.decide(c, models.DecisionApprove)
}

// POST /leave-requests/:id/reject
func (h *LeaveRequestHandler) Reject(c echo.Context) error {
	return h.decide(c, models.DecisionReject)
}

func (h *LeaveRequestHandler) decide(c echo.Context, decision string) error {
	var body decisionReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	comments := strings.TrimSpace(body.Comments)
	if comments == "" {
		// audit trail: no silent decisions
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "COMMENTS_REQUIRED"})
	}

	var row models.LeaveRequest
	if err := database.DB.First(&row, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}

	role := authRole(c)
	next, err := models.NextStage(row.Status, role, decision)
	if err != nil {
		return c.JSON(http.StatusConflict, map[string]any{"error": "STAGE_MISMATCH"})
	}

	now := time.Now()
	sub := models.ApprovalState{
		Status:   models.ApprovalApproved,
		Comments: comments,
		ActedAt:  &now,
		Name:     authName(c),
		Email:    authEmail(c),
	}
	rejectionReason := ""
	if decision == models.DecisionReject {
		sub.Status = models.ApprovalRejected
		rejectionReason = comments
	}

	prefix := "faculty_"
	if role == models.RoleWarden {
		prefix = "warden_"
	}
	updates := map[string]any{
		prefix + "status":   sub.Status,
		prefix + "comments": sub.Comments,
		prefix + "acted_at": sub.ActedAt,
		prefix + "name":     sub.Name,
		prefix + "email":    sub.Email,
		"status":            next,
		"rejection_reason":  rejectionReason,
		"version":           row.Version + 1,
	}

	// compare-and-swap on version: a concurrent decision loses cleanly
	// instead of silently overwriting.
	res := database.DB.Model(&models.LeaveRequest{}).
		Where("id = ? AND version = ?", row.ID, row.Version).
		Updates(updates)
	if res.Error != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": res.Error.Error()})
	}
	if res.RowsAffected == 0 {
		return c.JSON(http.StatusConflict, map[string]any{"error": "VERSION_CONFLICT"})
	}

	metrics.LeaveDecisions.WithLabelValues(role, decision).Inc()

	if err := database.DB.First(&row, "id = ?", row.ID).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"request": row, "steps": row.Steps()})
}
