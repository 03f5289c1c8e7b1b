package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/JohnsonOduri/Ur-OrbIIIT/database"
	"github.com/JohnsonOduri/Ur-OrbIIIT/models"
)

type LeavePDFHandler struct{}

func NewLeavePDFHandler() *LeavePDFHandler { return &LeavePDFHandler{} }

// GET /leave-requests/:id/pdf
// The form is only obtainable once the workflow is terminal-approved.
func (h *LeavePDFHandler) Download(c echo.Context) error {
	var row models.LeaveRequest
	if err := database.DB.First(&row, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	if authRole(c) == models.RoleStudent && row.StudentUID != authUID(c) {
		return c.JSON(http.StatusForbidden, map[string]any{"error": "FORBIDDEN"})
	}
	if row.Status != models.StageApproved {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "PDF_REQUIRES_APPROVAL"})
	}

	buf, err := renderLeavePDF(&row)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "PDF_RENDER_FAILED"})
	}

	filename := row.StudentProfile.RollNumber
	if filename == "" {
		filename = "LeaveForm"
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%s.pdf`, filename))
	return c.Blob(http.StatusOK, "application/pdf", buf.Bytes())
}

func formatFormDate(value string) string {
	if value == "" {
		return ""
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return value
	}
	return parsed.Format("02 Jan 2006")
}

func renderLeavePDF(row *models.LeaveRequest) (*bytes.Buffer, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(18, 16, 18)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 15)
	pdf.CellFormat(0, 8, "Indian Institute of Information Technology Kottayam", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 7, "Hostel Leave Application", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 6, "Application ID: "+row.ApplicationID, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	field := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(52, 7, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 7, value, "", "L", false)
	}

	p := row.StudentProfile
	field("Name", p.Name)
	field("Roll Number", p.RollNumber)
	field("Mobile", p.Mobile)
	field("Course / Semester", p.Course+" / "+p.Semester)
	field("Hostel / Room", p.Hostel+" / "+p.RoomNumber)
	field("Home Address", row.StudentAddress)
	field("Address During Leave", row.ContactAddress)
	field("Parent Mobile", row.ParentMobile)
	field("Parent Email", row.ParentEmail)
	pdf.Ln(2)

	field("Purpose of Leave", row.LeavePurpose)
	field("From", formatFormDate(row.FromDate)+" "+row.FromTime)
	field("To", formatFormDate(row.ToDate)+" "+row.ToTime)
	field("Total Days", fmt.Sprintf("%d", row.TotalDays))
	field("Working Days", fmt.Sprintf("%d", row.WorkingDays))
	field("Date Applied", formatFormDate(row.DateApplied))
	pdf.Ln(4)

	approval := func(title string, st models.ApprovalState) {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 7, title, "", 1, "L", false, 0, "")
		name := st.Name
		if name == "" {
			name = title
		}
		actedAt := ""
		if st.ActedAt != nil {
			actedAt = st.ActedAt.Format("02 Jan 2006 15:04")
		}
		field("Approved By", name)
		field("Comments", st.Comments)
		field("Date", actedAt)
		pdf.Ln(2)
	}
	approval("Faculty Advisor", row.Faculty)
	approval("Warden", row.Warden)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return &buf, nil
}
