package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/JohnsonOduri/Ur-OrbIIIT/models"
)

// AttendanceSheet builds the per-event attendance workbook: one sheet, bold
// filterable header, one row per scan in arrival order.
func AttendanceSheet(ev *models.MessEvent, recs []models.MessAttendance) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	sheet := "Attendance"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := []string{"#", "User ID", "Email", "Attended At"}
	for col, h := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellStr(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("set cell %s: %w", cell, err)
		}
	}
	bold, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	endHeader, _ := excelize.CoordinatesToCellName(len(header), 1)
	_ = f.SetCellStyle(sheet, "A1", endHeader, bold)
	_ = f.AutoFilter(sheet, "A1:"+endHeader, nil)

	for i, r := range recs {
		row := []string{
			fmt.Sprintf("%d", i+1),
			r.UserID,
			r.Email,
			r.AttendedAt.Format("2006-01-02 15:04:05"),
		}
		for col, val := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellStr(sheet, cell, val); err != nil {
				return nil, fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
	}

	_ = f.SetDocProps(&excelize.DocProperties{
		Title: fmt.Sprintf("%s (%s)", ev.Name, ev.Date),
	})

	return f.WriteToBuffer()
}
