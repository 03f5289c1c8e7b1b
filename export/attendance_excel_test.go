package export

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/JohnsonOduri/Ur-OrbIIIT/models"
)

func TestAttendanceSheet(t *testing.T) {
	ev := &models.MessEvent{ID: 1, Name: "Onam Sadhya", Date: "2024-09-05"}
	attended := time.Date(2024, 9, 5, 12, 30, 0, 0, time.UTC)
	recs := []models.MessAttendance{
		{UserID: "stu-1", Email: "stu1@iiitkottayam.ac.in", EventID: 1, AttendedAt: attended},
		{UserID: "stu-2", Email: "stu2@iiitkottayam.ac.in", EventID: 1, AttendedAt: attended.Add(time.Minute)},
	}

	buf, err := AttendanceSheet(ev, recs)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Attendance")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"#", "User ID", "Email", "Attended At"}, rows[0])
	assert.Equal(t, []string{"1", "stu-1", "stu1@iiitkottayam.ac.in", "2024-09-05 12:30:00"}, rows[1])
	assert.Equal(t, []string{"2", "stu-2", "stu2@iiitkottayam.ac.in", "2024-09-05 12:31:00"}, rows[2])
}

func TestAttendanceSheetEmpty(t *testing.T) {
	buf, err := AttendanceSheet(&models.MessEvent{Name: "Dinner", Date: "2024-09-05"}, nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Attendance")
	require.NoError(t, err)
	require.Len(t, rows, 1)
}
