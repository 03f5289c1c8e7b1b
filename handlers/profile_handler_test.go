package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JohnsonOduri/Ur-OrbIIIT/database"
	"github.com/JohnsonOduri/Ur-OrbIIIT/models"
)

func TestProfile(t *testing.T) {
	startDB(t)
	profile := NewProfileHandler()
	lv := NewLeaveRequestHandler(testConfig())

	stu := student("1")
	require.NoError(t, database.DB.Create(&models.User{
		UID: stu.uid, Email: stu.email, Name: stu.name, Role: models.RoleStudent,
	}).Error)

	t.Run("update normalizes fields", func(t *testing.T) {
		rec := call(t, profile.Update, http.MethodPut, "/profile", `{
			"name": "  Anil   Kumar ",
			"rollNumber": "2024bcs0042",
			"mobile": "9876543210",
			"course": "B.Tech CSE",
			"semester": "4",
			"hostel": "Nila",
			"roomNumber": "A-214"
		}`, stu, nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		u := decode[models.User](t, rec)
		assert.Equal(t, "Anil Kumar", u.Name)
		assert.Equal(t, "2024BCS0042", u.RollNumber)
	})

	t.Run("get round-trips", func(t *testing.T) {
		rec := call(t, profile.Get, http.MethodGet, "/profile", "", stu, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		u := decode[models.User](t, rec)
		assert.Equal(t, "2024BCS0042", u.RollNumber)
		assert.True(t, u.ProfileComplete())
	})

	t.Run("validation rejects bad mobile", func(t *testing.T) {
		rec := call(t, profile.Update, http.MethodPut, "/profile", `{
			"name": "Anil Kumar",
			"rollNumber": "2024BCS0042",
			"mobile": "not-a-number",
			"course": "B.Tech CSE",
			"semester": "4",
			"hostel": "Nila",
			"roomNumber": "A-214"
		}`, stu, nil)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "VALIDATION_FAILED", errCode(t, rec))
	})

	t.Run("leave snapshot survives profile edits", func(t *testing.T) {
		rec := call(t, lv.Submit, http.MethodPost, "/leave-requests", submitBody, stu, nil)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		row := decode[models.LeaveRequest](t, rec)
		require.Equal(t, "Nila", row.StudentProfile.Hostel)

		rec = call(t, profile.Update, http.MethodPut, "/profile", `{
			"name": "Anil Kumar",
			"rollNumber": "2024BCS0042",
			"mobile": "9876543210",
			"course": "B.Tech CSE",
			"semester": "4",
			"hostel": "Kaveri",
			"roomNumber": "B-101"
		}`, stu, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var fresh models.LeaveRequest
		require.NoError(t, database.DB.First(&fresh, "id = ?", row.ID).Error)
		assert.Equal(t, "Nila", fresh.StudentProfile.Hostel)
		assert.Equal(t, "A-214", fresh.StudentProfile.RoomNumber)
	})
}
