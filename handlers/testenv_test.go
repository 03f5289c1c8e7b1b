package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/JohnsonOduri/Ur-OrbIIIT/config"
	"github.com/JohnsonOduri/Ur-OrbIIIT/database"
	"github.com/JohnsonOduri/Ur-OrbIIIT/models"
	"github.com/JohnsonOduri/Ur-OrbIIIT/testutil/testdb"
)

var testEcho = echo.New()

// startDB spins up a postgres container for the test and points the shared
// database handle at it.
func startDB(t *testing.T) {
	t.Helper()
	h, err := testdb.Start(context.Background())
	require.NoError(t, err)
	t.Cleanup(h.Close)
	database.DB = h.DB
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "test-secret",
		AllowedEmailDomain: "iiitkottayam.ac.in",
		FacultyEmail:       "advisor@iiitkottayam.ac.in",
		WardenEmail:        "warden@iiitkottayam.ac.in",
		MessAdminEmail:     "messadmin@iiitkottayam.ac.in",
	}
}

// caller stands in for the claims RequireAuth would have set.
type caller struct {
	uid, role, name, email string
}

func student(n string) caller {
	return caller{uid: "stu-" + n, role: models.RoleStudent, name: "Student " + n, email: "stu" + n + "@iiitkottayam.ac.in"}
}

var (
	facultyCaller = caller{uid: "fac-1", role: models.RoleFaculty, name: "Dr. Advisor", email: "advisor@iiitkottayam.ac.in"}
	wardenCaller  = caller{uid: "war-1", role: models.RoleWarden, name: "Chief Warden", email: "warden@iiitkottayam.ac.in"}
	adminCaller   = caller{uid: "adm-1", role: models.RoleStudent, name: "Mess Admin", email: "messadmin@iiitkottayam.ac.in"}
)

// call invokes a handler directly, bypassing routing and the JWT middleware.
func call(t *testing.T, fn echo.HandlerFunc, method, target, body string, as caller, params map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := testEcho.NewContext(req, rec)
	names := make([]string, 0, len(params))
	values := make([]string, 0, len(params))
	for k, v := range params {
		names = append(names, k)
		values = append(values, v)
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)
	c.Set("uid", as.uid)
	c.Set("role", as.role)
	c.Set("name", as.name)
	c.Set("email", as.email)
	require.NoError(t, fn(c))
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), "body: %s", rec.Body.String())
	return out
}

func errCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[map[string]any](t, rec)["error"].(string)
}

// seedStudent inserts a sign-in record with a completed profile.
func seedStudent(t *testing.T, as caller, roll string) {
	t.Helper()
	require.NoError(t, database.DB.Create(&models.User{
		UID:        as.uid,
		Email:      as.email,
		Name:       as.name,
		Role:       models.RoleStudent,
		RollNumber: roll,
		Mobile:     "9876543210",
		Course:     "B.Tech CSE",
		Semester:   "4",
		Hostel:     "Nila",
		RoomNumber: "A-214",
	}).Error)
}
