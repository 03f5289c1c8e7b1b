package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JohnsonOduri/Ur-OrbIIIT/database"
	"github.com/JohnsonOduri/Ur-OrbIIIT/models"
)

func TestMessRatings(t *testing.T) {
	startDB(t)
	rating := NewMessRatingHandler()

	alice := student("1")
	bob := student("2")

	rate := func(as caller, body string) models.MessRating {
		rec := call(t, rating.Upsert, http.MethodPut, "/mess/ratings", body, as, nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		return decode[models.MessRating](t, rec)
	}

	t.Run("day is normalized", func(t *testing.T) {
		row := rate(alice, `{"day":"monday","meal":"Breakfast","rating":4}`)
		assert.Equal(t, "MONDAY", row.Day)
		assert.Equal(t, 4, row.Rating)
	})

	t.Run("repeat rating updates in place", func(t *testing.T) {
		rate(alice, `{"day":"MONDAY","meal":"Breakfast","rating":2}`)

		var n int64
		require.NoError(t, database.DB.Model(&models.MessRating{}).
			Where("day = ? AND meal = ?", "MONDAY", "Breakfast").Count(&n).Error)
		assert.EqualValues(t, 1, n)
	})

	t.Run("out of range rating", func(t *testing.T) {
		rec := call(t, rating.Upsert, http.MethodPut, "/x", `{"day":"MONDAY","meal":"Breakfast","rating":6}`, alice, nil)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "VALIDATION_FAILED", errCode(t, rec))
	})

	t.Run("per-day aggregate with relative score", func(t *testing.T) {
		rate(bob, `{"day":"MONDAY","meal":"Breakfast","rating":5}`)
		rate(alice, `{"day":"MONDAY","meal":"Lunch","rating":3}`)

		rec := call(t, rating.ForDay, http.MethodGet, "/mess/ratings?day=monday", "", alice, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		out := decode[map[string]mealAggregate](t, rec)
		require.Len(t, out, 2)

		// alice re-rated breakfast down to 2, bob gave 5
		assert.Equal(t, mealAggregate{Avg: 3.5, Count: 2, Relative: 5}, out["Breakfast"])
		assert.Equal(t, mealAggregate{Avg: 3, Count: 1, Relative: 0}, out["Lunch"])
	})

	t.Run("single meal falls back to its average", func(t *testing.T) {
		rate(alice, `{"day":"TUESDAY","meal":"Dinner","rating":4}`)

		rec := call(t, rating.ForDay, http.MethodGet, "/mess/ratings?day=TUESDAY", "", alice, nil)
		out := decode[map[string]mealAggregate](t, rec)
		require.Len(t, out, 1)
		assert.Equal(t, mealAggregate{Avg: 4, Count: 1, Relative: 4}, out["Dinner"])
	})

	t.Run("day is required", func(t *testing.T) {
		rec := call(t, rating.ForDay, http.MethodGet, "/mess/ratings", "", alice, nil)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "MISSING_FIELDS", errCode(t, rec))
	})
}
