package handlers

import (
	"math"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/JohnsonOduri/Ur-OrbIIIT/database"
	"github.com/JohnsonOduri/Ur-OrbIIIT/models"
)

type MessRatingHandler struct{}

func NewMessRatingHandler() *MessRatingHandler { return &MessRatingHandler{} }

type ratingReq struct {
	Day    string `json:"day" validate:"required,max=12"`
	Meal   string `json:"meal" validate:"required,max=40"`
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
}

// PUT /mess/ratings. One rating per (user, day, meal); repeat calls update.
func (h *MessRatingHandler) Upsert(c echo.Context) error {
	var req ratingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_FAILED", "detail": err.Error()})
	}
	day := strings.ToUpper(strings.TrimSpace(req.Day))
	meal := strings.TrimSpace(req.Meal)
	owner := authUID(c)

	var row models.MessRating
	err := database.DB.First(&row, "owner = ? AND day = ? AND meal = ?", owner, day, meal).Error
	switch {
	case err == gorm.ErrRecordNotFound:
		row = models.MessRating{Owner: &owner, Day: day, Meal: meal, Rating: req.Rating}
		if err := database.DB.Create(&row).Error; err != nil {
			return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
		}
	case err != nil:
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	default:
		if err := database.DB.Model(&row).Update("rating", req.Rating).Error; err != nil {
			return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
		}
		row.Rating = req.Rating
	}
	return c.JSON(http.StatusOK, row)
}

type mealAggregate struct {
	Avg      float64 `json:"avg"`
	Count    int     `json:"count"`
	Relative float64 `json:"relative"`
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

// GET /mess/ratings?day=MONDAY
// Returns per-meal averages plus a relative score: the day's meal averages
// rescaled to 0..5 between the worst and best meal, so "better than its
// peers today" is visible even when everything scores high.
func (h *MessRatingHandler) ForDay(c echo.Context) error {
	day := strings.ToUpper(strings.TrimSpace(c.QueryParam("day")))
	if day == "" {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}

	var rows []models.MessRating
	if err := database.DB.Where("day = ?", day).Find(&rows).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}

	type acc struct {
		sum   int
		count int
	}
	sums := map[string]*acc{}
	for _, r := range rows {
		meal := strings.TrimSpace(r.Meal)
		if meal == "" {
			meal = "Unknown"
		}
		if sums[meal] == nil {
			sums[meal] = &acc{}
		}
		sums[meal].sum += r.Rating
		sums[meal].count++
	}

	out := map[string]mealAggregate{}
	minAvg, maxAvg := math.Inf(1), math.Inf(-1)
	for meal, a := range sums {
		avg := round2(float64(a.sum) / float64(a.count))
		out[meal] = mealAggregate{Avg: avg, Count: a.count}
		minAvg = math.Min(minAvg, avg)
		maxAvg = math.Max(maxAvg, avg)
	}
	for meal, m := range out {
		if maxAvg == minAvg {
			// all meals equal: fall back to the absolute average
			m.Relative = m.Avg
		} else {
			m.Relative = round2((m.Avg - minAvg) / (maxAvg - minAvg) * 5)
		}
		out[meal] = m
	}
	return c.JSON(http.StatusOK, out)
}
