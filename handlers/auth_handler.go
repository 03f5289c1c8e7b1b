package handlers

import (
	"net/http"
	"strings"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/JohnsonOduri/Ur-OrbIIIT/config"
	"github.com/JohnsonOduri/Ur-OrbIIIT/database"
	"github.com/JohnsonOduri/Ur-OrbIIIT/models"
)

type AuthHandler struct {
	cfg *config.Config
}

func NewAuthHandler(cfg *config.Config) *AuthHandler { return &AuthHandler{cfg: cfg} }

func (h *AuthHandler) signJWT(u *models.User, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":   u.UID,
		"role":  u.Role,
		"name":  u.Name,
		"email": u.Email,
		"exp":   time.Now().Add(ttl).Unix(),
		"iat":   time.Now().Unix(),
	}
	tk := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tk.SignedString([]byte(h.cfg.JWTSecret))
}

// resolveRole maps the configured reviewer emails onto workflow roles;
// everyone else signs in as a student.
func (h *AuthHandler) resolveRole(email string) string {
	switch email {
	case h.cfg.FacultyEmail:
		return models.RoleFaculty
	case h.cfg.WardenEmail:
		return models.RoleWarden
	}
	return models.RoleStudent
}

type googleLoginReq struct {
	IDToken string `json:"id_token"`
}

// POST /auth/google
// Verifies the Google ID token, gates on the college email domain, upserts
// the user record and returns an API token.
func (h *AuthHandler) GoogleLogin(c echo.Context) error {
	var req googleLoginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if strings.TrimSpace(req.IDToken) == "" {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}

	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(req.IDToken, []string{h.cfg.GoogleClientID}); err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]any{"error": "INVALID_GOOGLE_TOKEN"})
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(req.IDToken)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]any{"error": "INVALID_GOOGLE_TOKEN"})
	}

	email := strings.TrimSpace(strings.ToLower(claimSet.Email))
	if !strings.HasSuffix(email, "@"+h.cfg.AllowedEmailDomain) {
		return c.JSON(http.StatusForbidden, map[string]any{"error": "EMAIL_DOMAIN_NOT_ALLOWED"})
	}

	role := h.resolveRole(email)

	var u models.User
	err = database.DB.First(&u, "uid = ?", claimSet.Sub).Error
	switch {
	case err == gorm.ErrRecordNotFound:
		u = models.User{UID: claimSet.Sub, Email: email, Name: claimSet.Name, Role: role}
		if err := database.DB.Create(&u).Error; err != nil {
			return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
		}
	case err != nil:
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	default:
		// refresh identity fields on every login; role follows config
		updates := map[string]any{"email": email, "name": claimSet.Name, "role": role}
		if err := database.DB.Model(&u).Updates(updates).Error; err != nil {
			return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
		}
		u.Email, u.Name, u.Role = email, claimSet.Name, role
	}

	token, err := h.signJWT(&u, 7*24*time.Hour)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "TOKEN_GEN_FAILED"})
	}

	return c.JSON(http.StatusOK, map[string]any{"token": token, "user": u})
}

// GET /auth/me
func (h *AuthHandler) Me(c echo.Context) error {
	var u models.User
	if err := database.DB.First(&u, "uid = ?", authUID(c)).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, u)
}
