package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

var validate = validator.New()

// Claims attached by middlewares.RequireAuth (or set directly in tests).
func authUID(c echo.Context) string {
	s, _ := c.Get("uid").(string)
	return s
}

func authRole(c echo.Context) string {
	s, _ := c.Get("role").(string)
	return s
}

func authName(c echo.Context) string {
	s, _ := c.Get("name").(string)
	return s
}

func authEmail(c echo.Context) string {
	s, _ := c.Get("email").(string)
	return s
}
