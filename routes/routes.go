package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/JohnsonOduri/Ur-OrbIIIT/config"
	"github.com/JohnsonOduri/Ur-OrbIIIT/handlers"
	"github.com/JohnsonOduri/Ur-OrbIIIT/metrics"
	"github.com/JohnsonOduri/Ur-OrbIIIT/middlewares"
	"github.com/JohnsonOduri/Ur-OrbIIIT/models"
)

// Register wires all HTTP routes.
func Register(e *echo.Echo, cfg *config.Config) {
	// ===== Handlers (shared singletons) =====
	auth := handlers.NewAuthHandler(cfg)
	profile := handlers.NewProfileHandler()
	lv := handlers.NewLeaveRequestHandler(cfg)
	pdf := handlers.NewLeavePDFHandler()
	ev := handlers.NewMessEventHandler(cfg)
	scan := handlers.NewMessAttendanceHandler()
	rating := handlers.NewMessRatingHandler()
	tasks := handlers.NewTaskHandler()
	ask := handlers.NewAskmeHandler(cfg)

	// ===== Public =====
	e.GET("/health", handlers.Health)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	e.POST("/auth/google", auth.GoogleLogin)

	authMW := middlewares.RequireAuth(cfg.JWTSecret)
	reviewerMW := middlewares.RequireRole(models.RoleFaculty, models.RoleWarden)

	me := e.Group("/auth", authMW)
	me.GET("/me", auth.Me)

	p := e.Group("/profile", authMW)
	p.GET("", profile.Get)
	p.PUT("", profile.Update)

	// ===== Leave workflow =====
	leave := e.Group("/leave-requests", authMW)
	leave.POST("", lv.Submit, middlewares.RequireRole(models.RoleStudent))
	leave.GET("/mine", lv.ListMine)
	leave.GET("/pending", lv.ListPending, reviewerMW)
	leave.GET("/pending-count", lv.PendingCount, reviewerMW)
	leave.GET("/:id", lv.GetByID)
	leave.POST("/:id/approve", lv.Approve, reviewerMW)
	leave.POST("/:id/reject", lv.Reject, reviewerMW)
	leave.GET("/:id/pdf", pdf.Download)

	// ===== Mess events & attendance =====
	mess := e.Group("/mess", authMW)
	mess.GET("/events", ev.List)
	mess.POST("/events", ev.Create)
	mess.GET("/events/:id", ev.GetByID)
	mess.POST("/events/:id/regenerate-qr", ev.RegenerateQr)
	mess.GET("/events/:id/qr.png", ev.QRImage)
	mess.GET("/events/:id/attendance", ev.Attendance)
	mess.GET("/events/:id/attendance.xlsx", ev.AttendanceExcel)
	mess.POST("/attendance/scan", scan.Scan)
	mess.GET("/attendance/mine", scan.Mine)
	mess.PUT("/ratings", rating.Upsert)
	mess.GET("/ratings", rating.ForDay)

	// ===== Personal planner =====
	t := e.Group("/tasks", authMW)
	t.POST("", tasks.Create)
	t.GET("", tasks.ListRange)
	t.PATCH("/:id", tasks.Patch)
	t.DELETE("/expired", tasks.PurgeExpired)

	// ===== Assistant =====
	e.POST("/askme", ask.Chat, authMW)
}
