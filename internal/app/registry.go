package app

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/deke-r/senseHrm/internal/announcement"
	"github.com/deke-r/senseHrm/internal/attendance"
	"github.com/deke-r/senseHrm/internal/bootstrap"
	"github.com/deke-r/senseHrm/internal/employee"
	"github.com/deke-r/senseHrm/internal/hierarchy"
	"github.com/deke-r/senseHrm/internal/holiday"
	"github.com/deke-r/senseHrm/internal/messaging/kafka"
	"github.com/deke-r/senseHrm/internal/middleware"
	"github.com/deke-r/senseHrm/internal/notification"
	"github.com/deke-r/senseHrm/internal/post"
	"github.com/deke-r/senseHrm/internal/shared/response"
	"github.com/deke-r/senseHrm/internal/timeoff"
)

// BuildRouter wires repositories, services and handlers into the gin
// engine.
func BuildRouter(a *App) *gin.Engine {
	outboxRepo := kafka.NewOutboxRepository(a.SQLDB)
	notifier := notification.NewOutboxNotifier(outboxRepo)

	employeeRepo := employee.NewRepository(a.DB)
	employeeService := employee.NewService(employeeRepo, a.Redis)
	employeeHandler := employee.NewHandler(employeeService)
	directory := employee.NewDirectory(employeeRepo)

	timeoffRepo := timeoff.NewRepository(a.SQLDB)
	timeoffService := timeoff.NewService(a.SQLDB, timeoffRepo, directory, notifier, a.Config.Notifications.HREmail)
	timeoffHandler := timeoff.NewHandler(timeoffService)

	hierarchyHandler := hierarchy.NewHandler(directory)

	attendanceRepo := attendance.NewRepository(a.DB)
	attendanceService := attendance.NewService(attendanceRepo)
	attendanceHandler := attendance.NewHandler(attendanceService)

	postRepo := post.NewRepository(a.DB)
	postService := post.NewService(postRepo)
	postHandler := post.NewHandler(postService, employeeService)

	announcementRepo := announcement.NewRepository(a.DB)
	announcementHandler := announcement.NewHandler(announcement.NewService(announcementRepo))

	holidayRepo := holiday.NewRepository(a.DB)
	holidayHandler := holiday.NewHandler(holiday.NewService(holidayRepo))

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(bootstrap.Audit(bootstrap.ZapAuditLogger{}))
	r.Use(middleware.RateLimit(20, 40))

	r.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "ok", nil)
	})

	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware(a.Config.Auth.JWTSecret))
	api.Use(middleware.Idempotency(a.Redis))

	timeoff.RegisterRoutes(api, timeoffHandler, a.Enforcer)
	hierarchy.RegisterRoutes(api, hierarchyHandler)
	employee.RegisterRoutes(api, employeeHandler, a.Enforcer)
	attendance.RegisterRoutes(api, attendanceHandler, a.Enforcer)
	post.RegisterRoutes(api, postHandler, a.Enforcer)
	announcement.RegisterRoutes(api, announcementHandler, a.Enforcer)
	holiday.RegisterRoutes(api, holidayHandler, a.Enforcer)

	return r
}
