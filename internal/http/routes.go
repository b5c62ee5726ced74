package http

import (
	"github.com/labstack/echo/v4"
)

func Register(e *echo.Echo, h *Handler, rateLimiter echo.MiddlewareFunc) {
	e.Use(rateLimiter)

	e.POST("/tasks", h.CreateTask)
	e.GET("/tasks", h.ListTasks)
	e.GET("/tasks/:id", h.GetTask)
	e.PUT("/tasks/:id", h.UpdateTask)

	e.POST("/tasks/:id/check-in", h.CheckIn)
	e.POST("/tasks/:id/check-out", h.CheckOut)

	e.POST("/tasks/:id/comments", h.AddComment)
	e.GET("/tasks/:id/activities", h.TaskHistory)
	e.POST("/tasks/:id/attachments", h.UploadAttachments)
}
