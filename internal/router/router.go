package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/taskgo/backend/api/handler"
)

type Handlers struct {
	Task   *apiHandler.TaskHandler
	Health *apiHandler.HealthHandler
}

// New wires the route table. Every task route runs behind the token auth
// middleware; /health stays open for probes.
func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	r.GET("/api/tasks", authMiddleware(handlers.Task.ListTasks))
	r.POST("/api/tasks", authMiddleware(handlers.Task.CreateTask))
	r.GET("/api/tasks/{id}", authMiddleware(handlers.Task.GetTask))
	r.PUT("/api/tasks/{id}", authMiddleware(handlers.Task.EditTask))
	r.DELETE("/api/tasks/{id}", authMiddleware(handlers.Task.DeleteTask))

	return r
}
