package handler

import (
	"net/http"
	"strconv"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskgo/backend/api/transport"
	"github.com/taskgo/backend/domain"
	"github.com/taskgo/backend/internal/middleware"
	"github.com/taskgo/backend/pkg/httpcontext"
	taskUC "github.com/taskgo/backend/usecase/task"
)

type TaskHandler struct {
	baseHandler
	uc *taskUC.UseCase
}

func NewTaskHandler(uc *taskUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List the caller's tasks
// @Tags tasks
// @Router /api/tasks [get]
func (h *TaskHandler) ListTasks(ctx *fasthttp.RequestCtx) {
	user := h.caller(ctx)
	if user == nil {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	tasks, err := h.uc.List(stdCtx, user.ID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.NewTaskList(tasks))
}

// @Summary Look one task up
// @Tags tasks
// @Router /api/tasks/{id} [get]
func (h *TaskHandler) GetTask(ctx *fasthttp.RequestCtx) {
	user := h.caller(ctx)
	if user == nil {
		return
	}

	// A miss keeps list semantics: 200 with zero items, whether the id is
	// unknown, foreign-owned, or not numeric at all.
	id, ok := pathTaskID(ctx)
	if !ok {
		h.respondJSON(ctx, http.StatusOK, transport.NewTaskList(nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	tasks, err := h.uc.Find(stdCtx, user.ID, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.NewTaskList(tasks))
}

// @Summary Create a task
// @Tags tasks
// @Router /api/tasks [post]
func (h *TaskHandler) CreateTask(ctx *fasthttp.RequestCtx) {
	user := h.caller(ctx)
	if user == nil {
		return
	}

	payload := transport.ParseTaskPayload(ctx.PostBody(), ctx.PostArgs())
	if !payload.HasTitle() {
		h.respondError(ctx, domain.ErrInvalidData)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if _, err := h.uc.Create(stdCtx, user.ID, *payload.Title); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusCreated, transport.NewSuccess("Task created."))
}

// @Summary Edit a task's title and completed flag
// @Tags tasks
// @Router /api/tasks/{id} [put]
func (h *TaskHandler) EditTask(ctx *fasthttp.RequestCtx) {
	user := h.caller(ctx)
	if user == nil {
		return
	}

	payload := transport.ParseTaskPayload(ctx.PostBody(), ctx.PostArgs())
	if !payload.HasTitle() || !payload.HasCompleted() {
		h.respondError(ctx, domain.ErrInvalidData)
		return
	}

	id, ok := pathTaskID(ctx)
	if !ok {
		h.respondError(ctx, domain.ErrTaskNotFound)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if _, err := h.uc.Edit(stdCtx, user.ID, id, *payload.Title, *payload.Completed); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.NewSuccess("Task edited."))
}

// @Summary Delete a task
// @Tags tasks
// @Router /api/tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(ctx *fasthttp.RequestCtx) {
	user := h.caller(ctx)
	if user == nil {
		return
	}

	id, ok := pathTaskID(ctx)
	if !ok {
		h.respondError(ctx, domain.ErrTaskNotFound)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.Delete(stdCtx, user.ID, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.NewSuccess("Task deleted."))
}

// caller returns the account the auth middleware attached. Responding here is
// a safety net for misrouted requests; TokenAuth already rejects anonymous
// traffic.
func (h *TaskHandler) caller(ctx *fasthttp.RequestCtx) *domain.User {
	user := middleware.UserFrom(ctx)
	if user == nil {
		h.respondJSON(ctx, http.StatusUnauthorized, transport.NewError(domain.ErrUnauthorized.Message))
	}
	return user
}

func pathTaskID(ctx *fasthttp.RequestCtx) (int64, bool) {
	raw, _ := ctx.UserValue("id").(string)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
