package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/felipe-souza17/stock-front/internal/crud"
	"github.com/felipe-souza17/stock-front/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// FormScreen is a create/edit form bound to one entity type. V is the posted
// body.
type FormScreen[T any, V any] interface {
	Find(ctx context.Context, id int64) (*T, error)
	New(ctx context.Context, initial *T) crud.FormModel
	Submit(ctx context.Context, initial *T, values V) crud.Result
}

// EntityHandler serves the list, form and delete screens of one entity.
type EntityHandler[T domain.Named, V any] struct {
	list *crud.ListView[T]
	form FormScreen[T, V]
	view *Renderer
	log  *logrus.Logger
}

func NewEntityHandler[T domain.Named, V any](list *crud.ListView[T], form FormScreen[T, V], view *Renderer, logger *logrus.Logger) *EntityHandler[T, V] {
	return &EntityHandler[T, V]{
		list: list,
		form: form,
		view: view,
		log:  logger,
	}
}

// Register mounts the screens under the list's base path.
func (h *EntityHandler[T, V]) Register(r gin.IRouter) {
	g := r.Group(h.list.Config().BasePath)
	g.GET("", h.List)
	g.GET("/add", h.New)
	g.POST("/add", h.Create)
	g.GET("/:id", h.Edit)
	g.POST("/:id", h.Update)
	g.GET("/:id/delete", h.ConfirmDelete)
	g.POST("/:id/delete", h.Delete)
}

func (h *EntityHandler[T, V]) logger(action string) logrus.FieldLogger {
	return h.log.WithField("handler", h.list.Config().Title+"."+action)
}

func (h *EntityHandler[T, V]) List(c *gin.Context) {
	ctx, cancel := h.view.callContext(c)
	defer cancel()

	m := h.list.Load(ctx, pageParam(c))
	h.view.HTML(c, http.StatusOK, "list.html", m.Title, m)
}

func (h *EntityHandler[T, V]) New(c *gin.Context) {
	ctx, cancel := h.view.callContext(c)
	defer cancel()

	m := h.form.New(ctx, nil)
	h.view.WithNotice(c, http.StatusOK, "form.html", m.Heading, m, m.Notice)
}

func (h *EntityHandler[T, V]) Create(c *gin.Context) {
	handlerLogger := h.logger("Create")
	var values V
	if err := c.ShouldBind(&values); err != nil {
		handlerLogger.Warnf("Failed to bind form: %v", err)
		h.view.HTML(c, http.StatusBadRequest, "error.html", "Erro", ErrorPage{Heading: "Erro", Message: "Formulário inválido."})
		return
	}

	ctx, cancel := h.view.callContext(c)
	defer cancel()
	h.finish(c, h.form.Submit(ctx, nil, values))
}

func (h *EntityHandler[T, V]) Edit(c *gin.Context) {
	handlerLogger := h.logger("Edit")
	id, ok := h.id(c, handlerLogger)
	if !ok {
		return
	}

	ctx, cancel := h.view.callContext(c)
	defer cancel()

	initial, err := h.form.Find(ctx, id)
	if err != nil {
		h.view.renderAPIError(c, handlerLogger, err)
		return
	}
	m := h.form.New(ctx, initial)
	h.view.WithNotice(c, http.StatusOK, "form.html", m.Heading, m, m.Notice)
}

func (h *EntityHandler[T, V]) Update(c *gin.Context) {
	handlerLogger := h.logger("Update")
	id, ok := h.id(c, handlerLogger)
	if !ok {
		return
	}
	var values V
	if err := c.ShouldBind(&values); err != nil {
		handlerLogger.Warnf("Failed to bind form: %v", err)
		h.view.HTML(c, http.StatusBadRequest, "error.html", "Erro", ErrorPage{Heading: "Erro", Message: "Formulário inválido."})
		return
	}

	ctx, cancel := h.view.callContext(c)
	defer cancel()

	initial, err := h.form.Find(ctx, id)
	if err != nil {
		h.view.renderAPIError(c, handlerLogger, err)
		return
	}
	h.finish(c, h.form.Submit(ctx, initial, values))
}

// finish navigates away after a save, or re-renders the entered values.
func (h *EntityHandler[T, V]) finish(c *gin.Context, res crud.Result) {
	if res.Saved {
		notify(c, res.Notice)
		c.Redirect(http.StatusSeeOther, res.Redirect)
		return
	}
	status := http.StatusUnprocessableEntity
	if !res.Invalid() {
		status, _ = statusFor(res.Err)
	}
	h.view.WithNotice(c, status, "form.html", res.Model.Heading, res.Model, res.Model.Notice)
}

func (h *EntityHandler[T, V]) ConfirmDelete(c *gin.Context) {
	handlerLogger := h.logger("ConfirmDelete")
	id, ok := h.id(c, handlerLogger)
	if !ok {
		return
	}

	ctx, cancel := h.view.callContext(c)
	defer cancel()

	dialog, err := h.list.ConfirmDelete(ctx, id)
	if err != nil {
		h.view.renderAPIError(c, handlerLogger, err)
		return
	}
	if page := pageParam(c); page > 0 {
		dialog.ConfirmURL += "?page=" + strconv.Itoa(page)
		dialog.CancelURL = h.list.PageURL(page)
	}
	h.view.HTML(c, http.StatusOK, "confirm_delete.html", dialog.Title, dialog)
}

// Delete always returns to the list page it came from; the list is fetched
// again there.
func (h *EntityHandler[T, V]) Delete(c *gin.Context) {
	handlerLogger := h.logger("Delete")
	id, ok := h.id(c, handlerLogger)
	if !ok {
		return
	}

	ctx, cancel := h.view.callContext(c)
	defer cancel()

	notify(c, h.list.Delete(ctx, id, c.PostForm("nome")))
	c.Redirect(http.StatusSeeOther, h.list.PageURL(pageParam(c)))
}

func (h *EntityHandler[T, V]) id(c *gin.Context, logger logrus.FieldLogger) (int64, bool) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		logger.Warnf("Invalid ID parameter: %s", idStr)
		h.view.NotFound(c)
		return 0, false
	}
	return id, true
}
