package http

import (
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/sirupsen/logrus"

	"github.com/TouhidPavel/Project-CRUD/internal/projects/domain"
)

func (h *Handler) create(c *gin.Context) {
	var req domain.CreateInput
	if !h.bind(c, &req) {
		return
	}

	p, err := h.store.Insert(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, Envelope{Message: msgCreated, Data: p})
}

func (h *Handler) get(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusNotFound, Envelope{Message: msgNotFound})
		return
	}

	p, err := h.store.FindByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, Envelope{Message: msgRetrieved, Data: p})
}

func (h *Handler) update(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusNotFound, Envelope{Message: msgNotFound})
		return
	}

	var patch domain.Patch
	if !h.bind(c, &patch) {
		return
	}

	p, err := h.store.UpdateByID(c.Request.Context(), id, patch)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, Envelope{Message: msgUpdated, Data: p})
}

func (h *Handler) delete(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusNotFound, Envelope{Message: msgNotFound})
		return
	}

	p, err := h.store.DeleteByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, Envelope{Message: msgDeleted, Data: p})
}

// bind decodes a JSON or form body into dst. An empty body leaves dst zeroed.
// Undecodable bodies are handed to the error boundary and bind reports false.
func (h *Handler) bind(c *gin.Context, dst any) bool {
	if c.ContentType() == binding.MIMEPOSTForm {
		if err := lastValueWins(c.Request); err != nil {
			_ = c.Error(err).SetType(gin.ErrorTypeBind)
			return false
		}
	}
	if err := c.ShouldBind(dst); err != nil && !errors.Is(err, io.EOF) {
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		return false
	}
	return true
}

// lastValueWins collapses repeated form keys to their final value so
// "title=a&title=b" binds as "b" rather than the first occurrence.
func lastValueWins(req *http.Request) error {
	if err := req.ParseForm(); err != nil {
		return err
	}
	for _, vals := range []url.Values{req.Form, req.PostForm} {
		for k, v := range vals {
			if len(v) > 1 {
				vals[k] = v[len(v)-1:]
			}
		}
	}
	return nil
}

func (h *Handler) fail(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		c.JSON(http.StatusNotFound, Envelope{Message: msgNotFound})
		return
	}

	h.log.WithFields(logrus.Fields{
		"request_id": c.GetString("request_id"),
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
	}).WithError(err).Error("project operation failed")

	c.JSON(http.StatusInternalServerError, Failure{Error: msgServerError, Reason: err.Error()})
}
