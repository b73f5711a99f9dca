package handler

import (
	"context"
	"net/http"

	"github.com/haatos/provider-ci/internal/registry"
	"github.com/haatos/provider-ci/internal/service"
	"github.com/haatos/provider-ci/internal/store"
	"github.com/labstack/echo/v4"
)

func SetupPipelineRoutes(g *echo.Group, pipelineService PipelineServicer) {
	h := NewPipelineHandler(pipelineService)
	api := g.Group("/api")
	api.GET("/services", h.GetServices)
	api.GET("/services/:key", h.GetService)
	api.GET("/pipeline", h.GetPipeline)
	api.POST("/pipeline/revisions", h.PostRevision)
	api.GET("/pipeline/revisions", h.GetRevisions)
	api.GET("/pipeline/revisions/latest", h.GetLatestRevision)
	api.GET("/pipeline/revisions/:revision_id", h.GetRevision)
	api.GET("/pipeline/revisions/:revision_id/document", h.GetRevisionDocument)
}

type ServiceReader interface {
	ListServices() []registry.ServiceSpec
	GetService(string) (registry.ServiceSpec, error)
}

type RevisionReader interface {
	GetRevision(context.Context, string) (*store.Revision, error)
	GetLatestRevision(context.Context) (*store.Revision, error)
	ListRevisions(context.Context) ([]*store.Revision, error)
}

type PipelineServicer interface {
	ServiceReader
	RevisionReader
	RenderPipeline(service.DocumentFormat, ...string) ([]byte, error)
	CreateRevision(context.Context, service.DocumentFormat) (*store.Revision, error)
}

type PipelineHandler struct {
	pipelineService PipelineServicer
}

func NewPipelineHandler(pipelineService PipelineServicer) *PipelineHandler {
	return &PipelineHandler{pipelineService: pipelineService}
}

func (h *PipelineHandler) GetServices(c echo.Context) error {
	return c.JSON(http.StatusOK, h.pipelineService.ListServices())
}

func (h *PipelineHandler) GetService(c echo.Context) error {
	sp := new(ServiceParams)
	if err := c.Bind(sp); err != nil {
		return newError(err, http.StatusBadRequest, "invalid service key")
	}
	spec, err := h.pipelineService.GetService(sp.Key)
	if err != nil {
		return serviceError(err, "unable to get service")
	}
	return c.JSON(http.StatusOK, spec)
}

// GetPipeline renders a freshly generated pipeline document. Repeated service
// query parameters limit the test jobs to those services.
func (h *PipelineHandler) GetPipeline(c echo.Context) error {
	pp := new(PipelineParams)
	if err := c.Bind(pp); err != nil {
		return newError(err, http.StatusBadRequest, "invalid pipeline parameters")
	}
	format, err := service.ParseDocumentFormat(pp.Format)
	if err != nil {
		return serviceError(err, "invalid format")
	}
	doc, err := h.pipelineService.RenderPipeline(format, pp.Services...)
	if err != nil {
		return serviceError(err, "unable to render pipeline")
	}
	return c.Blob(http.StatusOK, format.ContentType(), doc)
}

func (h *PipelineHandler) PostRevision(c echo.Context) error {
	rp := new(CreateRevisionParams)
	if err := c.Bind(rp); err != nil {
		return newError(err, http.StatusBadRequest, "invalid revision parameters")
	}
	if rp.Format == "" {
		rp.Format = c.QueryParam("format")
	}
	format, err := service.ParseDocumentFormat(rp.Format)
	if err != nil {
		return serviceError(err, "invalid format")
	}
	r, err := h.pipelineService.CreateRevision(c.Request().Context(), format)
	if err != nil {
		return serviceError(err, "unable to create pipeline revision")
	}
	return c.JSON(http.StatusCreated, r)
}

func (h *PipelineHandler) GetRevisions(c echo.Context) error {
	revisions, err := h.pipelineService.ListRevisions(c.Request().Context())
	if err != nil {
		return serviceError(err, "unable to list pipeline revisions")
	}
	return c.JSON(http.StatusOK, revisions)
}

func (h *PipelineHandler) GetLatestRevision(c echo.Context) error {
	r, err := h.pipelineService.GetLatestRevision(c.Request().Context())
	if err != nil {
		return serviceError(err, "unable to get latest pipeline revision")
	}
	return c.JSON(http.StatusOK, r)
}

func (h *PipelineHandler) GetRevision(c echo.Context) error {
	rp := new(RevisionParams)
	if err := c.Bind(rp); err != nil {
		return newError(err, http.StatusBadRequest, "invalid revision id")
	}
	r, err := h.pipelineService.GetRevision(c.Request().Context(), rp.RevisionID)
	if err != nil {
		return serviceError(err, "unable to get pipeline revision")
	}
	return c.JSON(http.StatusOK, r)
}

// GetRevisionDocument returns the stored document as is.
func (h *PipelineHandler) GetRevisionDocument(c echo.Context) error {
	rp := new(RevisionParams)
	if err := c.Bind(rp); err != nil {
		return newError(err, http.StatusBadRequest, "invalid revision id")
	}
	r, err := h.pipelineService.GetRevision(c.Request().Context(), rp.RevisionID)
	if err != nil {
		return serviceError(err, "unable to get pipeline revision")
	}
	return c.Blob(http.StatusOK, service.DocumentFormat(r.Format).ContentType(), []byte(r.Document))
}
