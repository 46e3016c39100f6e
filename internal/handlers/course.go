package handlers

import (
	"fmt"
	"net/http"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"

	"github.com/gmodebadze/edu_platform/internal/logging"
	mwauth "github.com/gmodebadze/edu_platform/internal/middleware/auth"
	"github.com/gmodebadze/edu_platform/internal/models"
	"github.com/gmodebadze/edu_platform/internal/mykafka"
	"github.com/gmodebadze/edu_platform/internal/service"
	"github.com/gmodebadze/edu_platform/internal/service/search"
	"github.com/gmodebadze/edu_platform/internal/transport"
)

type CourseHandler struct {
	Svc       *service.CourseService
	Producer  *mykafka.Producer
	ES        *elasticsearch.Client
	Index     string
	UploadDir string
}

func (h *CourseHandler) CreateCourse(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "course_create")

	user, ok := mwauth.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not signed in")
	}

	var req transport.CreateCourseRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("course_create_failed", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := req.Validate(); err != nil {
		l.Warn("course_create_failed", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	file, err := c.FormFile("imageUrl")
	if err != nil {
		l.Warn("course_create_failed", "status", 400, "reason", "image missing")
		return echo.NewHTTPError(http.StatusBadRequest, "image file is required")
	}
	path, err := saveUpload(file, "imageUrl", h.UploadDir)
	if err != nil {
		l.Error("course_create_failed", "status", 500, "reason", "cannot store upload", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot store upload")
	}

	course, err := h.Svc.Create(ctx, user, req.CourseTitle, req.Description, req.Price, path)
	if err != nil {
		return httpError(err)
	}

	h.index(c, course)
	publish(c, h.Producer, "course_events", fmt.Sprint(course.ID), map[string]interface{}{
		"type":     "course_created",
		"courseID": course.ID,
		"title":    course.CourseTitle,
	})

	return c.JSON(http.StatusCreated, course)
}

func (h *CourseHandler) GetCourse(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return httpError(err)
	}
	course, err := h.Svc.Get(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, course)
}

func (h *CourseHandler) GetCourses(c echo.Context) error {
	page := parseIntDefault(c.QueryParam("page"), 1)
	result, err := h.Svc.List(c.Request().Context(), page)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *CourseHandler) HighToLow(c echo.Context) error {
	page := parseIntDefault(c.QueryParam("page"), 1)
	result, err := h.Svc.SortByPriceHighToLow(c.Request().Context(), page)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *CourseHandler) LowToHigh(c echo.Context) error {
	page := parseIntDefault(c.QueryParam("page"), 1)
	result, err := h.Svc.SortByPriceLowToHigh(c.Request().Context(), page)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *CourseHandler) EditCourse(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "course_edit")

	if _, ok := mwauth.CurrentUser(c); !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not signed in")
	}

	id, err := parseID(c)
	if err != nil {
		return httpError(err)
	}

	var req transport.EditCourseRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("course_edit_failed", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if file, err := c.FormFile("imageUrl"); err == nil {
		path, err := saveUpload(file, "imageUrl", h.UploadDir)
		if err != nil {
			l.Error("course_edit_failed", "status", 500, "reason", "cannot store upload", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot store upload")
		}
		req.ImageURL = path
	}

	course, err := h.Svc.Edit(ctx, id, req.CourseTitle, req.Description, req.Price, req.ImageURL)
	if err != nil {
		return httpError(err)
	}

	h.index(c, course)
	publish(c, h.Producer, "course_events", fmt.Sprint(course.ID), map[string]interface{}{
		"type":     "course_updated",
		"courseID": course.ID,
		"title":    course.CourseTitle,
	})

	return c.JSON(http.StatusOK, course)
}

func (h *CourseHandler) DeleteCourse(c echo.Context) error {
	ctx := c.Request().Context()

	if _, ok := mwauth.CurrentUser(c); !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not signed in")
	}

	id, err := parseID(c)
	if err != nil {
		return httpError(err)
	}

	if err := h.Svc.Delete(ctx, id); err != nil {
		return httpError(err)
	}

	h.deindex(c, id)
	publish(c, h.Producer, "course_events", fmt.Sprint(id), map[string]interface{}{
		"type":     "course_deleted",
		"courseID": id,
	})

	return c.NoContent(http.StatusNoContent)
}

// index/deindex keep the search index in step with the store. ES being down
// or unconfigured only costs search freshness, never the write.
func (h *CourseHandler) index(c echo.Context, course *models.Course) {
	if h.ES == nil {
		return
	}
	if err := search.IndexCourse(c.Request().Context(), h.ES, h.Index, course); err != nil {
		logging.FromContext(c.Request().Context()).Error("es index error", "course_id", course.ID, "error", err)
	}
}

func (h *CourseHandler) deindex(c echo.Context, id uint) {
	if h.ES == nil {
		return
	}
	if err := search.DeindexCourse(c.Request().Context(), h.ES, h.Index, id); err != nil {
		logging.FromContext(c.Request().Context()).Error("es deindex error", "course_id", id, "error", err)
	}
}
