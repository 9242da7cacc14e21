package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/gradepeek/svue-api/internal/core/ports"
)

// GatewayHandler serves the StudentVue-backed routes. Every route runs behind
// the Credentials middleware.
type GatewayHandler struct {
	service  ports.GatewayService
	sealer   ports.TokenSealer
	versions ports.VersionKeyProvider
	log      zerolog.Logger
}

func NewGatewayHandler(service ports.GatewayService, sealer ports.TokenSealer, versions ports.VersionKeyProvider, log zerolog.Logger) *GatewayHandler {
	return &GatewayHandler{service: service, sealer: sealer, versions: versions, log: log}
}

// Grades handles GET /grades.
//
// @Summary      Get the gradebook
// @Description  Classes, categories and assignments for the current or requested reporting period.
// @Tags         student
// @Produce      json
// @Security     BasicAuth
// @Security     BearerToken
// @Param        report_period  query     int     false  "Reporting period index"
// @Param        X-District     header    string  false  "District ID or host (Basic auth only)"
// @Success      200            {object}  domain.Gradebook
// @Header       200            {string}  Set-Token  "Refreshed bearer token"
// @Failure      400            {object}  errorResponse
// @Failure      401            {object}  errorResponse
// @Failure      422            {object}  errorResponse
// @Failure      502            {object}  errorResponse
// @Failure      503            {object}  errorResponse
// @Router       /grades [get]
func (h *GatewayHandler) Grades(c echo.Context) error {
	var q gradesQuery
	if raw := c.QueryParam("report_period"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, "report_period must be an integer")
		}
		q.ReportPeriod = &n
	}
	if err := c.Validate(&q); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	token, before, err := ctxToken(c)
	if err != nil {
		return err
	}
	gb, err := h.service.Gradebook(c.Request().Context(), token, q.ReportPeriod)
	if err != nil {
		return err
	}

	refreshToken(c, h.sealer, h.log, token, before)
	return c.JSON(http.StatusOK, gb)
}

// Documents handles GET /documents.
//
// @Summary      List student documents
// @Tags         documents
// @Produce      json
// @Security     BasicAuth
// @Security     BearerToken
// @Success      200  {array}   domain.Document
// @Failure      401  {object}  errorResponse
// @Failure      502  {object}  errorResponse
// @Router       /documents [get]
func (h *GatewayHandler) Documents(c echo.Context) error {
	token, before, err := ctxToken(c)
	if err != nil {
		return err
	}
	docs, err := h.service.ListDocuments(c.Request().Context(), token)
	if err != nil {
		return err
	}

	refreshToken(c, h.sealer, h.log, token, before)
	return c.JSON(http.StatusOK, docs)
}

// Document handles GET /document.
//
// @Summary      Download a document
// @Description  PDFs are served inline, anything else as an attachment.
// @Tags         documents
// @Produce      application/pdf
// @Produce      application/octet-stream
// @Security     BasicAuth
// @Security     BearerToken
// @Param        gu   query     string  true  "Document GU"
// @Success      200  {file}    file
// @Failure      401  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Failure      502  {object}  errorResponse
// @Router       /document [get]
func (h *GatewayHandler) Document(c echo.Context) error {
	var q documentQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "invalid query")
	}
	if err := c.Validate(&q); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	token, before, err := ctxToken(c)
	if err != nil {
		return err
	}
	doc, err := h.service.GetDocument(c.Request().Context(), token, q.GU)
	if err != nil {
		return err
	}

	refreshToken(c, h.sealer, h.log, token, before)

	contentType, disposition := "application/octet-stream", "attachment"
	if doc.IsPDF() {
		contentType, disposition = "application/pdf", "inline"
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, contentDisposition(disposition, doc.FileName))
	return c.Blob(http.StatusOK, contentType, doc.Data)
}

// Student handles GET /student.
//
// @Summary      Get student information
// @Tags         student
// @Produce      json
// @Security     BasicAuth
// @Security     BearerToken
// @Success      200  {object}  domain.StudentInfo
// @Failure      401  {object}  errorResponse
// @Failure      502  {object}  errorResponse
// @Router       /student [get]
func (h *GatewayHandler) Student(c echo.Context) error {
	token, before, err := ctxToken(c)
	if err != nil {
		return err
	}
	info, err := h.service.StudentInfo(c.Request().Context(), token)
	if err != nil {
		return err
	}

	refreshToken(c, h.sealer, h.log, token, before)
	return c.JSON(http.StatusOK, info)
}

// Photo handles GET /photo.
//
// @Summary      Get the student photo
// @Tags         student
// @Produce      png
// @Security     BasicAuth
// @Security     BearerToken
// @Success      200  {file}    file
// @Failure      401  {object}  errorResponse
// @Failure      502  {object}  errorResponse
// @Router       /photo [get]
func (h *GatewayHandler) Photo(c echo.Context) error {
	token, before, err := ctxToken(c)
	if err != nil {
		return err
	}
	photo, err := h.service.StudentPhoto(c.Request().Context(), token)
	if err != nil {
		return err
	}

	refreshToken(c, h.sealer, h.log, token, before)
	c.Response().Header().Set(echo.HeaderContentDisposition, contentDisposition("attachment", "image.png"))
	return c.Blob(http.StatusOK, "image/png", photo)
}

// School handles GET /school.
//
// @Summary      Get school information
// @Tags         school
// @Produce      json
// @Security     BasicAuth
// @Security     BearerToken
// @Success      200  {object}  domain.SchoolInfo
// @Failure      401  {object}  errorResponse
// @Failure      502  {object}  errorResponse
// @Router       /school [get]
func (h *GatewayHandler) School(c echo.Context) error {
	token, before, err := ctxToken(c)
	if err != nil {
		return err
	}
	info, err := h.service.SchoolInfo(c.Request().Context(), token)
	if err != nil {
		return err
	}

	refreshToken(c, h.sealer, h.log, token, before)
	return c.JSON(http.StatusOK, info)
}

// AccessKey handles GET /akey.
//
// @Summary      Current edupointkeyversion
// @Tags         meta
// @Produce      plain
// @Success      200  {string}  string
// @Failure      500  {object}  errorResponse
// @Router       /akey [get]
func (h *GatewayHandler) AccessKey(c echo.Context) error {
	key, err := h.versions.VersionKey(c.Request().Context())
	if err != nil {
		return err
	}
	return c.String(http.StatusOK, key)
}

// contentDisposition renders a header value with a safely quoted filename.
func contentDisposition(kind, filename string) string {
	filename = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f || r == '"' || r == '\\' {
			return -1
		}
		return r
	}, filename)
	if filename == "" {
		filename = "document"
	}
	return fmt.Sprintf(`%s; filename="%s"`, kind, filename)
}
