package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/storefront-api/internal/application"
	"github.com/oksasatya/storefront-api/pkg/helpers"
	"github.com/oksasatya/storefront-api/pkg/response"
)

// MaxUploadBytes caps a single multipart upload.
const MaxUploadBytes = 20 << 20

// multipartOverhead is the slack allowed on top of the file for boundaries,
// part headers and other form fields.
const multipartOverhead = 1 << 20

type UploadHandler struct {
	Svc      *application.UploadService
	Logger   *logrus.Logger
	MaxBytes int64
}

func NewUploadHandler(svc *application.UploadService, logger *logrus.Logger) *UploadHandler {
	return &UploadHandler{Svc: svc, Logger: logger, MaxBytes: MaxUploadBytes}
}

func (h *UploadHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxBytes+multipartOverhead)
	fh, err := c.FormFile("file")
	if err != nil || fh == nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(c, http.StatusBadRequest, "File too large", nil)
			return
		}
		response.Error(c, http.StatusBadRequest, "No file provided", nil)
		return
	}
	fail := func(err error) {
		helpers.LogError(h.Logger, "upload failed", err, logrus.Fields{
			"filename":   fh.Filename,
			"request_id": c.GetString("request_id"),
		})
		response.Error(c, http.StatusInternalServerError, "Upload failed", nil)
	}
	if fh.Size > h.MaxBytes {
		response.Error(c, http.StatusBadRequest, "File too large", nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		fail(err)
		return
	}
	defer func() { _ = f.Close() }()
	data, err := io.ReadAll(f)
	if err != nil {
		fail(err)
		return
	}

	res, err := h.Svc.Upload(c.Request.Context(), fh.Filename, fh.Header.Get("Content-Type"), data)
	if err != nil {
		fail(err)
		return
	}
	response.JSON(c, http.StatusOK, res)
}
