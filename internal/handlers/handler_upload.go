package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/SscSPs/credit_tracking_app/internal/core/domain"
	portssvc "github.com/SscSPs/credit_tracking_app/internal/core/ports/services"
	"github.com/SscSPs/credit_tracking_app/internal/dto"
	"github.com/SscSPs/credit_tracking_app/internal/middleware"
	"github.com/SscSPs/credit_tracking_app/internal/utils"
	"github.com/gin-gonic/gin"
)

type uploadHandler struct {
	ingestionService portssvc.IngestionSvcFacade
	maxBytes         int64
	posthog          *utils.PosthogClientWrapper
}

func newUploadHandler(is portssvc.IngestionSvcFacade, maxBytes int64, posthog *utils.PosthogClientWrapper) *uploadHandler {
	return &uploadHandler{ingestionService: is, maxBytes: maxBytes, posthog: posthog}
}

// registerUploadRoutes registers the workbook upload route.
func registerUploadRoutes(rg *gin.RouterGroup, ingestionService portssvc.IngestionSvcFacade, maxBytes int64, posthog *utils.PosthogClientWrapper) {
	h := newUploadHandler(ingestionService, maxBytes, posthog)
	rg.POST("/upload", h.uploadWorkbook)
}

// uploadWorkbook godoc
// @Summary Upload a daily workbook
// @Description Parses an .xlsx/.xls daily sheet and appends its rows to the ledger. With replace=true the date's existing entries are replaced atomically.
// @Tags upload
// @Accept  multipart/form-data
// @Produce  json
// @Param   file formData file true "Daily workbook"
// @Param   date formData string false "Entry date (YYYY-MM-DD), overrides any date in the file"
// @Param   replace formData bool false "Replace the date's entries instead of appending"
// @Success 200 {object} dto.UploadResponse
// @Failure 400 {object} dto.ErrorResponse "Missing file or unparsable workbook"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 413 {object} dto.ErrorResponse "File too large"
// @Failure 429 {object} map[string]string "Too many requests"
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /upload [post]
func (h *uploadHandler) uploadWorkbook(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if h.maxBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large") {
			logger.Warn("Upload exceeds size limit", slog.Int64("limit", h.maxBytes))
			c.JSON(http.StatusRequestEntityTooLarge, dto.ErrorResponse{Error: "File too large"})
			return
		}
		logger.Warn("No file in upload", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "No file provided"})
		return
	}

	var form dto.UploadForm
	if err := c.ShouldBind(&form); err != nil {
		respondBindError(c, logger, err)
		return
	}

	req := domain.IngestRequest{FileName: fileHeader.Filename, Replace: form.Replace}
	if form.Date != "" {
		date, err := domain.ParseDate(form.Date)
		if err != nil {
			respondError(c, logger, err, "Failed to process upload")
			return
		}
		req.Date = &date
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, logger, err, "Failed to read uploaded file")
		return
	}
	defer file.Close()
	if req.Content, err = io.ReadAll(file); err != nil {
		respondError(c, logger, err, "Failed to read uploaded file")
		return
	}

	logger = logger.With(slog.String("file", fileHeader.Filename), slog.Int64("size", fileHeader.Size))
	logger.Info("Received workbook upload", slog.Bool("replace", req.Replace))

	start := time.Now()
	result, err := h.ingestionService.Ingest(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err, "Failed to process upload")
		return
	}

	middleware.PosthogEvent(c, h.posthog, "ledger_upload", map[string]any{
		"rows_processed": result.RowsProcessed,
		"rows_skipped":   result.RowsSkipped,
		"date":           domain.FormatDate(result.Date),
		"replaced":       result.Replaced,
		"duration_ms":    time.Since(start).Milliseconds(),
	})
	c.JSON(http.StatusOK, dto.ToUploadResponse(*result))
}
