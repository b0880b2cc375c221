package dto

import "github.com/SscSPs/credit_tracking_app/internal/core/domain"

// UploadForm is the non-file part of the multipart upload.
type UploadForm struct {
	Date    string `form:"date" binding:"omitempty,datestr"`
	Replace bool   `form:"replace"`
}

// UploadResponse reports a successful ingestion.
type UploadResponse struct {
	Status        string `json:"status"`
	RowsProcessed int    `json:"rows_processed"`
	RowsSkipped   int    `json:"rows_skipped"`
	Date          string `json:"date"`
	UploadID      string `json:"upload_id"`
	Replaced      bool   `json:"replaced"`
}

func ToUploadResponse(r domain.IngestResult) UploadResponse {
	return UploadResponse{
		Status:        "success",
		RowsProcessed: r.RowsProcessed,
		RowsSkipped:   r.RowsSkipped,
		Date:          domain.FormatDate(r.Date),
		UploadID:      r.UploadID,
		Replaced:      r.Replaced,
	}
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
	Row     int               `json:"row,omitempty"`
	Column  string            `json:"column,omitempty"`
}
