package handlers

import (
	"context"
	"net/http"

	"photostack-backend/application/services"
	"photostack-backend/pkg/common"
	apperrors "photostack-backend/pkg/errors"
	"photostack-backend/pkg/utils"

	"go.uber.org/zap"
)

type uploadURLIssuer interface {
	IssueUploadURLs(ctx context.Context, files []services.FileMetadata) ([]services.SignedUpload, error)
}

// UploadHandler handles signed-upload-URL requests
type UploadHandler struct {
	issuer       uploadURLIssuer
	cdnDomainURL string
	logger       *zap.Logger
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(issuer uploadURLIssuer, cdnDomainURL string, logger *zap.Logger) *UploadHandler {
	return &UploadHandler{
		issuer:       issuer,
		cdnDomainURL: cdnDomainURL,
		logger:       logger,
	}
}

// SignedURLsRequest is the signed-URL request body
type SignedURLsRequest struct {
	FilesMetadata []FileMetadataInput `json:"filesMetadata" validate:"required,min=1,dive"`
}

// FileMetadataInput describes one file to issue an upload URL for
type FileMetadataInput struct {
	FileName    string `json:"fileName" validate:"required"`
	ContentType string `json:"contentType" validate:"required,contains=/"`
	UserID      string `json:"userId" validate:"required"`
}

// SignedURLsResponse is the signed-URL response body
type SignedURLsResponse struct {
	SignedURLsAndKeys []services.SignedUpload `json:"signedUrlsAndKeys"`
	CDNDomainURL      string                  `json:"cdnDomainUrl"`
}

// GetSignedUploadURLs handles GET /api/v1/uploads/signed-urls
func (h *UploadHandler) GetSignedUploadURLs(w http.ResponseWriter, r *http.Request) {
	var req SignedURLsRequest
	if err := common.DecodeJSONBody(r, &req); err != nil {
		common.RespondMessage(w, http.StatusBadRequest, apperrors.GetAppError(err).Message)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	files := make([]services.FileMetadata, len(req.FilesMetadata))
	for i, f := range req.FilesMetadata {
		files[i] = services.FileMetadata{
			FileName:    f.FileName,
			ContentType: f.ContentType,
			UserID:      f.UserID,
		}
	}

	signed, err := h.issuer.IssueUploadURLs(r.Context(), files)
	if err != nil {
		h.logger.Error("signed upload URL request failed",
			zap.Int("fileCount", len(files)),
			zap.Error(err),
		)
		common.RespondMessage(w, http.StatusInternalServerError, msgInternalError)
		return
	}

	common.RespondJSON(w, http.StatusOK, SignedURLsResponse{
		SignedURLsAndKeys: signed,
		CDNDomainURL:      h.cdnDomainURL,
	})
}
