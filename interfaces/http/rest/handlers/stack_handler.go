package handlers

import (
	"context"
	"net/http"
	"time"

	"photostack-backend/application/services"
	"photostack-backend/domain/entities"
	"photostack-backend/pkg/common"
	apperrors "photostack-backend/pkg/errors"
	"photostack-backend/pkg/utils"

	"go.uber.org/zap"
)

// Fixed response messages of the stack API.
const (
	msgNoStacksFound = "No stacks found!"
	msgInternalError = "Internal server error."
	msgSaveSuccess   = "Media metadata saved successfully!"
	msgSaveFailure   = "Failed to save metadata."
)

type stackReader interface {
	GetStacksWithMedia(ctx context.Context, q services.StackReadQuery) ([]entities.StackWithMedia, error)
}

type stackWriter interface {
	SaveStack(ctx context.Context, cmd services.SaveStackCommand) error
}

// StackHandler handles stack read and write requests
type StackHandler struct {
	reader stackReader
	writer stackWriter
	logger *zap.Logger
	now    func() time.Time
}

// NewStackHandler creates a new stack handler
func NewStackHandler(reader stackReader, writer stackWriter, logger *zap.Logger) *StackHandler {
	return &StackHandler{
		reader: reader,
		writer: writer,
		logger: logger,
		now:    time.Now,
	}
}

// GetStacksRequest is the read request body
type GetStacksRequest struct {
	StackLimit     int64  `json:"stackLimit" validate:"required,gt=0"`
	StartTimestamp *int64 `json:"startTimestamp" validate:"omitempty,gte=0"`
	EndTimestamp   *int64 `json:"endTimestamp" validate:"omitempty,gte=0"`
}

// GetStacksResponse is the read response body
type GetStacksResponse struct {
	StackAndMediaData []entities.StackWithMedia `json:"stackAndMediaData"`
}

// toQuery applies defaults (startTimestamp 0, endTimestamp "now" at
// validation time) and the cross-field range rule.
func (req *GetStacksRequest) toQuery(now time.Time) (services.StackReadQuery, error) {
	q := services.StackReadQuery{StackLimit: req.StackLimit}
	if req.StartTimestamp != nil {
		q.StartTimestamp = *req.StartTimestamp
	}
	if req.EndTimestamp != nil {
		q.EndTimestamp = *req.EndTimestamp
	} else {
		q.EndTimestamp = now.UnixMilli()
	}
	if q.EndTimestamp <= q.StartTimestamp {
		return q, apperrors.NewValidationError("endTimestamp must be greater than startTimestamp")
	}
	return q, nil
}

// GetStacks handles GET /api/v1/stacks
func (h *StackHandler) GetStacks(w http.ResponseWriter, r *http.Request) {
	var req GetStacksRequest
	if err := common.DecodeJSONBody(r, &req); err != nil {
		common.RespondMessage(w, http.StatusBadRequest, apperrors.GetAppError(err).Message)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	query, err := req.toQuery(h.now())
	if err != nil {
		common.RespondMessage(w, http.StatusBadRequest, apperrors.GetAppError(err).Message)
		return
	}

	result, err := h.reader.GetStacksWithMedia(r.Context(), query)
	if err != nil {
		if apperrors.IsNotFound(err) {
			common.RespondMessage(w, http.StatusNotFound, msgNoStacksFound)
			return
		}
		h.logger.Error("read stacks request failed",
			zap.Int64("stackLimit", query.StackLimit),
			zap.Int64("startTimestamp", query.StartTimestamp),
			zap.Int64("endTimestamp", query.EndTimestamp),
			zap.Error(err),
		)
		common.RespondMessage(w, http.StatusInternalServerError, msgInternalError)
		return
	}

	common.RespondJSON(w, http.StatusOK, GetStacksResponse{StackAndMediaData: result})
}

// SaveStackRequest is the write request body
type SaveStackRequest struct {
	StackID         string           `json:"stackId" validate:"required"`
	Caption         string           `json:"caption" validate:"required"`
	UploadTimestamp *int64           `json:"uploadTimestamp" validate:"required,gte=0"`
	Location        string           `json:"location"`
	Media           []MediaItemInput `json:"media" validate:"required,min=1,dive"`
}

// MediaItemInput is one media entry of the write request body
type MediaItemInput struct {
	MediaID         string        `json:"mediaId" validate:"required"`
	AlternativeText string        `json:"alternativeText"`
	ImageSrc        ImageSrcInput `json:"imageSrc"`
	MediaType       string        `json:"mediaType" validate:"required"`
}

// ImageSrcInput carries the media source URLs; both must be HTTPS
type ImageSrcInput struct {
	Thumbnail string `json:"thumbnail" validate:"required,url,startswith=https://"`
	Full      string `json:"full" validate:"required,url,startswith=https://"`
}

func (req *SaveStackRequest) toCommand() services.SaveStackCommand {
	cmd := services.SaveStackCommand{
		StackID:         req.StackID,
		Caption:         req.Caption,
		UploadTimestamp: *req.UploadTimestamp,
		Location:        req.Location,
		Media:           make([]services.MediaItem, len(req.Media)),
	}
	for i, item := range req.Media {
		cmd.Media[i] = services.MediaItem{
			MediaID:         item.MediaID,
			AlternativeText: item.AlternativeText,
			ImageSrc: entities.ImageSource{
				Thumbnail: item.ImageSrc.Thumbnail,
				Full:      item.ImageSrc.Full,
			},
			MediaType: item.MediaType,
		}
	}
	return cmd
}

// SaveStack handles POST /api/v1/stacks
func (h *StackHandler) SaveStack(w http.ResponseWriter, r *http.Request) {
	var req SaveStackRequest
	if err := common.DecodeJSONBody(r, &req); err != nil {
		common.RespondMessage(w, http.StatusBadRequest, apperrors.GetAppError(err).Message)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	// The upper bound is the time validation runs, not write time.
	if *req.UploadTimestamp > h.now().UnixMilli() {
		common.RespondMessage(w, http.StatusBadRequest, "uploadTimestamp must not be in the future")
		return
	}

	if err := h.writer.SaveStack(r.Context(), req.toCommand()); err != nil {
		h.logger.Error("save stack request failed",
			zap.String("stackId", req.StackID),
			zap.Int("mediaCount", len(req.Media)),
			zap.Error(err),
		)
		common.RespondMessage(w, http.StatusInternalServerError, msgSaveFailure)
		return
	}

	common.RespondMessage(w, http.StatusOK, msgSaveSuccess)
}
