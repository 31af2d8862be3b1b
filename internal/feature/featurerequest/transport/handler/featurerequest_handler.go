// Package handler はfeaturerequestフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"featureboard_backend/internal/api"
	"featureboard_backend/internal/feature/featurerequest/domain/entity"
	"featureboard_backend/internal/feature/featurerequest/usecase"
)

// IdempotencyKeyHeader は作成リクエストの重複送信を識別するヘッダー名です。
const IdempotencyKeyHeader = "Idempotency-Key"

// FeatureRequestUsecase は機能リクエスト操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type FeatureRequestUsecase interface {
	ListPublic(ctx context.Context) ([]entity.FeatureRequest, error)
	ListAdmin(ctx context.Context) ([]entity.FeatureRequest, error)
	Create(ctx context.Context, in usecase.CreateInput) (*entity.FeatureRequest, bool, error)
	Vote(ctx context.Context, id uuid.UUID) (*entity.FeatureRequest, error)
	Update(ctx context.Context, id uuid.UUID, patch entity.Patch) (*entity.FeatureRequest, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context) (*entity.Stats, error)
}

// FeatureRequestHandler は公開ボードと管理画面の機能リクエストAPIを処理します。
type FeatureRequestHandler struct {
	uc FeatureRequestUsecase
}

// NewFeatureRequestHandler はFeatureRequestHandlerの新しいインスタンスを生成します。
func NewFeatureRequestHandler(uc FeatureRequestUsecase) *FeatureRequestHandler {
	return &FeatureRequestHandler{uc: uc}
}

// List は GET /feature-requests を処理します。非表示のリクエストは含みません。
func (h *FeatureRequestHandler) List(c *gin.Context) {
	items, err := h.uc.ListPublic(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to fetch feature requests")
		return
	}
	c.JSON(http.StatusOK, toResponseList(items))
}

// Create は POST /feature-requests を処理します。
// - 必須項目の欠落・長さ超過は400を返却
// - 新規作成時は201、Idempotency-Key による再送時は既存レコードと200を返却
func (h *FeatureRequestHandler) Create(c *gin.Context) {
	var req api.CreateFeatureRequestInput
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("create feature request validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	in := usecase.CreateInput{
		Title:          req.Title,
		Description:    req.Description,
		UserName:       req.UserName,
		UserEmail:      req.UserEmail,
		IdempotencyKey: c.GetHeader(IdempotencyKeyHeader),
	}
	if req.Priority != nil {
		p := entity.Priority(*req.Priority)
		in.Priority = &p
	}

	fr, created, err := h.uc.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err, "failed to create feature request")
		return
	}

	status := http.StatusCreated
	if !created {
		status = http.StatusOK
	}
	c.JSON(status, toResponse(fr))
}

// Vote は POST /feature-requests/:id/vote を処理します。
func (h *FeatureRequestHandler) Vote(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	fr, err := h.uc.Vote(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "failed to vote feature request")
		return
	}
	c.JSON(http.StatusOK, toResponse(fr))
}

// AdminList は GET /admin/feature-requests を処理します。非表示のリクエストも含みます。
func (h *FeatureRequestHandler) AdminList(c *gin.Context) {
	items, err := h.uc.ListAdmin(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to fetch feature requests")
		return
	}
	c.JSON(http.StatusOK, toResponseList(items))
}

// AdminStats は GET /admin/feature-requests/stats を処理します。
func (h *FeatureRequestHandler) AdminStats(c *gin.Context) {
	s, err := h.uc.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to count feature requests")
		return
	}
	c.JSON(http.StatusOK, api.FeatureRequestStats{
		Total:      s.Total,
		Pending:    s.Pending,
		InProgress: s.InProgress,
		Completed:  s.Completed,
		Rejected:   s.Rejected,
		Hidden:     s.Hidden,
	})
}

// AdminUpdate は PATCH /admin/feature-requests/:id を処理します。
// ボディに含まれるフィールドのみを更新します。
func (h *FeatureRequestHandler) AdminUpdate(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req api.UpdateFeatureRequestInput
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("update feature request validation failed", "error", err, "id", id)
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	patch := entity.Patch{IsHidden: req.IsHidden, Votes: req.Votes}
	if req.Status != nil {
		s := entity.Status(*req.Status)
		patch.Status = &s
	}
	if req.Priority != nil {
		p := entity.Priority(*req.Priority)
		patch.Priority = &p
	}

	fr, err := h.uc.Update(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, err, "failed to update feature request")
		return
	}
	slog.Info("feature request updated", "id", id)
	c.JSON(http.StatusOK, toResponse(fr))
}

// AdminDelete は DELETE /admin/feature-requests/:id を処理します。
func (h *FeatureRequestHandler) AdminDelete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.uc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "failed to delete feature request")
		return
	}
	slog.Info("feature request deleted", "id", id)
	c.JSON(http.StatusOK, api.MessageResponse{Message: "Feature request deleted successfully"})
}

// parseID はパスパラメータ :id をUUIDとして解釈します。
// UUIDとして不正なIDは存在し得ないため404を返します。
func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: usecase.ErrNotFound.Error()})
		return uuid.Nil, false
	}
	return id, true
}

// respondError はユースケースのエラーをステータスコードに変換します。
// ストアのエラー詳細はログにのみ出力し、クライアントには fallback を返します。
func respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, usecase.ErrValidation):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, usecase.ErrNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: usecase.ErrNotFound.Error()})
	default:
		slog.Error(fallback, "error", err, "path", c.FullPath())
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: fallback})
	}
}
