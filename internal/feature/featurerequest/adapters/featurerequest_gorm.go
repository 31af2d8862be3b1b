// Package adapters はfeaturerequestフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"featureboard_backend/internal/feature/featurerequest/domain/entity"
	"featureboard_backend/internal/feature/featurerequest/usecase"
	"featureboard_backend/internal/platform/db"
)

// featureRequestGorm はFeatureRequestRepositoryインターフェースのGORM実装です。
type featureRequestGorm struct {
	db *gorm.DB
}

// featureRequestGormがFeatureRequestRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.FeatureRequestRepository = (*featureRequestGorm)(nil)

// NewFeatureRequestRepository は指定されたgorm.DB接続でリポジトリの新しいインスタンスを生成します。
func NewFeatureRequestRepository(db *gorm.DB) *featureRequestGorm {
	return &featureRequestGorm{db: db}
}

// ListVisible は is_hidden = false の行を votes DESC, created_at DESC で返します。
func (r *featureRequestGorm) ListVisible(ctx context.Context) ([]entity.FeatureRequest, error) {
	var rows []FeatureRequestModel
	if err := r.ranked(ctx).
		Where("is_hidden = ?", false).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toEntities(rows), nil
}

// ListAll は非表示を含むすべての行を ListVisible と同じ順序で返します。
func (r *featureRequestGorm) ListAll(ctx context.Context) ([]entity.FeatureRequest, error) {
	var rows []FeatureRequestModel
	if err := r.ranked(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	return toEntities(rows), nil
}

// Create は機能リクエストを追加します。
// idempotency_key のユニーク制約違反は usecase.ErrIdempotencyKeyConflict に変換します。
func (r *featureRequestGorm) Create(ctx context.Context, fr *entity.FeatureRequest, idempotencyKey string) error {
	m := FeatureRequestModelFromEntity(fr, idempotencyKey)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if idempotencyKey != "" && db.IsUniqueViolation(err) {
			return usecase.ErrIdempotencyKeyConflict
		}
		return err
	}
	return nil
}

// FindByIdempotencyKey は指定キーで作成された行を返します。
func (r *featureRequestGorm) FindByIdempotencyKey(ctx context.Context, key string) (*entity.FeatureRequest, error) {
	var m FeatureRequestModel
	if err := r.db.WithContext(ctx).Where("idempotency_key = ?", key).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrNotFound
		}
		return nil, err
	}
	return m.ToEntity(), nil
}

// IncrementVotes は votes = votes + 1 をデータベース側で評価するため、
// 同一IDへの同時投票でも更新が失われません。
func (r *featureRequestGorm) IncrementVotes(ctx context.Context, id uuid.UUID, at time.Time) (*entity.FeatureRequest, error) {
	var out *entity.FeatureRequest
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&FeatureRequestModel{}).
			Where("id = ?", id).
			Updates(map[string]any{
				"votes":      gorm.Expr("votes + ?", 1),
				"updated_at": at,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return usecase.ErrNotFound
		}

		m, err := findByID(tx, id)
		if err != nil {
			return err
		}
		out = m.ToEntity()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Update は patch で指定されたカラムと updated_at のみを更新します。
func (r *featureRequestGorm) Update(ctx context.Context, id uuid.UUID, patch entity.Patch, at time.Time) (*entity.FeatureRequest, error) {
	values := map[string]any{"updated_at": at}
	if patch.Status != nil {
		values["status"] = string(*patch.Status)
	}
	if patch.Priority != nil {
		values["priority"] = string(*patch.Priority)
	}
	if patch.IsHidden != nil {
		values["is_hidden"] = *patch.IsHidden
	}
	if patch.Votes != nil {
		values["votes"] = *patch.Votes
	}

	var out *entity.FeatureRequest
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 値が変わらない更新で RowsAffected が 0 になるDBがあるため、存在確認を先に行う
		if _, err := findByID(tx, id); err != nil {
			return err
		}
		if err := tx.Model(&FeatureRequestModel{}).Where("id = ?", id).Updates(values).Error; err != nil {
			return err
		}
		m, err := findByID(tx, id)
		if err != nil {
			return err
		}
		out = m.ToEntity()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete は行を物理削除します。該当行がない場合は usecase.ErrNotFound を返します。
func (r *featureRequestGorm) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&FeatureRequestModel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrNotFound
	}
	return nil
}

// statusCount は GROUP BY status の集計結果を受け取ります。
type statusCount struct {
	Status string
	Count  int64
}

// Stats はステータス別の件数と非表示件数を集計します。
func (r *featureRequestGorm) Stats(ctx context.Context) (*entity.Stats, error) {
	var counts []statusCount
	if err := r.db.WithContext(ctx).
		Model(&FeatureRequestModel{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&counts).Error; err != nil {
		return nil, err
	}

	var hidden int64
	if err := r.db.WithContext(ctx).
		Model(&FeatureRequestModel{}).
		Where("is_hidden = ?", true).
		Count(&hidden).Error; err != nil {
		return nil, err
	}

	s := &entity.Stats{Hidden: hidden}
	for _, c := range counts {
		s.Total += c.Count
		switch entity.Status(c.Status) {
		case entity.StatusPending:
			s.Pending = c.Count
		case entity.StatusInProgress:
			s.InProgress = c.Count
		case entity.StatusCompleted:
			s.Completed = c.Count
		case entity.StatusRejected:
			s.Rejected = c.Count
		}
	}
	return s, nil
}

// ranked は公開・管理一覧で共通の並び順を適用したクエリを返します。
func (r *featureRequestGorm) ranked(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Order("votes DESC").
		Order("created_at DESC")
}

func findByID(tx *gorm.DB, id uuid.UUID) (*FeatureRequestModel, error) {
	var m FeatureRequestModel
	if err := tx.Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func toEntities(rows []FeatureRequestModel) []entity.FeatureRequest {
	out := make([]entity.FeatureRequest, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].ToEntity())
	}
	return out
}
