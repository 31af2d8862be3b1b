package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"featureboard_backend/internal/feature/featurerequest/domain/entity"
)

const (
	// DefaultPriority は優先度が指定されなかった投稿に設定される値です。
	DefaultPriority = entity.PriorityMedium

	// maxIdempotencyKeyLength は Idempotency-Key ヘッダーの最大長です。
	maxIdempotencyKeyLength = 128

	// 前後の空白を除いた後の最大文字数
	maxTitleLength       = 200
	maxDescriptionLength = 5000
	maxUserNameLength    = 100
	maxUserEmailLength   = 255
)

// FeatureRequestRepository は機能リクエストの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type FeatureRequestRepository interface {
	// ListVisible は非表示でない機能リクエストを投票数の降順、作成日時の降順で返します。
	ListVisible(ctx context.Context) ([]entity.FeatureRequest, error)

	// ListAll は非表示を含むすべての機能リクエストを ListVisible と同じ順序で返します。
	ListAll(ctx context.Context) ([]entity.FeatureRequest, error)

	// Create は新しい機能リクエストを保存します。
	// idempotencyKey が他のレコードで使用済みの場合は ErrIdempotencyKeyConflict を返します。
	Create(ctx context.Context, fr *entity.FeatureRequest, idempotencyKey string) error

	// FindByIdempotencyKey は指定キーで作成された機能リクエストを返します。
	// 存在しない場合は ErrNotFound を返します。
	FindByIdempotencyKey(ctx context.Context, key string) (*entity.FeatureRequest, error)

	// IncrementVotes は投票数をストア側で 1 加算し、更新後のレコードを返します。
	IncrementVotes(ctx context.Context, id uuid.UUID, at time.Time) (*entity.FeatureRequest, error)

	// Update は patch に含まれるフィールドのみを更新し、更新後のレコードを返します。
	Update(ctx context.Context, id uuid.UUID, patch entity.Patch, at time.Time) (*entity.FeatureRequest, error)

	// Delete は機能リクエストを物理削除します。
	Delete(ctx context.Context, id uuid.UUID) error

	// Stats はステータス別・非表示の件数を集計します。
	Stats(ctx context.Context) (*entity.Stats, error)
}

// CreateInput は公開フォームからの投稿内容です。
// status・votes・isHidden・id はクライアントから受け取らないため含みません。
type CreateInput struct {
	Title          string
	Description    string
	UserName       *string
	UserEmail      *string
	Priority       *entity.Priority
	IdempotencyKey string
}

// FeatureRequestUsecase は機能リクエストの作成・投票・モデレーションを提供します。
type FeatureRequestUsecase struct {
	repo  FeatureRequestRepository
	now   func() time.Time
	newID func() uuid.UUID
}

// NewFeatureRequestUsecase は FeatureRequestUsecase の新しいインスタンスを生成します。
func NewFeatureRequestUsecase(repo FeatureRequestRepository) *FeatureRequestUsecase {
	return &FeatureRequestUsecase{
		repo:  repo,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.New,
	}
}

// ListPublic は公開ボードに表示する機能リクエストを返します。
func (u *FeatureRequestUsecase) ListPublic(ctx context.Context) ([]entity.FeatureRequest, error) {
	out, err := u.repo.ListVisible(ctx)
	if err != nil {
		return nil, storeErr("list visible feature requests", err)
	}
	return out, nil
}

// ListAdmin は管理画面向けに非表示を含むすべての機能リクエストを返します。
// ステータス等での絞り込みはクライアント側で行うため、ここでは常に全件を返します。
func (u *FeatureRequestUsecase) ListAdmin(ctx context.Context) ([]entity.FeatureRequest, error) {
	out, err := u.repo.ListAll(ctx)
	if err != nil {
		return nil, storeErr("list all feature requests", err)
	}
	return out, nil
}

// Create は機能リクエストを新規作成します。
// 同じ IdempotencyKey で作成済みの場合は既存レコードを返し、created は false になります。
func (u *FeatureRequestUsecase) Create(ctx context.Context, in CreateInput) (fr *entity.FeatureRequest, created bool, err error) {
	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	if title == "" || description == "" {
		return nil, false, fmt.Errorf("%w: title and description are required", ErrValidation)
	}
	userName := trimOptional(in.UserName)
	userEmail := trimOptional(in.UserEmail)
	if err := checkLengths(title, description, userName, userEmail); err != nil {
		return nil, false, err
	}

	priority := DefaultPriority
	if in.Priority != nil && *in.Priority != "" {
		if !in.Priority.Valid() {
			return nil, false, fmt.Errorf("%w: unknown priority %q", ErrValidation, *in.Priority)
		}
		priority = *in.Priority
	}

	key := strings.TrimSpace(in.IdempotencyKey)
	if len(key) > maxIdempotencyKeyLength {
		return nil, false, fmt.Errorf("%w: idempotency key is too long", ErrValidation)
	}
	if key != "" {
		existing, err := u.repo.FindByIdempotencyKey(ctx, key)
		if err == nil {
			return existing, false, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, false, storeErr("find feature request by idempotency key", err)
		}
	}

	now := u.now()
	fr = &entity.FeatureRequest{
		ID:          u.newID(),
		Title:       title,
		Description: description,
		UserName:    userName,
		UserEmail:   userEmail,
		Priority:    priority,
		Status:      entity.StatusPending,
		Votes:       0,
		IsHidden:    false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := u.repo.Create(ctx, fr, key); err != nil {
		if errors.Is(err, ErrIdempotencyKeyConflict) {
			// 同じキーの並行リクエストが先に保存された
			existing, findErr := u.repo.FindByIdempotencyKey(ctx, key)
			if findErr != nil {
				return nil, false, storeErr("find feature request by idempotency key", findErr)
			}
			return existing, false, nil
		}
		return nil, false, storeErr("create feature request", err)
	}
	return fr, true, nil
}

// Vote は投票数を 1 増やします。
func (u *FeatureRequestUsecase) Vote(ctx context.Context, id uuid.UUID) (*entity.FeatureRequest, error) {
	fr, err := u.repo.IncrementVotes(ctx, id, u.now())
	if err != nil {
		return nil, storeErr("vote feature request", err)
	}
	return fr, nil
}

// Update は管理者による部分更新を行います。
// ステータスの遷移順序は検証せず、列挙値に含まれるかどうかのみを確認します。
func (u *FeatureRequestUsecase) Update(ctx context.Context, id uuid.UUID, patch entity.Patch) (*entity.FeatureRequest, error) {
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, *patch.Status)
	}
	if patch.Priority != nil && !patch.Priority.Valid() {
		return nil, fmt.Errorf("%w: unknown priority %q", ErrValidation, *patch.Priority)
	}
	if patch.Votes != nil && *patch.Votes < 0 {
		return nil, fmt.Errorf("%w: votes must not be negative", ErrValidation)
	}

	fr, err := u.repo.Update(ctx, id, patch, u.now())
	if err != nil {
		return nil, storeErr("update feature request", err)
	}
	return fr, nil
}

// Delete は機能リクエストを削除します。存在しない場合は ErrNotFound を返します。
func (u *FeatureRequestUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	if err := u.repo.Delete(ctx, id); err != nil {
		return storeErr("delete feature request", err)
	}
	return nil
}

// Stats は管理画面の集計値を返します。
func (u *FeatureRequestUsecase) Stats(ctx context.Context) (*entity.Stats, error) {
	s, err := u.repo.Stats(ctx)
	if err != nil {
		return nil, storeErr("count feature requests", err)
	}
	return s, nil
}

// trimOptional は前後の空白を取り除き、空文字列になった場合は nil を返します。
func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// checkLengths はトリム済みの値の文字数（rune 数）を検証します。
func checkLengths(title, description string, userName, userEmail *string) error {
	if utf8.RuneCountInString(title) > maxTitleLength {
		return fmt.Errorf("%w: title must be at most %d characters", ErrValidation, maxTitleLength)
	}
	if utf8.RuneCountInString(description) > maxDescriptionLength {
		return fmt.Errorf("%w: description must be at most %d characters", ErrValidation, maxDescriptionLength)
	}
	if userName != nil && utf8.RuneCountInString(*userName) > maxUserNameLength {
		return fmt.Errorf("%w: userName must be at most %d characters", ErrValidation, maxUserNameLength)
	}
	if userEmail != nil && utf8.RuneCountInString(*userEmail) > maxUserEmailLength {
		return fmt.Errorf("%w: userEmail must be at most %d characters", ErrValidation, maxUserEmailLength)
	}
	return nil
}

// storeErr は ErrNotFound 以外のリポジトリエラーを ErrStore でラップします。
func storeErr(op string, err error) error {
	if errors.Is(err, ErrNotFound) {
		return err
	}
	return fmt.Errorf("%s: %w: %w", op, ErrStore, err)
}
