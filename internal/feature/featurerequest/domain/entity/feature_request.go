// Package entity はfeaturerequestフィーチャーのドメインモデルを定義します。
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Priority は機能リクエストの優先度です。
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

// Valid は優先度が定義済みの値かどうかを返します。
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Status は機能リクエストの対応状況です。
// 遷移の順序は強制せず、管理者はどの値からどの値へも変更できます。
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusRejected   Status = "REJECTED"
)

// Valid はステータスが定義済みの値かどうかを返します。
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusRejected:
		return true
	}
	return false
}

// FeatureRequest はユーザーから投稿された機能リクエストを表します。
type FeatureRequest struct {
	ID          uuid.UUID
	Title       string
	Description string
	UserName    *string
	UserEmail   *string
	Priority    Priority
	Status      Status
	Votes       int
	IsHidden    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Patch は管理者による部分更新の内容です。nil のフィールドは変更しません。
type Patch struct {
	Status   *Status
	Priority *Priority
	IsHidden *bool
	Votes    *int
}

// Stats は管理画面に表示する件数の集計です。
type Stats struct {
	Total      int64
	Pending    int64
	InProgress int64
	Completed  int64
	Rejected   int64
	Hidden     int64
}
