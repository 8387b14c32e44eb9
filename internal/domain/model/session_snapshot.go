package model

import "time"

type SnapshotKind string

const (
	SnapshotKindCart     SnapshotKind = "cart"
	SnapshotKindWishlist SnapshotKind = "wishlist"
)

// セッションのカート/ウィッシュリストの最新状態。
// (session_id, kind) ごとに1行、Versionが大きいものだけで上書きする。
type SessionSnapshot struct {
	SessionID string       `gorm:"type:varchar(64);primaryKey" json:"session_id"`
	Kind      SnapshotKind `gorm:"type:varchar(20);primaryKey" json:"kind"`
	Version   uint64       `gorm:"not null" json:"version"`

	//JSON文字列で保存する。
	Payload string `gorm:"type:text;not null" json:"payload"`

	UpdatedAt time.Time `gorm:"not null;index" json:"updated_at"`
}
