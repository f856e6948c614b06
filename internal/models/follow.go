package models

import "time"

// Follow is a directed edge: FollowerID follows FollowingID.
//
// The composite unique index on (follower_id, following_id) guarantees at
// most one edge per ordered pair; concurrent inserts of the same pair lose
// on the index and roll back. Mutual is true iff the reverse edge exists,
// maintained by the toggle routine on both directions in the same
// transaction.
type Follow struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FollowerID  string    `json:"follower_id" gorm:"type:varchar(64);not null;index;uniqueIndex:idx_follower_following"`
	FollowingID string    `json:"following_id" gorm:"type:varchar(64);not null;index;uniqueIndex:idx_follower_following"`
	Mutual      bool      `json:"mutual" gorm:"not null;default:false"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Follow) TableName() string { return "follows" }

// FollowState is the tri-state result of a follow-status lookup. The UI
// collapses StateUnknown to "not following" but callers that care can tell
// a confirmed negative from a failed lookup.
type FollowState int

const (
	StateUnknown FollowState = iota
	NotFollowing
	Following
)

// Bool collapses the state for presentation: only a confirmed edge counts.
func (s FollowState) Bool() bool { return s == Following }

func (s FollowState) String() string {
	switch s {
	case Following:
		return "following"
	case NotFollowing:
		return "not_following"
	default:
		return "unknown"
	}
}
