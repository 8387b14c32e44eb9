package model

import "time"

// ウィッシュリストの1件。ProductIDで一意。
type WishlistItem struct {
	ProductID string    `json:"productId"`
	Product   Product   `json:"product"`
	AddedAt   time.Time `json:"addedAt"`
}
