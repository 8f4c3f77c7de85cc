package entity

import "time"

// Product is owned by the catalog subsystem; chats only reference it for
// conversation context.
type Product struct {
	ID        string    `json:"id" firestore:"id"`
	SellerID  string    `json:"seller_id" firestore:"sellerId"`
	Title     string    `json:"title" firestore:"title"`
	Price     float64   `json:"price" firestore:"price"`
	ImageURLs []string  `json:"image_urls,omitempty" firestore:"imageUrls,omitempty"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}
