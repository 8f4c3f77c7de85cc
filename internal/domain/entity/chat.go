package entity

import "time"

// Message lives inside its parent chat document and never exists on its own.
type Message struct {
	ID        string    `json:"id" firestore:"id"`
	SenderID  string    `json:"sender_id" firestore:"senderId"`
	Text      string    `json:"text" firestore:"text"`
	Read      bool      `json:"read" firestore:"read"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}

// Chat is a two-party conversation, optionally scoped to a product. Buyer is
// the participant who initiated the chat, seller the counterpart; the pair is
// fixed at creation. ProductID == "" means a general conversation between the
// pair, which is a distinct dedup bucket from any product-scoped chat.
type Chat struct {
	ID           string    `json:"id" firestore:"id"`
	Participants []string  `json:"participants" firestore:"participants"`
	BuyerID      string    `json:"buyer_id" firestore:"buyerId"`
	SellerID     string    `json:"seller_id" firestore:"sellerId"`
	ProductID    string    `json:"product_id,omitempty" firestore:"productId,omitempty"`
	Messages     []Message `json:"messages" firestore:"messages"`
	CreatedAt    time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt    time.Time `json:"updated_at" firestore:"updatedAt"`
}

func (c *Chat) HasParticipant(userID string) bool {
	for _, p := range c.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

// OtherParticipant returns the first participant that is not userID, which is
// the counterpart whenever userID is itself a participant.
func (c *Chat) OtherParticipant(userID string) string {
	for _, p := range c.Participants {
		if p != userID {
			return p
		}
	}
	return ""
}

// MessageIndex returns the position of the message with the given id, or -1.
func (c *Chat) MessageIndex(messageID string) int {
	for i := range c.Messages {
		if c.Messages[i].ID == messageID {
			return i
		}
	}
	return -1
}
