package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Conversation is a direct-message thread between two users, stored in
// MongoDB. LastMessage/LastUpdated are denormalized for the inbox list.
type Conversation struct {
	ID          string    `json:"id" bson:"_id"`
	Users       []string  `json:"users" bson:"users"`
	LastMessage string    `json:"last_message" bson:"last_message"`
	LastUpdated time.Time `json:"last_updated" bson:"last_updated"`
}

// Message belongs to one conversation. ReadBy lists the uids that have
// seen it, starting with the sender.
type Message struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ChatID    string             `json:"chat_id" bson:"chat_id"`
	SenderUID string             `json:"sender_uid" bson:"sender_uid"`
	Text      string             `json:"text" bson:"text"`
	MediaURL  string             `json:"media_url,omitempty" bson:"media_url,omitempty"`
	MediaType string             `json:"media_type,omitempty" bson:"media_type,omitempty"` // "image" or "video"
	ReadBy    []string           `json:"read_by" bson:"read_by"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

type SendMessageRequest struct {
	Text      string `json:"text" validate:"omitempty,max=4000"`
	MediaURL  string `json:"media_url" validate:"omitempty,url"`
	MediaType string `json:"media_type" validate:"omitempty,oneof=image video"`
}

type StartConversationRequest struct {
	UserUID string `json:"user_uid" validate:"required"`
}
