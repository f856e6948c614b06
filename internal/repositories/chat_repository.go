package repositories

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/stitchfold/backend/internal/models"
)

// ChatRepository defines the interface for direct-message operations
type ChatRepository interface {
	EnsureConversation(ctx context.Context, userA, userB string) (*models.Conversation, error)
	GetConversation(ctx context.Context, chatID string) (*models.Conversation, error)
	ListConversations(ctx context.Context, userUID string) ([]models.Conversation, error)
	SendMessage(ctx context.Context, chatID, senderUID string, req *models.SendMessageRequest) (*models.Message, error)
	ListMessages(ctx context.Context, chatID string, skip, limit int64) ([]models.Message, error)
	MarkRead(ctx context.Context, chatID, userUID string) error
}

// MongoChatRepository implements ChatRepository for MongoDB
type MongoChatRepository struct {
	conversations *mongo.Collection
	messages      *mongo.Collection
}

// NewMongoChatRepository creates a new MongoChatRepository
func NewMongoChatRepository(db *mongo.Database) *MongoChatRepository {
	return &MongoChatRepository{
		conversations: db.Collection("chats"),
		messages:      db.Collection("messages"),
	}
}

// conversationID is deterministic for a user pair so both sides land in
// the same thread regardless of who starts it.
func conversationID(userA, userB string) string {
	pair := []string{userA, userB}
	sort.Strings(pair)
	return strings.Join(pair, "_")
}

// EnsureConversation returns the thread between two users, creating it on
// first contact.
func (r *MongoChatRepository) EnsureConversation(ctx context.Context, userA, userB string) (*models.Conversation, error) {
	if userA == "" || userB == "" {
		return nil, ErrEmptyUserID
	}
	id := conversationID(userA, userB)

	var conv models.Conversation
	err := r.conversations.FindOne(ctx, bson.M{"_id": id}).Decode(&conv)
	if err == nil {
		return &conv, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	conv = models.Conversation{
		ID:          id,
		Users:       []string{userA, userB},
		LastUpdated: time.Now(),
	}
	// Upsert so a concurrent first message from the other side wins cleanly.
	_, err = r.conversations.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$setOnInsert": conv},
		options.Update().SetUpsert(true))
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

func (r *MongoChatRepository) GetConversation(ctx context.Context, chatID string) (*models.Conversation, error) {
	var conv models.Conversation
	err := r.conversations.FindOne(ctx, bson.M{"_id": chatID}).Decode(&conv)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &conv, nil
}

// ListConversations returns the user's inbox, most recent activity first
func (r *MongoChatRepository) ListConversations(ctx context.Context, userUID string) ([]models.Conversation, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "last_updated", Value: -1}})
	cursor, err := r.conversations.Find(ctx, bson.M{"users": userUID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var convs []models.Conversation
	if err = cursor.All(ctx, &convs); err != nil {
		return nil, err
	}
	return convs, nil
}

// SendMessage appends a message to the thread and refreshes the
// conversation's last_message/last_updated denorm.
func (r *MongoChatRepository) SendMessage(ctx context.Context, chatID, senderUID string, req *models.SendMessageRequest) (*models.Message, error) {
	msg := &models.Message{
		ID:        primitive.NewObjectID(),
		ChatID:    chatID,
		SenderUID: senderUID,
		Text:      req.Text,
		MediaURL:  req.MediaURL,
		MediaType: req.MediaType,
		ReadBy:    []string{senderUID},
		CreatedAt: time.Now(),
	}
	if _, err := r.messages.InsertOne(ctx, msg); err != nil {
		return nil, err
	}

	preview := req.Text
	if preview == "" {
		switch req.MediaType {
		case "image":
			preview = "[image]"
		case "video":
			preview = "[video]"
		}
	}
	_, err := r.conversations.UpdateOne(ctx,
		bson.M{"_id": chatID},
		bson.M{"$set": bson.M{"last_message": preview, "last_updated": msg.CreatedAt}})
	if err != nil {
		return nil, err
	}
	return msg, nil
}

// ListMessages returns a page of the thread, newest first
func (r *MongoChatRepository) ListMessages(ctx context.Context, chatID string, skip, limit int64) ([]models.Message, error) {
	findOptions := options.Find().SetSkip(skip).SetLimit(limit).
		SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.messages.Find(ctx, bson.M{"chat_id": chatID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var msgs []models.Message
	if err = cursor.All(ctx, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

// MarkRead adds the user to read_by on every message in the thread they
// haven't seen yet.
func (r *MongoChatRepository) MarkRead(ctx context.Context, chatID, userUID string) error {
	_, err := r.messages.UpdateMany(ctx,
		bson.M{"chat_id": chatID, "read_by": bson.M{"$ne": userUID}},
		bson.M{"$addToSet": bson.M{"read_by": userUID}})
	return err
}
