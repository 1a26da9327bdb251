package eventbroker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/ranjansharma1412/funAIconnectBackend/internal/core/domain"
)

const (
	StreamName     = "SOCIAL"
	SubjectPattern = "social.>"

	subjectFriendAccepted = "social.friend.accepted"
	subjectPostLiked      = "social.post.liked"
	subjectCommentCreated = "social.comment.created"
)

type NatsBroker struct {
	js jetstream.JetStream
}

// NewNatsBroker connecte et s'assure que le stream existe (idempotent).
func NewNatsBroker(url string) (*NatsBroker, error) {
	nc, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		return nil, fmt.Errorf("jetstream init: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     StreamName,
		Subjects: []string{SubjectPattern},
		Storage:  jetstream.FileStorage,
		Replicas: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("create stream: %w", err)
	}

	return &NatsBroker{js: js}, nil
}

type friendAcceptedEvent struct {
	EdgeID      string `json:"edge_id"`
	RequesterID string `json:"requester_id"`
	TargetID    string `json:"target_id"`
}

type postLikedEvent struct {
	PostID string `json:"post_id"`
	UserID string `json:"user_id"`
}

type commentCreatedEvent struct {
	CommentID string `json:"comment_id"`
	PostID    string `json:"post_id"`
	UserID    string `json:"user_id"`
}

func (n *NatsBroker) PublishFriendAccepted(ctx context.Context, edge *domain.FriendEdge) error {
	return n.publish(ctx, subjectFriendAccepted, friendAcceptedEvent{
		EdgeID:      edge.ID,
		RequesterID: edge.RequesterID,
		TargetID:    edge.TargetID,
	})
}

func (n *NatsBroker) PublishPostLiked(ctx context.Context, postID, userID string) error {
	return n.publish(ctx, subjectPostLiked, postLikedEvent{PostID: postID, UserID: userID})
}

func (n *NatsBroker) PublishCommentCreated(ctx context.Context, comment *domain.Comment) error {
	return n.publish(ctx, subjectCommentCreated, commentCreatedEvent{
		CommentID: comment.ID,
		PostID:    comment.PostID,
		UserID:    comment.UserID,
	})
}

func (n *NatsBroker) publish(ctx context.Context, subject string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if _, err := n.js.Publish(ctx, subject, data); err != nil {
		return fmt.Errorf("nats publish %s: %w", subject, err)
	}
	return nil
}
