package domain

import (
	"time"

	"github.com/google/uuid"
)

// FriendStatus : machine à états ∅ -> pending -> accepted (terminal).
type FriendStatus string

const (
	FriendStatusPending  FriendStatus = "pending"
	FriendStatusAccepted FriendStatus = "accepted"
)

// FriendEdge est un lien dirigé du graphe d'amitié.
// Une amitié acceptée est représentée par exactement deux edges accepted,
// un dans chaque direction. Au plus un edge pending existe par paire non ordonnée.
type FriendEdge struct {
	ID          string
	RequesterID string
	TargetID    string
	Status      FriendStatus
	CreatedAt   time.Time
}

// NewFriendRequest crée l'edge pending initial. Les self-edges sont interdits.
func NewFriendRequest(requesterID, targetID string) (*FriendEdge, error) {
	if requesterID == "" || targetID == "" {
		return nil, ErrMissingUserID
	}
	if requesterID == targetID {
		return nil, ErrSelfFriendRequest
	}
	return &FriendEdge{
		ID:          uuid.NewString(),
		RequesterID: requesterID,
		TargetID:    targetID,
		Status:      FriendStatusPending,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// Reciprocal construit l'edge accepted inverse inséré lors de l'acceptation.
func (e *FriendEdge) Reciprocal() *FriendEdge {
	return &FriendEdge{
		ID:          uuid.NewString(),
		RequesterID: e.TargetID,
		TargetID:    e.RequesterID,
		Status:      FriendStatusAccepted,
		CreatedAt:   time.Now().UTC(),
	}
}

// CounterpartOf renvoie l'autre extrémité de l'edge vue depuis userID.
func (e *FriendEdge) CounterpartOf(userID string) string {
	if e.RequesterID == userID {
		return e.TargetID
	}
	return e.RequesterID
}

// PendingRequest est la vue dénormalisée d'une demande reçue
// (edge pending + résumé du demandeur).
type PendingRequest struct {
	Edge      *FriendEdge
	Requester UserSummary
}
