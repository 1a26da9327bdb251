package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ranjansharma1412/funAIconnectBackend/internal/core/domain"
	"github.com/ranjansharma1412/funAIconnectBackend/internal/core/ports"
)

// DefaultSuggestLimit et MaxSuggestLimit bornent les suggestions.
const (
	DefaultSuggestLimit = 20
	MaxSuggestLimit     = 50
)

type relationshipService struct {
	friends   ports.FriendRepository
	users     ports.UserRepository
	publisher ports.EventPublisher
}

func NewRelationshipService(friends ports.FriendRepository, users ports.UserRepository, pub ports.EventPublisher) ports.RelationshipService {
	return &relationshipService{friends: friends, users: users, publisher: pub}
}

func (s *relationshipService) SendRequest(ctx context.Context, requesterID, targetID string) (*domain.FriendEdge, error) {
	// Validation des invariants (self-edge, IDs vides) dans la factory.
	edge, err := domain.NewFriendRequest(requesterID, targetID)
	if err != nil {
		return nil, err
	}

	for _, id := range []string{requesterID, targetID} {
		ok, err := s.users.Exists(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("resolve user %s: %w", id, err)
		}
		if !ok {
			return nil, domain.ErrUserNotFound
		}
	}

	// Lookup direction-agnostique : un edge existant dans un sens ou l'autre
	// bloque la demande, quel que soit son statut.
	existing, err := s.friends.FindBetween(ctx, requesterID, targetID)
	if err != nil {
		return nil, fmt.Errorf("check existing edge: %w", err)
	}
	if existing != nil {
		if existing.Status == domain.FriendStatusAccepted {
			return nil, domain.ErrAlreadyFriends
		}
		return nil, domain.ErrRequestExists
	}

	// La contrainte d'unicité sur la paire non ordonnée attrape la course
	// entre deux demandes concurrentes ; le repo la traduit en ErrRequestExists.
	if err := s.friends.Insert(ctx, edge); err != nil {
		return nil, err
	}
	return edge, nil
}

func (s *relationshipService) AcceptRequest(ctx context.Context, accepterID, requestID string) (*domain.FriendEdge, error) {
	if accepterID == "" {
		return nil, domain.ErrMissingUserID
	}

	edge, err := s.friends.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	// Seul le destinataire peut accepter.
	if edge.TargetID != accepterID {
		return nil, domain.ErrNotRequestReceiver
	}
	if edge.Status == domain.FriendStatusAccepted {
		return nil, domain.ErrAlreadyAccepted
	}

	edge.Status = domain.FriendStatusAccepted
	reciprocal := edge.Reciprocal()

	// Bascule + insertion réciproque : une seule transaction côté repo.
	if err := s.friends.Accept(ctx, edge, reciprocal); err != nil {
		return nil, err
	}

	if err := s.publisher.PublishFriendAccepted(ctx, edge); err != nil {
		slog.Warn("friend accepted event not published", "edge_id", edge.ID, "error", err)
	}
	return edge, nil
}

func (s *relationshipService) ListPendingRequests(ctx context.Context, userID string) ([]*domain.PendingRequest, error) {
	if userID == "" {
		return nil, domain.ErrMissingUserID
	}

	edges, err := s.friends.ListPendingFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(edges))
	for _, e := range edges {
		ids = append(ids, e.RequesterID)
	}
	summaries, err := s.users.GetSummaries(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve requesters: %w", err)
	}

	out := make([]*domain.PendingRequest, 0, len(edges))
	for _, e := range edges {
		out = append(out, &domain.PendingRequest{Edge: e, Requester: summaries[e.RequesterID]})
	}
	return out, nil
}

func (s *relationshipService) ListFriends(ctx context.Context, userID string) ([]domain.UserSummary, error) {
	if userID == "" {
		return nil, domain.ErrMissingUserID
	}

	edges, err := s.friends.ListAcceptedFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Déduplication obligatoire : la représentation à deux edges ferait
	// apparaître chaque ami deux fois sur un scan bidirectionnel.
	seen := make(map[string]struct{}, len(edges))
	ids := make([]string, 0, len(edges))
	for _, e := range edges {
		other := e.CounterpartOf(userID)
		if _, ok := seen[other]; ok {
			continue
		}
		seen[other] = struct{}{}
		ids = append(ids, other)
	}

	summaries, err := s.users.GetSummaries(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve friends: %w", err)
	}

	out := make([]domain.UserSummary, 0, len(ids))
	for _, id := range ids {
		if sum, ok := summaries[id]; ok {
			out = append(out, sum)
		}
	}
	return out, nil
}

func (s *relationshipService) Suggest(ctx context.Context, userID string, limit int) ([]domain.UserSummary, error) {
	if userID == "" {
		return nil, domain.ErrMissingUserID
	}
	if limit <= 0 {
		limit = DefaultSuggestLimit
	}
	if limit > MaxSuggestLimit {
		limit = MaxSuggestLimit
	}

	// Un hop seulement : on exclut tout user relié par un edge, pending ou
	// accepted, dans les deux directions.
	connected, err := s.friends.ConnectedUserIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.users.ListExcluding(ctx, userID, connected, limit)
}
