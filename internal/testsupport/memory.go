// Package testsupport fournit des implémentations en mémoire des ports
// secondaires, partagées par les tests des services et de l'adapter REST.
package testsupport

import (
	"context"
	"sort"
	"sync"

	"github.com/ranjansharma1412/funAIconnectBackend/internal/core/domain"
)

// --- UserRepo ---

type MemUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func NewMemUserRepo() *MemUserRepo {
	return &MemUserRepo{users: make(map[string]*domain.User)}
}

func (r *MemUserRepo) Save(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *MemUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *MemUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *MemUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *MemUserRepo) GetByHandle(_ context.Context, handle string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	// Même résolution que le SQL : le plus ancien compte gagne, ID en départage.
	var match *domain.User
	for _, u := range r.users {
		if u.Summary().Handle != handle {
			continue
		}
		if match == nil || u.CreatedAt.Before(match.CreatedAt) ||
			(u.CreatedAt.Equal(match.CreatedAt) && u.ID < match.ID) {
			match = u
		}
	}
	if match == nil {
		return nil, domain.ErrUserNotFound
	}
	cp := *match
	return &cp, nil
}

func (r *MemUserRepo) Exists(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.users[id]
	return ok, nil
}

func (r *MemUserRepo) GetSummaries(_ context.Context, ids []string) (map[string]domain.UserSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]domain.UserSummary, len(ids))
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out[id] = u.Summary()
		}
	}
	return out, nil
}

func (r *MemUserRepo) ListExcluding(_ context.Context, userID string, excludeIDs []string, limit int) ([]domain.UserSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	excluded := make(map[string]struct{}, len(excludeIDs)+1)
	excluded[userID] = struct{}{}
	for _, id := range excludeIDs {
		excluded[id] = struct{}{}
	}

	ids := make([]string, 0, len(r.users))
	for id := range r.users {
		if _, skip := excluded[id]; !skip {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	var out []domain.UserSummary
	for _, id := range ids {
		if len(out) >= limit {
			break
		}
		out = append(out, r.users[id].Summary())
	}
	return out, nil
}

// --- FriendRepo ---

type MemFriendRepo struct {
	mu    sync.Mutex
	edges []*domain.FriendEdge
}

func NewMemFriendRepo() *MemFriendRepo {
	return &MemFriendRepo{}
}

func (r *MemFriendRepo) Insert(_ context.Context, edge *domain.FriendEdge) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	// Même garde que l'index partiel : une seule demande pending par paire.
	for _, e := range r.edges {
		if e.Status == domain.FriendStatusPending && samePair(e, edge) {
			return domain.ErrRequestExists
		}
	}
	cp := *edge
	r.edges = append(r.edges, &cp)
	return nil
}

func (r *MemFriendRepo) GetByID(_ context.Context, id string) (*domain.FriendEdge, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.edges {
		if e.ID == id {
			cp := *e
			return &cp, nil
		}
	}
	return nil, domain.ErrRequestNotFound
}

func (r *MemFriendRepo) FindBetween(_ context.Context, a, b string) (*domain.FriendEdge, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.edges {
		if (e.RequesterID == a && e.TargetID == b) || (e.RequesterID == b && e.TargetID == a) {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *MemFriendRepo) Accept(_ context.Context, edge, reciprocal *domain.FriendEdge) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.edges {
		if e.ID == edge.ID {
			if e.Status == domain.FriendStatusAccepted {
				return domain.ErrAlreadyAccepted
			}
			e.Status = domain.FriendStatusAccepted
			cp := *reciprocal
			r.edges = append(r.edges, &cp)
			return nil
		}
	}
	return domain.ErrRequestNotFound
}

func (r *MemFriendRepo) ListPendingFor(_ context.Context, userID string) ([]*domain.FriendEdge, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.FriendEdge
	for _, e := range r.edges {
		if e.TargetID == userID && e.Status == domain.FriendStatusPending {
			cp := *e
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *MemFriendRepo) ListAcceptedFor(_ context.Context, userID string) ([]*domain.FriendEdge, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.FriendEdge
	for _, e := range r.edges {
		if e.Status == domain.FriendStatusAccepted && (e.RequesterID == userID || e.TargetID == userID) {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *MemFriendRepo) ConnectedUserIDs(_ context.Context, userID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, e := range r.edges {
		if e.RequesterID == userID {
			out = append(out, e.TargetID)
		} else if e.TargetID == userID {
			out = append(out, e.RequesterID)
		}
	}
	return out, nil
}

func samePair(a, b *domain.FriendEdge) bool {
	return (a.RequesterID == b.RequesterID && a.TargetID == b.TargetID) ||
		(a.RequesterID == b.TargetID && a.TargetID == b.RequesterID)
}

// --- PostRepo ---

type MemPostRepo struct {
	mu    sync.Mutex
	posts []*domain.Post
}

func NewMemPostRepo() *MemPostRepo {
	return &MemPostRepo{}
}

func (r *MemPostRepo) Save(_ context.Context, post *domain.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *post
	r.posts = append(r.posts, &cp)
	return nil
}

func (r *MemPostRepo) FindByID(_ context.Context, postID string) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.posts {
		if p.ID == postID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, domain.ErrPostNotFound
}

func (r *MemPostRepo) Delete(_ context.Context, postID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.posts {
		if p.ID == postID {
			r.posts = append(r.posts[:i], r.posts[i+1:]...)
			return nil
		}
	}
	return domain.ErrPostNotFound
}

func (r *MemPostRepo) Exists(_ context.Context, postID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.posts {
		if p.ID == postID {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemPostRepo) List(_ context.Context, offset, limit int) ([]*domain.Post, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sorted := make([]*domain.Post, len(r.posts))
	copy(sorted, r.posts)
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
		}
		return sorted[i].ID > sorted[j].ID
	})

	total := len(sorted)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}

	out := make([]*domain.Post, 0, end-offset)
	for _, p := range sorted[offset:end] {
		cp := *p
		out = append(out, &cp)
	}
	return out, total, nil
}

// --- CommentRepo ---

type MemCommentRepo struct {
	mu       sync.Mutex
	comments []*domain.Comment
}

func NewMemCommentRepo() *MemCommentRepo {
	return &MemCommentRepo{}
}

func (r *MemCommentRepo) Save(_ context.Context, comment *domain.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *comment
	r.comments = append(r.comments, &cp)
	return nil
}

func (r *MemCommentRepo) FindByID(_ context.Context, commentID string) (*domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.comments {
		if c.ID == commentID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, domain.ErrCommentNotFound
}

func (r *MemCommentRepo) Delete(_ context.Context, commentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, c := range r.comments {
		if c.ID == commentID {
			r.comments = append(r.comments[:i], r.comments[i+1:]...)
			return nil
		}
	}
	return domain.ErrCommentNotFound
}

func (r *MemCommentRepo) ListByPost(_ context.Context, postID string, offset, limit int) ([]*domain.Comment, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var scoped []*domain.Comment
	for _, c := range r.comments {
		if c.PostID == postID {
			scoped = append(scoped, c)
		}
	}
	sort.Slice(scoped, func(i, j int) bool {
		if !scoped[i].CreatedAt.Equal(scoped[j].CreatedAt) {
			return scoped[i].CreatedAt.After(scoped[j].CreatedAt)
		}
		return scoped[i].ID > scoped[j].ID
	})

	total := len(scoped)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}

	out := make([]*domain.Comment, 0, end-offset)
	for _, c := range scoped[offset:end] {
		cp := *c
		out = append(out, &cp)
	}
	return out, total, nil
}

// --- LikeRepo ---

// MemLikeRepo maintient marques et compteurs sous le même mutex, comme la
// transaction Postgres maintient marque et posts.likes ensemble.
type MemLikeRepo struct {
	mu     sync.Mutex
	marks  map[string]map[string]struct{} // postID -> userIDs
	counts map[string]int
}

func NewMemLikeRepo() *MemLikeRepo {
	return &MemLikeRepo{
		marks:  make(map[string]map[string]struct{}),
		counts: make(map[string]int),
	}
}

func (r *MemLikeRepo) Toggle(_ context.Context, postID, userID string) (bool, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, ok := r.marks[postID]
	if !ok {
		users = make(map[string]struct{})
		r.marks[postID] = users
	}

	if _, liked := users[userID]; liked {
		delete(users, userID)
		if r.counts[postID] > 0 {
			r.counts[postID]--
		}
		return false, r.counts[postID], nil
	}

	users[userID] = struct{}{}
	r.counts[postID]++
	return true, r.counts[postID], nil
}

func (r *MemLikeRepo) Exists(_ context.Context, postID, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.marks[postID][userID]
	return ok, nil
}

func (r *MemLikeRepo) LikedPostIDs(_ context.Context, userID string, postIDs []string) (map[string]bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]bool, len(postIDs))
	for _, id := range postIDs {
		if _, ok := r.marks[id][userID]; ok {
			out[id] = true
		}
	}
	return out, nil
}

// MarkCount renvoie la cardinalité des marques d'un post (assertions d'invariant).
func (r *MemLikeRepo) MarkCount(postID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.marks[postID])
}

// Count renvoie le compteur dénormalisé.
func (r *MemLikeRepo) Count(postID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counts[postID]
}

// --- EventPublisher ---

type MemPublisher struct {
	mu       sync.Mutex
	Accepted []string // edge IDs
	Liked    []string // post IDs
	Comments []string // comment IDs
}

func NewMemPublisher() *MemPublisher {
	return &MemPublisher{}
}

func (p *MemPublisher) PublishFriendAccepted(_ context.Context, edge *domain.FriendEdge) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Accepted = append(p.Accepted, edge.ID)
	return nil
}

func (p *MemPublisher) PublishPostLiked(_ context.Context, postID, _ string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Liked = append(p.Liked, postID)
	return nil
}

func (p *MemPublisher) PublishCommentCreated(_ context.Context, comment *domain.Comment) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Comments = append(p.Comments, comment.ID)
	return nil
}
