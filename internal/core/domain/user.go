package domain

import (
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

// User est l'entité complète du Identity Store.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	UserImage    string
	Mobile       string
	Bio          string
	Dob          string
	CreatedAt    time.Time
}

// UserSummary est la vue dénormalisée consommée en lecture seule par le core
// (Relationship Ledger, Feed Reader).
type UserSummary struct {
	ID         string
	Name       string
	Handle     string
	Image      string
	IsVerified bool
}

// ProfilePatch porte les champs optionnels d'une mise à jour de profil.
// nil signifie "pas de changement" ; le merge se fait champ par champ.
type ProfilePatch struct {
	Name      *string
	UserImage *string
	Mobile    *string
	Bio       *string
	Dob       *string
}

// NewUser valide les invariants et génère l'identité.
func NewUser(email, passwordHash, name string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}
	return &User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
		Name:         strings.TrimSpace(name),
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// Apply merge le patch champ par champ. Un pointeur nil laisse le champ intact.
func (u *User) Apply(p ProfilePatch) {
	if p.Name != nil {
		u.Name = strings.TrimSpace(*p.Name)
	}
	if p.UserImage != nil {
		u.UserImage = *p.UserImage
	}
	if p.Mobile != nil {
		u.Mobile = *p.Mobile
	}
	if p.Bio != nil {
		u.Bio = *p.Bio
	}
	if p.Dob != nil {
		u.Dob = *p.Dob
	}
}

// Summary projette l'entité vers la vue lecture seule.
// Le handle est la partie locale de l'email, comme dans le front historique.
func (u *User) Summary() UserSummary {
	handle := u.Email
	if i := strings.IndexByte(u.Email, '@'); i > 0 {
		handle = u.Email[:i]
	}
	name := u.Name
	if name == "" {
		name = handle
	}
	return UserSummary{
		ID:     u.ID,
		Name:   name,
		Handle: handle,
		Image:  u.UserImage,
	}
}
