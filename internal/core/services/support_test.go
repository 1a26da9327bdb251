package services_test

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ranjansharma1412/funAIconnectBackend/internal/core/domain"
	"github.com/ranjansharma1412/funAIconnectBackend/internal/testsupport"
)

// seedUser insère un user avec un ID stable ; le handle découle de l'email.
func seedUser(repo *testsupport.MemUserRepo, id, name string) *domain.User {
	user := &domain.User{
		ID:        id,
		Email:     id + "@example.com",
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	if err := repo.Save(context.Background(), user); err != nil {
		panic(err)
	}
	return user
}

func seedPost(repo *testsupport.MemPostRepo, handle string, createdAt time.Time) *domain.Post {
	post := &domain.Post{
		ID:         uuid.NewString(),
		UserName:   handle,
		UserHandle: handle,
		CreatedAt:  createdAt,
	}
	if err := repo.Save(context.Background(), post); err != nil {
		panic(err)
	}
	return post
}
