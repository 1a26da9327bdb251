package rest

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ranjansharma1412/funAIconnectBackend/internal/adapters/secondary/media"
	"github.com/ranjansharma1412/funAIconnectBackend/internal/core/domain"
)

// respondError mappe la taxonomie du domaine vers les statuts HTTP.
// Les conflits du ledger d'amitié sortent en 400, comme la surface historique.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrMissingUserID),
		errors.Is(err, domain.ErrSelfFriendRequest),
		errors.Is(err, domain.ErrEmptyContent),
		errors.Is(err, domain.ErrCommentPostMismatch),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrInvalidPassword),
		errors.Is(err, domain.ErrAlreadyFriends),
		errors.Is(err, domain.ErrRequestExists),
		errors.Is(err, domain.ErrAlreadyAccepted),
		errors.Is(err, media.ErrEmptyPrompt):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrPostNotFound),
		errors.Is(err, domain.ErrCommentNotFound),
		errors.Is(err, domain.ErrRequestNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	case errors.Is(err, domain.ErrNotRequestReceiver):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})

	case errors.Is(err, domain.ErrEmailAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})

	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})

	case errors.Is(err, media.ErrGeneratorNotReady):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})

	default:
		// Pas de fuite de détails stockage vers le client.
		slog.Error("internal error", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
