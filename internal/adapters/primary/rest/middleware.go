package rest

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ranjansharma1412/funAIconnectBackend/internal/core/ports"
)

const viewerKey = "viewer_id"

// ViewerExtractor décode un éventuel bearer token et dépose le user ID dans
// le contexte gin. Pas de header : la requête passe, anonyme. La vérification
// d'accès est une affaire amont.
func ViewerExtractor(tokens ports.TokenProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header != "" && strings.HasPrefix(header, "Bearer ") {
			if userID, err := tokens.Validate(strings.TrimPrefix(header, "Bearer ")); err == nil {
				c.Set(viewerKey, userID)
			}
		}
		c.Next()
	}
}

// viewerID renvoie l'ID authentifié du viewer, ou "" si anonyme.
func viewerID(c *gin.Context) string {
	return c.GetString(viewerKey)
}
