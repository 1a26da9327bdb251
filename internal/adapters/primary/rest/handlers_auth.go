package rest

import (
	"encoding/base64"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ranjansharma1412/funAIconnectBackend/internal/core/domain"
	"github.com/ranjansharma1412/funAIconnectBackend/internal/core/ports"
)

type registerBody struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name"`
}

// HandleRegister traite POST /api/auth/register.
func (h *Handlers) HandleRegister(c *gin.Context) {
	var body registerBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	resp, err := h.identity.Register(c.Request.Context(), ports.RegisterCmd{
		Email:    body.Email,
		Password: body.Password,
		Name:     body.Name,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"user":      toUserResponse(resp.User),
		"token":     resp.AccessToken,
		"expiresIn": int(resp.ExpiresIn.Seconds()),
	})
}

type loginBody struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// HandleLogin traite POST /api/auth/login.
func (h *Handlers) HandleLogin(c *gin.Context) {
	var body loginBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	resp, err := h.identity.Login(c.Request.Context(), body.Email, body.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user":      toUserResponse(resp.User),
		"token":     resp.AccessToken,
		"expiresIn": int(resp.ExpiresIn.Seconds()),
	})
}

// HandleGetUser traite GET /api/users/:id.
func (h *Handlers) HandleGetUser(c *gin.Context) {
	user, err := h.identity.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

type profilePatchBody struct {
	Name      *string `json:"name"`
	UserImage *string `json:"userImage"`
	Mobile    *string `json:"mobile"`
	Bio       *string `json:"bio"`
	Dob       *string `json:"dob"`
}

// HandleUpdateProfile traite PATCH /api/users/:id.
// Patch explicite : un champ absent du body signifie "pas de changement".
func (h *Handlers) HandleUpdateProfile(c *gin.Context) {
	var body profilePatchBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No input data provided"})
		return
	}

	user, err := h.identity.UpdateProfile(c.Request.Context(), c.Param("id"), domain.ProfilePatch{
		Name:      body.Name,
		UserImage: body.UserImage,
		Mobile:    body.Mobile,
		Bio:       body.Bio,
		Dob:       body.Dob,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

type generateImageBody struct {
	Prompt string `json:"prompt"`
}

// HandleGenerateImage traite POST /api/image/generate.
// Renvoie 503 tant que le pipeline n'a pas été initialisé explicitement.
func (h *Handlers) HandleGenerateImage(c *gin.Context) {
	var body generateImageBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No input data provided"})
		return
	}

	img, err := h.generator.Generate(c.Request.Context(), body.Prompt)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":   "Image generated successfully",
		"image_url": img.URL,
		"base64":    base64.StdEncoding.EncodeToString(img.Data),
	})
}
