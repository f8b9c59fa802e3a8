package handler

import (
	"net/http"

	"tilemart-be/internal/user"
	"tilemart-be/internal/utils"

	"github.com/gin-gonic/gin"
)

const accessTokenMaxAge = 24 * 60 * 60

type credentialsRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type userResponse struct {
	ID     uint   `json:"id"`
	Email  string `json:"email"`
	Status string `json:"status"`
}

func setAccessCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("access_token", token, accessTokenMaxAge, "/", "", false, true)
}

func (h *Handler) register(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
		Code     string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	if err := h.verification.VerifyCode(ctx, req.Email, utils.RoleUser, req.Code); err != nil {
		writeError(c, err)
		return
	}

	u, err := h.users.Register(ctx, user.Credentials{Email: req.Email, Password: req.Password})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, userResponse{ID: u.ID, Email: u.Email, Status: u.Status})
}

func (h *Handler) login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, u, err := h.users.Login(c.Request.Context(), user.Credentials{Email: req.Email, Password: req.Password})
	if err != nil {
		writeError(c, err)
		return
	}

	setAccessCookie(c, token)
	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  userResponse{ID: u.ID, Email: u.Email, Status: u.Status},
	})
}

func (h *Handler) logout(c *gin.Context) {
	c.SetCookie("access_token", "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func (h *Handler) profile(c *gin.Context) {
	email := utils.GetUserEmailFromContext(c.Request.Context())

	u, err := h.users.Profile(c.Request.Context(), email)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, userResponse{ID: u.ID, Email: u.Email, Status: u.Status})
}

func (h *Handler) adminMe(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"email": utils.GetUserEmailFromContext(c.Request.Context())})
}

func (h *Handler) sendCode(c *gin.Context) {
	var req struct {
		Email   string `json:"email" binding:"required"`
		Role    string `json:"role"`
		Purpose string `json:"purpose" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role := req.Role
	if role == "" {
		role = utils.RoleUser
	}

	if err := h.verification.RequestCode(c.Request.Context(), req.Email, role, req.Purpose); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "verification code sent"})
}

func (h *Handler) verifyCode(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required"`
		Role  string `json:"role"`
		Code  string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role := req.Role
	if role == "" {
		role = utils.RoleUser
	}

	if err := h.verification.VerifyCode(c.Request.Context(), req.Email, role, req.Code); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "code verified"})
}

type changePasswordRequest struct {
	Email       string `json:"email" binding:"required"`
	Code        string `json:"code" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// changePassword resets a user's password after the emailed code checks out.
func (h *Handler) changePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	if err := h.verification.VerifyCode(ctx, req.Email, utils.RoleUser, req.Code); err != nil {
		writeError(c, err)
		return
	}

	if err := h.users.ChangePassword(ctx, req.Email, req.NewPassword); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "password changed"})
}

func (h *Handler) adminLogin(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, a, err := h.users.AdminLogin(c.Request.Context(), user.Credentials{Email: req.Email, Password: req.Password})
	if err != nil {
		writeError(c, err)
		return
	}

	setAccessCookie(c, token)
	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"admin": gin.H{"id": a.ID, "email": a.Email},
	})
}

func (h *Handler) adminChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	if err := h.verification.VerifyCode(ctx, req.Email, utils.RoleAdmin, req.Code); err != nil {
		writeError(c, err)
		return
	}

	if err := h.users.AdminChangePassword(ctx, req.Email, req.NewPassword); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "password changed"})
}
