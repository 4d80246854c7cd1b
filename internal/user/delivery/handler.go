package delivery

import (
	"mime/multipart"
	"net/http"
	"path/filepath"

	userdto "vidtube-backend/internal/user/dto"
	"vidtube-backend/internal/user/usecase"
	"vidtube-backend/pkg/apierror"
	"vidtube-backend/pkg/config"
	"vidtube-backend/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UserHandler struct {
	userUsecase usecase.UserUsecase
	config      *config.Config
}

func NewUserHandler(userUsecase usecase.UserUsecase, cfg *config.Config) *UserHandler {
	return &UserHandler{
		userUsecase: userUsecase,
		config:      cfg,
	}
}

// saveTemp writes an uploaded file into the temp dir and returns its path.
// The media store removes the file after the upload attempt.
func (h *UserHandler) saveTemp(c *gin.Context, file *multipart.FileHeader) (string, error) {
	path := filepath.Join(h.config.TempUploadDir, uuid.New().String()+filepath.Ext(file.Filename))
	if err := c.SaveUploadedFile(file, path); err != nil {
		return "", err
	}
	return path, nil
}

func (h *UserHandler) setTokenCookies(c *gin.Context, accessToken, refreshToken string) {
	c.SetCookie("accessToken", accessToken, int(h.config.AccessExpiry.Seconds()), "/", "", true, true)
	c.SetCookie("refreshToken", refreshToken, int(h.config.RefreshExpiry.Seconds()), "/", "", true, true)
}

func (h *UserHandler) clearTokenCookies(c *gin.Context) {
	c.SetCookie("accessToken", "", -1, "/", "", true, true)
	c.SetCookie("refreshToken", "", -1, "/", "", true, true)
}

func (h *UserHandler) Register(c *gin.Context) {
	var req userdto.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Err(c, apierror.BadRequest("all fields are compulsory", err.Error()))
		return
	}

	avatarFile, err := c.FormFile("avatar")
	if err != nil {
		response.Err(c, apierror.BadRequest("avatar file is required"))
		return
	}
	avatarPath, err := h.saveTemp(c, avatarFile)
	if err != nil {
		response.Err(c, err)
		return
	}

	coverPath := ""
	if coverFile, err := c.FormFile("coverImage"); err == nil {
		if coverPath, err = h.saveTemp(c, coverFile); err != nil {
			response.Err(c, err)
			return
		}
	}

	user, err := h.userUsecase.Register(&req, avatarPath, coverPath)
	if err != nil {
		response.Err(c, err)
		return
	}

	response.JSON(c, http.StatusCreated, user, "User registered successfully")
}

func (h *UserHandler) Login(c *gin.Context) {
	var req userdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Err(c, apierror.BadRequest("password is required", err.Error()))
		return
	}

	result, err := h.userUsecase.Login(&req)
	if err != nil {
		response.Err(c, err)
		return
	}

	h.setTokenCookies(c, result.AccessToken, result.RefreshToken)
	response.JSON(c, http.StatusOK, result, "Login successful")
}

func (h *UserHandler) Logout(c *gin.Context) {
	if err := h.userUsecase.Logout(c.GetString("userID")); err != nil {
		response.Err(c, err)
		return
	}

	h.clearTokenCookies(c)
	response.JSON(c, http.StatusOK, gin.H{}, "Logged out successfully")
}

func (h *UserHandler) RefreshToken(c *gin.Context) {
	presented, _ := c.Cookie("refreshToken")
	if presented == "" {
		var req userdto.RefreshRequest
		if err := c.ShouldBindJSON(&req); err == nil {
			presented = req.RefreshToken
		}
	}

	pair, err := h.userUsecase.Refresh(presented)
	if err != nil {
		response.Err(c, err)
		return
	}

	h.setTokenCookies(c, pair.AccessToken, pair.RefreshToken)
	response.JSON(c, http.StatusOK, pair, "Access token refreshed")
}

func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req userdto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Err(c, apierror.BadRequest("old and new passwords are required", err.Error()))
		return
	}

	if err := h.userUsecase.ChangePassword(c.GetString("userID"), &req); err != nil {
		response.Err(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{}, "Password changed successfully")
}

func (h *UserHandler) Me(c *gin.Context) {
	user, err := h.userUsecase.CurrentUser(c.GetString("userID"))
	if err != nil {
		response.Err(c, err)
		return
	}

	response.JSON(c, http.StatusOK, user, "Current user fetched successfully")
}

func (h *UserHandler) UpdateAccount(c *gin.Context) {
	var req userdto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Err(c, apierror.BadRequest("fullName, email and username are required", err.Error()))
		return
	}

	user, err := h.userUsecase.UpdateAccount(c.GetString("userID"), &req)
	if err != nil {
		response.Err(c, err)
		return
	}

	response.JSON(c, http.StatusOK, user, "Account details updated successfully")
}

func (h *UserHandler) UpdateAvatar(c *gin.Context) {
	file, err := c.FormFile("avatar")
	if err != nil {
		response.Err(c, apierror.BadRequest("avatar file is required"))
		return
	}
	path, err := h.saveTemp(c, file)
	if err != nil {
		response.Err(c, err)
		return
	}

	user, err := h.userUsecase.UpdateAvatar(c.GetString("userID"), path)
	if err != nil {
		response.Err(c, err)
		return
	}

	response.JSON(c, http.StatusOK, user, "Avatar updated successfully")
}

func (h *UserHandler) UpdateCoverImage(c *gin.Context) {
	file, err := c.FormFile("coverImage")
	if err != nil {
		response.Err(c, apierror.BadRequest("cover image file is required"))
		return
	}
	path, err := h.saveTemp(c, file)
	if err != nil {
		response.Err(c, err)
		return
	}

	user, err := h.userUsecase.UpdateCoverImage(c.GetString("userID"), path)
	if err != nil {
		response.Err(c, err)
		return
	}

	response.JSON(c, http.StatusOK, user, "Cover image updated successfully")
}

func (h *UserHandler) ChannelProfile(c *gin.Context) {
	profile, err := h.userUsecase.ChannelProfile(c.Param("username"), c.GetString("userID"))
	if err != nil {
		response.Err(c, err)
		return
	}

	response.JSON(c, http.StatusOK, profile, "Channel profile fetched successfully")
}

func (h *UserHandler) ToggleSubscription(c *gin.Context) {
	subscribed, err := h.userUsecase.ToggleSubscription(c.GetString("userID"), c.Param("username"))
	if err != nil {
		response.Err(c, err)
		return
	}

	message := "Unsubscribed successfully"
	if subscribed {
		message = "Subscribed successfully"
	}
	response.JSON(c, http.StatusOK, gin.H{"subscribed": subscribed}, message)
}
