package handler

import (
	"net/http"

	"shoptrack/internal/middleware"
	"shoptrack/internal/service"
	"shoptrack/pkg/response"

	"github.com/gin-gonic/gin"
)

type ShareHandler struct {
	shareService service.ShareService
	authService  service.AuthService
}

func NewShareHandler(shareService service.ShareService, authService service.AuthService) *ShareHandler {
	return &ShareHandler{shareService: shareService, authService: authService}
}

func (h *ShareHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/api/share", middleware.RequireRole(middleware.RoleAdmin), h.ShareData)
	router.GET("/api/profiles", middleware.RequireRole(middleware.RoleAdmin), h.ListProfiles)
}

// ShareData clones the caller's records to another account
// @Summary      Share data with another user
// @Description  Copies the caller's selected datasets (inventory and/or orders) to the target account under fresh identities. The source keeps its copy. Admin only.
// @Tags         share
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.ShareRequest  true  "Share Payload"
// @Success      200      {object}  response.Response{data=service.ShareResponse}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Router       /api/share [post]
func (h *ShareHandler) ShareData(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req service.ShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	result, err := h.shareService.Share(c.Request.Context(), callerID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// ListProfiles returns the user directory for picking a share target
// @Summary      List user profiles
// @Description  Directory of registered accounts, used to pick a share target. Admin only.
// @Tags         share
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]model.Profile}
// @Failure      403  {object}  response.Response
// @Router       /api/profiles [get]
func (h *ShareHandler) ListProfiles(c *gin.Context) {
	profiles, err := h.authService.ListProfiles(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, profiles))
}
