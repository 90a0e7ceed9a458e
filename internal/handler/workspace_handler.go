package handler

import (
	"net/http"

	"shoptrack/internal/middleware"
	"shoptrack/internal/service"
	"shoptrack/pkg/response"

	"github.com/gin-gonic/gin"
)

type WorkspaceHandler struct {
	workspaceService service.WorkspaceService
}

func NewWorkspaceHandler(workspaceService service.WorkspaceService) *WorkspaceHandler {
	return &WorkspaceHandler{workspaceService: workspaceService}
}

func (h *WorkspaceHandler) RegisterRoutes(router *gin.RouterGroup) {
	workspace := router.Group("/api/workspace", middleware.RequireAuth())
	{
		workspace.GET("", h.GetWorkspace)
		workspace.PUT("", h.UpdateWorkspace)
	}
}

// GetWorkspace returns the caller's workspace configuration
// @Summary      Get workspace settings
// @Description  Status and category vocabularies plus the settled/returned label designations. Defaults are seeded on first read.
// @Tags         workspace
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=service.WorkspaceResponse}
// @Failure      401  {object}  response.Response
// @Router       /api/workspace [get]
func (h *WorkspaceHandler) GetWorkspace(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}

	ws, err := h.workspaceService.Get(c.Request.Context(), ownerID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, ws))
}

// UpdateWorkspace replaces the caller's workspace configuration
// @Summary      Update workspace settings
// @Description  Replaces the vocabularies. The settled and returned designations must name labels present in the status list.
// @Tags         workspace
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.UpdateWorkspaceRequest  true  "Workspace Payload"
// @Success      200      {object}  response.Response{data=service.WorkspaceResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/workspace [put]
func (h *WorkspaceHandler) UpdateWorkspace(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req service.UpdateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	ws, err := h.workspaceService.Update(c.Request.Context(), ownerID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, ws))
}
