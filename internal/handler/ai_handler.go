package handler

import (
	"log"
	"net/http"
	"os"

	"shoptrack/internal/ai"
	"shoptrack/internal/middleware"
	"shoptrack/internal/service"
	"shoptrack/pkg/response"

	"github.com/gin-gonic/gin"
)

type AIHandler struct {
	statsService service.StatsService
}

func NewAIHandler(statsService service.StatsService) *AIHandler {
	return &AIHandler{statsService: statsService}
}

func (h *AIHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/api/ai/insights", middleware.RequireAuth(), h.GenerateInsights)
}

// GenerateInsights produces a narrative report over the caller's orders
// @Summary      AI business insights
// @Description  Sends a compact digest of the caller's orders to the language model and returns a short plain-language report. Requires GEMINI_API_KEY on the server.
// @Tags         ai
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=object}
// @Failure      503  {object}  response.Response
// @Router       /api/ai/insights [post]
func (h *AIHandler) GenerateInsights(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		c.JSON(http.StatusServiceUnavailable, response.ErrorWithHint(
			http.StatusServiceUnavailable,
			"AI insights are not configured",
			"Set GEMINI_API_KEY on the server to enable this feature",
		))
		return
	}

	stats, err := h.statsService.Dashboard(c.Request.Context(), ownerID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	summaries, err := h.statsService.OrderSummaries(c.Request.Context(), ownerID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	// Best effort: a model failure degrades to a fallback message instead of
	// failing the dashboard.
	text, err := ai.GenerateInsights(c.Request.Context(), apiKey, stats, summaries)
	if err != nil {
		log.Println("insight generation failed:", err)
		text = "Insights are temporarily unavailable. Your sales data is unaffected; try again in a moment."
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"insights": text}))
}
