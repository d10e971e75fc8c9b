// internal/server/router.go
package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fostercare-intake/internal/common/config"
	"fostercare-intake/internal/common/logger"
	"fostercare-intake/internal/notify"
	"fostercare-intake/internal/platform"
	"fostercare-intake/internal/ui"
	"fostercare-intake/pkg/registry"
)

// Deps are the shared collaborators every handler group draws from.
// Notifier is nil when notifications are disabled.
type Deps struct {
	Config    *config.Config
	Log       logger.Logger
	Records   platform.RecordService
	Sessions  *SessionStore
	Schemas   *registry.Registry
	Notifier  *notify.AgencyNotifier
	Presenter ui.Presenter
}

// NewRouter builds the HTTP surface: the intake wizard session API, the
// household case-management API, and the operational endpoints.
func NewRouter(deps Deps) *gin.Engine {
	if deps.Config.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(deps.Log))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": deps.Config.App.Name,
			"version": deps.Config.App.Version,
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")

	sessions := v1.Group("/sessions")
	{
		sessions.POST("", CreateSession(deps.Sessions, deps.Records, deps.Presenter, deps.Schemas, deps.Log))
		sessions.GET("/:sessionId", GetSession(deps.Sessions))
		sessions.DELETE("/:sessionId", DiscardSession(deps.Sessions))
		sessions.PATCH("/:sessionId/applicant", PatchApplicant(deps.Sessions))
		sessions.PATCH("/:sessionId/household", PatchHousehold(deps.Sessions))
		sessions.PATCH("/:sessionId/member-draft", PatchMemberDraft(deps.Sessions))
		sessions.POST("/:sessionId/members", AddFamilyMember(deps.Sessions))
		sessions.DELETE("/:sessionId/members/:tempId", RemoveFamilyMember(deps.Sessions))
		sessions.POST("/:sessionId/next", AdvanceStep(deps.Sessions))
		sessions.POST("/:sessionId/previous", RetreatStep(deps.Sessions))
		sessions.POST("/:sessionId/submit", SubmitApplication(deps.Sessions, deps.Notifier, deps.Log))
	}

	households := v1.Group("/households")
	{
		households.GET("/:accountId/overview", GetOverview(deps.Records, deps.Presenter, deps.Log))
		households.POST("/:accountId/caseworker", AssignCaseworker(deps.Records, deps.Presenter, deps.Notifier, deps.Log))
		households.GET("/:accountId/members", ListFamilyMembers(deps.Records, deps.Presenter, deps.Log))
		households.POST("/:accountId/members", CreateFamilyMember(deps.Records, deps.Presenter, deps.Log))
		households.PUT("/:accountId/members/:memberId", UpdateFamilyMember(deps.Records, deps.Presenter, deps.Log))
		households.DELETE("/:accountId/members/:memberId", DeleteFamilyMember(deps.Records, deps.Presenter, deps.Log))
	}

	v1.GET("/caseworkers/candidates", ListCandidates(deps.Records, deps.Log))
	v1.GET("/contacts/primary", GetPrimaryContact(deps.Records, deps.Log))

	return router
}

// requestLogger logs one line per request in the structured format the rest
// of the service uses.
func requestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("http request", map[string]interface{}{
			"method":   c.Request.Method,
			"path":     c.FullPath(),
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		})
	}
}
