package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/navid-fn/feeboard/internal/theme"
)

const (
	// ClientCookie carries the id that scopes a client's stored preferences.
	ClientCookie = "feeboard_client"

	clientCookieMaxAge = 365 * 24 * 60 * 60

	// PrefersColorSchemeHeader is the client hint used to resolve "system".
	PrefersColorSchemeHeader = "Sec-CH-Prefers-Color-Scheme"
)

// ThemeSession attaches an initialized theme.Provider for the requesting
// client to the request context, issuing a client id cookie when needed.
func ThemeSession(store theme.Store, opts theme.Options, logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientID, err := c.Cookie(ClientCookie)
		if err != nil || uuid.Validate(clientID) != nil {
			clientID = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(ClientCookie, clientID, clientCookieMaxAge, "/", "", false, true)
		}

		p := theme.NewProvider(store, clientID, opts, logger)
		p.Init(c.Request.Context())

		c.Request = c.Request.WithContext(theme.WithProvider(c.Request.Context(), p))
		c.Next()
	}
}

type ThemeHandler struct {
	logger logrus.FieldLogger
}

func NewThemeHandler(logger logrus.FieldLogger) *ThemeHandler {
	return &ThemeHandler{logger: logger}
}

type themeRequest struct {
	Theme string `json:"theme" form:"theme" binding:"required"`
}

type themeResponse struct {
	Theme     theme.Theme `json:"theme"`
	Effective theme.Theme `json:"effective"`
	Default   theme.Theme `json:"default"`
}

func (h *ThemeHandler) GetTheme(c *gin.Context) {
	p, ok := providerOrAbort(c, h.logger)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, newThemeResponse(c, p, p.Theme()))
}

func (h *ThemeHandler) PutTheme(c *gin.Context) {
	var req themeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, ok := providerOrAbort(c, h.logger)
	if !ok {
		return
	}
	t, status, err := h.setTheme(c, p, req.Theme)
	if err != nil {
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, newThemeResponse(c, p, t))
}

// PostThemeForm handles the dashboard toggle form and redirects back.
// Failures are answered as plain text.
func (h *ThemeHandler) PostThemeForm(c *gin.Context) {
	var req themeRequest
	if err := c.ShouldBind(&req); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}

	p, ok := providerOrAbort(c, h.logger)
	if !ok {
		return
	}
	if _, status, err := h.setTheme(c, p, req.Theme); err != nil {
		c.String(status, err.Error())
		return
	}
	c.Redirect(http.StatusSeeOther, sameOriginReferer(c))
}

// setTheme validates and stores raw. On failure it returns the HTTP status
// to answer with; the caller writes the response.
func (h *ThemeHandler) setTheme(c *gin.Context, p *theme.Provider, raw string) (theme.Theme, int, error) {
	t, err := theme.Parse(raw)
	if err != nil {
		return "", http.StatusBadRequest, err
	}

	if err := p.SetTheme(c.Request.Context(), t); err != nil {
		h.logger.WithError(err).Error("Failed to persist theme")
		return "", http.StatusInternalServerError, errors.New("failed to persist theme")
	}
	return t, http.StatusOK, nil
}

// providerOrAbort fetches the request's theme provider. A missing provider
// is a wiring bug: it is logged and answered with 500.
func providerOrAbort(c *gin.Context, logger logrus.FieldLogger) (*theme.Provider, bool) {
	p, err := theme.FromContext(c.Request.Context())
	if err != nil {
		logger.WithError(err).WithField("path", c.FullPath()).Error("Theme consumer used outside theme session")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return nil, false
	}
	return p, true
}

func prefersDark(c *gin.Context) bool {
	return c.GetHeader(PrefersColorSchemeHeader) == "dark"
}

func newThemeResponse(c *gin.Context, p *theme.Provider, t theme.Theme) themeResponse {
	return themeResponse{
		Theme:     t,
		Effective: theme.Resolve(t, prefersDark(c)),
		Default:   p.Default(),
	}
}

// sameOriginReferer returns the Referer path when it points at this host,
// otherwise "/".
func sameOriginReferer(c *gin.Context) string {
	ref, err := url.Parse(c.GetHeader("Referer"))
	if err != nil || ref.Path == "" || (ref.Host != "" && ref.Host != c.Request.Host) {
		return "/"
	}
	if ref.RawQuery != "" {
		return ref.Path + "?" + ref.RawQuery
	}
	return ref.Path
}
