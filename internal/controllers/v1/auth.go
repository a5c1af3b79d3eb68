package v1

import (
	"net/http"

	"github.com/finanzas-app/backend/internal/auth"
	"github.com/finanzas-app/backend/internal/httputil"
	"github.com/finanzas-app/backend/internal/models"
	"github.com/finanzas-app/backend/internal/usecases"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// RegisterAuthRoutes registers the routes for sessions with
// the RouterGroup that is passed.
func (co Controller) RegisterAuthRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("/register", co.OptionsPost)
		r.POST("/register", co.Register)
		r.OPTIONS("/login", co.OptionsPost)
		r.POST("/login", co.Login)
		r.OPTIONS("/logout", co.OptionsPost)
		r.POST("/logout", co.Logout)
	}

	// Routes for the user of the session
	{
		r.OPTIONS("/user", co.OptionsGet)
		r.GET("/user", auth.Middleware(co.Auth), co.GetUser)
		r.OPTIONS("/events", co.OptionsGet)
		r.GET("/events", auth.Middleware(co.Auth), co.GetSessionEvents)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Auth
// @Success		204
// @Router			/v1/auth/register [options]
// @Router			/v1/auth/login [options]
// @Router			/v1/auth/logout [options]
func (co Controller) OptionsPost(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Auth
// @Success		204
// @Router			/v1/auth/user [options]
// @Router			/v1/auth/events [options]
func (co Controller) OptionsGet(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Register
// @Description	Registers a new user and starts a session for it
// @Tags			Auth
// @Accept			json
// @Produce		json
// @Success		201		{object}	AuthResponse
// @Failure		400		{object}	AuthResponse
// @Failure		401		{object}	AuthResponse
// @Failure		500		{object}	AuthResponse
// @Param			user	body		RegisterEditable	true	"User"
// @Router			/v1/auth/register [post]
func (co Controller) Register(c *gin.Context) {
	var editable RegisterEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		c.JSON(status(err), AuthResponse{
			Error: errorMessage(c, err),
		})
		return
	}

	result, err := co.register.Execute(c.Request.Context(), editable.Name, editable.Email, editable.Password)
	if err != nil {
		c.JSON(status(err), AuthResponse{
			Error: errorMessage(c, err),
		})
		return
	}

	data := newAuth(result)
	c.JSON(http.StatusCreated, AuthResponse{Data: &data})
}

// @Summary		Login
// @Description	Starts a session with email and password
// @Tags			Auth
// @Accept			json
// @Produce		json
// @Success		200			{object}	AuthResponse
// @Failure		400			{object}	AuthResponse
// @Failure		401			{object}	AuthResponse
// @Failure		500			{object}	AuthResponse
// @Param			credentials	body		LoginEditable	true	"Credentials"
// @Router			/v1/auth/login [post]
func (co Controller) Login(c *gin.Context) {
	var editable LoginEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		c.JSON(status(err), AuthResponse{
			Error: errorMessage(c, err),
		})
		return
	}

	result, err := co.login.Execute(c.Request.Context(), editable.Email, editable.Password)
	if err != nil {
		c.JSON(status(err), AuthResponse{
			Error: errorMessage(c, err),
		})
		return
	}

	data := newAuth(result)
	c.JSON(http.StatusOK, AuthResponse{Data: &data})
}

// @Summary		Logout
// @Description	Ends the session of the bearer token. Expired sessions are already ended.
// @Tags			Auth
// @Success		204
// @Failure		401	{object}	httpError
// @Failure		500	{object}	httpError
// @Router			/v1/auth/logout [post]
func (co Controller) Logout(c *gin.Context) {
	err := co.logout.Execute(c.Request.Context(), auth.BearerToken(c))
	if err != nil {
		c.JSON(status(err), httpError{
			Error: *errorMessage(c, err),
		})
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary		Get user
// @Description	Returns the user of the session
// @Tags			Auth
// @Produce		json
// @Success		200	{object}	UserResponse
// @Failure		401	{object}	httpError
// @Router			/v1/auth/user [get]
func (co Controller) GetUser(c *gin.Context) {
	identity, _ := auth.Identity(c)
	user := usecases.UserFromIdentity(identity)

	c.JSON(http.StatusOK, UserResponse{Data: &user})
}

// @Summary		Session events
// @Description	Streams the session events of the user as server-sent events until the client disconnects
// @Tags			Auth
// @Produce		text/event-stream
// @Success		200	{object}	models.SessionEvent
// @Failure		401	{object}	httpError
// @Router			/v1/auth/events [get]
func (co Controller) GetSessionEvents(c *gin.Context) {
	events, cancel := co.Auth.Subscribe()
	defer cancel()

	id := userID(c)
	log.Debug().Str("request-id", requestid.Get(c)).Str("user", id.String()).Msg("session event stream opened")

	c.Header("Cache-Control", "no-cache")
	c.Header("Content-Type", "text/event-stream")
	c.Status(http.StatusOK)
	c.Writer.Flush()

	for {
		select {
		case <-c.Request.Context().Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}

			if event.UserID != id {
				continue
			}

			c.SSEvent(sessionEventName(event.Type), event)
			c.Writer.Flush()
		}
	}
}

func sessionEventName(t models.SessionEventType) string {
	if t == models.SessionSignedOut {
		return "signed_out"
	}
	return "signed_in"
}
