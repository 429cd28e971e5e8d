package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"chirpfeed/internal/auth"
	"chirpfeed/internal/config"
	"chirpfeed/internal/errors"
	"chirpfeed/internal/handler"
	"chirpfeed/internal/ws"
	"chirpfeed/web"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	hub *ws.Hub,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	postHandler *handler.PostHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Embedded single-page client
	web.Register(e)

	// Realtime messaging channel; identity comes from the userId query
	// parameter supplied by the client on connect.
	e.GET("/ws", ws.Serve(hub))

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	// Secured routes (require a valid session token)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
		// Missing, malformed, expired and tampered tokens are rejected
		// alike, with no reason leaked to the caller.
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
				Error: "invalid or missing token",
				Code:  "UNAUTHORIZED",
			})
		},
	}))

	secured.POST("/auth/generate-image", authHandler.GenerateImage)

	// Post routes
	secured.GET("/posts/feed", postHandler.Feed)
	secured.GET("/posts/user/:userId", postHandler.ByAuthor)
	secured.POST("/posts", postHandler.Create)
	secured.PUT("/posts/:id", postHandler.Update)
	secured.DELETE("/posts/:id", postHandler.Delete)
	secured.POST("/posts/:id/like", postHandler.ToggleLike)
	secured.POST("/posts/:id/comment", postHandler.AddComment)

	// User routes
	secured.GET("/users/profile/:id", userHandler.GetProfile)
	secured.PUT("/users/profile", userHandler.UpdateProfile)
	secured.POST("/users/follow/:id", userHandler.Follow)
	secured.POST("/users/unfollow/:id", userHandler.Unfollow)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
