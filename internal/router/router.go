package router

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"safariplanner/internal/auth"
	"safariplanner/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	jwtService *auth.JWTService,
	authHandler *handler.AuthHandler,
	tripHandler *handler.TripHandler,
	attendeeHandler *handler.AttendeeHandler,
	expenseHandler *handler.ExpenseHandler,
	scheduleHandler *handler.ScheduleHandler,
	shareHandler *handler.ShareHandler,
	csvHandler *handler.CSVHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)
	api.POST("/share/resolve", shareHandler.ResolveShare)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			claims, err := jwtService.ValidateToken(strings.TrimSpace(token))
			if err != nil {
				return nil, err
			}
			return claims, nil
		},
	}))

	// Trip routes
	secured.GET("/trips", tripHandler.ListTrips)
	secured.POST("/trips", tripHandler.CreateTrip)
	secured.GET("/trips/:id", tripHandler.GetTrip)
	secured.PUT("/trips/:id", tripHandler.RenameTrip)
	secured.DELETE("/trips/:id", tripHandler.DeleteTrip)
	secured.PUT("/trips/:id/whatsapp", tripHandler.SetWhatsappLink)
	secured.POST("/trips/:id/select", tripHandler.SelectTrip)
	secured.GET("/trips/:id/summary", tripHandler.TripSummary)

	// Attendee routes
	secured.GET("/trips/:id/attendees", attendeeHandler.ListAttendees)
	secured.POST("/trips/:id/attendees", attendeeHandler.CreateAttendee)
	secured.PUT("/attendees/:id", attendeeHandler.UpdateAttendee)
	secured.DELETE("/attendees/:id", attendeeHandler.DeleteAttendee)

	// Expense routes
	secured.GET("/trips/:id/expenses", expenseHandler.ListExpenses)
	secured.POST("/trips/:id/expenses", expenseHandler.CreateExpense)
	secured.PUT("/expenses/:id", expenseHandler.UpdateExpense)
	secured.DELETE("/expenses/:id", expenseHandler.DeleteExpense)

	// Schedule routes
	secured.GET("/trips/:id/schedule", scheduleHandler.ListSchedule)
	secured.POST("/trips/:id/schedule", scheduleHandler.CreateScheduleItem)
	secured.PUT("/schedule/:id", scheduleHandler.UpdateScheduleItem)
	secured.DELETE("/schedule/:id", scheduleHandler.DeleteScheduleItem)
	secured.POST("/schedule/:id/pictures", scheduleHandler.AddPicture)
	secured.DELETE("/schedule/:id/pictures/:index", scheduleHandler.RemovePicture)

	// Share routes
	secured.GET("/trips/:id/shares", shareHandler.ListShares)
	secured.POST("/trips/:id/shares", shareHandler.CreateShare)
	secured.POST("/shares/:id/revoke", shareHandler.RevokeShare)

	// CSV routes
	secured.GET("/trips/:id/export", csvHandler.ExportTrip)
	secured.POST("/trips/:id/import", csvHandler.ImportTrip)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
