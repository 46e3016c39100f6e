package httpserver

import (
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/gmodebadze/edu_platform/internal/handlers"
	mwauth "github.com/gmodebadze/edu_platform/internal/middleware/auth"
)

type Deps struct {
	DB            *gorm.DB
	AuthHandler   *handlers.AuthHandler
	UserHandler   *handlers.UserHandler
	CourseHandler *handlers.CourseHandler
	SearchHandler *handlers.SearchHandler
	Auth          *mwauth.Middleware
	UploadDir     string
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	e.Static("/uploads", d.UploadDir)

	auth := e.Group("/auth")
	auth.POST("/signup", d.AuthHandler.SignUp)
	auth.POST("/signin", d.AuthHandler.SignIn)
	auth.POST("/forgot-password", d.AuthHandler.ForgotPassword)
	auth.POST("/create-role", d.AuthHandler.CreateRole)

	e.POST("/admin/signin", d.AuthHandler.AdminSignIn)

	users := e.Group("/users", d.Auth.RequireLogin)
	users.GET("/profile", d.UserHandler.Profile)
	users.PATCH("/edit-user", d.UserHandler.EditUser)
	users.DELETE("/profile", d.UserHandler.DeleteProfile)

	courses := e.Group("/courses")
	courses.GET("", d.CourseHandler.GetCourses)
	courses.GET("/high-to-low", d.CourseHandler.HighToLow)
	courses.GET("/low-to-high", d.CourseHandler.LowToHigh)
	courses.GET("/search", d.SearchHandler.Search)
	courses.GET("/:id", d.CourseHandler.GetCourse)
	courses.POST("/create", d.CourseHandler.CreateCourse, d.Auth.RequireLogin)
	courses.PATCH("/edit/:id", d.CourseHandler.EditCourse, d.Auth.RequireLogin)
	courses.DELETE("/delete/:id", d.CourseHandler.DeleteCourse, d.Auth.RequireLogin)
}
