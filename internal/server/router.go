// Package server assembles the router: session middleware, templates
// and every route the portal exposes.
package server

import (
	"fmt"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ybhavu/clinic-portal/internal/auth"
	"github.com/ybhavu/clinic-portal/internal/config"
	"github.com/ybhavu/clinic-portal/internal/dashboard"
	"github.com/ybhavu/clinic-portal/internal/uploads"
	"github.com/ybhavu/clinic-portal/internal/users"
	"github.com/ybhavu/clinic-portal/internal/web"
)

func NewRouter(cfg config.Config, db *gorm.DB) (*gin.Engine, error) {
	store := users.NewStore(db)
	files, err := uploads.NewIntake(cfg.UploadDir)
	if err != nil {
		return nil, fmt.Errorf("upload intake: %w", err)
	}

	authHandler := auth.NewHandler(auth.NewService(store, files))
	dashHandler := dashboard.NewHandler(store, files)

	r := gin.Default()
	r.SetHTMLTemplate(web.Templates())

	sessionStore := cookie.NewStore([]byte(cfg.SessionSecret))
	sessionStore.Options(sessions.Options{
		Path:     "/",
		HttpOnly: true,
	})
	r.Use(sessions.Sessions(auth.SessionName, sessionStore))

	r.GET("/", dashHandler.Welcome)

	r.GET("/signup", authHandler.SignupForm)
	r.POST("/signup", authHandler.Signup)
	r.GET("/login", authHandler.LoginForm)
	r.POST("/login", authHandler.Login)
	r.GET("/logout", authHandler.Logout)

	r.GET("/doctor_dashboard", dashHandler.Doctor)
	r.GET("/patient_dashboard", dashHandler.Patient)
	r.GET("/profile/:filename", dashHandler.ProfilePic)

	return r, nil
}
