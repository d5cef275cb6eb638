package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ybhavu/clinic-portal/internal/uploads"
	"github.com/ybhavu/clinic-portal/internal/users"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) SignupForm(c *gin.Context) {
	c.HTML(http.StatusOK, "signup.html", gin.H{
		"title":   "Sign Up",
		"notices": TakeFlashes(c),
	})
}

func (h *Handler) Signup(c *gin.Context) {
	file, err := c.FormFile("profile_pic")
	if err != nil {
		file = nil // service rejects with ErrNoFileSelected
	}

	in := RegisterInput{
		FirstName:       c.PostForm("first_name"),
		LastName:        c.PostForm("last_name"),
		Username:        c.PostForm("username"),
		Email:           c.PostForm("email"),
		Password:        c.PostForm("password"),
		ConfirmPassword: c.PostForm("confirm_password"),
		Address:         c.PostForm("address"),
		City:            c.PostForm("city"),
		State:           c.PostForm("state"),
		Pincode:         c.PostForm("pincode"),
		UserType:        users.Role(c.PostForm("user_type")),
		ProfilePic:      file,
	}

	if _, err := h.svc.Register(c.Request.Context(), in); err != nil {
		Flash(c, "error", signupMessage(err))
		c.Redirect(http.StatusFound, "/signup")
		return
	}

	Flash(c, "success", "You were successfully registered and can now login.")
	c.Redirect(http.StatusFound, "/login")
}

func signupMessage(err error) string {
	switch {
	case errors.Is(err, uploads.ErrNoFileSelected):
		return "No selected file."
	case errors.Is(err, users.ErrDuplicateAccount):
		return "An account with that username or email already exists."
	case errors.Is(err, ErrMissingFields):
		return "All fields are required."
	case errors.Is(err, ErrInvalidRole):
		return "Please choose a valid account type."
	default:
		return "Registration failed. Please try again."
	}
}

func (h *Handler) LoginForm(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{
		"title":   "Login",
		"notices": TakeFlashes(c),
	})
}

func (h *Handler) Login(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")

	u, err := h.svc.Authenticate(c.Request.Context(), email, password)
	if err != nil {
		Flash(c, "error", "Invalid email or password.")
		c.Redirect(http.StatusFound, "/login")
		return
	}

	if err := Establish(c, u.ID, u.UserType); err != nil {
		Flash(c, "error", "Login failed. Please try again.")
		c.Redirect(http.StatusFound, "/login")
		return
	}

	switch u.UserType {
	case users.RolePatient:
		Flash(c, "success", "You were successfully logged in.")
		c.Redirect(http.StatusFound, "/patient_dashboard")
	case users.RoleDoctor:
		Flash(c, "success", "You were successfully logged in.")
		c.Redirect(http.StatusFound, "/doctor_dashboard")
	default:
		// Unreachable while registration validates the role, but a
		// record with any other value must not be dispatched.
		_ = ClearSession(c)
		Flash(c, "error", "Your account cannot be signed in.")
		c.Redirect(http.StatusFound, "/login")
	}
}

func (h *Handler) Logout(c *gin.Context) {
	_ = ClearSession(c)
	c.Redirect(http.StatusFound, "/login")
}
