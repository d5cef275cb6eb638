// Package dashboard serves the role-gated landing pages and stored
// profile images.
package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ybhavu/clinic-portal/internal/auth"
	"github.com/ybhavu/clinic-portal/internal/uploads"
	"github.com/ybhavu/clinic-portal/internal/users"
)

type Handler struct {
	store *users.Store
	files *uploads.Intake
}

func NewHandler(store *users.Store, files *uploads.Intake) *Handler {
	return &Handler{store: store, files: files}
}

func (h *Handler) Welcome(c *gin.Context) {
	c.HTML(http.StatusOK, "welcome.html", gin.H{
		"title":   "Welcome",
		"notices": auth.TakeFlashes(c),
	})
}

// Doctor renders the doctor dashboard. A patient landing here is sent
// to their own dashboard rather than refused.
func (h *Handler) Doctor(c *gin.Context) {
	h.render(c, users.RoleDoctor, "dashboard_doctor.html", "/patient_dashboard")
}

// Patient is symmetric to Doctor with the roles swapped.
func (h *Handler) Patient(c *gin.Context) {
	h.render(c, users.RolePatient, "dashboard_patient.html", "/doctor_dashboard")
}

func (h *Handler) render(c *gin.Context, want users.Role, tmpl, otherDashboard string) {
	ident, ok := auth.Current(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	u, err := h.store.ByID(c.Request.Context(), ident.UserID)
	if err != nil {
		// The session points at a row that no longer exists; drop it.
		_ = auth.ClearSession(c)
		c.Redirect(http.StatusFound, "/login")
		return
	}

	if u.UserType != want {
		c.Redirect(http.StatusFound, otherDashboard)
		return
	}

	c.HTML(http.StatusOK, tmpl, gin.H{
		"title":      u.FirstName + " " + u.LastName,
		"user":       u,
		"profilePic": "/profile/" + u.ProfilePic,
		"notices":    auth.TakeFlashes(c),
	})
}

// ProfilePic streams a stored image by name. Reads are open to any
// caller who knows the filename.
func (h *Handler) ProfilePic(c *gin.Context) {
	path, err := h.files.Path(c.Param("filename"))
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	c.File(path)
}
