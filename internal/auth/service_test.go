package auth

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ybhavu/clinic-portal/internal/database"
	"github.com/ybhavu/clinic-portal/internal/uploads"
	"github.com/ybhavu/clinic-portal/internal/users"
)

func newTestService(t *testing.T) (*Service, string) {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	store := users.NewStore(db)
	require.NoError(t, store.Migrate())

	dir := t.TempDir()
	files, err := uploads.NewIntake(dir)
	require.NoError(t, err)
	return NewService(store, files), dir
}

func picture(t *testing.T, filename string) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("profile_pic", filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte("png-bytes"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/signup", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	_, fh, err := req.FormFile("profile_pic")
	require.NoError(t, err)
	return fh
}

func registration(t *testing.T, filename string) RegisterInput {
	return RegisterInput{
		FirstName:       "Alice",
		LastName:        "Smith",
		Username:        "alice",
		Email:           "a@x.com",
		Password:        "p1",
		ConfirmPassword: "p1",
		Address:         "1 Main St",
		City:            "Pune",
		State:           "MH",
		Pincode:         "411001",
		UserType:        users.RolePatient,
		ProfilePic:      picture(t, filename),
	}
}

func TestRegisterThenAuthenticate(t *testing.T) {
	svc, dir := newTestService(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, registration(t, "pic.png"))
	require.NoError(t, err)
	assert.NotZero(t, u.ID)
	assert.Equal(t, "pic.png", u.ProfilePic)
	assert.NotEqual(t, "p1", u.PasswordHash)
	assert.FileExists(t, filepath.Join(dir, "pic.png"))

	got, err := svc.Authenticate(ctx, "a@x.com", "p1")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, users.RolePatient, got.UserType)
}

func TestRegisterDuplicateRemovesUpload(t *testing.T) {
	svc, dir := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registration(t, "pic.png"))
	require.NoError(t, err)

	dup := registration(t, "other.png")
	dup.Username = "alice2" // same email
	_, err = svc.Register(ctx, dup)
	assert.ErrorIs(t, err, users.ErrDuplicateAccount)

	// the rejected signup's image is backed out, the first one stays
	assert.NoFileExists(t, filepath.Join(dir, "other.png"))
	assert.FileExists(t, filepath.Join(dir, "pic.png"))
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	missing := registration(t, "pic.png")
	missing.City = ""
	_, err := svc.Register(ctx, missing)
	assert.ErrorIs(t, err, ErrMissingFields)

	badRole := registration(t, "pic.png")
	badRole.UserType = "admin"
	_, err = svc.Register(ctx, badRole)
	assert.ErrorIs(t, err, ErrInvalidRole)

	noFile := registration(t, "pic.png")
	noFile.ProfilePic = nil
	_, err = svc.Register(ctx, noFile)
	assert.ErrorIs(t, err, uploads.ErrNoFileSelected)
}

func TestAuthenticateFailuresAreIndistinguishable(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registration(t, "pic.png"))
	require.NoError(t, err)

	_, unknownErr := svc.Authenticate(ctx, "nobody@x.com", "p1")
	_, wrongErr := svc.Authenticate(ctx, "a@x.com", "wrong")
	assert.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	assert.ErrorIs(t, wrongErr, ErrInvalidCredentials)
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
}
