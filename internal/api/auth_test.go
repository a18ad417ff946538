package api

import (
	"net/http"
	"strings"
	"testing"

	"sweetshop/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_Success(t *testing.T) {
	r, _, _ := newTestEnv(t)

	w := doRequest(r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "Abhay", "email": "abhay@example.com", "password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "User registered successfully", body["message"])
	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "abhay@example.com", user["email"])
	assert.Equal(t, "Abhay", user["name"])
	// Neither the password hash nor the admin flag leaks into the projection
	assert.NotContains(t, user, "password")
	assert.NotContains(t, user, "isAdmin")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	r, db, _ := newTestEnv(t)

	w := doRequest(r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "Abhay", "email": "abhay@example.com", "password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "Abhay Again", "email": "abhay@example.com", "password": "different456",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Email already exists", decodeBody(t, w)["error"])

	// The first registration is unaffected
	var count int64
	require.NoError(t, db.Model(&domain.User{}).Where("email = ?", "abhay@example.com").Count(&count).Error)
	assert.EqualValues(t, 1, count)
	var user domain.User
	require.NoError(t, db.Where("email = ?", "abhay@example.com").First(&user).Error)
	assert.Equal(t, "Abhay", user.Name)
}

func TestRegister_MissingFields(t *testing.T) {
	r, _, _ := newTestEnv(t)

	w := doRequest(r, http.MethodPost, "/api/auth/register", "", gin.H{
		"email": "abhay@example.com",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin_Success(t *testing.T) {
	r, _, _ := newTestEnv(t)
	doRequest(r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "Abhay", "email": "abhay@example.com", "password": "password123",
	})

	w := doRequest(r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "abhay@example.com", "password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.NotEmpty(t, body["token"])
	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "abhay@example.com", user["email"])
	// The raw body never carries the stored hash under any key
	assert.NotContains(t, user, "password")
	assert.NotContains(t, w.Body.String(), "password123")
}

func TestLogin_WrongPassword(t *testing.T) {
	r, _, _ := newTestEnv(t)
	doRequest(r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "Abhay", "email": "abhay@example.com", "password": "password123",
	})

	w := doRequest(r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "abhay@example.com", "password": "wrongPassword",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid email or password", decodeBody(t, w)["error"])
}

func TestLogin_UnknownEmail(t *testing.T) {
	r, _, _ := newTestEnv(t)

	w := doRequest(r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "notexist@example.com", "password": "password123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	// Identical message to the wrong-password case: no account enumeration
	assert.Equal(t, "Invalid email or password", decodeBody(t, w)["error"])
}

func TestLogin_EmailCaseInsensitive(t *testing.T) {
	r, _, _ := newTestEnv(t)
	doRequest(r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "Abhay", "email": "Abhay@Example.com", "password": "password123",
	})

	w := doRequest(r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "abhay@example.com", "password": "password123",
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRegister_StoresHashedPassword(t *testing.T) {
	r, db, _ := newTestEnv(t)
	doRequest(r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "Abhay", "email": "abhay@example.com", "password": "password123",
	})

	var user domain.User
	require.NoError(t, db.Where("email = ?", "abhay@example.com").First(&user).Error)
	assert.NotEqual(t, "password123", user.Password)
	assert.True(t, strings.HasPrefix(user.Password, "$2"), "expected a bcrypt hash, got %q", user.Password)
}
