package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"campus-connect/internal/mocks"
	"campus-connect/internal/models"
	"campus-connect/internal/repositories"
)

func userRouter(userID string, repo *mocks.UserRepositoryMock) *gin.Engine {
	handler := NewUserHandler(repo)
	router := gin.New()
	router.POST("/users", handler.CreateUser)
	router.GET("/users", handler.FindUser)
	router.GET("/users/others", asUser(userID), handler.ListOtherUsers)
	router.GET("/users/:user_id", handler.GetUser)
	router.PUT("/users/:user_id", asUser(userID), handler.UpdateUser)
	return router
}

func TestCreateUserHashesPasswordAndHidesIt(t *testing.T) {
	repo := new(mocks.UserRepositoryMock)

	var storedHash string
	repo.On("CreateUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
		storedHash = u.PasswordHash
		return u.Username == "alice" && u.PasswordHash != "hunter22"
	})).Return(models.User{ID: "u1", Username: "alice", Email: "alice@uni.edu", PasswordHash: "ignored"}, nil)

	router := userRouter("", repo)
	w := performJSON(t, router, http.MethodPost, "/users", gin.H{
		"username": "alice",
		"email":    "alice@uni.edu",
		"password": "hunter22",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(storedHash), []byte("hunter22")))
	assert.NotContains(t, w.Body.String(), "password_hash")
}

func TestCreateUserRejectsShortPassword(t *testing.T) {
	repo := new(mocks.UserRepositoryMock)

	router := userRouter("", repo)
	w := performJSON(t, router, http.MethodPost, "/users", gin.H{
		"username": "alice",
		"email":    "alice@uni.edu",
		"password": "short",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	repo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
}

func TestFindUserByUsername(t *testing.T) {
	repo := new(mocks.UserRepositoryMock)
	repo.On("GetUserByUsername", mock.Anything, "bob").Return(models.User{ID: "u2", Username: "bob"}, nil)

	router := userRouter("", repo)
	w := performJSON(t, router, http.MethodGet, "/users?username=bob", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "u2")
}

func TestFindUserUnknown(t *testing.T) {
	repo := new(mocks.UserRepositoryMock)
	repo.On("GetUserByUsername", mock.Anything, "ghost").Return(models.User{}, repositories.ErrUserNotFound)

	router := userRouter("", repo)
	w := performJSON(t, router, http.MethodGet, "/users?username=ghost", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListOtherUsersExcludesCaller(t *testing.T) {
	repo := new(mocks.UserRepositoryMock)
	repo.On("ListOtherUsers", mock.Anything, "alice").Return([]models.UserSummary{{ID: "bob"}}, nil)

	router := userRouter("alice", repo)
	w := performJSON(t, router, http.MethodGet, "/users/others", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "alice")
	repo.AssertExpectations(t)
}

func TestUpdateUserSelfOnly(t *testing.T) {
	repo := new(mocks.UserRepositoryMock)

	router := userRouter("eve", repo)
	w := performJSON(t, router, http.MethodPut, "/users/alice", gin.H{"bio": "not mine"})

	assert.Equal(t, http.StatusForbidden, w.Code)
	repo.AssertNotCalled(t, "UpdateUser", mock.Anything, mock.Anything)
}
