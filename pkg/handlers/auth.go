package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/filmboard/filmboard-api/pkg/db"
	"github.com/filmboard/filmboard-api/pkg/db/queries"
	"github.com/filmboard/filmboard-api/pkg/utils"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

type SignUpRequest struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type SignInRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SignUp creates an account with role "user". Email uniqueness is
// case-insensitive; the password is stored as a bcrypt hash.
func (h *Handlers) SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Debugf("SignUp: Invalid request body: %v", err)
		utils.ResponseWithError(c, http.StatusBadRequest, "fullName, email and password are required")
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := h.store.FindUserByEmail(req.Email)
	if err != nil {
		log.Errorf("SignUp: Error finding user by email '%s': %v", req.Email, err)
		utils.ResponseWithError(c, http.StatusInternalServerError, "Error creating account")
		return
	}
	if existing != nil {
		log.Debugf("SignUp: User with email '%s' already exists.", req.Email)
		utils.ResponseWithError(c, http.StatusConflict, "User with this email already exists")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Errorf("SignUp: Error hashing password: %v", err)
		utils.ResponseWithError(c, http.StatusInternalServerError, "Error creating account")
		return
	}

	user := &db.User{
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		Role:         db.RoleUser,
	}

	created, err := h.store.CreateUser(user)
	if err != nil {
		// A concurrent signup can slip past the existence check; the unique
		// index on lower(email) catches it.
		if errors.Is(err, queries.ErrDuplicateEntry) {
			utils.ResponseWithError(c, http.StatusConflict, "User with this email already exists")
			return
		}
		log.Errorf("SignUp: Error creating user: %v", err)
		utils.ResponseWithError(c, http.StatusInternalServerError, "Error creating account")
		return
	}

	log.Infof("User with ID '%s' created.", created.ID.String())
	c.JSON(http.StatusCreated, created.Public())
}

// SignIn checks credentials by normalized email and bcrypt comparison.
// No token is issued; the client persists the returned user object.
func (h *Handlers) SignIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Debugf("SignIn: Invalid request body: %v", err)
		utils.ResponseWithError(c, http.StatusBadRequest, "email and password are required")
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	user, err := h.store.FindUserByEmail(req.Email)
	if err != nil {
		log.Errorf("SignIn: Error finding user by email: %v", err)
		utils.ResponseWithError(c, http.StatusInternalServerError, "Sign in failed")
		return
	}
	if user == nil {
		log.Debugf("SignIn: User with email '%s' not found.", req.Email)
		utils.ResponseWithError(c, http.StatusUnauthorized, "user does not have an account")
		return
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		log.Debugf("SignIn: Invalid password for user '%s'.", req.Email)
		utils.ResponseWithError(c, http.StatusUnauthorized, "user does not have an account")
		return
	}

	log.Infof("User %s signed in successfully.", user.Email)
	c.JSON(http.StatusOK, user.Public())
}
