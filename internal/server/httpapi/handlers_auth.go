package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dbelyaev/coachbase/internal/common"
	"github.com/dbelyaev/coachbase/internal/server/auth"
	"github.com/dbelyaev/coachbase/internal/server/models"
)

const tokenCookieName = "token"

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) error {

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return fmt.Errorf("%w: invalid request body", common.ErrValidation)
	}

	user, err := s.users.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		return err
	}

	token, err := auth.GenerateToken(user.ID, user.Email, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return common.ErrInternal
	}

	s.logger.Info(r.Context(), "user registered", "user_id", user.ID, "username", user.Username)

	s.setTokenCookie(w, token)
	respondJSON(w, http.StatusCreated, authResponse{Token: token, User: user.Public()})
	return nil
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) error {

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return fmt.Errorf("%w: invalid request body", common.ErrValidation)
	}

	user, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	token, err := auth.GenerateToken(user.ID, user.Email, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return common.ErrInternal
	}

	s.logger.Info(r.Context(), "user logged in", "user_id", user.ID)

	s.setTokenCookie(w, token)
	respondJSON(w, http.StatusOK, authResponse{Token: token, User: user.Public()})
	return nil
}

// handleLogout is stateless: tokens are not revocable, so the only work
// is expiring the cookie artifact. The client drops its copy.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) error {

	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})

	respondJSON(w, http.StatusOK, messageResponse{Message: "logged out"})
	return nil
}

func (s *Server) setTokenCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		MaxAge:   int(s.tokenValidity.Seconds()),
	})
}
