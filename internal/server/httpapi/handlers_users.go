package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/dbelyaev/coachbase/internal/common"
	"github.com/dbelyaev/coachbase/internal/server/models"
	"github.com/go-chi/chi/v5"
)

func parseUserID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid user id", common.ErrValidation)
	}
	return id, nil
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) error {

	all, err := s.users.GetAll(r.Context())
	if err != nil {
		return err
	}

	public := make([]models.PublicUser, 0, len(all))
	for i := range all {
		public = append(public, all[i].Public())
	}

	respondJSON(w, http.StatusOK, public)
	return nil
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) error {

	id, ok := callerID(r.Context())
	if !ok {
		return common.ErrUnauthorized
	}

	user, err := s.users.GetByID(r.Context(), id)
	if err != nil {
		return err
	}

	respondJSON(w, http.StatusOK, user.Public())
	return nil
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) error {

	id, err := parseUserID(r)
	if err != nil {
		return err
	}

	user, err := s.users.GetByID(r.Context(), id)
	if err != nil {
		return err
	}

	respondJSON(w, http.StatusOK, user.Public())
	return nil
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) error {

	id, err := parseUserID(r)
	if err != nil {
		return err
	}

	caller, ok := callerID(r.Context())
	if !ok {
		return common.ErrUnauthorized
	}

	var upd models.UserUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		// Ownership outranks payload validity: a non-owner gets 403 even
		// with a broken body.
		if caller != id {
			return fmt.Errorf("%w: you can only update your own profile", common.ErrForbidden)
		}
		return fmt.Errorf("%w: invalid request body", common.ErrValidation)
	}

	user, err := s.users.Update(r.Context(), caller, id, upd)
	if err != nil {
		return err
	}

	s.logger.Info(r.Context(), "user updated", "user_id", user.ID)

	respondJSON(w, http.StatusOK, user.Public())
	return nil
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) error {

	id, err := parseUserID(r)
	if err != nil {
		return err
	}

	caller, ok := callerID(r.Context())
	if !ok {
		return common.ErrUnauthorized
	}

	if err := s.users.Delete(r.Context(), caller, id); err != nil {
		return err
	}

	s.logger.Info(r.Context(), "user deleted", "user_id", id)

	respondJSON(w, http.StatusOK, messageResponse{Message: "user deleted"})
	return nil
}
