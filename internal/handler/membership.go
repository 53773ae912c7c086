package handler

import (
	"net/http"

	"github.com/forgo/clubhub/api/internal/service"
)

// MembershipHandler handles join and leave requests
type MembershipHandler struct {
	svc *service.MembershipService
}

// NewMembershipHandler creates a new membership handler
func NewMembershipHandler(svc *service.MembershipService) *MembershipHandler {
	return &MembershipHandler{svc: svc}
}

// Join handles POST /clubs/{id}/join
func (h *MembershipHandler) Join(w http.ResponseWriter, r *http.Request, p Params) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	if err := h.svc.Join(r.Context(), p.ID("id"), body); err != nil {
		handleError(w, r, err)
		return
	}

	WriteMessage(w, http.StatusOK, "Successfully joined club")
}

// Leave handles POST /clubs/{id}/leave
func (h *MembershipHandler) Leave(w http.ResponseWriter, r *http.Request, p Params) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	if err := h.svc.Leave(r.Context(), p.ID("id"), body); err != nil {
		handleError(w, r, err)
		return
	}

	WriteMessage(w, http.StatusOK, "Successfully left club")
}
