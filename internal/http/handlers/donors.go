package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"server/internal/domain"
	"server/internal/workflow"
)

// DonorsList returns the directory: every donor with donation and item
// counts, filtered by the optional search term.
func (a *App) DonorsList(w http.ResponseWriter, r *http.Request) {
	donors, err := a.Directory.Donors(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to load donors")
		return
	}
	items := make([]map[string]any, 0, len(donors))
	for _, d := range donors {
		p := donorPayload(d.Donor)
		p["donation_count"] = d.DonationCount
		p["item_count"] = d.ItemCount
		items = append(items, p)
	}
	a.json(w, http.StatusOK, map[string]any{"donors": items})
}

// DonorsSearch is the typeahead lookup used while composing a donation.
// Terms shorter than two characters return an empty set without touching the
// store.
func (a *App) DonorsSearch(w http.ResponseWriter, r *http.Request) {
	term := strings.TrimSpace(r.URL.Query().Get("q"))
	items := []map[string]any{}
	if len(term) >= 2 {
		donors, err := a.Donors.Search(r.Context(), term, workflow.DonorSearchLimit)
		if err != nil {
			a.error(w, http.StatusInternalServerError, "internal", "donor search failed")
			return
		}
		for _, d := range donors {
			items = append(items, donorPayload(d))
		}
	}
	a.json(w, http.StatusOK, map[string]any{"donors": items})
}

type donorReq struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

func (req donorReq) fields() domain.DonorFields {
	return domain.DonorFields{
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
		Phone:   req.Phone,
	}
}

// DonorCreate registers a new donor. Name, address, and phone are required;
// email is optional.
func (a *App) DonorCreate(w http.ResponseWriter, r *http.Request) {
	var req donorReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid json body")
		return
	}
	if strings.TrimSpace(req.Name) == "" ||
		strings.TrimSpace(req.Address) == "" ||
		strings.TrimSpace(req.Phone) == "" {
		a.error(w, http.StatusBadRequest, "validation", "name, address, and phone are required")
		return
	}
	donor, err := a.Donors.Create(r.Context(), req.fields())
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to create donor")
		return
	}
	a.json(w, http.StatusCreated, donorPayload(*donor))
}

// DonorUpdate edits a donor's contact details.
func (a *App) DonorUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req donorReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid json body")
		return
	}
	donor, err := a.Directory.UpdateDonor(r.Context(), id, req.fields())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			a.error(w, http.StatusBadRequest, "validation", err.Error())
		case errors.Is(err, domain.ErrNotFound):
			a.error(w, http.StatusNotFound, "not_found", "donor not found")
		default:
			a.error(w, http.StatusInternalServerError, "internal", "failed to update donor")
		}
		return
	}
	a.json(w, http.StatusOK, donorPayload(*donor))
}

// DonorDonations returns a donor's full donation history, items included.
// Histories are cached per donor for the life of the process and refreshed
// when new donations arrive through this instance.
func (a *App) DonorDonations(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	history, err := a.Directory.History(r.Context(), id)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to load donation history")
		return
	}
	donations := make([]map[string]any, 0, len(history))
	for _, dn := range history {
		items := make([]map[string]any, 0, len(dn.Items))
		for _, item := range dn.Items {
			items = append(items, itemPayload(item))
		}
		donations = append(donations, map[string]any{
			"id":            dn.ID,
			"date_accepted": dn.DateAccepted,
			"notes":         dn.Notes,
			"created_at":    dn.CreatedAt,
			"items":         items,
		})
	}
	a.json(w, http.StatusOK, map[string]any{"donations": donations})
}

func donorPayload(d domain.Donor) map[string]any {
	p := map[string]any{
		"id":         d.ID,
		"name":       d.Name,
		"address":    d.Address,
		"phone":      d.Phone,
		"created_at": d.CreatedAt,
	}
	if d.Email != nil {
		p["email"] = *d.Email
	}
	return p
}
