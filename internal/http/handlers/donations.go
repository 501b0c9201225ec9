package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"server/internal/domain"
	"server/internal/workflow"
)

type donationItemReq struct {
	Description     string `json:"description"`
	StorageLocation string `json:"storage_location"`
	PhotoURL        string `json:"photo_url"`
}

type donationReq struct {
	DonorID      string            `json:"donor_id"`
	NewDonor     *donorReq         `json:"new_donor"`
	DateAccepted string            `json:"date_accepted"`
	Notes        string            `json:"notes"`
	Items        []donationItemReq `json:"items"`
}

// DonationsSubmit records a donation in one request: an existing donor by id
// or a new donor inline, the acceptance date, and the item rows. Photos are
// uploaded beforehand and referenced by URL. Writes are sequential and not
// atomic; a failure partway leaves the earlier records in place and reports
// the step that failed.
func (a *App) DonationsSubmit(w http.ResponseWriter, r *http.Request) {
	var req donationReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid json body")
		return
	}

	form := workflow.NewForm()
	switch {
	case req.DonorID != "":
		donor, err := a.Donors.GetByID(r.Context(), req.DonorID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				a.error(w, http.StatusNotFound, "not_found", "donor not found")
				return
			}
			a.error(w, http.StatusInternalServerError, "internal", "failed to load donor")
			return
		}
		form.SelectDonor(*donor)
	case req.NewDonor != nil:
		form.StartNewDonor()
		form.EditNewDonor(req.NewDonor.fields())
	}

	if req.DateAccepted != "" {
		form.SetDateAccepted(req.DateAccepted)
	}
	form.SetNotes(req.Notes)

	for i, item := range req.Items {
		key := form.Items()[0].Key
		if i > 0 {
			key = form.AddItem()
		}
		_ = form.UpdateItem(key, item.Description, item.StorageLocation)
		if item.PhotoURL != "" {
			_ = form.SetItemPhotoURL(key, item.PhotoURL)
		}
	}

	result, err := form.Submit(r.Context(), workflow.SubmitDeps{
		Donors:    a.Donors,
		Donations: a.Donations,
		Items:     a.Items,
		Photos:    a.Photos,
	})
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			a.error(w, http.StatusBadRequest, "validation", err.Error())
			return
		}
		a.error(w, http.StatusInternalServerError, "internal", err.Error())
		return
	}

	a.Directory.Invalidate(result.DonorID)
	a.json(w, http.StatusCreated, map[string]any{
		"donor_id":    result.DonorID,
		"donation_id": result.DonationID,
		"item_count":  result.ItemCount,
		"message":     fmt.Sprintf("Donation recorded with %d item(s)", result.ItemCount),
	})
}
