package handlers

import (
	"encoding/json"
	"net/http"

	"server/internal/adapter/repo"
	"server/internal/domain"
	"server/internal/infra"
	"server/internal/workflow"
)

// App is the handler container: the SQL executor for aggregate queries plus
// the typed repositories and session state the endpoints drive.
type App struct {
	SQL       infra.SQLExecutor
	Donors    domain.DonorRepository
	Donations domain.DonationRepository
	Items     domain.ItemRepository
	Photos    domain.PhotoStore
	Directory *workflow.DirectoryView
	Inventory *workflow.InventoryView
	StaticDir string
}

// NewApp wires the repositories over the shared SQL executor.
func NewApp(sql infra.SQLExecutor, photos domain.PhotoStore, staticDir string) *App {
	donors := repo.NewDonorRepository(sql)
	donations := repo.NewDonationRepository(sql)
	items := repo.NewItemRepository(sql)
	return &App{
		SQL:       sql,
		Donors:    donors,
		Donations: donations,
		Items:     items,
		Photos:    photos,
		Directory: workflow.NewDirectoryView(donors, donations),
		Inventory: workflow.NewInventoryView(items),
		StaticDir: staticDir,
	}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, errCode, message string) {
	a.json(w, code, map[string]any{
		"error": map[string]any{"code": errCode, "message": message},
	})
}
