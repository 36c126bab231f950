package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tcullen/arcadehub/internal/api/response"
	"github.com/tcullen/arcadehub/internal/model"
	"github.com/tcullen/arcadehub/internal/services/catalog"
)

// CatalogHandler handles game catalog endpoints
type CatalogHandler struct {
	catalogService catalog.ServiceInterface
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService catalog.ServiceInterface) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

// List handles GET /api/v1/games
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.GameListFromModel(h.catalogService.List()))
}

// Get handles GET /api/v1/games/{game_id}
func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	gameID := model.GameID(mux.Vars(r)["game_id"])

	info, err := h.catalogService.Get(gameID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameInfoFromModel(info))
}
