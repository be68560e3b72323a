package area

import (
	"encoding/json"
	"net/http"

	"gorm.io/gorm"
)

// Handler expõe o catálogo de áreas
type Handler struct {
	DB *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db}
}

// Listar trata GET /areas (rota pública)
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	var list []Area
	if err := h.DB.Where("ativo = true").Order("nome").Find(&list).Error; err != nil {
		http.Error(w, "erro ao listar áreas", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}
