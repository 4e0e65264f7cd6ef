package comissao

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/beepyjs/api-indicacoes/internal/auth"
	"github.com/beepyjs/api-indicacoes/internal/erros"
	"github.com/beepyjs/api-indicacoes/internal/parcela"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type Handler struct {
	Repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo}
}

// Listar trata GET /comissoes. Admin enxerga todas; embaixadora, as suas.
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	var (
		lista []Comissao
		err   error
	)
	if auth.EhAdmin(r.Context()) {
		lista, err = h.Repo.ListarTodas()
	} else {
		id, ok := auth.UsuarioDoContexto(r.Context())
		if !ok {
			http.Error(w, "Token ausente", http.StatusUnauthorized)
			return
		}
		lista, err = h.Repo.ListarPorEmbaixadora(id)
	}
	if err != nil {
		http.Error(w, "Erro ao buscar comissões", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(lista)
}

// BuscarPorID trata GET /comissoes/{id}.
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID da comissão inválido", http.StatusBadRequest)
		return
	}

	c, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "Comissão não encontrada", http.StatusNotFound)
		return
	}

	if !auth.EhAdmin(r.Context()) {
		usuarioID, _ := auth.UsuarioDoContexto(r.Context())
		if c.EmbaixadoraID != usuarioID {
			http.Error(w, "Acesso negado", http.StatusForbidden)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(c)
}

// AtualizarStatus trata PUT /comissoes/{id}/status (apenas admin).
// Aceita "cancelado" (congela a comissão) e "pendente" (reativa e refaz o
// roll-up a partir das parcelas). "pago" é derivado e não pode ser gravado.
func (h *Handler) AtualizarStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID da comissão inválido", http.StatusBadRequest)
		return
	}

	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}

	canonico, err := NormalizarStatus(payload.Status)
	if err != nil {
		erros.Responder(w, err)
		return
	}
	if canonico == StatusPago {
		http.Error(w, "Status 'pago' é derivado das parcelas e não pode ser atribuído", http.StatusBadRequest)
		return
	}

	if err := h.Repo.AtualizarStatus(uint(id), canonico); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Comissão não encontrada", http.StatusNotFound)
			return
		}
		http.Error(w, "Erro ao atualizar status da comissão", http.StatusInternalServerError)
		return
	}

	// reativou: o status volta a espelhar as parcelas
	if canonico == StatusPendente {
		if err := parcela.RecalcularStatusComissao(h.Repo.DB, uint(id)); err != nil {
			http.Error(w, "Erro ao recalcular status da comissão", http.StatusInternalServerError)
			return
		}
	}

	c, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "Erro ao buscar comissão atualizada", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(c)
}
