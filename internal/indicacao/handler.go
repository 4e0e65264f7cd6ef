package indicacao

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/beepyjs/api-indicacoes/internal/auth"
	"github.com/beepyjs/api-indicacoes/internal/erros"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type Handler struct {
	Repo    *Repository
	Service *Service
}

func NewHandler(repo *Repository, service *Service) *Handler {
	return &Handler{Repo: repo, Service: service}
}

// Criar trata POST /indicacoes. A embaixadora cria para si mesma; o admin
// pode indicar a dona via embaixadoraId no payload.
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var dto CriarIndicacaoDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}

	usuarioID, ok := auth.UsuarioDoContexto(r.Context())
	if !ok {
		http.Error(w, "Token ausente", http.StatusUnauthorized)
		return
	}

	embaixadoraID := usuarioID
	if auth.EhAdmin(r.Context()) && dto.EmbaixadoraID != 0 {
		embaixadoraID = dto.EmbaixadoraID
	}

	i, err := h.Service.Criar(dto, embaixadoraID)
	if err != nil {
		erros.Responder(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(i)
}

// Listar trata GET /indicacoes. Admin enxerga todas; embaixadora, as suas.
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	var (
		lista []Indicacao
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
		http.Error(w, "Erro ao buscar indicações", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(lista)
}

// BuscarPorID trata GET /indicacoes/{id}.
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	i, ok := h.carregarComAcesso(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(i)
}

// Atualizar trata PUT /indicacoes/{id} (dados de contato; o status tem rota
// própria, validada pela máquina de estados).
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	i, ok := h.carregarComAcesso(w, r)
	if !ok {
		return
	}

	var dto AtualizarIndicacaoDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}

	if v := strings.TrimSpace(dto.NomeCliente); v != "" {
		i.NomeCliente = v
	}
	if v := strings.TrimSpace(dto.Email); v != "" {
		i.Email = v
	}
	if v := strings.TrimSpace(dto.Telefone); v != "" {
		i.Telefone = v
	}
	if dto.Origem != "" {
		origem, err := NormalizarOrigem(dto.Origem)
		if err != nil {
			erros.Responder(w, err)
			return
		}
		i.Origem = origem
	}
	if dto.Segmento != "" {
		segmento, err := NormalizarSegmento(dto.Segmento)
		if err != nil {
			erros.Responder(w, err)
			return
		}
		i.Segmento = segmento
		if segmento == SegmentoOutros {
			i.SegmentoOutro = strings.TrimSpace(dto.SegmentoOutro)
		} else {
			i.SegmentoOutro = ""
		}
	}

	if err := h.Repo.Atualizar(i); err != nil {
		http.Error(w, "Erro ao atualizar indicação", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(i)
}

// Deletar trata DELETE /indicacoes/{id} (apenas admin).
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID da indicação inválido", http.StatusBadRequest)
		return
	}

	if err := h.Repo.DeletarPorID(uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Indicação não encontrada", http.StatusNotFound)
			return
		}
		http.Error(w, "Erro ao deletar indicação", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AtualizarStatus trata PUT /indicacoes/{id}/status (apenas admin).
// Aprovar dispara a geração da comissão e das três parcelas.
func (h *Handler) AtualizarStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID da indicação inválido", http.StatusBadRequest)
		return
	}

	var payload StatusDTO
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}

	i, err := h.Service.AtualizarStatus(uint(id), payload.Status, time.Now())
	if err != nil {
		erros.Responder(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(i)
}

// carregarComAcesso busca a indicação e garante que o usuário é admin ou dono.
func (h *Handler) carregarComAcesso(w http.ResponseWriter, r *http.Request) (*Indicacao, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID da indicação inválido", http.StatusBadRequest)
		return nil, false
	}

	i, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "Indicação não encontrada", http.StatusNotFound)
		return nil, false
	}

	if !auth.EhAdmin(r.Context()) {
		usuarioID, _ := auth.UsuarioDoContexto(r.Context())
		if i.EmbaixadoraID != usuarioID {
			http.Error(w, "Acesso negado", http.StatusForbidden)
			return nil, false
		}
	}
	return i, true
}
