package parcela

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/beepyjs/api-indicacoes/internal/auth"
	"github.com/beepyjs/api-indicacoes/internal/erros"
	"github.com/gorilla/mux"
)

type Handler struct {
	Repo    *Repository
	Service *Service
}

func NewHandler(repo *Repository, service *Service) *Handler {
	return &Handler{Repo: repo, Service: service}
}

// DTO usado no PUT /parcelas/{id}/status
type StatusDTO struct {
	Status string `json:"status"`
}

// Listar trata GET /parcelas?status=&embaixadoraId=&mes=&ano=
// Embaixadoras só enxergam as próprias parcelas; o filtro embaixadoraId do
// query string vale apenas para admins.
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	f := Filtro{}

	if s := r.URL.Query().Get("status"); s != "" {
		canonico, err := NormalizarStatus(s)
		if err != nil {
			erros.Responder(w, err)
			return
		}
		f.Status = canonico
	}
	if v := r.URL.Query().Get("mes"); v != "" {
		f.Mes, _ = strconv.Atoi(v)
	}
	if v := r.URL.Query().Get("ano"); v != "" {
		f.Ano, _ = strconv.Atoi(v)
	}

	if auth.EhAdmin(r.Context()) {
		if v := r.URL.Query().Get("embaixadoraId"); v != "" {
			id, err := strconv.Atoi(v)
			if err != nil {
				http.Error(w, "embaixadoraId inválido", http.StatusBadRequest)
				return
			}
			f.EmbaixadoraID = uint(id)
		}
	} else {
		id, ok := auth.UsuarioDoContexto(r.Context())
		if !ok {
			http.Error(w, "Token ausente", http.StatusUnauthorized)
			return
		}
		f.EmbaixadoraID = id
	}

	parcelas, err := h.Repo.Listar(f)
	if err != nil {
		http.Error(w, "Erro ao buscar parcelas", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(parcelas)
}

// AtualizarStatus trata PUT /parcelas/{id}/status (apenas admin).
// "pago" marca o pagamento; "pendente" reverte um pagamento. O status
// "atrasado" é derivado do vencimento e só muda via verificação de atrasos.
func (h *Handler) AtualizarStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID da parcela inválido", http.StatusBadRequest)
		return
	}

	var payload StatusDTO
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}

	canonico, err := NormalizarStatus(payload.Status)
	if err != nil {
		erros.Responder(w, err)
		return
	}

	var p *Parcela
	switch canonico {
	case StatusPago:
		p, err = h.Service.MarcarPaga(uint(id), time.Now())
	case StatusPendente:
		p, err = h.Service.ReverterPagamento(uint(id), time.Now())
	default:
		http.Error(w, "Status 'atrasado' é derivado do vencimento. Use /parcelas/verificar-atrasos.", http.StatusBadRequest)
		return
	}
	if err != nil {
		erros.Responder(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(p)
}

// VerificarAtrasos trata POST /parcelas/verificar-atrasos (apenas admin).
func (h *Handler) VerificarAtrasos(w http.ResponseWriter, r *http.Request) {
	alteradas, err := h.Service.VerificarAtrasos(time.Now())
	if err != nil {
		http.Error(w, "Erro ao verificar atrasos", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]int64{"parcelasAtrasadas": alteradas})
}
