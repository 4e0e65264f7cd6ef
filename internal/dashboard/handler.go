// internal/dashboard/handler.go
package dashboard

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/beepyjs/api-indicacoes/internal/auth"
	"github.com/beepyjs/api-indicacoes/internal/indicacao"
	"github.com/beepyjs/api-indicacoes/internal/parcela"
	"github.com/beepyjs/api-indicacoes/internal/relatorio"
	"github.com/beepyjs/api-indicacoes/internal/usuario"
	"gorm.io/gorm"
)

// janelas dos widgets do painel
const (
	mesesGrafico     = 6
	topEmbaixadoras  = 5
	proximosParcelas = 5
)

// Handler monta as visões dos painéis a partir do módulo de relatórios.
// Toda a agregação acontece em relatorio; aqui só se carregam os conjuntos
// e se escolhe o escopo (admin vê tudo, embaixadora vê o que é dela).
type Handler struct {
	DB         *gorm.DB
	Indicacoes *indicacao.Repository
	Parcelas   *parcela.Repository
	Usuarios   usuario.Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		DB:         db,
		Indicacoes: indicacao.NewRepository(db),
		Parcelas:   parcela.NewRepository(db),
		Usuarios:   usuario.NewRepository(),
	}
}

// Admin trata GET /dashboard/admin (apenas admin).
func (h *Handler) Admin(w http.ResponseWriter, r *http.Request) {
	indicacoes, err := h.Indicacoes.ListarTodas()
	if err != nil {
		http.Error(w, "Erro ao buscar indicações", http.StatusInternalServerError)
		return
	}
	parcelas, err := h.Parcelas.Listar(parcela.Filtro{})
	if err != nil {
		http.Error(w, "Erro ao buscar parcelas", http.StatusInternalServerError)
		return
	}
	totalUsuarios, err := h.Usuarios.ContarTodos(h.DB)
	if err != nil {
		http.Error(w, "Erro ao contar usuários", http.StatusInternalServerError)
		return
	}
	embaixadoras, err := h.Usuarios.ContarPorPerfil(h.DB, usuario.PerfilEmbaixadora)
	if err != nil {
		http.Error(w, "Erro ao contar embaixadoras", http.StatusInternalServerError)
		return
	}

	aprovadas := 0
	for _, i := range indicacoes {
		if i.Status == indicacao.StatusAprovado {
			aprovadas++
		}
	}

	resposta := map[string]interface{}{
		"stats": map[string]interface{}{
			"totalUsuarios":        totalUsuarios,
			"totalEmbaixadoras":    embaixadoras,
			"totalIndicacoes":      len(indicacoes),
			"indicacoesAprovadas":  aprovadas,
			"resumoParcelas":       relatorio.CalcularResumo(parcelas),
		},
		"graficos": map[string]interface{}{
			"parcelasPorMes":       relatorio.BucketsMensais(parcelas, mesesGrafico, time.Now()),
			"conversaoPorSegmento": relatorio.ConversaoPorSegmento(indicacoes),
			"topEmbaixadoras":      relatorio.TopEmbaixadoras(indicacoes, topEmbaixadoras),
		},
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resposta)
}

// Embaixadora trata GET /dashboard/embaixadora.
func (h *Handler) Embaixadora(w http.ResponseWriter, r *http.Request) {
	usuarioID, ok := auth.UsuarioDoContexto(r.Context())
	if !ok {
		http.Error(w, "Token ausente", http.StatusUnauthorized)
		return
	}

	indicacoes, err := h.Indicacoes.ListarPorEmbaixadora(usuarioID)
	if err != nil {
		http.Error(w, "Erro ao buscar indicações", http.StatusInternalServerError)
		return
	}
	parcelas, err := h.Parcelas.Listar(parcela.Filtro{EmbaixadoraID: usuarioID})
	if err != nil {
		http.Error(w, "Erro ao buscar parcelas", http.StatusInternalServerError)
		return
	}

	aprovadas := 0
	for _, i := range indicacoes {
		if i.Status == indicacao.StatusAprovado {
			aprovadas++
		}
	}
	taxa := 0.0
	if len(indicacoes) > 0 {
		taxa = float64(aprovadas) / float64(len(indicacoes))
	}

	resposta := map[string]interface{}{
		"stats": map[string]interface{}{
			"totalIndicacoes":     len(indicacoes),
			"indicacoesAprovadas": aprovadas,
			"taxaConversao":       taxa,
			"resumoParcelas":      relatorio.CalcularResumo(parcelas),
		},
		"proximosPagamentos": relatorio.ProximosPagamentos(parcelas, proximosParcelas),
		"parcelasPorMes":     relatorio.BucketsMensais(parcelas, mesesGrafico, time.Now()),
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resposta)
}

// ResumoParcelas trata GET /parcelas/resumo?embaixadoraId=
// Embaixadoras recebem sempre o próprio resumo; o query param vale para admin.
func (h *Handler) ResumoParcelas(w http.ResponseWriter, r *http.Request) {
	f := parcela.Filtro{}
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
		usuarioID, ok := auth.UsuarioDoContexto(r.Context())
		if !ok {
			http.Error(w, "Token ausente", http.StatusUnauthorized)
			return
		}
		f.EmbaixadoraID = usuarioID
	}

	parcelas, err := h.Parcelas.Listar(f)
	if err != nil {
		http.Error(w, "Erro ao buscar parcelas", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(relatorio.CalcularResumo(parcelas))
}
