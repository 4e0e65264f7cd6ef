package usuario

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/beepyjs/api-indicacoes/internal/auth"
	"github.com/beepyjs/api-indicacoes/internal/erros"
	"github.com/beepyjs/api-indicacoes/internal/utils"

	"gorm.io/gorm"
)

// request DTOs
type LoginRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

type criarUsuarioRequest struct {
	Nome     string `json:"nome"`
	Email    string `json:"email"`
	Telefone string `json:"telefone"`
	Senha    string `json:"senha"`
	Perfil   string `json:"perfil"`
}

// Handler encapsula DB e repository
type Handler struct {
	DB         *gorm.DB
	Repository Repository
}

// NewHandler retorna um handler inicializado
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
	}
}

// Login gera um JWT para credenciais válidas.
// POST /auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Senha == "" {
		http.Error(w, "Email e senha são obrigatórios", http.StatusBadRequest)
		return
	}

	user, err := h.Repository.BuscarPorEmail(h.DB, req.Email)
	if err != nil {
		http.Error(w, "credenciais inválidas", http.StatusUnauthorized)
		return
	}
	if !utils.VerificarSenha(user.Senha, req.Senha) {
		http.Error(w, "credenciais inválidas", http.StatusUnauthorized)
		return
	}

	token, err := auth.GerarToken(user.ID, user.Perfil)
	if err != nil {
		http.Error(w, "Erro ao gerar token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"access_token": token,
		"user":         user,
	})
}

// Verificar devolve o usuário autenticado a partir do token.
// GET /auth/verify
func (h *Handler) Verificar(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.UsuarioDoContexto(r.Context())
	if !ok {
		http.Error(w, "Token ausente", http.StatusUnauthorized)
		return
	}

	user, err := h.Repository.BuscarPorID(h.DB, id)
	if err != nil {
		erros.Responder(w, fmt.Errorf("usuário: %w", erros.ErrNaoEncontrado))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"user": user})
}

// Criar cadastra um novo usuário (apenas admin).
// POST /usuarios
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var req criarUsuarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Nome == "" || req.Email == "" {
		erros.Responder(w, fmt.Errorf("nome e email são obrigatórios: %w", erros.ErrValidacao))
		return
	}
	if req.Perfil == "" {
		req.Perfil = PerfilEmbaixadora
	}
	if req.Perfil != PerfilAdmin && req.Perfil != PerfilEmbaixadora {
		erros.Responder(w, fmt.Errorf("perfil desconhecido %q: %w", req.Perfil, erros.ErrValidacao))
		return
	}

	if _, err := h.Repository.BuscarPorEmail(h.DB, req.Email); err == nil {
		http.Error(w, "Email já está em uso", http.StatusBadRequest)
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		http.Error(w, "Erro ao verificar email", http.StatusInternalServerError)
		return
	}

	// sem senha no payload, gera uma temporária e devolve na resposta
	senhaTemporaria := ""
	if req.Senha == "" {
		var err error
		senhaTemporaria, err = utils.GerarSenhaTemporaria()
		if err != nil {
			http.Error(w, "Erro ao gerar senha temporária", http.StatusInternalServerError)
			return
		}
		req.Senha = senhaTemporaria
	}

	hash, err := utils.HashSenha(req.Senha)
	if err != nil {
		http.Error(w, "Erro ao processar senha", http.StatusInternalServerError)
		return
	}

	novo := &Usuario{
		Nome:     req.Nome,
		Email:    req.Email,
		Telefone: req.Telefone,
		Senha:    hash,
		Perfil:   req.Perfil,
	}
	if err := h.Repository.Salvar(h.DB, novo); err != nil {
		http.Error(w, "Erro ao criar usuário", http.StatusInternalServerError)
		return
	}

	resposta := map[string]interface{}{"user": novo}
	if senhaTemporaria != "" {
		resposta["senhaTemporaria"] = senhaTemporaria
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(resposta)
}

// Listar devolve todos os usuários (apenas admin).
// GET /usuarios
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	lista, err := h.Repository.ListarTodos(h.DB)
	if err != nil {
		http.Error(w, "Erro ao buscar usuários", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(lista)
}

// Setup cria o administrador inicial quando ainda não existe nenhum.
// POST /setup
func (h *Handler) Setup(w http.ResponseWriter, r *http.Request) {
	existe, err := h.Repository.ExisteAdmin(h.DB)
	if err != nil {
		http.Error(w, "Erro ao verificar administradores", http.StatusInternalServerError)
		return
	}
	if existe {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Admin já existe"})
		return
	}

	hash, err := utils.HashSenha("admin123")
	if err != nil {
		http.Error(w, "Erro ao processar senha", http.StatusInternalServerError)
		return
	}

	admin := &Usuario{
		Nome:   "Administrador",
		Email:  "admin@beepy.com",
		Senha:  hash,
		Perfil: PerfilAdmin,
	}
	if err := h.Repository.Salvar(h.DB, admin); err != nil {
		http.Error(w, "Erro ao criar admin", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": "Usuário admin criado com sucesso"})
}
