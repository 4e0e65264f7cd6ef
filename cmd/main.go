package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/beepyjs/api-indicacoes/internal/auth"
	"github.com/beepyjs/api-indicacoes/internal/comissao"
	"github.com/beepyjs/api-indicacoes/internal/dashboard"
	"github.com/beepyjs/api-indicacoes/internal/indicacao"
	"github.com/beepyjs/api-indicacoes/internal/parcela"
	"github.com/beepyjs/api-indicacoes/internal/usuario"
	"github.com/beepyjs/api-indicacoes/internal/utils/db"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/shopspring/decimal"
)

func main() {
	// .env é opcional; em produção as variáveis vêm do ambiente
	_ = godotenv.Load()

	// valores monetários saem como número no JSON, não como string
	decimal.MarshalJSONWithoutQuotes = true

	conexao, err := db.ConnectDataBase()
	if err != nil {
		log.Fatal("Erro ao conectar no banco:", err)
	}

	// AutoMigrate para todos os modelos
	if err := usuario.Migrate(conexao); err != nil {
		log.Fatal("Erro no AutoMigrate:", err)
	}
	if err := indicacao.Migrate(conexao); err != nil {
		log.Fatal("Erro no AutoMigrate:", err)
	}
	if err := comissao.Migrate(conexao); err != nil {
		log.Fatal("Erro no AutoMigrate:", err)
	}
	if err := parcela.Migrate(conexao); err != nil {
		log.Fatal("Erro no AutoMigrate:", err)
	}

	valorTotal := decimal.NewFromInt(900)
	if v := os.Getenv("VALOR_TOTAL_COMISSAO"); v != "" {
		valorTotal, err = decimal.NewFromString(v)
		if err != nil {
			log.Fatal("VALOR_TOTAL_COMISSAO inválido:", err)
		}
	}

	// Serviços e handlers
	comissaoService := comissao.NewService(conexao, valorTotal)
	indicacaoService := indicacao.NewService(conexao, comissaoService)
	parcelaService := parcela.NewService(conexao)

	usuarioHandler := usuario.NewHandler(conexao)
	indicacaoHandler := indicacao.NewHandler(indicacao.NewRepository(conexao), indicacaoService)
	comissaoHandler := comissao.NewHandler(comissao.NewRepository(conexao))
	parcelaHandler := parcela.NewHandler(parcela.NewRepository(conexao), parcelaService)
	dashboardHandler := dashboard.NewHandler(conexao)

	// Router
	r := mux.NewRouter()
	r.Use(auth.MiddlewareAutenticacao)

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"healthy","service":"beepy-api"}`))
	}).Methods("GET")

	// Autenticação e bootstrap
	r.HandleFunc("/auth/login", usuarioHandler.Login).Methods("POST")
	r.HandleFunc("/auth/verify", usuarioHandler.Verificar).Methods("GET")
	r.HandleFunc("/setup", usuarioHandler.Setup).Methods("POST")

	// Rotas de usuários (apenas admin)
	r.Handle("/usuarios", auth.RequireAdmin(http.HandlerFunc(usuarioHandler.Listar))).Methods("GET")
	r.Handle("/usuarios", auth.RequireAdmin(http.HandlerFunc(usuarioHandler.Criar))).Methods("POST")

	// Rotas de indicações
	r.HandleFunc("/indicacoes", indicacaoHandler.Criar).Methods("POST")
	r.HandleFunc("/indicacoes", indicacaoHandler.Listar).Methods("GET")
	r.HandleFunc("/indicacoes/{id}", indicacaoHandler.BuscarPorID).Methods("GET")
	r.HandleFunc("/indicacoes/{id}", indicacaoHandler.Atualizar).Methods("PUT")
	r.Handle("/indicacoes/{id}", auth.RequireAdmin(http.HandlerFunc(indicacaoHandler.Deletar))).Methods("DELETE")
	r.Handle("/indicacoes/{id}/status", auth.RequireAdmin(http.HandlerFunc(indicacaoHandler.AtualizarStatus))).Methods("PUT")

	// Rotas de comissões
	r.HandleFunc("/comissoes", comissaoHandler.Listar).Methods("GET")
	r.HandleFunc("/comissoes/{id}", comissaoHandler.BuscarPorID).Methods("GET")
	r.Handle("/comissoes/{id}/status", auth.RequireAdmin(http.HandlerFunc(comissaoHandler.AtualizarStatus))).Methods("PUT")

	// Rotas de parcelas
	r.HandleFunc("/parcelas", parcelaHandler.Listar).Methods("GET")
	r.HandleFunc("/parcelas/resumo", dashboardHandler.ResumoParcelas).Methods("GET")
	r.Handle("/parcelas/verificar-atrasos", auth.RequireAdmin(http.HandlerFunc(parcelaHandler.VerificarAtrasos))).Methods("POST")
	r.Handle("/parcelas/{id}/status", auth.RequireAdmin(http.HandlerFunc(parcelaHandler.AtualizarStatus))).Methods("PUT")

	// Dashboards
	r.Handle("/dashboard/admin", auth.RequireAdmin(http.HandlerFunc(dashboardHandler.Admin))).Methods("GET")
	r.HandleFunc("/dashboard/embaixadora", dashboardHandler.Embaixadora).Methods("GET")

	// CORS
	origens := []string{"http://localhost:3000", "http://localhost:5173"}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		origens = strings.Split(v, ",")
	}
	c := cors.New(cors.Options{
		AllowedOrigins:   origens,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "Accept"},
		AllowCredentials: true,
	})

	porta := os.Getenv("PORT")
	if porta == "" {
		porta = "8080"
	}

	fmt.Println("Servidor rodando em http://localhost:" + porta)
	log.Fatal(http.ListenAndServe(":"+porta, c.Handler(r)))
}
