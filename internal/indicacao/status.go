// internal/indicacao/status.go
//
// Normalização dos enums da borda. O dashboard antigo misturava português e
// inglês ("não aprovado", "rejected", "approved"...); aqui tudo vira o valor
// canônico ou é rejeitado com ErrValidacao.
package indicacao

import (
	"fmt"
	"strings"

	"github.com/beepyjs/api-indicacoes/internal/erros"
)

var apelidosStatus = map[string]string{
	"agendado":     StatusAgendado,
	"agendada":     StatusAgendado,
	"scheduled":    StatusAgendado,
	"aprovado":     StatusAprovado,
	"aprovada":     StatusAprovado,
	"approved":     StatusAprovado,
	"recusado":     StatusRecusado,
	"recusada":     StatusRecusado,
	"rejeitado":    StatusRecusado,
	"rejected":     StatusRecusado,
	"não aprovado": StatusRecusado,
	"nao aprovado": StatusRecusado,
}

// OrigemOutros é a origem usada quando nada foi informado de onde veio o lead.
const OrigemOutros = "outros"

var origens = map[string]bool{
	"website":   true,
	"facebook":  true,
	"instagram": true,
	"indicacao": true,
	"fixo":      true,
	"whatsapp":  true,
	"google":    true,
	"outros":    true,
}

// SegmentoOutros mantém o texto livre em SegmentoOutro.
const SegmentoOutros = "outros"

var segmentos = map[string]bool{
	"saude":                        true,
	"educacao_pesquisa":            true,
	"juridico":                     true,
	"administracao_negocios":       true,
	"engenharias":                  true,
	"tecnologia_informacao":        true,
	"financeiro_bancario":          true,
	"marketing_vendas_comunicacao": true,
	"industria_producao":           true,
	"construcao_civil":             true,
	"transportes_logistica":        true,
	"comercio_varejo":              true,
	"turismo_hotelaria_eventos":    true,
	"gastronomia_alimentacao":      true,
	"agronegocio_meio_ambiente":    true,
	"artes_cultura_design":         true,
	"midias_digitais_criativas":    true,
	"seguranca_defesa":             true,
	"servicos_gerais":              true,
	"outros":                       true,
}

// NormalizarStatus converte variantes conhecidas para o valor canônico.
func NormalizarStatus(s string) (string, error) {
	canonico, ok := apelidosStatus[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("status de indicação desconhecido %q: %w", s, erros.ErrValidacao)
	}
	return canonico, nil
}

// NormalizarOrigem valida a origem do lead; vazio assume "website", como o
// sistema original.
func NormalizarOrigem(s string) (string, error) {
	o := strings.ToLower(strings.TrimSpace(s))
	if o == "" {
		return "website", nil
	}
	if !origens[o] {
		return "", fmt.Errorf("origem desconhecida %q: %w", s, erros.ErrValidacao)
	}
	return o, nil
}

// NormalizarSegmento valida o segmento; vazio assume "outros".
func NormalizarSegmento(s string) (string, error) {
	seg := strings.ToLower(strings.TrimSpace(s))
	if seg == "" {
		return SegmentoOutros, nil
	}
	if !segmentos[seg] {
		return "", fmt.Errorf("segmento desconhecido %q: %w", s, erros.ErrValidacao)
	}
	return seg, nil
}
