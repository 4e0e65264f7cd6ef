// internal/relatorio/relatorio.go
//
// Visões derivadas para os dashboards. Todas as funções são transformações
// puras sobre fatias de entidades: nada de I/O, nada de mutação — o mesmo
// conjunto de parcelas/indicações produz sempre a mesma visão. Antes esse
// cálculo vivia espalhado pelos componentes do frontend, cada um com uma
// variação própria; aqui é a única implementação.
package relatorio

import (
	"fmt"
	"sort"
	"time"

	"github.com/beepyjs/api-indicacoes/internal/indicacao"
	"github.com/beepyjs/api-indicacoes/internal/parcela"
	"github.com/shopspring/decimal"
)

// Resumo totaliza um conjunto de parcelas por status.
type Resumo struct {
	TotalParcelas     int             `json:"totalParcelas"`
	ValorTotal        decimal.Decimal `json:"valorTotal"`
	ParcelasPagas     int             `json:"parcelasPagas"`
	ValorPago         decimal.Decimal `json:"valorPago"`
	ParcelasPendentes int             `json:"parcelasPendentes"`
	ValorPendente     decimal.Decimal `json:"valorPendente"`
	ParcelasAtrasadas int             `json:"parcelasAtrasadas"`
	ValorAtrasado     decimal.Decimal `json:"valorAtrasado"`
}

// CalcularResumo particiona as parcelas por status e soma valor e contagem
// por partição. ValorTotal é sempre a soma das três partições.
func CalcularResumo(parcelas []parcela.Parcela) Resumo {
	r := Resumo{
		ValorTotal:    decimal.Zero,
		ValorPago:     decimal.Zero,
		ValorPendente: decimal.Zero,
		ValorAtrasado: decimal.Zero,
	}
	for _, p := range parcelas {
		r.TotalParcelas++
		r.ValorTotal = r.ValorTotal.Add(p.Valor)
		switch p.Status {
		case parcela.StatusPago:
			r.ParcelasPagas++
			r.ValorPago = r.ValorPago.Add(p.Valor)
		case parcela.StatusAtrasado:
			r.ParcelasAtrasadas++
			r.ValorAtrasado = r.ValorAtrasado.Add(p.Valor)
		default:
			r.ParcelasPendentes++
			r.ValorPendente = r.ValorPendente.Add(p.Valor)
		}
	}
	return r
}

// BucketMensal agrega as parcelas de um mês calendário pelo vencimento.
type BucketMensal struct {
	Mes           string          `json:"mes"` // "2025-01"
	ValorPago     decimal.Decimal `json:"valorPago"`
	ValorPendente decimal.Decimal `json:"valorPendente"`
	ValorAtrasado decimal.Decimal `json:"valorAtrasado"`
}

// BucketsMensais devolve um bucket por mês para os últimos `meses` meses,
// terminando no mês de `referencia`. Meses sem movimento entram zerados —
// o gráfico precisa de um eixo contínuo, não de meses pulados.
func BucketsMensais(parcelas []parcela.Parcela, meses int, referencia time.Time) []BucketMensal {
	if meses <= 0 {
		return nil
	}

	indice := make(map[string]*BucketMensal, meses)
	buckets := make([]BucketMensal, 0, meses)
	inicio := time.Date(referencia.Year(), referencia.Month(), 1, 0, 0, 0, 0, time.UTC).
		AddDate(0, -(meses - 1), 0)
	for i := 0; i < meses; i++ {
		m := inicio.AddDate(0, i, 0)
		chave := fmt.Sprintf("%04d-%02d", m.Year(), int(m.Month()))
		buckets = append(buckets, BucketMensal{
			Mes:           chave,
			ValorPago:     decimal.Zero,
			ValorPendente: decimal.Zero,
			ValorAtrasado: decimal.Zero,
		})
		indice[chave] = &buckets[len(buckets)-1]
	}

	for _, p := range parcelas {
		chave := fmt.Sprintf("%04d-%02d", p.DataVencimento.Year(), int(p.DataVencimento.Month()))
		b, dentro := indice[chave]
		if !dentro {
			continue
		}
		switch p.Status {
		case parcela.StatusPago:
			b.ValorPago = b.ValorPago.Add(p.Valor)
		case parcela.StatusAtrasado:
			b.ValorAtrasado = b.ValorAtrasado.Add(p.Valor)
		default:
			b.ValorPendente = b.ValorPendente.Add(p.Valor)
		}
	}
	return buckets
}

// ConversaoSegmento mede a taxa de aprovação das indicações de um segmento.
type ConversaoSegmento struct {
	Segmento  string  `json:"segmento"`
	Total     int     `json:"total"`
	Aprovadas int     `json:"aprovadas"`
	Taxa      float64 `json:"taxa"`
}

// ConversaoPorSegmento agrupa as indicações por segmento e calcula a taxa de
// aprovação. Segmento sem indicações tem taxa 0, nunca NaN. Ordenado por
// segmento para saída determinística.
func ConversaoPorSegmento(indicacoes []indicacao.Indicacao) []ConversaoSegmento {
	porSegmento := make(map[string]*ConversaoSegmento)
	for _, i := range indicacoes {
		c, ok := porSegmento[i.Segmento]
		if !ok {
			c = &ConversaoSegmento{Segmento: i.Segmento}
			porSegmento[i.Segmento] = c
		}
		c.Total++
		if i.Status == indicacao.StatusAprovado {
			c.Aprovadas++
		}
	}

	lista := make([]ConversaoSegmento, 0, len(porSegmento))
	for _, c := range porSegmento {
		if c.Total > 0 {
			c.Taxa = float64(c.Aprovadas) / float64(c.Total)
		}
		lista = append(lista, *c)
	}
	sort.Slice(lista, func(a, b int) bool { return lista[a].Segmento < lista[b].Segmento })
	return lista
}

// RankingEmbaixadora é uma linha do ranking por volume de indicações.
type RankingEmbaixadora struct {
	EmbaixadoraID uint `json:"embaixadoraId"`
	Total         int  `json:"total"`
	Aprovadas     int  `json:"aprovadas"`
}

// TopEmbaixadoras ranqueia embaixadoras por número de indicações, decrescente.
// Empate é resolvido pelo menor ID, para o ranking não oscilar entre
// recargas do dashboard.
func TopEmbaixadoras(indicacoes []indicacao.Indicacao, limite int) []RankingEmbaixadora {
	porEmbaixadora := make(map[uint]*RankingEmbaixadora)
	for _, i := range indicacoes {
		r, ok := porEmbaixadora[i.EmbaixadoraID]
		if !ok {
			r = &RankingEmbaixadora{EmbaixadoraID: i.EmbaixadoraID}
			porEmbaixadora[i.EmbaixadoraID] = r
		}
		r.Total++
		if i.Status == indicacao.StatusAprovado {
			r.Aprovadas++
		}
	}

	lista := make([]RankingEmbaixadora, 0, len(porEmbaixadora))
	for _, r := range porEmbaixadora {
		lista = append(lista, *r)
	}
	sort.Slice(lista, func(a, b int) bool {
		if lista[a].Total != lista[b].Total {
			return lista[a].Total > lista[b].Total
		}
		return lista[a].EmbaixadoraID < lista[b].EmbaixadoraID
	})

	if limite > 0 && len(lista) > limite {
		lista = lista[:limite]
	}
	return lista
}

// ProximosPagamentos devolve as parcelas pendentes, da mais próxima de
// vencer para a mais distante, truncadas em `limite`. Alimenta o widget
// "próximos pagamentos" do painel da embaixadora.
func ProximosPagamentos(parcelas []parcela.Parcela, limite int) []parcela.Parcela {
	pendentes := make([]parcela.Parcela, 0, len(parcelas))
	for _, p := range parcelas {
		if p.Status == parcela.StatusPendente {
			pendentes = append(pendentes, p)
		}
	}
	sort.Slice(pendentes, func(a, b int) bool {
		if !pendentes[a].DataVencimento.Equal(pendentes[b].DataVencimento) {
			return pendentes[a].DataVencimento.Before(pendentes[b].DataVencimento)
		}
		return pendentes[a].ID < pendentes[b].ID
	})
	if limite > 0 && len(pendentes) > limite {
		pendentes = pendentes[:limite]
	}
	return pendentes
}
