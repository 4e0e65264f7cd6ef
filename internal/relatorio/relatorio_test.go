package relatorio_test

import (
	"testing"
	"time"

	"github.com/beepyjs/api-indicacoes/internal/indicacao"
	"github.com/beepyjs/api-indicacoes/internal/parcela"
	"github.com/beepyjs/api-indicacoes/internal/relatorio"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func p(id uint, status string, valor string, vencimento time.Time) parcela.Parcela {
	return parcela.Parcela{
		ID:             id,
		Status:         status,
		Valor:          decimal.RequireFromString(valor),
		DataVencimento: vencimento,
	}
}

func TestCalcularResumo_Identidade(t *testing.T) {
	// valorTotal == pago + pendente + atrasado, sempre

	fev := time.Date(2025, time.February, 15, 0, 0, 0, 0, time.UTC)
	parcelas := []parcela.Parcela{
		p(1, parcela.StatusPago, "300", fev),
		p(2, parcela.StatusPendente, "300", fev.AddDate(0, 1, 0)),
		p(3, parcela.StatusAtrasado, "300", fev.AddDate(0, 2, 0)),
		p(4, parcela.StatusPendente, "333.34", fev),
	}

	r := relatorio.CalcularResumo(parcelas)
	assert.Equal(t, 4, r.TotalParcelas)
	assert.Equal(t, 1, r.ParcelasPagas)
	assert.Equal(t, 2, r.ParcelasPendentes)
	assert.Equal(t, 1, r.ParcelasAtrasadas)

	assert.True(t, r.ValorTotal.Equal(decimal.RequireFromString("1233.34")))
	soma := r.ValorPago.Add(r.ValorPendente).Add(r.ValorAtrasado)
	assert.True(t, soma.Equal(r.ValorTotal), "soma das partições %s != total %s", soma, r.ValorTotal)
}

func TestCalcularResumo_Vazio(t *testing.T) {
	r := relatorio.CalcularResumo(nil)
	assert.Equal(t, 0, r.TotalParcelas)
	assert.True(t, r.ValorTotal.IsZero())
}

func TestBucketsMensais_EixoContinuo(t *testing.T) {
	// meses sem movimento entram zerados; o gráfico não pode pular meses

	referencia := time.Date(2025, time.June, 20, 0, 0, 0, 0, time.UTC)
	parcelas := []parcela.Parcela{
		p(1, parcela.StatusPago, "300", time.Date(2025, time.February, 15, 0, 0, 0, 0, time.UTC)),
		p(2, parcela.StatusAtrasado, "300", time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)),
		p(3, parcela.StatusPendente, "300", time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)),
		// fora da janela de 6 meses: ignorada
		p(4, parcela.StatusPago, "300", time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)),
	}

	buckets := relatorio.BucketsMensais(parcelas, 6, referencia)
	require.Len(t, buckets, 6)

	assert.Equal(t, "2025-01", buckets[0].Mes)
	assert.Equal(t, "2025-06", buckets[5].Mes)

	assert.True(t, buckets[0].ValorPago.IsZero())
	assert.True(t, buckets[1].ValorPago.Equal(decimal.NewFromInt(300)))
	assert.True(t, buckets[2].ValorAtrasado.Equal(decimal.NewFromInt(300)))
	assert.True(t, buckets[5].ValorPendente.Equal(decimal.NewFromInt(300)))
}

func ind(embaixadora uint, segmento, status string) indicacao.Indicacao {
	return indicacao.Indicacao{EmbaixadoraID: embaixadora, Segmento: segmento, Status: status}
}

func TestConversaoPorSegmento(t *testing.T) {
	indicacoes := []indicacao.Indicacao{
		ind(1, "saude", indicacao.StatusAprovado),
		ind(1, "saude", indicacao.StatusRecusado),
		ind(2, "saude", indicacao.StatusAprovado),
		ind(2, "juridico", indicacao.StatusAgendado),
	}

	conversao := relatorio.ConversaoPorSegmento(indicacoes)
	require.Len(t, conversao, 2)

	// ordenado por segmento
	assert.Equal(t, "juridico", conversao[0].Segmento)
	assert.Equal(t, 1, conversao[0].Total)
	assert.Equal(t, 0, conversao[0].Aprovadas)
	assert.Equal(t, 0.0, conversao[0].Taxa)

	assert.Equal(t, "saude", conversao[1].Segmento)
	assert.Equal(t, 3, conversao[1].Total)
	assert.Equal(t, 2, conversao[1].Aprovadas)
	assert.InDelta(t, 2.0/3.0, conversao[1].Taxa, 1e-9)
}

func TestTopEmbaixadoras_DesempatePorID(t *testing.T) {
	indicacoes := []indicacao.Indicacao{
		ind(3, "saude", indicacao.StatusAprovado),
		ind(3, "saude", indicacao.StatusAgendado),
		ind(1, "saude", indicacao.StatusAprovado),
		ind(1, "juridico", indicacao.StatusRecusado),
		ind(2, "saude", indicacao.StatusAprovado),
	}

	top := relatorio.TopEmbaixadoras(indicacoes, 2)
	require.Len(t, top, 2)

	// 1 e 3 empatam com duas indicações; o menor ID vem primeiro
	assert.Equal(t, uint(1), top[0].EmbaixadoraID)
	assert.Equal(t, 2, top[0].Total)
	assert.Equal(t, uint(3), top[1].EmbaixadoraID)
}

func TestProximosPagamentos_OrdenaETrunca(t *testing.T) {
	fev := time.Date(2025, time.February, 15, 0, 0, 0, 0, time.UTC)
	parcelas := []parcela.Parcela{
		p(1, parcela.StatusPendente, "300", fev.AddDate(0, 2, 0)),
		p(2, parcela.StatusPago, "300", fev),
		p(3, parcela.StatusPendente, "300", fev),
		p(4, parcela.StatusAtrasado, "300", fev.AddDate(0, -1, 0)),
		p(5, parcela.StatusPendente, "300", fev.AddDate(0, 1, 0)),
	}

	proximos := relatorio.ProximosPagamentos(parcelas, 2)
	require.Len(t, proximos, 2)
	assert.Equal(t, uint(3), proximos[0].ID)
	assert.Equal(t, uint(5), proximos[1].ID)
}
