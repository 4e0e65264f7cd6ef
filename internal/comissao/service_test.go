package comissao_test

import (
	"testing"
	"time"

	"github.com/beepyjs/api-indicacoes/internal/comissao"
	"github.com/beepyjs/api-indicacoes/internal/parcela"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T, valorTotal string) (*comissao.Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, comissao.Migrate(db))
	require.NoError(t, parcela.Migrate(db))

	return comissao.NewService(db, decimal.RequireFromString(valorTotal)), db
}

func TestGerarParaIndicacao_CriaComissaoETresParcelas(t *testing.T) {
	// GIVEN: indicação aprovada em 2025-01-15 com comissão de R$900
	// THEN: três parcelas de R$300 vencendo em 15/02, 15/03 e 15/04, pendentes

	svc, db := newTestService(t, "900")
	aprovadaEm := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)

	c, err := svc.GerarParaIndicacao(db, 1, 7, aprovadaEm)
	require.NoError(t, err)

	assert.Equal(t, uint(1), c.IndicacaoID)
	assert.Equal(t, uint(7), c.EmbaixadoraID)
	assert.Equal(t, comissao.StatusPendente, c.Status)
	assert.True(t, c.Valor.Equal(decimal.RequireFromString("900")))
	require.Len(t, c.Parcelas, 3)

	for n, p := range c.Parcelas {
		assert.Equal(t, n+1, p.Numero)
		assert.True(t, p.Valor.Equal(decimal.RequireFromString("300")),
			"parcela %d: valor %s", p.Numero, p.Valor)
		assert.Equal(t, parcela.StatusPendente, p.Status)
		assert.Nil(t, p.DataPagamento)
		assert.Equal(t, aprovadaEm.AddDate(0, n+1, 0), p.DataVencimento.UTC(),
			"parcela %d deve vencer %d mês(es) após a aprovação", p.Numero, p.Numero)
	}
}

func TestGerarParaIndicacao_Idempotente(t *testing.T) {
	// GIVEN: comissão já gerada para a indicação
	// WHEN: gerar de novo (retry de rede, clique duplo)
	// THEN: mesma comissão, sem parcelas duplicadas

	svc, db := newTestService(t, "900")
	aprovadaEm := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)

	primeira, err := svc.GerarParaIndicacao(db, 1, 7, aprovadaEm)
	require.NoError(t, err)

	segunda, err := svc.GerarParaIndicacao(db, 1, 7, aprovadaEm)
	require.NoError(t, err)
	assert.Equal(t, primeira.ID, segunda.ID)

	var totalComissoes, totalParcelas int64
	require.NoError(t, db.Model(&comissao.Comissao{}).Count(&totalComissoes).Error)
	require.NoError(t, db.Model(&parcela.Parcela{}).Count(&totalParcelas).Error)
	assert.EqualValues(t, 1, totalComissoes)
	assert.EqualValues(t, 3, totalParcelas)
}

func TestGerarParaIndicacao_ValorNaoDivisivel(t *testing.T) {
	// valor que não divide por 3: o resto fica na última parcela

	svc, db := newTestService(t, "1000")
	aprovadaEm := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

	c, err := svc.GerarParaIndicacao(db, 2, 7, aprovadaEm)
	require.NoError(t, err)
	require.Len(t, c.Parcelas, 3)

	assert.True(t, c.Parcelas[0].Valor.Equal(decimal.RequireFromString("333.33")))
	assert.True(t, c.Parcelas[1].Valor.Equal(decimal.RequireFromString("333.33")))
	assert.True(t, c.Parcelas[2].Valor.Equal(decimal.RequireFromString("333.34")))
}

func TestDividirEmParcelas_ConservaTotal(t *testing.T) {
	casos := []string{"900", "1000", "0.01", "100.01", "757.99"}
	for _, total := range casos {
		valor := decimal.RequireFromString(total)
		partes := comissao.DividirEmParcelas(valor, 3)
		require.Len(t, partes, 3)

		soma := decimal.Zero
		for _, p := range partes {
			soma = soma.Add(p)
		}
		assert.True(t, soma.Equal(valor), "total %s: soma das parcelas %s", total, soma)
	}
}

func TestNormalizarStatus_ApelidosEDesconhecidos(t *testing.T) {
	s, err := comissao.NormalizarStatus("Cancelada")
	require.NoError(t, err)
	assert.Equal(t, comissao.StatusCancelado, s)

	s, err = comissao.NormalizarStatus("paid")
	require.NoError(t, err)
	assert.Equal(t, comissao.StatusPago, s)

	_, err = comissao.NormalizarStatus("em aberto")
	assert.Error(t, err)
}
