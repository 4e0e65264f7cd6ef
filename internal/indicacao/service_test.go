package indicacao_test

import (
	"testing"
	"time"

	"github.com/beepyjs/api-indicacoes/internal/comissao"
	"github.com/beepyjs/api-indicacoes/internal/erros"
	"github.com/beepyjs/api-indicacoes/internal/indicacao"
	"github.com/beepyjs/api-indicacoes/internal/parcela"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) (*indicacao.Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, indicacao.Migrate(db))
	require.NoError(t, comissao.Migrate(db))
	require.NoError(t, parcela.Migrate(db))

	comissoes := comissao.NewService(db, decimal.NewFromInt(900))
	return indicacao.NewService(db, comissoes), db
}

func novaIndicacao(t *testing.T, svc *indicacao.Service) *indicacao.Indicacao {
	i, err := svc.Criar(indicacao.CriarIndicacaoDTO{
		NomeCliente: "Cliente Teste",
		Email:       "cliente@email.com",
		Telefone:    "(11) 99999-9999",
		Origem:      "website",
		Segmento:    "tecnologia_informacao",
	}, 7)
	require.NoError(t, err)
	return i
}

func TestCriar_StatusInicialAgendado(t *testing.T) {
	svc, _ := newTestService(t)

	i := novaIndicacao(t, svc)
	assert.Equal(t, indicacao.StatusAgendado, i.Status)
	assert.Equal(t, uint(7), i.EmbaixadoraID)
	assert.Equal(t, "website", i.Origem)
}

func TestCriar_CamposObrigatorios(t *testing.T) {
	svc, _ := newTestService(t)

	casos := []indicacao.CriarIndicacaoDTO{
		{Email: "a@b.com", Telefone: "11 99999-9999"},
		{NomeCliente: "Fulana", Telefone: "11 99999-9999"},
		{NomeCliente: "Fulana", Email: "a@b.com"},
		{NomeCliente: "   ", Email: "a@b.com", Telefone: "11 99999-9999"},
	}
	for _, dto := range casos {
		_, err := svc.Criar(dto, 7)
		assert.ErrorIs(t, err, erros.ErrValidacao)
	}
}

func TestCriar_OrigemESegmentoDesconhecidos(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Criar(indicacao.CriarIndicacaoDTO{
		NomeCliente: "Fulana", Email: "a@b.com", Telefone: "11 9", Origem: "tiktok",
	}, 7)
	assert.ErrorIs(t, err, erros.ErrValidacao)

	_, err = svc.Criar(indicacao.CriarIndicacaoDTO{
		NomeCliente: "Fulana", Email: "a@b.com", Telefone: "11 9", Segmento: "astrologia",
	}, 7)
	assert.ErrorIs(t, err, erros.ErrValidacao)
}

func TestAtualizarStatus_AprovarGeraComissao(t *testing.T) {
	// a aprovação é o único gatilho de geração: uma comissão, três parcelas

	svc, db := newTestService(t)
	i := novaIndicacao(t, svc)
	agora := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)

	aprovada, err := svc.AtualizarStatus(i.ID, "aprovado", agora)
	require.NoError(t, err)
	assert.Equal(t, indicacao.StatusAprovado, aprovada.Status)

	c, err := comissao.NewRepository(db).FindByIndicacaoID(i.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(7), c.EmbaixadoraID)
	assert.Len(t, c.Parcelas, 3)
}

func TestAtualizarStatus_ReaprovarNaoDuplica(t *testing.T) {
	// o seletor de status do painel antigo permitia reaprovar à vontade;
	// o motor precisa rejeitar e não criar parcelas novas

	svc, db := newTestService(t)
	i := novaIndicacao(t, svc)
	agora := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)

	_, err := svc.AtualizarStatus(i.ID, "aprovado", agora)
	require.NoError(t, err)

	_, err = svc.AtualizarStatus(i.ID, "aprovado", agora)
	assert.ErrorIs(t, err, erros.ErrTransicaoInvalida)

	var totalComissoes, totalParcelas int64
	require.NoError(t, db.Model(&comissao.Comissao{}).Count(&totalComissoes).Error)
	require.NoError(t, db.Model(&parcela.Parcela{}).Count(&totalParcelas).Error)
	assert.EqualValues(t, 1, totalComissoes)
	assert.EqualValues(t, 3, totalParcelas)
}

func TestAtualizarStatus_RecusarNaoGeraComissao(t *testing.T) {
	svc, db := newTestService(t)
	i := novaIndicacao(t, svc)

	// o painel antigo mandava "não aprovado"; a borda normaliza
	recusada, err := svc.AtualizarStatus(i.ID, "não aprovado", time.Now())
	require.NoError(t, err)
	assert.Equal(t, indicacao.StatusRecusado, recusada.Status)

	var total int64
	require.NoError(t, db.Model(&comissao.Comissao{}).Count(&total).Error)
	assert.EqualValues(t, 0, total)

	// recusado também é terminal
	_, err = svc.AtualizarStatus(i.ID, "aprovado", time.Now())
	assert.ErrorIs(t, err, erros.ErrTransicaoInvalida)
}

func TestAtualizarStatus_Invalidos(t *testing.T) {
	svc, _ := newTestService(t)
	i := novaIndicacao(t, svc)

	_, err := svc.AtualizarStatus(i.ID, "em análise", time.Now())
	assert.ErrorIs(t, err, erros.ErrValidacao)

	_, err = svc.AtualizarStatus(i.ID, "agendado", time.Now())
	assert.ErrorIs(t, err, erros.ErrTransicaoInvalida)

	_, err = svc.AtualizarStatus(9999, "aprovado", time.Now())
	assert.ErrorIs(t, err, erros.ErrNaoEncontrado)
}
