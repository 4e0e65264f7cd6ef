// internal/comissao/service.go
package comissao

import (
	"errors"
	"time"

	"github.com/beepyjs/api-indicacoes/internal/parcela"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// QtdParcelas é a quantidade fixa de parcelas por comissão.
const QtdParcelas = 3

// Service gera comissões e parcelas para indicações aprovadas.
type Service struct {
	DB   *gorm.DB
	Repo *Repository

	// ValorTotal é o valor da comissão por indicação aprovada
	// (VALOR_TOTAL_COMISSAO, padrão 900.00).
	ValorTotal decimal.Decimal
}

func NewService(db *gorm.DB, valorTotal decimal.Decimal) *Service {
	return &Service{DB: db, Repo: NewRepository(db), ValorTotal: valorTotal}
}

// GerarParaIndicacao cria a comissão e as três parcelas mensais de uma
// indicação aprovada, dentro da transação recebida. Idempotente: se a
// comissão já existe, é devolvida sem alterações. O índice único em
// indicacao_id cobre a janela entre a checagem e o insert.
func (s *Service) GerarParaIndicacao(tx *gorm.DB, indicacaoID, embaixadoraID uint, aprovadaEm time.Time) (*Comissao, error) {
	existente, err := s.Repo.WithDB(tx).FindByIndicacaoID(indicacaoID)
	if err == nil {
		return existente, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	c := &Comissao{
		IndicacaoID:   indicacaoID,
		EmbaixadoraID: embaixadoraID,
		Valor:         s.ValorTotal,
		Status:        StatusPendente,
		AprovadaEm:    aprovadaEm,
	}
	if err := tx.Create(c).Error; err != nil {
		return nil, err
	}

	valores := DividirEmParcelas(s.ValorTotal, QtdParcelas)
	parcelas := make([]*parcela.Parcela, 0, QtdParcelas)
	for i, v := range valores {
		parcelas = append(parcelas, &parcela.Parcela{
			ComissaoID:     c.ID,
			Numero:         i + 1,
			Valor:          v,
			DataVencimento: aprovadaEm.AddDate(0, i+1, 0),
			Status:         parcela.StatusPendente,
		})
	}
	if err := parcela.NewRepository(tx).CreateInBatch(parcelas); err != nil {
		return nil, err
	}

	for _, p := range parcelas {
		c.Parcelas = append(c.Parcelas, *p)
	}
	return c, nil
}

// DividirEmParcelas reparte o total em n valores que somam exatamente o
// total: as primeiras parcelas recebem total/n truncado no centavo e a
// última fica com o resto (ex.: 1000.00 -> 333.33, 333.33, 333.34).
func DividirEmParcelas(total decimal.Decimal, n int) []decimal.Decimal {
	base := total.Div(decimal.NewFromInt(int64(n))).Truncate(2)
	valores := make([]decimal.Decimal, n)
	acumulado := decimal.Zero
	for i := 0; i < n-1; i++ {
		valores[i] = base
		acumulado = acumulado.Add(base)
	}
	valores[n-1] = total.Sub(acumulado)
	return valores
}
