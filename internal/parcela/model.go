// internal/parcela/model.go
package parcela

import (
	"fmt"
	"strings"
	"time"

	"github.com/beepyjs/api-indicacoes/internal/erros"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Status possíveis de uma parcela. "atrasado" nunca é atribuído pelo
// usuário; apenas pela varredura de atrasos ou pela reversão de pagamento.
const (
	StatusPendente = "pendente"
	StatusPago     = "pago"
	StatusAtrasado = "atrasado"
)

// Parcela representa uma das três parcelas mensais de uma comissão.
type Parcela struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	ComissaoID     uint            `gorm:"not null;uniqueIndex:idx_parcelas_comissao_numero" json:"comissaoId"`
	Numero         int             `gorm:"not null;uniqueIndex:idx_parcelas_comissao_numero" json:"numero"`
	Valor          decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"valor"`
	DataVencimento time.Time       `gorm:"not null;index" json:"dataVencimento"`
	Status         string          `gorm:"size:50;not null;default:'pendente';index" json:"status"`
	DataPagamento  *time.Time      `json:"dataPagamento"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// apelidos aceitos na borda; o dashboard antigo misturava português e inglês
var apelidosStatus = map[string]string{
	"pendente": StatusPendente,
	"pending":  StatusPendente,
	"pago":     StatusPago,
	"paga":     StatusPago,
	"paid":     StatusPago,
	"atrasado": StatusAtrasado,
	"atrasada": StatusAtrasado,
	"overdue":  StatusAtrasado,
}

// NormalizarStatus converte variantes conhecidas para o valor canônico.
func NormalizarStatus(s string) (string, error) {
	canonico, ok := apelidosStatus[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("status de parcela desconhecido %q: %w", s, erros.ErrValidacao)
	}
	return canonico, nil
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Parcela{})
}
