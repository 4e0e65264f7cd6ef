// internal/comissao/model.go
package comissao

import (
	"fmt"
	"strings"
	"time"

	"github.com/beepyjs/api-indicacoes/internal/erros"
	"github.com/beepyjs/api-indicacoes/internal/parcela"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Status da comissão. "pago" é derivado das parcelas (nunca atribuído à mão);
// "cancelado" é um override manual do admin que congela a comissão.
const (
	StatusPendente  = "pendente"
	StatusPago      = "pago"
	StatusCancelado = "cancelado"
)

// Comissao representa o total devido a uma embaixadora por uma indicação
// aprovada, dividido em três parcelas mensais. O índice único em IndicacaoID
// garante a relação 1:1 mesmo sob aprovações concorrentes.
type Comissao struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	IndicacaoID   uint            `gorm:"not null;uniqueIndex" json:"indicacaoId"`
	EmbaixadoraID uint            `gorm:"not null;index" json:"embaixadoraId"`
	Valor         decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"valor"`
	Status        string          `gorm:"size:50;not null;default:'pendente';index" json:"status"`
	AprovadaEm    time.Time       `gorm:"not null" json:"aprovadaEm"`

	Parcelas []parcela.Parcela `gorm:"foreignKey:ComissaoID;constraint:OnDelete:CASCADE" json:"parcelas,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

var apelidosStatus = map[string]string{
	"pendente":  StatusPendente,
	"pending":   StatusPendente,
	"pago":      StatusPago,
	"paga":      StatusPago,
	"paid":      StatusPago,
	"cancelado": StatusCancelado,
	"cancelada": StatusCancelado,
	"cancelled": StatusCancelado,
	"canceled":  StatusCancelado,
}

// NormalizarStatus converte variantes conhecidas para o valor canônico.
func NormalizarStatus(s string) (string, error) {
	canonico, ok := apelidosStatus[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("status de comissão desconhecido %q: %w", s, erros.ErrValidacao)
	}
	return canonico, nil
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Comissao{})
}
