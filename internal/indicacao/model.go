// internal/indicacao/model.go
package indicacao

import (
	"time"

	"gorm.io/gorm"
)

// Status do ciclo de vida de uma indicação. "aprovado" e "recusado" são
// terminais; a aprovação é o único gatilho de geração de comissão.
const (
	StatusAgendado = "agendado"
	StatusAprovado = "aprovado"
	StatusRecusado = "recusado"
)

// Indicacao representa um cliente indicado por uma embaixadora para
// aprovação do admin.
type Indicacao struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	NomeCliente   string    `gorm:"size:255;not null" json:"nomeCliente"`
	Email         string    `gorm:"size:255;not null" json:"email"`
	Telefone      string    `gorm:"size:50;not null" json:"telefone"`
	Origem        string    `gorm:"size:50;not null;default:'website'" json:"origem"`
	Segmento      string    `gorm:"size:100;not null;default:'outros'" json:"segmento"`
	SegmentoOutro string    `gorm:"size:255" json:"segmentoOutro,omitempty"`
	Status        string    `gorm:"size:50;not null;default:'agendado';index" json:"status"`
	EmbaixadoraID uint      `gorm:"not null;index" json:"embaixadoraId"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Indicacao{})
}
