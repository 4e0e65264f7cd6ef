// internal/parcela/repository.go
package parcela

import (
	"time"

	"gorm.io/gorm"
)

// Filtro agrupa os critérios aceitos em GET /parcelas.
// Mes exige Ano; Ano sozinho filtra o ano inteiro.
type Filtro struct {
	Status        string
	EmbaixadoraID uint
	Mes           int
	Ano           int
}

// Repository encapsula o acesso a dados de parcelas.
type Repository struct {
	DB *gorm.DB
}

// NewRepository instancia um novo repositório.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// WithDB retorna uma cópia do repo usando um *gorm.DB específico (ex.: tx).
func (r *Repository) WithDB(db *gorm.DB) *Repository {
	if db == nil {
		db = r.DB
	}
	return &Repository{DB: db}
}

// CreateInBatch cria múltiplas parcelas de uma vez (ignora se vazio).
func (r *Repository) CreateInBatch(parcelas []*Parcela) error {
	if len(parcelas) == 0 {
		return nil
	}
	return r.DB.Create(parcelas).Error
}

// FindByID busca uma única parcela pelo seu ID.
func (r *Repository) FindByID(id uint) (*Parcela, error) {
	var p Parcela
	if err := r.DB.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// ListByComissaoID busca todas as parcelas de uma comissão específica.
func (r *Repository) ListByComissaoID(comissaoID uint) ([]Parcela, error) {
	var parcelas []Parcela
	err := r.DB.
		Where("comissao_id = ?", comissaoID).
		Order("numero ASC").
		Find(&parcelas).Error
	return parcelas, err
}

// Listar aplica os filtros e devolve as parcelas ordenadas por vencimento.
// O filtro de mês/ano vira um intervalo [início, fim) calculado em Go para
// manter o SQL portável entre Postgres e o driver de testes.
func (r *Repository) Listar(f Filtro) ([]Parcela, error) {
	q := r.DB.Model(&Parcela{})

	if f.Status != "" {
		q = q.Where("parcelas.status = ?", f.Status)
	}
	if f.EmbaixadoraID != 0 {
		q = q.
			Joins("JOIN comissaos ON comissaos.id = parcelas.comissao_id").
			Where("comissaos.embaixadora_id = ?", f.EmbaixadoraID)
	}
	if f.Ano != 0 {
		inicio, fim := intervaloVencimento(f.Ano, f.Mes)
		q = q.Where("parcelas.data_vencimento >= ? AND parcelas.data_vencimento < ?", inicio, fim)
	}

	var parcelas []Parcela
	err := q.Order("parcelas.data_vencimento ASC").Find(&parcelas).Error
	return parcelas, err
}

func intervaloVencimento(ano, mes int) (time.Time, time.Time) {
	if mes >= 1 && mes <= 12 {
		inicio := time.Date(ano, time.Month(mes), 1, 0, 0, 0, 0, time.UTC)
		return inicio, inicio.AddDate(0, 1, 0)
	}
	inicio := time.Date(ano, time.January, 1, 0, 0, 0, 0, time.UTC)
	return inicio, inicio.AddDate(1, 0, 0)
}
