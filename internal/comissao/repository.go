// internal/comissao/repository.go
package comissao

import (
	"gorm.io/gorm"
)

// Repository encapsula o acesso a dados de comissões.
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

// FindByID busca uma comissão pelo ID, com as parcelas.
func (r *Repository) FindByID(id uint) (*Comissao, error) {
	var c Comissao
	if err := r.DB.Preload("Parcelas").First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// FindByIndicacaoID busca a comissão de uma indicação (relação 1:1).
func (r *Repository) FindByIndicacaoID(indicacaoID uint) (*Comissao, error) {
	var c Comissao
	if err := r.DB.Preload("Parcelas").
		Where("indicacao_id = ?", indicacaoID).
		First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// ListarTodas devolve todas as comissões com parcelas, mais recentes primeiro.
func (r *Repository) ListarTodas() ([]Comissao, error) {
	var lista []Comissao
	err := r.DB.Preload("Parcelas").
		Order("created_at DESC").
		Find(&lista).Error
	return lista, err
}

// ListarPorEmbaixadora devolve as comissões de uma embaixadora.
func (r *Repository) ListarPorEmbaixadora(embaixadoraID uint) ([]Comissao, error) {
	var lista []Comissao
	err := r.DB.Preload("Parcelas").
		Where("embaixadora_id = ?", embaixadoraID).
		Order("created_at DESC").
		Find(&lista).Error
	return lista, err
}

// AtualizarStatus grava o status diretamente (usado no override de admin).
func (r *Repository) AtualizarStatus(id uint, status string) error {
	res := r.DB.Model(&Comissao{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
