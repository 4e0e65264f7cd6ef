// internal/indicacao/repository.go
package indicacao

import (
	"gorm.io/gorm"
)

// Repository encapsula o acesso a dados de indicações.
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

// Criar persiste uma nova indicação.
func (r *Repository) Criar(i *Indicacao) error {
	return r.DB.Create(i).Error
}

// FindByID busca uma indicação pelo ID.
func (r *Repository) FindByID(id uint) (*Indicacao, error) {
	var i Indicacao
	if err := r.DB.First(&i, id).Error; err != nil {
		return nil, err
	}
	return &i, nil
}

// ListarTodas devolve todas as indicações, mais recentes primeiro.
func (r *Repository) ListarTodas() ([]Indicacao, error) {
	var lista []Indicacao
	err := r.DB.Order("created_at DESC").Find(&lista).Error
	return lista, err
}

// ListarPorEmbaixadora devolve as indicações de uma embaixadora.
func (r *Repository) ListarPorEmbaixadora(embaixadoraID uint) ([]Indicacao, error) {
	var lista []Indicacao
	err := r.DB.
		Where("embaixadora_id = ?", embaixadoraID).
		Order("created_at DESC").
		Find(&lista).Error
	return lista, err
}

// Atualizar grava todos os campos de uma indicação existente.
func (r *Repository) Atualizar(i *Indicacao) error {
	return r.DB.Save(i).Error
}

// DeletarPorID apaga a indicação; gorm.ErrRecordNotFound se nada foi deletado.
func (r *Repository) DeletarPorID(id uint) error {
	res := r.DB.Delete(&Indicacao{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// AtualizarStatusSeAgendado faz a transição condicional de status: só sai de
// "agendado". Devolve quantas linhas mudaram, para o serviço detectar
// decisões concorrentes.
func (r *Repository) AtualizarStatusSeAgendado(db *gorm.DB, id uint, novoStatus string) (int64, error) {
	if db == nil {
		db = r.DB
	}
	res := db.Model(&Indicacao{}).
		Where("id = ? AND status = ?", id, StatusAgendado).
		Update("status", novoStatus)
	return res.RowsAffected, res.Error
}
