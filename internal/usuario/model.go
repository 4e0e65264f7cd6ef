package usuario

import (
	"gorm.io/gorm"
)

const (
	PerfilAdmin       = "admin"
	PerfilEmbaixadora = "embaixadora"
)

// Usuario representa um usuário do sistema: administrador ou embaixadora.
type Usuario struct {
	gorm.Model
	Nome     string `json:"nome"`
	Email    string `json:"email" gorm:"unique"`
	Telefone string `json:"telefone"`
	Senha    string `json:"-"`
	Perfil   string `json:"perfil" gorm:"size:50;not null;default:'embaixadora';index"`
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Usuario{})
}
