package usuario

import (
	"gorm.io/gorm"
)

type Repository interface {
	BuscarPorEmail(db *gorm.DB, email string) (*Usuario, error)
	BuscarPorID(db *gorm.DB, id uint) (*Usuario, error)
	Salvar(db *gorm.DB, u *Usuario) error
	ListarTodos(db *gorm.DB) ([]Usuario, error)
	ContarTodos(db *gorm.DB) (int64, error)
	ContarPorPerfil(db *gorm.DB, perfil string) (int64, error)
	ExisteAdmin(db *gorm.DB) (bool, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) BuscarPorEmail(db *gorm.DB, email string) (*Usuario, error) {
	var u Usuario
	if err := db.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Usuario, error) {
	var u Usuario
	if err := db.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repositoryImpl) Salvar(db *gorm.DB, u *Usuario) error {
	return db.Save(u).Error
}

func (r *repositoryImpl) ListarTodos(db *gorm.DB) ([]Usuario, error) {
	var lista []Usuario
	err := db.Order("nome ASC").Find(&lista).Error
	return lista, err
}

func (r *repositoryImpl) ContarTodos(db *gorm.DB) (int64, error) {
	var total int64
	err := db.Model(&Usuario{}).Count(&total).Error
	return total, err
}

func (r *repositoryImpl) ContarPorPerfil(db *gorm.DB, perfil string) (int64, error) {
	var total int64
	err := db.Model(&Usuario{}).Where("perfil = ?", perfil).Count(&total).Error
	return total, err
}

func (r *repositoryImpl) ExisteAdmin(db *gorm.DB) (bool, error) {
	total, err := r.ContarPorPerfil(db, PerfilAdmin)
	return total > 0, err
}
