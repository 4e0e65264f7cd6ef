// internal/parcela/service.go
package parcela

import (
	"errors"
	"fmt"
	"time"

	"github.com/beepyjs/api-indicacoes/internal/erros"
	"gorm.io/gorm"
)

// Service concentra a máquina de estados das parcelas. Todas as mudanças de
// status são updates condicionais (status atual na cláusula WHERE) para que
// dois admins mexendo na mesma parcela não se atropelem.
type Service struct {
	DB   *gorm.DB
	Repo *Repository
}

func NewService(db *gorm.DB) *Service {
	return &Service{DB: db, Repo: NewRepository(db)}
}

// MarcarPaga transita pendente/atrasado -> pago e registra a data de pagamento.
// Pagar uma parcela já atrasada é permitido.
func (s *Service) MarcarPaga(id uint, agora time.Time) (*Parcela, error) {
	var resultado *Parcela
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		p, err := s.Repo.WithDB(tx).FindByID(id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("parcela %d: %w", id, erros.ErrNaoEncontrado)
			}
			return err
		}

		if err := s.garantirComissaoAtiva(tx, p.ComissaoID); err != nil {
			return err
		}

		res := tx.Model(&Parcela{}).
			Where("id = ? AND status IN ?", id, []string{StatusPendente, StatusAtrasado}).
			Updates(map[string]interface{}{
				"status":         StatusPago,
				"data_pagamento": &agora,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("parcela %d já está paga: %w", id, erros.ErrTransicaoInvalida)
		}

		if err := RecalcularStatusComissao(tx, p.ComissaoID); err != nil {
			return err
		}

		resultado, err = s.Repo.WithDB(tx).FindByID(id)
		return err
	})
	return resultado, err
}

// ReverterPagamento transita pago -> pendente ou, quando o vencimento já
// passou, direto para atrasado. Zera a data de pagamento e desfaz o
// status "pago" da comissão, se for o caso.
func (s *Service) ReverterPagamento(id uint, agora time.Time) (*Parcela, error) {
	var resultado *Parcela
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		p, err := s.Repo.WithDB(tx).FindByID(id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("parcela %d: %w", id, erros.ErrNaoEncontrado)
			}
			return err
		}

		if err := s.garantirComissaoAtiva(tx, p.ComissaoID); err != nil {
			return err
		}

		novoStatus := StatusPendente
		if p.DataVencimento.Before(agora) {
			novoStatus = StatusAtrasado
		}

		res := tx.Model(&Parcela{}).
			Where("id = ? AND status = ?", id, StatusPago).
			Updates(map[string]interface{}{
				"status":         novoStatus,
				"data_pagamento": nil,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("parcela %d não está paga: %w", id, erros.ErrTransicaoInvalida)
		}

		if err := RecalcularStatusComissao(tx, p.ComissaoID); err != nil {
			return err
		}

		resultado, err = s.Repo.WithDB(tx).FindByID(id)
		return err
	})
	return resultado, err
}

// VerificarAtrasos transita pendente -> atrasado para todas as parcelas com
// vencimento anterior a `agora`. Update em conjunto, idempotente; seguro para
// dois admins dispararem ao mesmo tempo. Parcelas de comissões canceladas e
// parcelas pagas não são tocadas. Devolve quantas parcelas mudaram.
func (s *Service) VerificarAtrasos(agora time.Time) (int64, error) {
	canceladas := s.DB.Table("comissaos").Select("id").Where("status = ?", "cancelado")

	res := s.DB.Model(&Parcela{}).
		Where("status = ? AND data_vencimento < ?", StatusPendente, agora).
		Where("comissao_id NOT IN (?)", canceladas).
		Update("status", StatusAtrasado)
	return res.RowsAffected, res.Error
}

// garantirComissaoAtiva bloqueia mutações de parcela quando a comissão dona
// foi cancelada pelo admin.
func (s *Service) garantirComissaoAtiva(tx *gorm.DB, comissaoID uint) error {
	var status string
	if err := tx.Table("comissaos").
		Select("status").
		Where("id = ?", comissaoID).
		Scan(&status).Error; err != nil {
		return err
	}
	if status == "cancelado" {
		return fmt.Errorf("comissão %d está cancelada: %w", comissaoID, erros.ErrTransicaoInvalida)
	}
	return nil
}

// RecalcularStatusComissao espelha o status da comissão a partir das parcelas:
// "pago" quando todas estão pagas, "pendente" caso contrário. Comissões
// canceladas ficam congeladas até o admin reativá-las.
// Usa o nome da tabela direto para não importar o pacote comissao (que já
// importa este pacote).
func RecalcularStatusComissao(db *gorm.DB, comissaoID uint) error {
	var total, pagas int64
	if err := db.Model(&Parcela{}).
		Where("comissao_id = ?", comissaoID).
		Count(&total).Error; err != nil {
		return err
	}
	if err := db.Model(&Parcela{}).
		Where("comissao_id = ? AND status = ?", comissaoID, StatusPago).
		Count(&pagas).Error; err != nil {
		return err
	}

	novo := "pendente"
	if total > 0 && pagas == total {
		novo = "pago"
	}

	return db.Table("comissaos").
		Where("id = ? AND status <> ?", comissaoID, "cancelado").
		Update("status", novo).Error
}
