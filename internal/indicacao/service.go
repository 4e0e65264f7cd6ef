// internal/indicacao/service.go
package indicacao

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/beepyjs/api-indicacoes/internal/comissao"
	"github.com/beepyjs/api-indicacoes/internal/erros"
	"gorm.io/gorm"
)

// Service cuida do ciclo de vida da indicação. A aprovação e a geração da
// comissão acontecem na mesma transação: ou a indicação fica aprovada com as
// três parcelas criadas, ou nada muda.
type Service struct {
	DB        *gorm.DB
	Repo      *Repository
	Comissoes *comissao.Service
}

func NewService(db *gorm.DB, comissoes *comissao.Service) *Service {
	return &Service{DB: db, Repo: NewRepository(db), Comissoes: comissoes}
}

// Criar valida e persiste uma nova indicação com status "agendado".
func (s *Service) Criar(dto CriarIndicacaoDTO, embaixadoraID uint) (*Indicacao, error) {
	nome := strings.TrimSpace(dto.NomeCliente)
	email := strings.TrimSpace(dto.Email)
	telefone := strings.TrimSpace(dto.Telefone)
	if nome == "" || email == "" || telefone == "" {
		return nil, fmt.Errorf("nome, email e telefone do cliente são obrigatórios: %w", erros.ErrValidacao)
	}

	origem, err := NormalizarOrigem(dto.Origem)
	if err != nil {
		return nil, err
	}
	segmento, err := NormalizarSegmento(dto.Segmento)
	if err != nil {
		return nil, err
	}

	i := &Indicacao{
		NomeCliente:   nome,
		Email:         email,
		Telefone:      telefone,
		Origem:        origem,
		Segmento:      segmento,
		Status:        StatusAgendado,
		EmbaixadoraID: embaixadoraID,
	}
	if segmento == SegmentoOutros {
		i.SegmentoOutro = strings.TrimSpace(dto.SegmentoOutro)
	}

	if err := s.Repo.Criar(i); err != nil {
		return nil, err
	}
	return i, nil
}

// AtualizarStatus decide uma indicação agendada: "aprovado" gera a comissão
// na mesma transação; "recusado" apenas encerra. Indicações já decididas
// rejeitam nova transição com ErrTransicaoInvalida — reaprovar não pode
// duplicar parcelas.
func (s *Service) AtualizarStatus(id uint, novoStatus string, agora time.Time) (*Indicacao, error) {
	canonico, err := NormalizarStatus(novoStatus)
	if err != nil {
		return nil, err
	}
	if canonico == StatusAgendado {
		return nil, fmt.Errorf("indicação não pode voltar para 'agendado': %w", erros.ErrTransicaoInvalida)
	}

	i, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("indicação %d: %w", id, erros.ErrNaoEncontrado)
		}
		return nil, err
	}
	if i.Status != StatusAgendado {
		return nil, fmt.Errorf("indicação %d já está %q: %w", id, i.Status, erros.ErrTransicaoInvalida)
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		alteradas, err := s.Repo.AtualizarStatusSeAgendado(tx, id, canonico)
		if err != nil {
			return err
		}
		if alteradas == 0 {
			// outro admin decidiu primeiro
			return fmt.Errorf("indicação %d já foi decidida: %w", id, erros.ErrTransicaoInvalida)
		}

		if canonico == StatusAprovado {
			if _, err := s.Comissoes.GerarParaIndicacao(tx, i.ID, i.EmbaixadoraID, agora); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	i.Status = canonico
	return i, nil
}
