package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/ericoliveiras/simulador-financiamento/internal/model"
)

// DefaultPageSize é o tamanho de página padrão da listagem do painel.
const DefaultPageSize = 10

const maxPageSize = 100

// ErrNotFound indica que a proposta não existe ou não está assinada.
var ErrNotFound = errors.New("proposta não encontrada")

// PersistenceError indica falha no armazenamento. A operação não é repetida.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("erro de persistência (%s): %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Filter define busca e paginação da listagem de propostas assinadas.
type Filter struct {
	Search   string
	Page     int
	PageSize int
}

// Page é uma página da listagem.
type Page struct {
	Items    []model.Proposal `json:"items"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"pageSize"`
}

// Stats são os indicadores do painel administrativo.
type Stats struct {
	SignedProposals      int64   `json:"signedProposals"`
	TotalFinancedAmount  float64 `json:"totalFinancedAmount"`
	AveragePropertyValue float64 `json:"averagePropertyValue"`
}

// ProposalStore grava e lista propostas. Não há atualização nem exclusão.
type ProposalStore struct {
	DB *gorm.DB
}

func NewProposalStore(db *gorm.DB) *ProposalStore {
	return &ProposalStore{DB: db}
}

// Create grava a proposta e devolve o identificador gerado.
func (s *ProposalStore) Create(ctx context.Context, p *model.Proposal) (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}
	if err := s.DB.WithContext(ctx).Create(p).Error; err != nil {
		return "", &PersistenceError{Op: "create", Err: err}
	}
	return p.ID, nil
}

func (s *ProposalStore) signed(ctx context.Context) *gorm.DB {
	return s.DB.WithContext(ctx).Model(&model.Proposal{}).Where("status = ?", model.StatusSigned)
}

// ListSigned devolve as propostas assinadas, da mais recente para a mais
// antiga.
func (s *ProposalStore) ListSigned(ctx context.Context) ([]model.Proposal, error) {
	proposals := []model.Proposal{}
	if err := s.signed(ctx).Order("created_at desc").Find(&proposals).Error; err != nil {
		return nil, &PersistenceError{Op: "list", Err: err}
	}
	return proposals, nil
}

// SearchSigned filtra as propostas assinadas por nome ou email e pagina o
// resultado, mantendo a ordem da mais recente para a mais antiga.
func (s *ProposalStore) SearchSigned(ctx context.Context, f Filter) (Page, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = DefaultPageSize
	}
	if f.PageSize > maxPageSize {
		f.PageSize = maxPageSize
	}

	q := s.signed(ctx)
	if term := strings.ToLower(strings.TrimSpace(f.Search)); term != "" {
		like := "%" + term + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", like, like)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return Page{}, &PersistenceError{Op: "count", Err: err}
	}

	items := []model.Proposal{}
	err := q.Order("created_at desc").
		Offset((f.Page - 1) * f.PageSize).
		Limit(f.PageSize).
		Find(&items).Error
	if err != nil {
		return Page{}, &PersistenceError{Op: "search", Err: err}
	}

	return Page{Items: items, Total: total, Page: f.Page, PageSize: f.PageSize}, nil
}

// Get busca uma proposta assinada pelo identificador.
func (s *ProposalStore) Get(ctx context.Context, id string) (*model.Proposal, error) {
	var p model.Proposal
	err := s.signed(ctx).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, &PersistenceError{Op: "get", Err: err}
	}
	return &p, nil
}

// Stats calcula os indicadores das propostas assinadas.
func (s *ProposalStore) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	err := s.signed(ctx).
		Select("COUNT(*) AS signed_proposals, " +
			"COALESCE(SUM(financed_amount), 0) AS total_financed_amount, " +
			"COALESCE(AVG(property_value), 0) AS average_property_value").
		Scan(&st).Error
	if err != nil {
		return Stats{}, &PersistenceError{Op: "stats", Err: err}
	}
	return st, nil
}
