package repository

import (
	"context"
	"strings"

	"quant-board-store/internal/entity"
	"quant-board-store/internal/store/dto"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FinancialStatementRepository persists periodic financial statements.
type FinancialStatementRepository interface {
	Create(ctx context.Context, statement *entity.FinancialStatement) error
	Upsert(ctx context.Context, statement *entity.FinancialStatement) error
	Find(ctx context.Context, param dto.GetFinancialStatementsParam) ([]entity.FinancialStatement, error)
}

type financialStatementRepository struct {
	db *gorm.DB
}

// NewFinancialStatementRepository creates a new GORM-based statement repository.
func NewFinancialStatementRepository(db *gorm.DB) FinancialStatementRepository {
	return &financialStatementRepository{db: db}
}

// Create inserts a statement. A second statement for the same period key
// fails with ErrUniqueViolation.
func (r *financialStatementRepository) Create(ctx context.Context, statement *entity.FinancialStatement) error {
	return translateError(r.db.WithContext(ctx).Create(statement).Error)
}

// Upsert inserts the statement or, on a (stock_id, period_type,
// period_end_date) conflict, replaces the reported values of the existing
// row in place. The stored row is read back into statement.
func (r *financialStatementRepository) Upsert(ctx context.Context, statement *entity.FinancialStatement) error {
	columns := make([]clause.Column, 0, len(entity.FinancialStatementConflictColumns))
	for _, name := range entity.FinancialStatementConflictColumns {
		columns = append(columns, clause.Column{Name: name})
	}

	set := clause.AssignmentColumns(entity.FinancialStatementValueColumns)
	set = append(set, clause.Assignment{
		Column: clause.Column{Name: "updated_at"},
		Value:  gorm.Expr("now()"),
	})

	err := r.db.WithContext(ctx).
		Clauses(
			clause.OnConflict{Columns: columns, DoUpdates: set},
			clause.Returning{},
		).
		Create(statement).Error
	return translateError(err)
}

// Find returns a stock's statements, newest period first.
func (r *financialStatementRepository) Find(ctx context.Context, param dto.GetFinancialStatementsParam) ([]entity.FinancialStatement, error) {
	var statements []entity.FinancialStatement

	qFilter := []string{"stock_id = ?"}
	qFilterParam := []interface{}{param.StockID}

	if param.PeriodType != nil {
		qFilter = append(qFilter, "period_type = ?")
		qFilterParam = append(qFilterParam, string(*param.PeriodType))
	}

	if param.PeriodEndDate != nil {
		qFilter = append(qFilter, "period_end_date = ?")
		qFilterParam = append(qFilterParam, *param.PeriodEndDate)
	}

	err := r.db.WithContext(ctx).
		Where(strings.Join(qFilter, " AND "), qFilterParam...).
		Order("period_end_date DESC").
		Order("period_type").
		Find(&statements).Error
	if err != nil {
		return nil, translateError(err)
	}
	return statements, nil
}
