package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/finanzas-app/backend/internal/models"
	"github.com/finanzas-app/backend/internal/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Transactions implements TransactionRepository on gorm.
type Transactions struct {
	db         *gorm.DB
	categories *Categories
}

// NewTransactions returns a TransactionRepository for the database.
func NewTransactions(db *gorm.DB) *Transactions {
	return &Transactions{
		db:         db,
		categories: NewCategories(db),
	}
}

var _ TransactionRepository = (*Transactions)(nil)

func (r *Transactions) Create(ctx context.Context, create models.TransactionCreate) (models.Transaction, error) {
	err := create.Validate()
	if err != nil {
		return models.Transaction{}, err
	}

	transaction := models.Transaction{TransactionCreate: create}
	err = r.applyCategoryType(ctx, &transaction)
	if err != nil {
		return models.Transaction{}, err
	}

	err = r.db.WithContext(ctx).Create(&transaction).Error
	if err != nil {
		return models.Transaction{}, writeError(err)
	}

	return transaction, nil
}

// filter returns the query for all transactions of the user that match
// the filter, without pagination.
func (r *Transactions) filter(ctx context.Context, userID uuid.UUID, filter models.TransactionFilter) (*gorm.DB, error) {
	if !filter.StartDate.IsZero() && !filter.EndDate.IsZero() && filter.StartDate.After(filter.EndDate) {
		return nil, models.ErrDateRangeInvalid
	}

	query := r.db.WithContext(ctx).Model(&models.Transaction{}).Where(&models.Transaction{
		TransactionCreate: models.TransactionCreate{
			UserID:   userID,
			Type:     filter.Type,
			Category: strings.TrimSpace(filter.Category),
		},
	})

	if !filter.StartDate.IsZero() {
		query = query.Where("date >= ?", filter.StartDate)
	}

	if !filter.EndDate.IsZero() {
		query = query.Where("date <= ?", filter.EndDate)
	}

	if filter.Search != "" {
		query = query.Where("LOWER(description) LIKE ?", "%"+strings.ToLower(filter.Search)+"%")
	}

	return query, nil
}

func (r *Transactions) GetAll(ctx context.Context, userID uuid.UUID, filter models.TransactionFilter) ([]models.Transaction, error) {
	query, err := r.filter(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	query = query.Order("date DESC, created_at DESC").Offset(int(filter.Offset))
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	transactions := []models.Transaction{}
	err = query.Find(&transactions).Error
	if err != nil {
		return nil, readError(err)
	}

	return transactions, nil
}

func (r *Transactions) Count(ctx context.Context, userID uuid.UUID, filter models.TransactionFilter) (int64, error) {
	query, err := r.filter(ctx, userID, filter)
	if err != nil {
		return 0, err
	}

	var count int64
	err = query.Count(&count).Error
	if err != nil {
		return 0, readError(err)
	}

	return count, nil
}

func (r *Transactions) GetByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	var transaction models.Transaction
	err := r.db.WithContext(ctx).First(&transaction, id).Error
	if errors.Is(err, models.ErrResourceNotFound) {
		return nil, nil
	} else if err != nil {
		return nil, readError(err)
	}

	return &transaction, nil
}

func (r *Transactions) Update(ctx context.Context, id uuid.UUID, update models.TransactionUpdate) (models.Transaction, error) {
	err := update.Validate()
	if err != nil {
		return models.Transaction{}, err
	}

	var transaction models.Transaction
	err = r.db.WithContext(ctx).First(&transaction, id).Error
	if err != nil {
		return models.Transaction{}, readError(err)
	}

	update.Apply(&transaction)

	if update.Type != nil || update.Category != nil {
		err = r.applyCategoryType(ctx, &transaction)
		if err != nil {
			return models.Transaction{}, err
		}
	}

	err = r.db.WithContext(ctx).Save(&transaction).Error
	if err != nil {
		return models.Transaction{}, writeError(err)
	}

	return transaction, nil
}

func (r *Transactions) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Delete(&models.Transaction{}, id).Error
	return writeError(err)
}

// GetMonthlySummary aggregates all transactions of the user in the month.
func (r *Transactions) GetMonthlySummary(ctx context.Context, userID uuid.UUID, month, year int) (models.MonthlySummary, error) {
	if month < 1 || month > 12 {
		return models.MonthlySummary{}, models.ErrMonthInvalid
	}

	window := types.NewMonth(year, time.Month(month))
	transactions, err := r.GetAll(ctx, userID, models.TransactionFilter{
		StartDate: window.FirstDay(),
		EndDate:   window.LastDay(),
	})
	if err != nil {
		return models.MonthlySummary{}, err
	}

	return models.Summarize(window, transactions), nil
}

// applyCategoryType sets the type of the transaction to the type of its
// category. The category must exist.
func (r *Transactions) applyCategoryType(ctx context.Context, transaction *models.Transaction) error {
	category, err := r.categories.GetByName(ctx, transaction.UserID, transaction.Category)
	if err != nil {
		return err
	}

	if category == nil {
		return models.ErrCategoryUnknown(strings.TrimSpace(transaction.Category))
	}

	transaction.Type = category.Type
	return nil
}
