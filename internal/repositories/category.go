package repositories

import (
	"context"
	"errors"
	"strings"

	"github.com/finanzas-app/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Categories implements CategoryRepository on gorm.
type Categories struct {
	db *gorm.DB
}

// NewCategories returns a CategoryRepository for the database.
func NewCategories(db *gorm.DB) *Categories {
	return &Categories{db: db}
}

var _ CategoryRepository = (*Categories)(nil)

func (r *Categories) Create(ctx context.Context, create models.CategoryCreate) (models.Category, error) {
	err := create.Validate()
	if err != nil {
		return models.Category{}, err
	}

	category := models.Category{CategoryCreate: create}
	err = r.db.WithContext(ctx).Create(&category).Error
	if err != nil {
		return models.Category{}, writeError(err)
	}

	return category, nil
}

func (r *Categories) query(ctx context.Context, userID uuid.UUID, filter models.CategoryFilter) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Category{}).Where(&models.Category{
		CategoryCreate: models.CategoryCreate{
			UserID: userID,
			Type:   filter.Type,
		},
	})
}

func (r *Categories) GetAll(ctx context.Context, userID uuid.UUID, filter models.CategoryFilter) ([]models.Category, error) {
	query := r.query(ctx, userID, filter).Order("name ASC").Offset(int(filter.Offset))
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	categories := []models.Category{}
	err := query.Find(&categories).Error
	if err != nil {
		return nil, readError(err)
	}

	return categories, nil
}

func (r *Categories) Count(ctx context.Context, userID uuid.UUID, filter models.CategoryFilter) (int64, error) {
	var count int64
	err := r.query(ctx, userID, filter).Count(&count).Error
	if err != nil {
		return 0, readError(err)
	}

	return count, nil
}

func (r *Categories) GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).First(&category, id).Error
	if errors.Is(err, models.ErrResourceNotFound) {
		return nil, nil
	} else if err != nil {
		return nil, readError(err)
	}

	return &category, nil
}

// GetByName returns the category of the user with the name. Surrounding
// whitespace in the name is ignored.
func (r *Categories) GetByName(ctx context.Context, userID uuid.UUID, name string) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).Where(&models.Category{
		CategoryCreate: models.CategoryCreate{
			UserID: userID,
			Name:   strings.TrimSpace(name),
		},
	}).First(&category).Error
	if errors.Is(err, models.ErrResourceNotFound) {
		return nil, nil
	} else if err != nil {
		return nil, readError(err)
	}

	return &category, nil
}

// Update changes the category. When the type or the name changes, all
// transactions of the user in the category are set to the category's type.
func (r *Categories) Update(ctx context.Context, id uuid.UUID, update models.CategoryUpdate) (models.Category, error) {
	err := update.Validate()
	if err != nil {
		return models.Category{}, err
	}

	var category models.Category
	err = r.db.WithContext(ctx).First(&category, id).Error
	if err != nil {
		return models.Category{}, readError(err)
	}

	update.Apply(&category)

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Save(&category).Error
		if err != nil {
			return err
		}

		if update.Type == nil && update.Name == nil {
			return nil
		}

		// Transactions always have the type of their category
		return tx.Model(&models.Transaction{}).Where(&models.Transaction{
			TransactionCreate: models.TransactionCreate{
				UserID:   category.UserID,
				Category: category.Name,
			},
		}).UpdateColumn("type", category.Type).Error
	})
	if err != nil {
		return models.Category{}, writeError(err)
	}

	return category, nil
}

// Delete removes the category. Transactions referencing it keep
// the category name.
func (r *Categories) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Delete(&models.Category{}, id).Error
	return writeError(err)
}
