package repositories_test

import (
	"context"
	"time"

	"github.com/finanzas-app/backend/internal/models"
	"github.com/finanzas-app/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestCategoryCreateDefaults() {
	category := suite.createTestCategory(models.CategoryCreate{Name: "Transporte"})

	suite.Assert().Equal(models.DefaultCategoryIcon, category.Icon)
	suite.Assert().Equal(models.DefaultCategoryColor, category.Color)

	stored, err := suite.categories.GetByID(context.Background(), category.ID)
	suite.Require().Nil(err)
	suite.Require().NotNil(stored)
	suite.Assert().Equal("Transporte", stored.Name)
	suite.Assert().Equal(models.TransactionTypeExpense, stored.Type)
}

func (suite *TestSuiteStandard) TestCategoryCreateDuplicate() {
	suite.createTestCategory(models.CategoryCreate{Name: "Comida"})

	_, err := suite.categories.Create(context.Background(), models.CategoryCreate{
		UserID: suite.userID,
		Name:   "Comida",
		Type:   models.TransactionTypeExpense,
	})
	suite.Assert().ErrorIs(err, models.ErrCategoryNameNotUnique)
}

func (suite *TestSuiteStandard) TestCategoryGetAll() {
	suite.createTestCategory(models.CategoryCreate{Name: "Transporte"})
	suite.createTestCategory(models.CategoryCreate{Name: "Comida"})
	suite.createTestCategory(models.CategoryCreate{Name: "Sueldo", Type: models.TransactionTypeIncome})
	suite.createTestCategory(models.CategoryCreate{UserID: uuid.New(), Name: "Arriendo"})

	categories, err := suite.categories.GetAll(context.Background(), suite.userID, models.CategoryFilter{})
	suite.Require().Nil(err)
	suite.Require().Len(categories, 3)
	suite.Assert().Equal("Comida", categories[0].Name)
	suite.Assert().Equal("Sueldo", categories[1].Name)
	suite.Assert().Equal("Transporte", categories[2].Name)

	expenses, err := suite.categories.GetAll(context.Background(), suite.userID, models.CategoryFilter{Type: models.TransactionTypeExpense})
	suite.Require().Nil(err)
	suite.Assert().Len(expenses, 2)

	page, err := suite.categories.GetAll(context.Background(), suite.userID, models.CategoryFilter{Offset: 1, Limit: 1})
	suite.Require().Nil(err)
	suite.Require().Len(page, 1)
	suite.Assert().Equal("Sueldo", page[0].Name)

	count, err := suite.categories.Count(context.Background(), suite.userID, models.CategoryFilter{Limit: 1})
	suite.Require().Nil(err)
	suite.Assert().Equal(int64(3), count)
}

func (suite *TestSuiteStandard) TestCategoryGetByName() {
	created := suite.createTestCategory(models.CategoryCreate{Name: "Comida"})

	category, err := suite.categories.GetByName(context.Background(), suite.userID, " Comida ")
	suite.Require().Nil(err)
	suite.Require().NotNil(category)
	suite.Assert().Equal(created.ID, category.ID)

	category, err = suite.categories.GetByName(context.Background(), uuid.New(), "Comida")
	suite.Assert().Nil(err)
	suite.Assert().Nil(category)
}

func (suite *TestSuiteStandard) TestCategoryUpdate() {
	category := suite.createTestCategory(models.CategoryCreate{Name: "Comida", Icon: "🍕", Color: "warning"})

	name := "Supermercado"
	updated, err := suite.categories.Update(context.Background(), category.ID, models.CategoryUpdate{Name: &name})
	suite.Require().Nil(err)

	suite.Assert().Equal("Supermercado", updated.Name)
	suite.Assert().Equal("🍕", updated.Icon)
	suite.Assert().Equal("warning", updated.Color)
	suite.Assert().Equal(models.TransactionTypeExpense, updated.Type)
}

func (suite *TestSuiteStandard) TestCategoryUpdateMissing() {
	name := "Supermercado"
	_, err := suite.categories.Update(context.Background(), uuid.New(), models.CategoryUpdate{Name: &name})
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestCategoryUpdateDuplicate() {
	suite.createTestCategory(models.CategoryCreate{Name: "Comida"})
	category := suite.createTestCategory(models.CategoryCreate{Name: "Transporte"})

	name := "Comida"
	_, err := suite.categories.Update(context.Background(), category.ID, models.CategoryUpdate{Name: &name})
	suite.Assert().ErrorIs(err, models.ErrCategoryNameNotUnique)
}

func (suite *TestSuiteStandard) TestCategoryUpdateTypeChangesTransactions() {
	category := suite.createTestCategory(models.CategoryCreate{Name: "Freelance"})
	transaction := suite.createTestTransaction(models.TransactionCreate{
		Type:     models.TransactionTypeExpense,
		Amount:   decimal.NewFromInt(250),
		Category: "Freelance",
		Date:     types.NewDate(2024, time.May, 5),
	})

	// Transactions of other users are not touched
	other := suite.createTestCategory(models.CategoryCreate{UserID: uuid.New(), Name: "Freelance"})
	otherTransaction := suite.createTestTransaction(models.TransactionCreate{
		UserID:   other.UserID,
		Type:     models.TransactionTypeExpense,
		Amount:   decimal.NewFromInt(10),
		Category: "Freelance",
		Date:     types.NewDate(2024, time.May, 5),
	})

	income := models.TransactionTypeIncome
	updated, err := suite.categories.Update(context.Background(), category.ID, models.CategoryUpdate{Type: &income})
	suite.Require().Nil(err)
	suite.Assert().Equal(models.TransactionTypeIncome, updated.Type)

	stored, err := suite.transactions.GetByID(context.Background(), transaction.ID)
	suite.Require().Nil(err)
	suite.Require().NotNil(stored)
	suite.Assert().Equal(models.TransactionTypeIncome, stored.Type)

	summary, err := suite.transactions.GetMonthlySummary(context.Background(), suite.userID, 5, 2024)
	suite.Require().Nil(err)
	suite.Assert().True(decimal.NewFromInt(250).Equal(summary.TotalIncome), summary.TotalIncome.String())
	suite.Assert().True(summary.TotalExpenses.IsZero(), summary.TotalExpenses.String())
	suite.Assert().True(decimal.NewFromInt(250).Equal(summary.Balance), summary.Balance.String())

	storedOther, err := suite.transactions.GetByID(context.Background(), otherTransaction.ID)
	suite.Require().Nil(err)
	suite.Require().NotNil(storedOther)
	suite.Assert().Equal(models.TransactionTypeExpense, storedOther.Type)
}

func (suite *TestSuiteStandard) TestCategoryRenameAdoptsTransactions() {
	// The transaction keeps the name of a deleted category
	deleted := suite.createTestCategory(models.CategoryCreate{Name: "Bonos", Type: models.TransactionTypeIncome})
	transaction := suite.createTestTransaction(models.TransactionCreate{
		Type:     models.TransactionTypeIncome,
		Amount:   decimal.NewFromInt(80),
		Category: "Bonos",
		Date:     types.NewDate(2024, time.May, 5),
	})
	suite.Require().Nil(suite.categories.Delete(context.Background(), deleted.ID))

	category := suite.createTestCategory(models.CategoryCreate{Name: "Regalos"})

	name := "Bonos"
	_, err := suite.categories.Update(context.Background(), category.ID, models.CategoryUpdate{Name: &name})
	suite.Require().Nil(err)

	stored, err := suite.transactions.GetByID(context.Background(), transaction.ID)
	suite.Require().Nil(err)
	suite.Require().NotNil(stored)
	suite.Assert().Equal(models.TransactionTypeExpense, stored.Type)
}

func (suite *TestSuiteStandard) TestCategoryDeleteKeepsTransactions() {
	category := suite.createTestCategory(models.CategoryCreate{Name: "Comida"})
	transaction := suite.createTestTransaction(models.TransactionCreate{
		Type:     models.TransactionTypeExpense,
		Amount:   decimal.NewFromInt(12),
		Category: "Comida",
		Date:     types.NewDate(2024, time.May, 5),
	})

	suite.Require().Nil(suite.categories.Delete(context.Background(), category.ID))

	deleted, err := suite.categories.GetByID(context.Background(), category.ID)
	suite.Assert().Nil(err)
	suite.Assert().Nil(deleted)

	stored, err := suite.transactions.GetByID(context.Background(), transaction.ID)
	suite.Require().Nil(err)
	suite.Require().NotNil(stored)
	suite.Assert().Equal("Comida", stored.Category)

	// Deleting again succeeds
	suite.Assert().Nil(suite.categories.Delete(context.Background(), category.ID))
}
