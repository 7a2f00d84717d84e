package api_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wanderplan/server/internal/api/testutils"
	"github.com/wanderplan/server/internal/models"
)

// addExpense submits an expense and returns the created record.
func addExpense(t *testing.T, testCtx *testutils.TestContext, tripID string, req models.ExpenseRequest) *models.Expense {
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		fmt.Sprintf("/api/trips/%s/budget/expenses", tripID),
		req,
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)
	assert.Equal(t, http.StatusCreated, w.Code)

	var response models.ExpenseResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.NotNil(t, response.Expense)
	return response.Expense
}

// getBudget fetches the combined budget payload.
func getBudget(t *testing.T, testCtx *testutils.TestContext, tripID string) models.BudgetResponse {
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		fmt.Sprintf("/api/trips/%s/budget", tripID),
		nil,
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)
	assert.Equal(t, http.StatusOK, w.Code)

	var response models.BudgetResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	return response
}

func TestAddExpense(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	tripID := createTestTrip(t, testCtx, "Expense Trip")
	memberID, _ := addTestMember(t, testCtx, tripID, "sarah@example.com", "Sarah Chen", models.RoleMember)

	// Test case 1: Even split between the two members
	expense := addExpense(t, testCtx, tripID, models.ExpenseRequest{
		Description: "Team dinner",
		Amount:      60,
		PaidBy:      testCtx.TestUserID,
		Date:        "2026-04-10",
		Category:    "food",
		Splits: []models.SplitInput{
			{PersonID: testCtx.TestUserID, Amount: 30},
			{PersonID: memberID, Amount: 30},
		},
	})
	assert.NotEmpty(t, expense.ID)
	assert.Equal(t, 60.0, expense.Amount)

	// Test case 2: Splits that do not sum to the total are rejected
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		fmt.Sprintf("/api/trips/%s/budget/expenses", tripID),
		models.ExpenseRequest{
			Description: "Broken split",
			Amount:      60,
			PaidBy:      testCtx.TestUserID,
			Date:        "2026-04-10",
			Category:    "food",
			Splits: []models.SplitInput{
				{PersonID: testCtx.TestUserID, Amount: 30},
				{PersonID: memberID, Amount: 20},
			},
		},
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Test case 3: Payer must be a trip member
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		fmt.Sprintf("/api/trips/%s/budget/expenses", tripID),
		models.ExpenseRequest{
			Description: "Unknown payer",
			Amount:      10,
			PaidBy:      "not-a-member",
			Date:        "2026-04-10",
			Splits:      []models.SplitInput{{PersonID: testCtx.TestUserID, Amount: 10}},
		},
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Test case 4: A split residual within the 0.01 tolerance is accepted
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		fmt.Sprintf("/api/trips/%s/budget/expenses", tripID),
		models.ExpenseRequest{
			Description: "Tolerated residual",
			Amount:      100,
			PaidBy:      testCtx.TestUserID,
			Date:        "2026-04-11",
			Category:    "activities",
			Splits: []models.SplitInput{
				{PersonID: testCtx.TestUserID, Amount: 33.33},
				{PersonID: memberID, Amount: 66.66},
			},
		},
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestUpdateAndDeleteExpense(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	tripID := createTestTrip(t, testCtx, "Edit Trip")
	memberID, memberToken := addTestMember(t, testCtx, tripID, "mike@example.com", "Mike Torres", models.RoleMember)

	expense := addExpense(t, testCtx, tripID, models.ExpenseRequest{
		Description: "Museum tickets",
		Amount:      40,
		PaidBy:      testCtx.TestUserID,
		Date:        "2026-04-12",
		Category:    "activities",
		Splits: []models.SplitInput{
			{PersonID: testCtx.TestUserID, Amount: 20},
			{PersonID: memberID, Amount: 20},
		},
	})

	// Test case 1: Update changes fields but keeps the id
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPut,
		fmt.Sprintf("/api/trips/%s/budget/expenses/%s", tripID, expense.ID),
		models.ExpenseRequest{
			Description: "Museum and gallery tickets",
			Amount:      50,
			PaidBy:      testCtx.TestUserID,
			Date:        "2026-04-12",
			Category:    "activities",
			Splits: []models.SplitInput{
				{PersonID: testCtx.TestUserID, Amount: 25},
				{PersonID: memberID, Amount: 25},
			},
		},
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)
	assert.Equal(t, http.StatusOK, w.Code)

	var updateResponse models.ExpenseResponse
	err := json.Unmarshal(w.Body.Bytes(), &updateResponse)
	assert.NoError(t, err)
	assert.NotNil(t, updateResponse.Expense)
	assert.Equal(t, expense.ID, updateResponse.Expense.ID)
	assert.Equal(t, 50.0, updateResponse.Expense.Amount)

	// Test case 2: Updating an unknown id is a tolerated no-op
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPut,
		fmt.Sprintf("/api/trips/%s/budget/expenses/%s", tripID, "no-such-expense"),
		models.ExpenseRequest{
			Description: "Ghost",
			Amount:      10,
			PaidBy:      testCtx.TestUserID,
			Date:        "2026-04-12",
			Splits:      []models.SplitInput{{PersonID: testCtx.TestUserID, Amount: 10}},
		},
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)
	assert.Equal(t, http.StatusOK, w.Code)

	var noopResponse models.ExpenseResponse
	err = json.Unmarshal(w.Body.Bytes(), &noopResponse)
	assert.NoError(t, err)
	assert.Nil(t, noopResponse.Expense)

	// Test case 3: A member who did not pay cannot delete the expense
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodDelete,
		fmt.Sprintf("/api/trips/%s/budget/expenses/%s", tripID, expense.ID),
		nil,
		testutils.AuthHeaders(memberToken),
	)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Test case 4: The payer deletes the expense
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodDelete,
		fmt.Sprintf("/api/trips/%s/budget/expenses/%s", tripID, expense.ID),
		nil,
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)
	assert.Equal(t, http.StatusOK, w.Code)

	// Test case 5: Deleting again is idempotent
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodDelete,
		fmt.Sprintf("/api/trips/%s/budget/expenses/%s", tripID, expense.ID),
		nil,
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBudgetPayload(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	tripID := createTestTrip(t, testCtx, "Payload Trip")
	memberID, _ := addTestMember(t, testCtx, tripID, "jess@example.com", "Jessica Park", models.RoleMember)

	addExpense(t, testCtx, tripID, models.ExpenseRequest{
		Description: "Hotel",
		Amount:      200,
		PaidBy:      testCtx.TestUserID,
		Date:        "2026-04-10",
		Category:    "accommodation",
		Splits: []models.SplitInput{
			{PersonID: testCtx.TestUserID, Amount: 100},
			{PersonID: memberID, Amount: 100},
		},
	})
	addExpense(t, testCtx, tripID, models.ExpenseRequest{
		Description: "Ramen",
		Amount:      30,
		PaidBy:      memberID,
		Date:        "2026-04-11",
		Category:    "Food", // category is normalized to lowercase
		Splits: []models.SplitInput{
			{PersonID: testCtx.TestUserID, Amount: 15},
			{PersonID: memberID, Amount: 15},
		},
	})

	// An event with a cost and no linked expense counts as pending cost
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		fmt.Sprintf("/api/trips/%s/events", tripID),
		models.CreateEventRequest{Name: "Onsen day", Date: "2026-04-13", Cost: 90},
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)
	assert.Equal(t, http.StatusCreated, w.Code)

	budget := getBudget(t, testCtx, tripID)

	assert.Equal(t, tripID, budget.TripID)
	assert.Len(t, budget.People, 2)
	assert.Len(t, budget.Expenses, 2)
	assert.Equal(t, 230.0, budget.TotalSpent)
	assert.Equal(t, 90.0, budget.PendingCosts)

	// Per-person totals come from split attribution, not who paid
	spending := map[string]float64{}
	for _, ps := range budget.PersonSpending {
		spending[ps.ID] = ps.Amount
	}
	assert.Equal(t, 115.0, spending[testCtx.TestUserID])
	assert.Equal(t, 115.0, spending[memberID])

	// Category totals cover the whole palette with normalized ids
	totals := map[string]float64{}
	for _, ct := range budget.CategoryTotals {
		totals[ct.ID] = ct.Total
	}
	assert.Equal(t, 200.0, totals["accommodation"])
	assert.Equal(t, 30.0, totals["food"])
	assert.Equal(t, 0.0, totals["shopping"])

	// The owner paid 200 and owes 115, so the member owes the difference
	assert.Len(t, budget.Suggested, 1)
	assert.Equal(t, memberID, budget.Suggested[0].FromID)
	assert.Equal(t, testCtx.TestUserID, budget.Suggested[0].ToID)
	assert.InDelta(t, 85.0, budget.Suggested[0].Amount, 0.01)
}

func TestBudgetGoals(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	tripID := createTestTrip(t, testCtx, "Goal Trip")
	memberID, memberToken := addTestMember(t, testCtx, tripID, "sarah@example.com", "Sarah Chen", models.RoleMember)

	// Test case 1: A member sets their own budget
	budget := 800.0
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPut,
		fmt.Sprintf("/api/trips/%s/members/%s/budget", tripID, memberID),
		models.UpdateBudgetRequest{Budget: &budget},
		testutils.AuthHeaders(memberToken),
	)
	assert.Equal(t, http.StatusOK, w.Code)

	// Test case 2: A plain member cannot set someone else's budget
	other := 100.0
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPut,
		fmt.Sprintf("/api/trips/%s/members/%s/budget", tripID, testCtx.TestUserID),
		models.UpdateBudgetRequest{Budget: &other},
		testutils.AuthHeaders(memberToken),
	)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Test case 3: Negative budgets are rejected at the boundary
	negative := -50.0
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPut,
		fmt.Sprintf("/api/trips/%s/members/%s/budget", tripID, memberID),
		models.UpdateBudgetRequest{Budget: &negative},
		testutils.AuthHeaders(memberToken),
	)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Test case 4: Increase rounds the member's spending up to the next 100
	addExpense(t, testCtx, tripID, models.ExpenseRequest{
		Description: "Flights",
		Amount:      500,
		PaidBy:      testCtx.TestUserID,
		Date:        "2026-04-09",
		Category:    "transportation",
		Splits: []models.SplitInput{
			{PersonID: testCtx.TestUserID, Amount: 250},
			{PersonID: memberID, Amount: 250},
		},
	})

	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		fmt.Sprintf("/api/trips/%s/members/%s/budget/increase", tripID, memberID),
		nil,
		testutils.AuthHeaders(memberToken),
	)
	assert.Equal(t, http.StatusOK, w.Code)

	var goalResponse models.BudgetGoalResponse
	err := json.Unmarshal(w.Body.Bytes(), &goalResponse)
	assert.NoError(t, err)
	assert.Equal(t, 300.0, goalResponse.Budget)
}
