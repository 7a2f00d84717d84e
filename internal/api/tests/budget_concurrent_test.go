package api_test

import (
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wanderplan/server/internal/api/testutils"
	"github.com/wanderplan/server/internal/models"
)

func TestConcurrentExpenseSubmission(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	tripID := createTestTrip(t, testCtx, "Concurrent Trip")

	const numGoroutines = 8
	const expensesPerGoroutine = 3

	var wg sync.WaitGroup
	codes := make(chan int, numGoroutines*expensesPerGoroutine)

	// Submit expenses from multiple goroutines simultaneously
	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func(routineID int) {
			defer wg.Done()

			for j := 0; j < expensesPerGoroutine; j++ {
				req := models.ExpenseRequest{
					Description: fmt.Sprintf("Concurrent expense %d_%d", routineID, j),
					Amount:      10,
					PaidBy:      testCtx.TestUserID,
					Date:        "2026-04-10",
					Category:    "food",
					Splits: []models.SplitInput{
						{PersonID: testCtx.TestUserID, Amount: 10},
					},
				}

				w := testutils.PerformRequest(
					testCtx.Router,
					http.MethodPost,
					fmt.Sprintf("/api/trips/%s/budget/expenses", tripID),
					req,
					testutils.AuthHeaders(testCtx.TestUserJWT),
				)
				codes <- w.Code
			}
		}(i)
	}

	wg.Wait()
	close(codes)

	for code := range codes {
		assert.Equal(t, http.StatusCreated, code)
	}

	// Every submission must have landed exactly once
	budget := getBudget(t, testCtx, tripID)
	assert.Len(t, budget.Expenses, numGoroutines*expensesPerGoroutine)
	assert.InDelta(t, float64(numGoroutines*expensesPerGoroutine*10), budget.TotalSpent, 0.001)
}
