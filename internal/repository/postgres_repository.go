package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/wanderplan/server/internal/models"
)

// Repository interface defines the methods that any repository implementation must satisfy
type Repository interface {
	// User operations
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// Trip operations
	CreateTrip(ctx context.Context, trip *models.Trip) error
	DeleteTrip(ctx context.Context, tripID string) error
	GetTrip(ctx context.Context, tripID string) (*models.Trip, error)
	GetUserTrips(ctx context.Context, userID string) ([]models.Trip, error)

	// Membership operations
	AddTripMember(ctx context.Context, member *models.TripMember) error
	GetTripMember(ctx context.Context, tripID, userID string) (*models.TripMember, error)
	GetTripMembers(ctx context.Context, tripID string) ([]models.TripMember, error)
	UpdateBudgetGoal(ctx context.Context, tripID, userID string, budget float64) error

	// Itinerary event operations
	CreateEvent(ctx context.Context, event *models.Event) error
	GetTripEvents(ctx context.Context, tripID string) ([]models.Event, error)
	DeleteEvent(ctx context.Context, eventID string) error

	// Expense operations
	CreateExpense(ctx context.Context, expense *models.Expense) error
	UpdateExpense(ctx context.Context, expense *models.Expense) error
	DeleteExpense(ctx context.Context, expenseID string) error
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)
	GetTripExpenses(ctx context.Context, tripID string) ([]models.Expense, error)

	// Settlement operations
	CreateSettlement(ctx context.Context, settlement *models.Settlement) error
	GetSettlement(ctx context.Context, settlementID string) (*models.Settlement, error)
	GetTripSettlements(ctx context.Context, tripID string) ([]models.Settlement, error)
	UpdateSettlementStatus(ctx context.Context, settlementID, status string) error
	DeleteSettlement(ctx context.Context, settlementID string) error
}

// PostgresRepository implements the Repository interface using PostgreSQL
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{
		db: db,
	}
}

// GetDB returns the underlying database connection
func (r *PostgresRepository) GetDB() *sqlx.DB {
	return r.db
}

// User repository methods
func (r *PostgresRepository) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, email, name, password, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	// Generate a new UUID if not provided
	if user.ID == "" {
		user.ID = uuid.New().String()
	}

	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Email, user.Name, user.Password, user.CreatedAt, user.UpdatedAt)

	return err
}

func (r *PostgresRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT * FROM users WHERE email = $1`

	var user models.User
	err := r.db.GetContext(ctx, &user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // User not found
		}
		return nil, err
	}

	return &user, nil
}

func (r *PostgresRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT * FROM users WHERE id = $1`

	var user models.User
	err := r.db.GetContext(ctx, &user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // User not found
		}
		return nil, err
	}

	return &user, nil
}

// Trip repository methods
func (r *PostgresRepository) CreateTrip(ctx context.Context, trip *models.Trip) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			tx.Rollback()
			return
		}
	}()

	query := `
		INSERT INTO trips (id, name, description, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	// Generate a new UUID if not provided
	if trip.ID == "" {
		trip.ID = uuid.New().String()
	}

	now := time.Now().UTC()
	trip.CreatedAt = now
	trip.UpdatedAt = now

	_, err = tx.ExecContext(ctx, query,
		trip.ID, trip.Name, trip.Description, trip.CreatedBy, trip.CreatedAt, trip.UpdatedAt)

	if err != nil {
		return err
	}

	// Add the creator as the trip owner
	_, err = tx.ExecContext(ctx,
		`INSERT INTO trip_membership (trip_id, user_id, role, budget_goal, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		trip.ID, trip.CreatedBy, models.RoleOwner, 0, now)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *PostgresRepository) DeleteTrip(ctx context.Context, tripID string) error {
	// Memberships, events, expenses, splits and settlements cascade
	_, err := r.db.ExecContext(ctx, `DELETE FROM trips WHERE id = $1`, tripID)
	return err
}

func (r *PostgresRepository) GetTrip(ctx context.Context, tripID string) (*models.Trip, error) {
	query := `SELECT * FROM trips WHERE id = $1`

	var trip models.Trip
	err := r.db.GetContext(ctx, &trip, query, tripID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Trip not found
		}
		return nil, err
	}

	return &trip, nil
}

func (r *PostgresRepository) GetUserTrips(ctx context.Context, userID string) ([]models.Trip, error) {
	query := `
		SELECT t.* FROM trips t
		JOIN trip_membership tm ON t.id = tm.trip_id
		WHERE tm.user_id = $1
		ORDER BY t.created_at DESC
	`

	var trips []models.Trip
	err := r.db.SelectContext(ctx, &trips, query, userID)
	if err != nil {
		return nil, err
	}

	return trips, nil
}

// Membership repository methods
func (r *PostgresRepository) AddTripMember(ctx context.Context, member *models.TripMember) error {
	// Check if the membership already exists
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM trip_membership WHERE trip_id = $1 AND user_id = $2)`,
		member.TripID, member.UserID).Scan(&exists)
	if err != nil {
		return err
	}

	if exists {
		// Update role and budget if the user is already a member
		_, err = r.db.ExecContext(ctx,
			`UPDATE trip_membership SET role = $1, budget_goal = $2 WHERE trip_id = $3 AND user_id = $4`,
			member.Role, member.BudgetGoal, member.TripID, member.UserID)
		return err
	}

	if member.CreatedAt.IsZero() {
		member.CreatedAt = time.Now().UTC()
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO trip_membership (trip_id, user_id, role, budget_goal, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		member.TripID, member.UserID, member.Role, member.BudgetGoal, member.CreatedAt)
	return err
}

func (r *PostgresRepository) GetTripMember(ctx context.Context, tripID, userID string) (*models.TripMember, error) {
	query := `
		SELECT tm.trip_id, tm.user_id, u.name, u.email, tm.role, tm.budget_goal, tm.created_at
		FROM trip_membership tm
		JOIN users u ON u.id = tm.user_id
		WHERE tm.trip_id = $1 AND tm.user_id = $2
	`

	var member models.TripMember
	err := r.db.GetContext(ctx, &member, query, tripID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not a member
		}
		return nil, err
	}

	return &member, nil
}

func (r *PostgresRepository) GetTripMembers(ctx context.Context, tripID string) ([]models.TripMember, error) {
	query := `
		SELECT tm.trip_id, tm.user_id, u.name, u.email, tm.role, tm.budget_goal, tm.created_at
		FROM trip_membership tm
		JOIN users u ON u.id = tm.user_id
		WHERE tm.trip_id = $1
		ORDER BY tm.created_at ASC
	`

	var members []models.TripMember
	err := r.db.SelectContext(ctx, &members, query, tripID)
	if err != nil {
		return nil, err
	}

	return members, nil
}

func (r *PostgresRepository) UpdateBudgetGoal(ctx context.Context, tripID, userID string, budget float64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE trip_membership SET budget_goal = $1 WHERE trip_id = $2 AND user_id = $3`,
		budget, tripID, userID)
	return err
}

// Itinerary event repository methods
func (r *PostgresRepository) CreateEvent(ctx context.Context, event *models.Event) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO itinerary_events (id, trip_id, name, event_date, cost, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		event.ID, event.TripID, event.Name, event.Date, event.Cost, event.CreatedAt)
	return err
}

func (r *PostgresRepository) GetTripEvents(ctx context.Context, tripID string) ([]models.Event, error) {
	query := `
		SELECT id, trip_id, name, event_date, cost, created_at
		FROM itinerary_events
		WHERE trip_id = $1
		ORDER BY event_date ASC
	`

	var events []models.Event
	err := r.db.SelectContext(ctx, &events, query, tripID)
	if err != nil {
		return nil, err
	}

	return events, nil
}

func (r *PostgresRepository) DeleteEvent(ctx context.Context, eventID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM itinerary_events WHERE id = $1`, eventID)
	return err
}

// Expense repository methods

// CreateExpense inserts the expense and its splits in one transaction so the
// split-sum invariant is never left inconsistent in storage.
func (r *PostgresRepository) CreateExpense(ctx context.Context, expense *models.Expense) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			tx.Rollback()
			return
		}
	}()

	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt.IsZero() {
		expense.CreatedAt = time.Now().UTC()
	}

	err = insertExpenseTx(ctx, tx, expense)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// UpdateExpense replaces the expense row and its splits in one transaction.
func (r *PostgresRepository) UpdateExpense(ctx context.Context, expense *models.Expense) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			tx.Rollback()
			return
		}
	}()

	_, err = tx.ExecContext(ctx,
		`UPDATE expenses
		 SET event_id = NULLIF($1, ''), description = $2, amount = $3, paid_by = $4,
		     date_incurred = $5, category = $6
		 WHERE id = $7`,
		expense.EventID, expense.Description, expense.Amount, expense.PaidBy,
		expense.Date, expense.Category, expense.ID)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `DELETE FROM expense_splits WHERE expense_id = $1`, expense.ID)
	if err != nil {
		return err
	}

	err = insertSplitsTx(ctx, tx, expense)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *PostgresRepository) DeleteExpense(ctx context.Context, expenseID string) error {
	// Splits cascade
	_, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1`, expenseID)
	return err
}

func (r *PostgresRepository) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	query := `
		SELECT id, trip_id, COALESCE(event_id, '') AS event_id, description, amount,
		       paid_by, date_incurred, category, created_at
		FROM expenses WHERE id = $1
	`

	var expense models.Expense
	err := r.db.GetContext(ctx, &expense, query, expenseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Expense not found
		}
		return nil, err
	}

	var splits []models.Split
	err = r.db.SelectContext(ctx, &splits,
		`SELECT expense_id, person_id, amount FROM expense_splits WHERE expense_id = $1`,
		expenseID)
	if err != nil {
		return nil, err
	}
	expense.Splits = splits

	return &expense, nil
}

func (r *PostgresRepository) GetTripExpenses(ctx context.Context, tripID string) ([]models.Expense, error) {
	query := `
		SELECT id, trip_id, COALESCE(event_id, '') AS event_id, description, amount,
		       paid_by, date_incurred, category, created_at
		FROM expenses
		WHERE trip_id = $1
		ORDER BY date_incurred DESC
	`

	var expenses []models.Expense
	err := r.db.SelectContext(ctx, &expenses, query, tripID)
	if err != nil {
		return nil, err
	}

	var splits []models.Split
	err = r.db.SelectContext(ctx, &splits,
		`SELECT s.expense_id, s.person_id, s.amount
		 FROM expense_splits s
		 JOIN expenses e ON e.id = s.expense_id
		 WHERE e.trip_id = $1`,
		tripID)
	if err != nil {
		return nil, err
	}

	byExpense := make(map[string][]models.Split, len(expenses))
	for _, s := range splits {
		byExpense[s.ExpenseID] = append(byExpense[s.ExpenseID], s)
	}
	for i := range expenses {
		expenses[i].Splits = byExpense[expenses[i].ID]
	}

	return expenses, nil
}

func insertExpenseTx(ctx context.Context, tx *sql.Tx, expense *models.Expense) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO expenses (id, trip_id, event_id, description, amount, paid_by, date_incurred, category, created_at)
		 VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, $9)`,
		expense.ID, expense.TripID, expense.EventID, expense.Description, expense.Amount,
		expense.PaidBy, expense.Date, expense.Category, expense.CreatedAt)
	if err != nil {
		return err
	}

	return insertSplitsTx(ctx, tx, expense)
}

func insertSplitsTx(ctx context.Context, tx *sql.Tx, expense *models.Expense) error {
	for _, s := range expense.Splits {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO expense_splits (expense_id, person_id, amount) VALUES ($1, $2, $3)`,
			expense.ID, s.PersonID, s.Amount)
		if err != nil {
			return err
		}
	}
	return nil
}

// Settlement repository methods
func (r *PostgresRepository) CreateSettlement(ctx context.Context, settlement *models.Settlement) error {
	if settlement.ID == "" {
		settlement.ID = uuid.New().String()
	}
	if settlement.Date.IsZero() {
		settlement.Date = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO settlements (id, trip_id, from_user_id, to_user_id, amount, date_paid, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		settlement.ID, settlement.TripID, settlement.FromID, settlement.ToID,
		settlement.Amount, settlement.Date, settlement.Status)
	return err
}

func (r *PostgresRepository) GetSettlement(ctx context.Context, settlementID string) (*models.Settlement, error) {
	query := `SELECT * FROM settlements WHERE id = $1`

	var settlement models.Settlement
	err := r.db.GetContext(ctx, &settlement, query, settlementID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Settlement not found
		}
		return nil, err
	}

	return &settlement, nil
}

func (r *PostgresRepository) GetTripSettlements(ctx context.Context, tripID string) ([]models.Settlement, error) {
	query := `SELECT * FROM settlements WHERE trip_id = $1 ORDER BY date_paid DESC`

	var settlements []models.Settlement
	err := r.db.SelectContext(ctx, &settlements, query, tripID)
	if err != nil {
		return nil, err
	}

	return settlements, nil
}

func (r *PostgresRepository) UpdateSettlementStatus(ctx context.Context, settlementID, status string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE settlements SET status = $1 WHERE id = $2`, status, settlementID)
	return err
}

func (r *PostgresRepository) DeleteSettlement(ctx context.Context, settlementID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM settlements WHERE id = $1`, settlementID)
	return err
}
