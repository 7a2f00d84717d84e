package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/wanderplan/server/internal/cache"
	"github.com/wanderplan/server/internal/ledger"
	"github.com/wanderplan/server/internal/models"
	"github.com/wanderplan/server/internal/repository"
)

// Sentinel errors used by the API layer to pick status codes.
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalid      = errors.New("invalid input")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
)

// Service defines all the business logic operations
type Service interface {
	// Authentication
	SignUp(ctx context.Context, req models.SignUpRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)

	// Trip operations
	CreateTrip(ctx context.Context, userID string, req models.CreateTripRequest) (*models.Trip, error)
	GetTrip(ctx context.Context, userID, tripID string) (*models.Trip, error)
	GetUserTrips(ctx context.Context, userID string) ([]models.Trip, error)
	DeleteTrip(ctx context.Context, userID, tripID string) error

	// Membership operations
	AddMember(ctx context.Context, userID, tripID string, req models.AddMemberRequest) (*models.TripMember, error)
	GetMembers(ctx context.Context, userID, tripID string) ([]models.TripMember, error)

	// Itinerary events
	CreateEvent(ctx context.Context, userID, tripID string, req models.CreateEventRequest) (*models.Event, error)
	GetEvents(ctx context.Context, userID, tripID string) ([]models.Event, error)
	DeleteEvent(ctx context.Context, userID, tripID, eventID string) error

	// Budget: expenses, settlements, member budgets
	GetBudget(ctx context.Context, userID, tripID string) (*models.BudgetResponse, error)
	AddExpense(ctx context.Context, userID, tripID string, req models.ExpenseRequest) (*models.Expense, error)
	UpdateExpense(ctx context.Context, userID, tripID, expenseID string, req models.ExpenseRequest) (*models.Expense, error)
	DeleteExpense(ctx context.Context, userID, tripID, expenseID string) error
	RecordSettlement(ctx context.Context, userID, tripID string, req models.SettlementRequest) (*models.Settlement, error)
	ConfirmSettlement(ctx context.Context, userID, tripID, settlementID string) error
	DeclineSettlement(ctx context.Context, userID, tripID, settlementID string) error
	SaveBudget(ctx context.Context, userID, tripID, targetID string, budget float64) error
	IncreaseBudget(ctx context.Context, userID, tripID, targetID string) (float64, error)
}

// DefaultService implements the Service interface
type DefaultService struct {
	repo          repository.Repository
	cache         *cache.Cache
	jwtSecret     []byte
	tokenDuration time.Duration
}

// NewDefaultService creates a new DefaultService. The cache may be nil, in
// which case budget payloads are computed on every request.
func NewDefaultService(repo repository.Repository, budgetCache *cache.Cache, jwtSecret string) Service {
	return &DefaultService{
		repo:          repo,
		cache:         budgetCache,
		jwtSecret:     []byte(jwtSecret),
		tokenDuration: 24 * time.Hour, // 24 hours token validity
	}
}

// Authentication methods
func (s *DefaultService) SignUp(ctx context.Context, req models.SignUpRequest) (*models.AuthResponse, error) {
	// Check if user already exists
	existingUser, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("error checking user existence: %w", err)
	}

	if existingUser != nil {
		return nil, fmt.Errorf("%w: user with this email already exists", ErrConflict)
	}

	// Hash the password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	// Create the user
	user := &models.User{
		ID:       uuid.New().String(),
		Email:    req.Email,
		Name:     req.Name,
		Password: string(hashedPassword),
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return &models.AuthResponse{
		Status: "success",
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
	}, nil
}

func (s *DefaultService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	// Get the user
	user, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("error getting user: %w", err)
	}

	if user == nil {
		return nil, fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	}

	// Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	}

	// Generate JWT token
	token, err := s.generateJWT(user)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	return &models.AuthResponse{
		Status:    "success",
		UserID:    user.ID,
		Token:     token,
		ExpiresIn: int(s.tokenDuration.Seconds()),
	}, nil
}

// Trip operations
func (s *DefaultService) CreateTrip(ctx context.Context, userID string, req models.CreateTripRequest) (*models.Trip, error) {
	trip := &models.Trip{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Description: req.Description,
		CreatedBy:   userID,
	}

	if err := s.repo.CreateTrip(ctx, trip); err != nil {
		return nil, fmt.Errorf("error creating trip: %w", err)
	}

	return trip, nil
}

func (s *DefaultService) GetTrip(ctx context.Context, userID, tripID string) (*models.Trip, error) {
	if _, err := s.requireMember(ctx, userID, tripID); err != nil {
		return nil, err
	}

	trip, err := s.repo.GetTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("error getting trip: %w", err)
	}
	if trip == nil {
		return nil, fmt.Errorf("%w: trip", ErrNotFound)
	}

	return trip, nil
}

func (s *DefaultService) GetUserTrips(ctx context.Context, userID string) ([]models.Trip, error) {
	trips, err := s.repo.GetUserTrips(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error getting trips: %w", err)
	}
	return trips, nil
}

func (s *DefaultService) DeleteTrip(ctx context.Context, userID, tripID string) error {
	trip, err := s.repo.GetTrip(ctx, tripID)
	if err != nil {
		return fmt.Errorf("error getting trip: %w", err)
	}
	if trip == nil {
		return fmt.Errorf("%w: trip", ErrNotFound)
	}

	// Only the creator may delete the trip
	if trip.CreatedBy != userID {
		return fmt.Errorf("%w: only the trip creator can delete it", ErrForbidden)
	}

	if err := s.repo.DeleteTrip(ctx, tripID); err != nil {
		return fmt.Errorf("error deleting trip: %w", err)
	}

	s.cache.Invalidate(ctx, cache.BudgetKey(tripID))
	return nil
}

// Membership operations
func (s *DefaultService) AddMember(ctx context.Context, userID, tripID string, req models.AddMemberRequest) (*models.TripMember, error) {
	requester, err := s.requireMember(ctx, userID, tripID)
	if err != nil {
		return nil, err
	}
	if requester.Role != models.RoleOwner && requester.Role != models.RoleOrganizer {
		return nil, fmt.Errorf("%w: only the owner or an organizer can add members", ErrForbidden)
	}

	userToAdd, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("error getting user: %w", err)
	}
	if userToAdd == nil {
		return nil, fmt.Errorf("%w: user", ErrNotFound)
	}

	member := &models.TripMember{
		TripID:     tripID,
		UserID:     userToAdd.ID,
		Role:       req.Role,
		BudgetGoal: req.BudgetGoal,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.repo.AddTripMember(ctx, member); err != nil {
		return nil, fmt.Errorf("error adding member: %w", err)
	}
	member.Name = userToAdd.Name
	member.Email = userToAdd.Email

	s.cache.Invalidate(ctx, cache.BudgetKey(tripID))
	return member, nil
}

func (s *DefaultService) GetMembers(ctx context.Context, userID, tripID string) ([]models.TripMember, error) {
	if _, err := s.requireMember(ctx, userID, tripID); err != nil {
		return nil, err
	}
	members, err := s.repo.GetTripMembers(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("error getting members: %w", err)
	}
	return members, nil
}

// Itinerary events
func (s *DefaultService) CreateEvent(ctx context.Context, userID, tripID string, req models.CreateEventRequest) (*models.Event, error) {
	if _, err := s.requireMember(ctx, userID, tripID); err != nil {
		return nil, err
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}

	event := &models.Event{
		ID:     uuid.New().String(),
		TripID: tripID,
		Name:   req.Name,
		Date:   date,
		Cost:   req.Cost,
	}
	if err := s.repo.CreateEvent(ctx, event); err != nil {
		return nil, fmt.Errorf("error creating event: %w", err)
	}

	s.cache.Invalidate(ctx, cache.BudgetKey(tripID))
	return event, nil
}

func (s *DefaultService) GetEvents(ctx context.Context, userID, tripID string) ([]models.Event, error) {
	if _, err := s.requireMember(ctx, userID, tripID); err != nil {
		return nil, err
	}
	events, err := s.repo.GetTripEvents(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("error getting events: %w", err)
	}
	return events, nil
}

func (s *DefaultService) DeleteEvent(ctx context.Context, userID, tripID, eventID string) error {
	requester, err := s.requireMember(ctx, userID, tripID)
	if err != nil {
		return err
	}
	if requester.Role != models.RoleOwner && requester.Role != models.RoleOrganizer {
		return fmt.Errorf("%w: only the owner or an organizer can delete events", ErrForbidden)
	}

	if err := s.repo.DeleteEvent(ctx, eventID); err != nil {
		return fmt.Errorf("error deleting event: %w", err)
	}

	s.cache.Invalidate(ctx, cache.BudgetKey(tripID))
	return nil
}

// GetBudget assembles the combined budget payload for a trip: raw expense
// and settlement collections plus every derived view. The payload is served
// cache-aside; all budget-affecting writes invalidate it.
func (s *DefaultService) GetBudget(ctx context.Context, userID, tripID string) (*models.BudgetResponse, error) {
	if _, err := s.requireMember(ctx, userID, tripID); err != nil {
		return nil, err
	}

	key := cache.BudgetKey(tripID)
	var cached models.BudgetResponse
	if s.cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	eng, people, err := s.loadEngine(ctx, tripID)
	if err != nil {
		return nil, err
	}

	events, err := s.repo.GetTripEvents(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("error getting events: %w", err)
	}

	expenses := eng.Expenses()
	for i := range expenses {
		expenses[i].PaidByName = personName(people, expenses[i].PaidBy)
	}

	resp := &models.BudgetResponse{
		Status:         "success",
		TripID:         tripID,
		People:         people,
		Expenses:       expenses,
		Settlements:    eng.Settlements(),
		PersonSpending: eng.PersonSpending(),
		CategoryTotals: eng.CategoryTotals(),
		Suggested:      eng.SuggestedSettlements(),
		TripBudget:     eng.TripBudget(),
		TotalSpent:     eng.TotalSpent(),
		BudgetProgress: eng.BudgetProgress(),
		PendingCosts:   eng.PendingCosts(events),
	}

	s.cache.SetJSON(ctx, key, resp, 60*time.Second)
	return resp, nil
}

func (s *DefaultService) AddExpense(ctx context.Context, userID, tripID string, req models.ExpenseRequest) (*models.Expense, error) {
	if _, err := s.requireMember(ctx, userID, tripID); err != nil {
		return nil, err
	}

	eng, people, err := s.loadEngine(ctx, tripID)
	if err != nil {
		return nil, err
	}

	input, err := validateExpense(req, people)
	if err != nil {
		return nil, err
	}

	expense := eng.AddExpense(*input)
	if err := s.repo.CreateExpense(ctx, &expense); err != nil {
		return nil, fmt.Errorf("error saving expense: %w", err)
	}

	slog.Info("Expense added", "trip_id", tripID, "expense_id", expense.ID, "amount", expense.Amount)
	s.cache.Invalidate(ctx, cache.BudgetKey(tripID))
	return &expense, nil
}

// UpdateExpense replaces an expense's mutable fields. An unknown expense id
// is a tolerated no-op and returns nil without error.
func (s *DefaultService) UpdateExpense(ctx context.Context, userID, tripID, expenseID string, req models.ExpenseRequest) (*models.Expense, error) {
	if _, err := s.requireMember(ctx, userID, tripID); err != nil {
		return nil, err
	}

	eng, people, err := s.loadEngine(ctx, tripID)
	if err != nil {
		return nil, err
	}

	input, err := validateExpense(req, people)
	if err != nil {
		return nil, err
	}

	eng.UpdateExpense(expenseID, *input)

	for _, exp := range eng.Expenses() {
		if exp.ID != expenseID {
			continue
		}
		if err := s.repo.UpdateExpense(ctx, &exp); err != nil {
			return nil, fmt.Errorf("error updating expense: %w", err)
		}
		s.cache.Invalidate(ctx, cache.BudgetKey(tripID))
		return &exp, nil
	}

	slog.Debug("UpdateExpense ignored unknown id", "trip_id", tripID, "expense_id", expenseID)
	return nil, nil
}

// DeleteExpense removes an expense. Deletion is idempotent: an unknown id
// leaves the ledger unchanged and reports success. When the expense exists,
// only the payer or the trip owner/organizer may delete it.
func (s *DefaultService) DeleteExpense(ctx context.Context, userID, tripID, expenseID string) error {
	requester, err := s.requireMember(ctx, userID, tripID)
	if err != nil {
		return err
	}

	expense, err := s.repo.GetExpense(ctx, expenseID)
	if err != nil {
		return fmt.Errorf("error getting expense: %w", err)
	}
	if expense == nil || expense.TripID != tripID {
		return nil // idempotent no-op
	}

	isOrganizer := requester.Role == models.RoleOwner || requester.Role == models.RoleOrganizer
	if expense.PaidBy != userID && !isOrganizer {
		return fmt.Errorf("%w: only the payer or an organizer can delete this expense", ErrForbidden)
	}

	if err := s.repo.DeleteExpense(ctx, expenseID); err != nil {
		return fmt.Errorf("error deleting expense: %w", err)
	}

	s.cache.Invalidate(ctx, cache.BudgetKey(tripID))
	return nil
}

func (s *DefaultService) RecordSettlement(ctx context.Context, userID, tripID string, req models.SettlementRequest) (*models.Settlement, error) {
	if _, err := s.requireMember(ctx, userID, tripID); err != nil {
		return nil, err
	}

	eng, people, err := s.loadEngine(ctx, tripID)
	if err != nil {
		return nil, err
	}

	if !isPerson(people, req.From) || !isPerson(people, req.To) {
		return nil, fmt.Errorf("%w: settlement parties must be trip members", ErrInvalid)
	}
	if req.From == req.To {
		return nil, fmt.Errorf("%w: cannot settle with yourself", ErrInvalid)
	}

	settlement := eng.RecordSettlement(req.From, req.To, req.Amount)
	if err := s.repo.CreateSettlement(ctx, &settlement); err != nil {
		return nil, fmt.Errorf("error saving settlement: %w", err)
	}

	slog.Info("Settlement recorded", "trip_id", tripID, "settlement_id", settlement.ID,
		"from", settlement.FromID, "to", settlement.ToID, "amount", settlement.Amount)
	s.cache.Invalidate(ctx, cache.BudgetKey(tripID))
	return &settlement, nil
}

// ConfirmSettlement transitions a pending settlement to completed. Missing
// or already-completed settlements are a silent no-op. Only the receiving
// member can confirm.
func (s *DefaultService) ConfirmSettlement(ctx context.Context, userID, tripID, settlementID string) error {
	if _, err := s.requireMember(ctx, userID, tripID); err != nil {
		return err
	}

	settlement, err := s.repo.GetSettlement(ctx, settlementID)
	if err != nil {
		return fmt.Errorf("error getting settlement: %w", err)
	}
	if settlement == nil || settlement.TripID != tripID || settlement.Status != models.SettlementPending {
		return nil // no-op
	}
	if settlement.ToID != userID {
		return fmt.Errorf("%w: only the receiver can confirm a settlement", ErrForbidden)
	}

	if err := s.repo.UpdateSettlementStatus(ctx, settlementID, models.SettlementCompleted); err != nil {
		return fmt.Errorf("error confirming settlement: %w", err)
	}

	s.cache.Invalidate(ctx, cache.BudgetKey(tripID))
	return nil
}

// DeclineSettlement removes the settlement entirely regardless of state; no
// declined record is retained. Unknown ids are a silent no-op.
func (s *DefaultService) DeclineSettlement(ctx context.Context, userID, tripID, settlementID string) error {
	if _, err := s.requireMember(ctx, userID, tripID); err != nil {
		return err
	}

	settlement, err := s.repo.GetSettlement(ctx, settlementID)
	if err != nil {
		return fmt.Errorf("error getting settlement: %w", err)
	}
	if settlement == nil || settlement.TripID != tripID {
		return nil // no-op
	}
	if settlement.ToID != userID && settlement.FromID != userID {
		return fmt.Errorf("%w: only a settlement party can decline it", ErrForbidden)
	}

	if err := s.repo.DeleteSettlement(ctx, settlementID); err != nil {
		return fmt.Errorf("error declining settlement: %w", err)
	}

	s.cache.Invalidate(ctx, cache.BudgetKey(tripID))
	return nil
}

// SaveBudget sets a member's personal budget. The non-negative check happens
// at the API boundary.
func (s *DefaultService) SaveBudget(ctx context.Context, userID, tripID, targetID string, budget float64) error {
	requester, err := s.requireMember(ctx, userID, tripID)
	if err != nil {
		return err
	}
	isOrganizer := requester.Role == models.RoleOwner || requester.Role == models.RoleOrganizer
	if targetID != userID && !isOrganizer {
		return fmt.Errorf("%w: only the member or an organizer can edit this budget", ErrForbidden)
	}

	target, err := s.repo.GetTripMember(ctx, tripID, targetID)
	if err != nil {
		return fmt.Errorf("error getting member: %w", err)
	}
	if target == nil {
		return fmt.Errorf("%w: member", ErrNotFound)
	}

	if err := s.repo.UpdateBudgetGoal(ctx, tripID, targetID, budget); err != nil {
		return fmt.Errorf("error saving budget: %w", err)
	}

	s.cache.Invalidate(ctx, cache.BudgetKey(tripID))
	return nil
}

// IncreaseBudget applies the engine's budget suggestion
// (ceil(spend/100)*100) for a member and returns the new budget.
func (s *DefaultService) IncreaseBudget(ctx context.Context, userID, tripID, targetID string) (float64, error) {
	eng, people, err := s.loadEngine(ctx, tripID)
	if err != nil {
		return 0, err
	}
	if !isPerson(people, targetID) {
		return 0, fmt.Errorf("%w: member", ErrNotFound)
	}

	suggested := eng.IncreaseBudget(targetID)
	if err := s.SaveBudget(ctx, userID, tripID, targetID, suggested); err != nil {
		return 0, err
	}
	return suggested, nil
}

// Helper methods

// requireMember loads the caller's membership record, failing with
// ErrForbidden for non-members and ErrNotFound for unknown trips.
func (s *DefaultService) requireMember(ctx context.Context, userID, tripID string) (*models.TripMember, error) {
	trip, err := s.repo.GetTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("error getting trip: %w", err)
	}
	if trip == nil {
		return nil, fmt.Errorf("%w: trip", ErrNotFound)
	}

	member, err := s.repo.GetTripMember(ctx, tripID, userID)
	if err != nil {
		return nil, fmt.Errorf("error checking membership: %w", err)
	}
	if member == nil {
		return nil, fmt.Errorf("%w: you are not a member of this trip", ErrForbidden)
	}
	return member, nil
}

// loadEngine builds a ledger engine over a snapshot of the trip's records.
// The engine is scoped to this request; it is never shared between callers.
func (s *DefaultService) loadEngine(ctx context.Context, tripID string) (*ledger.Engine, []models.Person, error) {
	members, err := s.repo.GetTripMembers(ctx, tripID)
	if err != nil {
		return nil, nil, fmt.Errorf("error getting members: %w", err)
	}
	expenses, err := s.repo.GetTripExpenses(ctx, tripID)
	if err != nil {
		return nil, nil, fmt.Errorf("error getting expenses: %w", err)
	}
	settlements, err := s.repo.GetTripSettlements(ctx, tripID)
	if err != nil {
		return nil, nil, fmt.Errorf("error getting settlements: %w", err)
	}

	people := buildPeople(members)
	return ledger.New(tripID, people, expenses, settlements), people, nil
}

// buildPeople maps membership records to the engine's person projection,
// assigning display colors from the palette by join order.
func buildPeople(members []models.TripMember) []models.Person {
	people := make([]models.Person, len(members))
	for i, m := range members {
		name := m.Name
		if name == "" {
			name = m.Email
		}
		people[i] = models.Person{
			ID:       m.UserID,
			Name:     name,
			Initials: initials(name),
			Color:    models.MemberColors[i%len(models.MemberColors)],
			Budget:   m.BudgetGoal,
		}
	}
	return people
}

func initials(name string) string {
	name = strings.TrimSpace(name)
	if len(name) < 2 {
		return strings.ToUpper(name)
	}
	return strings.ToUpper(name[:2])
}

func isPerson(people []models.Person, id string) bool {
	for _, p := range people {
		if p.ID == id {
			return true
		}
	}
	return false
}

func personName(people []models.Person, id string) string {
	for _, p := range people {
		if p.ID == id {
			return p.Name
		}
	}
	return id
}

// validateExpense is the boundary check the engine relies on: required
// fields, a positive amount, a known payer, member-only splits with no
// duplicates, and split conservation within the 0.01 tolerance.
func validateExpense(req models.ExpenseRequest, people []models.Person) (*ledger.ExpenseInput, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}

	if !isPerson(people, req.PaidBy) {
		return nil, fmt.Errorf("%w: payer must be a trip member", ErrInvalid)
	}

	seen := make(map[string]bool, len(req.Splits))
	splits := make([]models.Split, len(req.Splits))
	for i, in := range req.Splits {
		if !isPerson(people, in.PersonID) {
			return nil, fmt.Errorf("%w: split person %s is not a trip member", ErrInvalid, in.PersonID)
		}
		if seen[in.PersonID] {
			return nil, fmt.Errorf("%w: duplicate split person %s", ErrInvalid, in.PersonID)
		}
		seen[in.PersonID] = true
		splits[i] = models.Split{PersonID: in.PersonID, Amount: in.Amount}
	}

	if !ledger.SplitSumMatches(req.Amount, splits) {
		return nil, fmt.Errorf("%w: split amounts must equal total expense", ErrInvalid)
	}

	category := strings.ToLower(req.Category)
	if category == "" {
		category = models.CategoryOther
	}

	return &ledger.ExpenseInput{
		Description: req.Description,
		Amount:      req.Amount,
		PaidBy:      req.PaidBy,
		Date:        date,
		EventID:     req.Event,
		Category:    category,
		Splits:      splits,
	}, nil
}

func parseDate(s string) (time.Time, error) {
	date, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalid)
	}
	return date, nil
}

func (s *DefaultService) generateJWT(user *models.User) (string, error) {
	expirationTime := time.Now().Add(s.tokenDuration)

	claims := jwt.MapClaims{
		"sub": user.ID, // subject
		"exp": expirationTime.Unix(),
		"iat": time.Now().Unix(), // issued at
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
