package models

// Request models
type SignUpRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type CreateTripRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type AddMemberRequest struct {
	Email      string  `json:"email" binding:"required,email"`
	Role       string  `json:"role" binding:"required,oneof=organizer member"`
	BudgetGoal float64 `json:"budgetGoal" binding:"gte=0"`
}

// UpdateBudgetRequest carries a member's new personal budget.
// The gte=0 binding is the boundary validation the engine relies on.
type UpdateBudgetRequest struct {
	Budget *float64 `json:"budget" binding:"required,gte=0"`
}

type CreateEventRequest struct {
	Name string  `json:"name" binding:"required"`
	Date string  `json:"date" binding:"required"` // YYYY-MM-DD
	Cost float64 `json:"cost" binding:"gte=0"`
}

// SplitInput is one person's share of an expense being submitted.
type SplitInput struct {
	PersonID string  `json:"personId" binding:"required"`
	Amount   float64 `json:"amount" binding:"gte=0"`
}

// ExpenseRequest is the payload for adding or updating an expense.
// Split conservation (sum of splits == amount within 0.01) is checked at
// this boundary before the engine is invoked.
type ExpenseRequest struct {
	Description string       `json:"description" binding:"required"`
	Amount      float64      `json:"amount" binding:"required,gt=0"`
	PaidBy      string       `json:"paidBy" binding:"required"`
	Date        string       `json:"date" binding:"required"` // YYYY-MM-DD
	Event       string       `json:"event"`
	Category    string       `json:"category"`
	Splits      []SplitInput `json:"splits" binding:"required,min=1,dive"`
}

type SettlementRequest struct {
	From   string  `json:"from" binding:"required"`
	To     string  `json:"to" binding:"required"`
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

// Response models
type AuthResponse struct {
	Status    string `json:"status"`
	UserID    string `json:"userId,omitempty"`
	Email     string `json:"email,omitempty"`
	Name      string `json:"name,omitempty"`
	Token     string `json:"token,omitempty"`
	ExpiresIn int    `json:"expiresIn,omitempty"`
}

type TripResponse struct {
	Status string `json:"status"`
	Trip   *Trip  `json:"trip,omitempty"`
}

type TripListResponse struct {
	Status string `json:"status"`
	Trips  []Trip `json:"trips"`
}

type MemberListResponse struct {
	Status  string       `json:"status"`
	Members []TripMember `json:"members"`
}

type EventResponse struct {
	Status string `json:"status"`
	Event  *Event `json:"event,omitempty"`
}

type EventListResponse struct {
	Status string  `json:"status"`
	Events []Event `json:"events"`
}

// BudgetResponse is the combined budget payload for one trip: the raw
// collections plus every derived view the budget page renders.
type BudgetResponse struct {
	Status         string                 `json:"status"`
	TripID         string                 `json:"tripId"`
	People         []Person               `json:"people"`
	Expenses       []Expense              `json:"expenses"`
	Settlements    []Settlement           `json:"settlements"`
	PersonSpending []PersonSpending       `json:"personSpending"`
	CategoryTotals []CategoryTotal        `json:"categoryTotals"`
	Suggested      []SettlementSuggestion `json:"suggestedSettlements"`
	TripBudget     float64                `json:"tripBudget"`
	TotalSpent     float64                `json:"totalSpent"`
	BudgetProgress float64                `json:"budgetProgress"`
	PendingCosts   float64                `json:"pendingCosts"`
}

type ExpenseResponse struct {
	Status  string   `json:"status"`
	Expense *Expense `json:"expense,omitempty"`
}

type SettlementResponse struct {
	Status     string      `json:"status"`
	Settlement *Settlement `json:"settlement,omitempty"`
}

type BudgetGoalResponse struct {
	Status string  `json:"status"`
	UserID string  `json:"userId"`
	Budget float64 `json:"budget"`
}

type MessageResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Status  string `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}
