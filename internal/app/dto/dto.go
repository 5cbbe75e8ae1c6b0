package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ============ Общие структуры ============

type ErrorResponse struct {
	Status  string   `json:"status"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

type SuccessResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ============ Справочники ============

type UserResponse struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

type StoreResponse struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

type ProductResponse struct {
	ID          uint   `json:"id"`
	Description string `json:"description"`
	Barcode     string `json:"barcode,omitempty"`
	SapCode     string `json:"sap_code,omitempty"`
	Type        string `json:"type,omitempty"`
	IsPromo     bool   `json:"is_promo"`
}

// ============ Заявки на поддержку ============

type LineItemPayload struct {
	ID               uint            `json:"id"`
	ProductID        *uint           `json:"product_id"`
	Quantity         decimal.Decimal `json:"quantity"`
	RequestedSupport decimal.Decimal `json:"requested_support"`
	RequestedValue   decimal.Decimal `json:"requested_value"`
	ApprovedSupport  decimal.Decimal `json:"approved_support"`
	ApprovedValue    decimal.Decimal `json:"approved_value"`
	UsedSupport      decimal.Decimal `json:"used_support"`
	UsedValue        decimal.Decimal `json:"used_value"`
}

// SupportRequestPayload тело POST/PUT. id = 0 при создании.
type SupportRequestPayload struct {
	ID                 uint              `json:"id"`
	State              string            `json:"state" binding:"omitempty,oneof=Draft Submitted Approved Rejected Posted Canceled"`
	Reason             string            `json:"reason" binding:"omitempty,oneof=DC PS PR FB"`
	AccountExecutiveID uint              `json:"account_executive_id"`
	ManagerID          uint              `json:"manager_id"`
	StoreID            uint              `json:"store_id"`
	Comment            string            `json:"comment" binding:"max=1023"`
	LineItems          []LineItemPayload `json:"line_items"`
}

type LineItemResponse struct {
	LineItemPayload
	Product *ProductResponse `json:"product,omitempty"`
}

type StateChangeResponse struct {
	FromState string        `json:"from_state"`
	ToState   string        `json:"to_state"`
	Time      time.Time     `json:"time"`
	UserRole  string        `json:"user_role"`
	User      *UserResponse `json:"user,omitempty"`
}

type DocumentResponse struct {
	ID           uint      `json:"id"`
	SerialNumber int       `json:"serial_number"`
	State        int       `json:"state"`
	Date         time.Time `json:"date"`
}

type SupportRequestResponse struct {
	ID                 uint                  `json:"id"`
	SerialNumber       int                   `json:"serial_number"`
	Date               time.Time             `json:"date"`
	State              string                `json:"state"`
	Reason             string                `json:"reason"`
	AccountExecutiveID uint                  `json:"account_executive_id"`
	ManagerID          uint                  `json:"manager_id"`
	StoreID            uint                  `json:"store_id"`
	Comment            string                `json:"comment"`
	CreatedAt          time.Time             `json:"created_at"`
	ModifiedAt         time.Time             `json:"modified_at"`
	AccountExecutive   *UserResponse         `json:"account_executive,omitempty"`
	Manager            *UserResponse         `json:"manager,omitempty"`
	Store              *StoreResponse        `json:"store,omitempty"`
	LineItems          []LineItemResponse    `json:"line_items"`
	StateChanges       []StateChangeResponse `json:"state_changes,omitempty"`
	GeneratedDocuments []DocumentResponse    `json:"generated_documents,omitempty"`
}

// ListBag дополнительные данные страницы списка
type ListBag struct {
	Balance *decimal.Decimal `json:"balance,omitempty"`
}

type ListResponse struct {
	Skip       int                      `json:"skip"`
	Top        int                      `json:"top"`
	OrderBy    string                   `json:"orderby"`
	Desc       bool                     `json:"desc"`
	TotalCount int64                    `json:"total_count"`
	Data       []SupportRequestResponse `json:"data"`
	Bag        ListBag                  `json:"bag"`
}

// ListRequest параметры строки запроса списка
type ListRequest struct {
	Search          string `form:"search"`
	OrderBy         string `form:"orderby"`
	Desc            *bool  `form:"desc"`
	Skip            int    `form:"skip" binding:"gte=0"`
	Top             int    `form:"top" binding:"gte=0"`
	IncludeInactive bool   `form:"includeInactive"`
}

type BalanceResponse struct {
	UserID  uint            `json:"user_id"`
	Balance decimal.Decimal `json:"balance"`
}
