package ds

import (
	"time"

	"tradesupport/internal/app/role"

	"github.com/shopspring/decimal"
)

// Заявка на поддержку. Ссылки хранятся как id, связанные записи подгружаются только явным Preload,
// при записи ассоциации всегда исключаются.
type SupportRequest struct {
	ID                 uint      `gorm:"primaryKey"`
	SerialNumber       int       `gorm:"uniqueIndex;not null"`
	Date               time.Time `gorm:"type:date;not null"`
	State              State     `gorm:"type:varchar(20);not null;index"`
	Reason             Reason    `gorm:"type:varchar(2);not null"`
	AccountExecutiveID uint      `gorm:"not null;index"`
	ManagerID          uint      `gorm:"not null;index"`
	StoreID            uint      `gorm:"not null;index"`
	Comment            string    `gorm:"type:varchar(1023)"`

	CreatedByID  uint      `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null"`
	ModifiedByID uint      `gorm:"not null"`
	ModifiedAt   time.Time `gorm:"not null"`

	AccountExecutive   *User                    `gorm:"foreignKey:AccountExecutiveID;constraint:OnDelete:RESTRICT"`
	Manager            *User                    `gorm:"foreignKey:ManagerID;constraint:OnDelete:RESTRICT"`
	Store              *Store                   `gorm:"foreignKey:StoreID;constraint:OnDelete:RESTRICT"`
	LineItems          []SupportRequestLineItem `gorm:"foreignKey:SupportRequestID;constraint:OnDelete:CASCADE"`
	StateChanges       []StateChange            `gorm:"foreignKey:SupportRequestID;constraint:OnDelete:CASCADE"`
	GeneratedDocuments []GeneratedDocument      `gorm:"foreignKey:SupportRequestID;constraint:OnDelete:CASCADE"`
}

// Строка заявки: три пары (ставка, сумма) для запрошенной, одобренной и использованной поддержки
type SupportRequestLineItem struct {
	ID               uint            `gorm:"primaryKey"`
	SupportRequestID uint            `gorm:"not null;index"`
	ProductID        *uint           `gorm:"index"`
	Quantity         decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	RequestedSupport decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	RequestedValue   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	ApprovedSupport  decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	ApprovedValue    decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	UsedSupport      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	UsedValue        decimal.Decimal `gorm:"type:decimal(18,2);not null"`

	Product *Product `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT"`
}

// История смены состояний, только добавление
type StateChange struct {
	ID               uint      `gorm:"primaryKey"`
	SupportRequestID uint      `gorm:"not null;index"`
	FromState        State     `gorm:"type:varchar(20);not null"`
	ToState          State     `gorm:"type:varchar(20);not null"`
	Time             time.Time `gorm:"not null"`
	UserID           uint      `gorm:"not null"`
	UserRole         role.Role `gorm:"type:varchar(32);not null"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT"`
}

// Кредит-нота, выпускается при каждом проведении заявки
type GeneratedDocument struct {
	ID               uint          `gorm:"primaryKey"`
	SupportRequestID uint          `gorm:"not null;uniqueIndex:idx_request_document_serial"`
	SerialNumber     int           `gorm:"not null;uniqueIndex:idx_request_document_serial"`
	State            DocumentState `gorm:"not null"`
	Date             time.Time     `gorm:"type:date;not null"`
	ArchiveKey       *string       `gorm:"type:varchar(255)"` // имя объекта в MinIO
}

// Voided аннулирована при отмене проведения
func (d GeneratedDocument) Voided() bool {
	return d.State == DocumentVoid
}

// TotalUsed сумма использованной поддержки по строкам
func (r *SupportRequest) TotalUsed() decimal.Decimal {
	total := decimal.Zero
	for _, line := range r.LineItems {
		total = total.Add(line.UsedValue)
	}
	return total
}
