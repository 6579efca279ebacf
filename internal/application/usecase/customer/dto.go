package customer

import (
	"time"

	"github.com/DioGolang/GoBank/internal/domain/entity"
)

// Input

type Profile struct {
	Name      string           `json:"name" validate:"required,max=100"`
	Gender    *entity.Gender   `json:"gender,omitempty" validate:"omitempty,min=0,max=1"`
	BirthDate time.Time        `json:"birth_date"`
	IDType    *entity.IDType   `json:"id_type,omitempty" validate:"omitempty,min=0,max=3"`
	IDNumber  string           `json:"id_number" validate:"max=50"`
	Address   string           `json:"address" validate:"max=200"`
	Phone     string           `json:"phone" validate:"max=30"`
	Email     string           `json:"email" validate:"omitempty,email"`
	KYCStatus entity.KYCStatus `json:"kyc_status" validate:"min=0,max=2"`
}

type RegisterInput struct {
	Profile          Profile `json:"customer" validate:"required"`
	LoginID          string  `json:"login_id" validate:"max=100"`
	Password         string  `json:"password" validate:"required,min=8"`
	TwoFactorEnabled bool    `json:"two_factor_enabled"`
}

// ModifyInput replaces the customer profile. A blank LoginID falls back to
// the customer name and a blank Password keeps the stored one.
type ModifyInput struct {
	CustomerID       int64   `json:"customer_id" validate:"required,gt=0"`
	Profile          Profile `json:"customer" validate:"required"`
	LoginID          string  `json:"login_id" validate:"max=100"`
	Password         string  `json:"password" validate:"omitempty,min=8"`
	TwoFactorEnabled bool    `json:"two_factor_enabled"`
}

type RemoveInput struct {
	CustomerID int64  `json:"customer_id" validate:"required,gt=0"`
	Reason     string `json:"reason" validate:"max=200"`
}

type KYCInput struct {
	CustomerID int64            `json:"customer_id" validate:"required,gt=0"`
	Status     entity.KYCStatus `json:"status" validate:"min=0,max=2"`
}

// Output

type Output struct {
	ID        int64            `json:"id"`
	Name      string           `json:"name"`
	Gender    *entity.Gender   `json:"gender,omitempty"`
	BirthDate *time.Time       `json:"birth_date,omitempty"`
	IDType    *entity.IDType   `json:"id_type,omitempty"`
	IDNumber  string           `json:"id_number"`
	Address   string           `json:"address"`
	Phone     string           `json:"phone"`
	Email     string           `json:"email"`
	KYCStatus entity.KYCStatus `json:"kyc_status"`
	CreatedAt *time.Time       `json:"created_at,omitempty"`
	UpdatedAt *time.Time       `json:"updated_at,omitempty"`
}

func (o Output) AuditTargetID() int64 { return o.ID }

func (p Profile) toEntity() *entity.Customer {
	return &entity.Customer{
		Name:      p.Name,
		Gender:    p.Gender,
		BirthDate: p.BirthDate,
		IDType:    p.IDType,
		IDNumber:  p.IDNumber,
		Address:   p.Address,
		Phone:     p.Phone,
		Email:     p.Email,
		KYCStatus: p.KYCStatus,
	}
}

func toOutput(c *entity.Customer) Output {
	out := Output{
		ID:        c.ID,
		Name:      c.Name,
		Gender:    c.Gender,
		IDType:    c.IDType,
		IDNumber:  c.IDNumber,
		Address:   c.Address,
		Phone:     c.Phone,
		Email:     c.Email,
		KYCStatus: c.KYCStatus,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	if !c.BirthDate.IsZero() {
		birth := c.BirthDate
		out.BirthDate = &birth
	}
	return out
}
