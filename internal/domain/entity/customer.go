package entity

import "time"

type Customer struct {
	ID            int64
	Name          string
	Gender        *Gender
	BirthDate     time.Time
	IDType        *IDType
	IDNumber      string
	Address       string
	Phone         string
	Email         string
	KYCStatus     KYCStatus
	CreatedAt     *time.Time
	UpdatedAt     *time.Time
	DeletedAt     *time.Time
	IsDeleted     bool
	DeletedReason string
}

type CustomerAuth struct {
	CustomerID       int64
	LoginID          string
	PasswordHash     string
	TwoFactorEnabled bool
	CreatedAt        *time.Time
	UpdatedAt        *time.Time
	DeletedAt        *time.Time
	IsDeleted        bool
}
