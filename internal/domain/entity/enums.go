package entity

import "strings"

type Gender int

const (
	GenderMale Gender = iota
	GenderFemale
)

type IDType int

const (
	IDTypeIDCard IDType = iota
	IDTypePassport
	IDTypeResidenceCard
	IDTypeDriverLicense
)

type KYCStatus int

const (
	KYCUnreviewed KYCStatus = iota
	KYCPassed
	KYCRefused
)

type AccountType int

const (
	AccountChecking AccountType = iota
	AccountSavings
)

type AccountStatus int

const (
	AccountActive AccountStatus = iota
	AccountFrozen
	AccountClosed
)

func (s AccountStatus) String() string {
	switch s {
	case AccountActive:
		return "Active"
	case AccountFrozen:
		return "Frozen"
	case AccountClosed:
		return "Closed"
	default:
		return "Unknown"
	}
}

type Currency string

const (
	CurrencyJPY Currency = "JPY"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyCNY Currency = "CNY"
	CurrencyHKD Currency = "HKD"
	CurrencyTWD Currency = "TWD"
)

var supportedCurrencies = map[Currency]struct{}{
	CurrencyJPY: {}, CurrencyUSD: {}, CurrencyEUR: {},
	CurrencyCNY: {}, CurrencyHKD: {}, CurrencyTWD: {},
}

// ParseCurrency falls back to JPY for unknown codes, matching how stored
// accounts with legacy values are presented.
func ParseCurrency(s string) Currency {
	c := Currency(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := supportedCurrencies[c]; ok {
		return c
	}
	return CurrencyJPY
}

func (c Currency) Validate() error {
	if _, ok := supportedCurrencies[c]; !ok {
		return ErrCurrencyNotSupported
	}
	return nil
}

type TransactionType int

const (
	TransactionDeposit TransactionType = iota
	TransactionWithdrawal
	TransactionTransfer
)

type TransactionStatus int

const (
	TransactionPending TransactionStatus = iota
	TransactionCompleted
	TransactionFailed
	TransactionReversed
)

type CardType int

const (
	CardDebit CardType = iota
	CardATM
)

type CardStatus int

const (
	CardActive CardStatus = iota
	CardInactive
	CardBlocked
	CardExpired
)
