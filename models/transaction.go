package models

import (
	"bytes"
	"encoding/json"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Transaction is a single income or expense record. It is written once and
// never updated.
type Transaction struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Amount      float64 `json:"amount" gorm:"type:double precision;not null"`
	Category    string  `json:"category" gorm:"not null"`
	Description string  `json:"description" gorm:"not null"`
	IsIncome    bool    `json:"is_income" gorm:"not null"`
	Date        string  `json:"date" gorm:"not null"`
}

func (Transaction) TableName() string {
	return "transactions"
}

// TransactionInput is the body of a create request. Pointers distinguish a
// missing (or null) field from its zero value.
type TransactionInput struct {
	Amount      *Amount `json:"amount" binding:"required"`
	Category    *string `json:"category" binding:"required"`
	Description *string `json:"description" binding:"required"`
	IsIncome    *bool   `json:"is_income" binding:"required"`
	Date        *string `json:"date" binding:"required"`
}

// Transaction converts a bound input into a record ready for insertion.
// It must only be called after binding succeeded.
func (in TransactionInput) Transaction() Transaction {
	return Transaction{
		Amount:      float64(*in.Amount),
		Category:    *in.Category,
		Description: *in.Description,
		IsIncome:    *in.IsIncome,
		Date:        *in.Date,
	}
}

// Amount is a monetary value. Besides JSON numbers it accepts strings holding
// a finite decimal number, which is what HTML form inputs post.
type Amount float64

func (a *Amount) UnmarshalJSON(data []byte) error {
	var f float64
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return &json.UnmarshalTypeError{Value: "string " + strconv.Quote(s), Type: reflect.TypeOf(f)}
		}
		*a = Amount(v)
		return nil
	}
	if err := json.Unmarshal(bytes.TrimSpace(data), &f); err != nil {
		return err
	}
	*a = Amount(f)
	return nil
}
