// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("account_type", validateAccountType)
		_ = v.RegisterValidation("investment_type", validateInvestmentType)
		_ = v.RegisterValidation("loan_type", validateLoanType)
		_ = v.RegisterValidation("payment_type", validatePaymentType)
		_ = v.RegisterValidation("extra_frequency", validateExtraFrequency)
		_ = v.RegisterValidation("trend_window", validateTrendWindow)
	}
}

func validateAccountType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "checking", "savings", "cash":
		return true
	}
	return false
}

func validateInvestmentType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "stock", "etf", "crypto", "retirement":
		return true
	}
	return false
}

func validateLoanType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "mortgage", "auto", "personal", "student":
		return true
	}
	return false
}

func validatePaymentType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "regular", "extra":
		return true
	}
	return false
}

func validateExtraFrequency(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "monthly", "annual":
		return true
	}
	return false
}

func validateTrendWindow(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "1m", "3m", "6m", "1y", "all":
		return true
	}
	return false
}
