package bank

import "fmt"

var balance float64

// AnAccountWith opens the account.
// @step ^an account with \$([\d.]+)$
func AnAccountWith(amount float64) {
	balance = amount
}

// @step `^I deposit \$([\d.]+)$`
func IDeposit(amount float64) {
	balance += amount
}

// @step ^the balance is \$([\d.]+)$
func TheBalanceIs(expected float64) error {
	if balance != expected {
		return fmt.Errorf("expected %.2f, got %.2f", expected, balance)
	}
	return nil
}

// Helper is not a step.
func Helper() string {
	return "helper"
}
