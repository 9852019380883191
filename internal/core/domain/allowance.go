package domain

// AllowanceDescription is the description booked on every weekly allowance deposit.
const AllowanceDescription = "Wöchentliches Taschengeld"

// AllowanceResult summarises one run of the weekly allowance job.
type AllowanceResult struct {
	Success           bool     `json:"success"`
	AccountsProcessed int      `json:"accountsProcessed"`
	AccountsSkipped   int      `json:"accountsSkipped"`
	Errors            []string `json:"errors"`
	DryRun            bool     `json:"dryRun"`
}
