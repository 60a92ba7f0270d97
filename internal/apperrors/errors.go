package apperrors

import "errors"

// Error kinds surfaced by the ledger. Every mutating call either fully
// applies its effects or fails with exactly one of these. Handlers map them
// to HTTP statuses with errors.Is; services may wrap them with extra detail.

// ErrUnauthorized indicates the caller lacks the required role for the operation.
var ErrUnauthorized = errors.New("caller is not authorized")

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrInvalidState indicates the campaign is not in a state that permits the operation.
var ErrInvalidState = errors.New("invalid campaign state")

// ErrInvalidParameters indicates that input data failed validation checks.
var ErrInvalidParameters = errors.New("invalid parameters")

// ErrInvalidPayment indicates the attached value does not satisfy the payment policy.
var ErrInvalidPayment = errors.New("invalid payment amount")

// ErrBanned indicates the caller is barred from creating campaigns.
var ErrBanned = errors.New("entrepreneur is banned")

// ErrContractInactive indicates the ledger has been irreversibly shut down.
var ErrContractInactive = errors.New("contract is no longer active")

// ErrOverfunded indicates the campaign has already reached its share target.
var ErrOverfunded = errors.New("campaign is fully subscribed")

// ErrNothingToRefund indicates the caller has no refund balance to claim.
var ErrNothingToRefund = errors.New("no refund balance to claim")

// ErrNothingToWithdraw indicates there are no collected fees to withdraw.
var ErrNothingToWithdraw = errors.New("no fees to withdraw")

// ErrInvalidAddress indicates a malformed or zero ledger address.
var ErrInvalidAddress = errors.New("invalid address")
