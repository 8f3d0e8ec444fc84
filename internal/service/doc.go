// Package service implements the account, report and signal operations on
// top of the repositories. Every error it returns is an *apperr.Error.
package service
