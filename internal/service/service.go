// Package service contains the business logic.
//
// It sits between the commands and the repository layer.
// It validates input, calls repository methods to interact
// with the data and logs the outcome.
package service
