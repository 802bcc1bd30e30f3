package repository

import "context"

// TransactionManager defines the interface for managing database transactions.
// This allows the use case layer to handle transactions without depending on a specific DB driver like GORM.
//
// The checkout commit path relies on it: the sale record write, the per-line
// stock decrements, and the loyalty credit all run inside one Execute call,
// so a failure at any step rolls the whole commit back rather than leaving
// inventory or loyalty state mutated without a durable record.
type TransactionManager interface {
	// Execute runs a function within a database transaction.
	// If the function returns an error, the transaction is rolled back. Otherwise, it's committed.
	// All repository operations within the function will use the same database transaction.
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory provides a way to get repository instances that are bound to a specific transaction.
// This ensures all repository operations within a transaction use the same database connection.
type RepositoryFactory interface {
	// ProductRepo returns a ProductRepository bound to the current transaction.
	ProductRepo() ProductRepository

	// CustomerRepo returns a CustomerRepository bound to the current transaction.
	CustomerRepo() CustomerRepository

	// SaleRepo returns a SaleRepository bound to the current transaction.
	SaleRepo() SaleRepository

	// StaffRepo returns a StaffRepository bound to the current transaction.
	StaffRepo() StaffRepository
}
