package users

import "fmt"

// Logger is the minimal logging surface the package needs. It is satisfied
// by goliatone/go-logger loggers and by test fakes.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Store holds user records and guards them for concurrent use.
type Store interface {
	// GetAll returns the page-th slice (1-based) of up to size records,
	// ordered by ascending id. Out-of-range values fall back to defaults.
	GetAll(page, size int) []User
	// GetByID looks up a record; absence is not an error.
	GetByID(id int) (*User, bool)
	// Add allocates the next sequential id and stores a new record.
	Add(name, email string) *User
	// Update replaces the record wholesale, preserving the id. It reports
	// whether the id existed.
	Update(id int, name, email string) bool
	// Delete removes the record, reporting whether the id existed.
	Delete(id int) bool
	// Len reports the number of stored records.
	Len() int
}

// TokenRegistry is the process-wide set of valid bearer tokens.
type TokenRegistry interface {
	IsValid(token string) bool
	Issue() string
}

type defLogger struct{}

func (d defLogger) Error(msg string, args ...any) { d.print("ERR", msg, args...) }
func (d defLogger) Warn(msg string, args ...any)  { d.print("WRN", msg, args...) }
func (d defLogger) Info(msg string, args ...any)  { d.print("INF", msg, args...) }
func (d defLogger) Debug(msg string, args ...any) { d.print("DBG", msg, args...) }

func (defLogger) print(level, msg string, args ...any) {
	fmt.Printf("[%s] USERS %s", level, msg)
	for i := 0; i+1 < len(args); i += 2 {
		fmt.Printf(" %v=%v", args[i], args[i+1])
	}
	fmt.Println()
}
