package domain

// Office is a room identified by its number.
type Office struct {
	Number  int64
	Name    string
	Housing string
	Floor   *int32
}

// Worker is an employee who may submit requests.
type Worker struct {
	ID             int64
	Name           string
	Number         string
	DepartmentID   *int64
	DepartmentName *string
}
