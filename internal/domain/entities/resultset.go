package entities

// RawResultSet holds an executed query's output exactly as the store returned
// it: ordered column names and rows of untyped values.
type RawResultSet struct {
	Columns []string
	Rows    [][]interface{}
}
