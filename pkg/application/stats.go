package application

// Stats summarises a user's applications. Statuses that never occur are
// absent from ByStatus, and Total always equals the sum of ByStatus.
type Stats struct {
	Total    int            `json:"total"`
	ByStatus map[Status]int `json:"byStatus"`
}

// Tally counts statuses.
func Tally(statuses []Status) Stats {
	st := Stats{ByStatus: make(map[Status]int)}
	for _, s := range statuses {
		st.ByStatus[s]++
		st.Total++
	}
	return st
}
