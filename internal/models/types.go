package models

// Entry describes one item in a remote directory listing. Entries are
// ephemeral, they only exist for the duration of a listing or stat call.
type Entry struct {
	Name  string `json:"name"`
	Size  int64  `json:"size"`
	IsDir bool   `json:"is_dir"`
}

type CaseListing struct {
	Host       string  `json:"host"`
	CaseNumber string  `json:"case_number"`
	Entries    []Entry `json:"entries"`
	EntryCount int     `json:"entry_count"`
}

type ErrorResponse struct {
	Error     string `json:"error"`
	Timestamp string `json:"timestamp"`
	Command   string `json:"command"`
}
