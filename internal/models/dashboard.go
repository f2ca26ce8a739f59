package models

// TabStatus describes the outcome of rendering one source
type TabStatus string

const (
	TabReady  TabStatus = "ready"
	TabAbsent TabStatus = "absent"
	TabFailed TabStatus = "failed"
)

// Section groups the output produced for one bank, scheme, UAN or ISIN
type Section struct {
	Title  string  `json:"title,omitempty"`
	Text   string  `json:"text,omitempty"`
	Tables []Table `json:"tables"`
	Chart  *Chart  `json:"chart,omitempty"`
}

// Tab is the rendered content of one source for one account
type Tab struct {
	Source   Source    `json:"-"`
	Key      string    `json:"key"`
	Label    string    `json:"label"`
	Status   TabStatus `json:"status"`
	Notice   string    `json:"notice,omitempty"`
	Sections []Section `json:"sections,omitempty"`
}

// Dashboard is one full render for the selected account
type Dashboard struct {
	Title     string   `json:"title"`
	Accounts  []string `json:"accounts"`
	Selected  string   `json:"selected,omitempty"`
	ActiveTab string   `json:"active_tab,omitempty"`
	Notice    string   `json:"notice,omitempty"`
	Tabs      []Tab    `json:"tabs"`
}
