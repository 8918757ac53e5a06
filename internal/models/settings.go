package models

// Settings holds the persisted application preferences.
type Settings struct {
	Timezone        string `json:"timezone"`         // IANA name, "" or "Local" means system timezone
	DefaultPriority string `json:"default_priority"` // priority assigned to new skills
}
