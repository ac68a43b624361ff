package settingsstore

// Settings is the key/value access the store needs. settings.Repository
// satisfies it.
type Settings interface {
	Get(key string) (value string, found bool, err error)
	Set(key, value string) error
}

// SettingsStore exposes typed, derived values on top of raw settings.
type SettingsStore struct {
	db Settings
}

func New(db Settings) *SettingsStore {
	return &SettingsStore{db: db}
}

// getString returns the stored value or "" when missing or unreadable.
func (s *SettingsStore) getString(key string) string {
	value, found, err := s.db.Get(key)
	if err != nil || !found {
		return ""
	}
	return value
}
