package common

// Storage slot names. They match the keys used by the browser version of
// Learnify so that a dump of the kv table can be loaded into localStorage.
const (
	SlotProgress    = "learnify_data_v1"
	SlotUsers       = "learnify_users"
	SlotCurrentUser = "learnify_current_user"
)

// GuestUser is the session identity used when nobody is logged in.
const GuestUser = "guest"
