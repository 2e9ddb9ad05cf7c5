// Package models defines the persisted data of Learnify: the credential
// mapping kept in slot learnify_users and the RootDocument kept in slot
// learnify_data_v1. JSON field names match the browser version byte for byte.
package models
