package models

import (
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/learnify/internal/common"
)

// CredentialRecord is created on registration and never updated.
type CredentialRecord struct {
	Password string `json:"password"`
}

// Credentials maps a username to its credential record.
type Credentials map[string]CredentialRecord

// DecodeCredentials parses the learnify_users slot. A missing slot yields an
// empty mapping; content that is not a JSON object yields an empty mapping
// and common.ErrorMalformedData.
func DecodeCredentials(raw []byte) (Credentials, error) {
	creds := Credentials{}
	if raw == nil {
		return creds, nil
	}

	var decoded Credentials
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return creds, fmt.Errorf("%w: %v", common.ErrorMalformedData, err)
	}
	if decoded == nil {
		// "null" decodes into a nil map
		return creds, nil
	}
	return decoded, nil
}

func (c Credentials) Encode() ([]byte, error) {
	return json.Marshal(c)
}
