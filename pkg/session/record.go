package session

import (
	"encoding/json"
	"errors"
	"fmt"
)

// StorageKey is the fixed identifier the session record is stored under.
const StorageKey = "eagl_auth"

// ErrInvalidRecord is returned when a stored record can't be used.
var ErrInvalidRecord = errors.New("session: invalid record")

// Record is the persisted form of a session.
type Record struct {
	Token                string `json:"token"`
	User                 *User  `json:"user"`
	SupportMode          bool   `json:"supportMode,omitempty"`
	ImpersonatedTenantID string `json:"impersonatedTenantId,omitempty"`
}

// Marshal encodes the record as JSON.
func (r Record) Marshal() ([]byte, error) {
	if err := r.validate(); err != nil {
		return nil, err
	}
	return json.Marshal(r)
}

// UnmarshalRecord decodes and validates a JSON record.
func UnmarshalRecord(data []byte) (Record, error) {
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	if err := r.validate(); err != nil {
		return Record{}, err
	}
	return r, nil
}

func (r Record) validate() error {
	if r.Token == "" || r.User == nil {
		return fmt.Errorf("%w: token and user are required", ErrInvalidRecord)
	}
	return nil
}

func recordFromState(s state) Record {
	u := *s.user
	return Record{
		Token:                s.token,
		User:                 &u,
		SupportMode:          s.supportMode,
		ImpersonatedTenantID: s.impersonatedTenantID,
	}
}
