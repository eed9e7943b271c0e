// Package models defines the client-side view of directory data: contacts,
// the resolved session and the create/edit form payload.
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ID is an opaque contact identifier. The backend currently emits numbers,
// but the client never does arithmetic on it.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	s, err := flexString(b)
	if err != nil {
		return fmt.Errorf("contact id: %w", err)
	}
	*id = ID(s)
	return nil
}

func (id ID) String() string { return string(id) }

// Version is the contact's updatedAt value. It is compared for equality only
// and doubles as the cache-busting token of the picture URL.
type Version string

func (v *Version) UnmarshalJSON(b []byte) error {
	s, err := flexString(b)
	if err != nil {
		return fmt.Errorf("contact version: %w", err)
	}
	*v = Version(s)
	return nil
}

// flexString accepts a JSON string, number or null.
func flexString(b []byte) (string, error) {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return "", nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		err := json.Unmarshal(b, &s)
		return s, err
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return "", err
	}
	return n.String(), nil
}

// Weather is the optional enrichment attached by the backend.
type Weather struct {
	Location           string  `json:"location,omitempty"`
	Description        string  `json:"description"`
	TemperatureCelsius float64 `json:"temperatureCelsius"`
}

// Contact is a read-only snapshot of one directory entry.
type Contact struct {
	ID            ID       `json:"id"`
	Name          string   `json:"name"`
	Address       string   `json:"address"`
	OwnerUsername string   `json:"ownerUsername"`
	HasPicture    bool     `json:"hasPicture"`
	PictureURL    string   `json:"pictureUrl,omitempty"`
	UpdatedAt     Version  `json:"updatedAt"`
	Weather       *Weather `json:"weather,omitempty"`
}

// UnmarshalJSON treats a non-empty pictureUrl as hasPicture, so both response
// shapes the backend has used are understood.
func (c *Contact) UnmarshalJSON(b []byte) error {
	type plain Contact
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	p.HasPicture = p.HasPicture || p.PictureURL != ""
	*c = Contact(p)
	return nil
}

// ParseID converts user input into an ID. Ids are opaque, so only values
// that would break the request path are rejected.
func ParseID(s string) (ID, error) {
	if s == "" {
		return "", fmt.Errorf("empty contact id")
	}
	if strings.ContainsAny(s, " \t/?#") {
		return "", fmt.Errorf("invalid contact id %q", s)
	}
	return ID(s), nil
}

// FindContact returns the contact with the given id, if present.
func FindContact(contacts []Contact, id ID) (Contact, bool) {
	for _, c := range contacts {
		if c.ID == id {
			return c, true
		}
	}
	return Contact{}, false
}
