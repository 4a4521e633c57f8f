// Copyright 2026 The Clay Authors
// SPDX-License-Identifier: Apache-2.0

// Package identity derives user ids and validates user records.
//
// A user id is the standard, padded base64 encoding of
// "username@provider". The auth level travels in the record value and
// never contributes to the id.
package identity

import (
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/claycms/claycli/lib/node"
)

// Record keys of a user.
const (
	UsernameKey = "username"
	ProviderKey = "provider"
	AuthKey     = "auth"
)

// ValidationMessage is the error text for an incomplete user record.
const ValidationMessage = "Cannot bootstrap users without username, provider, and auth level"

// ValidationError reports a user record that lacks one of its required
// fields. Its message is always [ValidationMessage]; Index and Missing
// are there for callers that want to point at the offending record.
type ValidationError struct {
	// Index is the position of the record in its section, or -1.
	Index int
	// Missing names the first absent, empty or non-string field.
	Missing string
}

func (e *ValidationError) Error() string {
	return ValidationMessage
}

// User is a validated user record.
type User struct {
	Username string
	Provider string
	Auth     string
}

// UserID returns the id of the user with the given name and provider.
func UserID(username, provider string) string {
	return base64.StdEncoding.EncodeToString([]byte(username + "@" + provider))
}

// ID returns the user's id.
func (u User) ID() string {
	return UserID(u.Username, u.Provider)
}

// Record returns the normalized three-field record of the user.
func (u User) Record() *node.Record {
	record := node.NewRecord()
	record.Set(UsernameKey, node.Scalar(u.Username))
	record.Set(ProviderKey, node.Scalar(u.Provider))
	record.Set(AuthKey, node.Scalar(u.Auth))
	return record
}

// FromNode validates a user value. Anything other than a record with
// three non-empty string fields yields a *ValidationError.
func FromNode(value node.Node) (User, error) {
	record := value.Record()
	if record == nil {
		return User{}, &ValidationError{Index: -1, Missing: UsernameKey}
	}
	return FromRecord(record)
}

// FromRecord validates a user record.
func FromRecord(record *node.Record) (User, error) {
	var user User
	for _, field := range []struct {
		key    string
		target *string
	}{
		{UsernameKey, &user.Username},
		{ProviderKey, &user.Provider},
		{AuthKey, &user.Auth},
	} {
		value, _ := record.Get(field.key)
		text, ok := value.Text()
		if !ok || text == "" {
			return User{}, &ValidationError{Index: -1, Missing: field.key}
		}
		*field.target = text
	}
	return user, nil
}

// ValidateAll validates every user value in order and returns the
// first failure with its index set.
func ValidateAll(values []node.Node) ([]User, error) {
	users := make([]User, 0, len(values))
	for index, value := range values {
		user, err := FromNode(value)
		if err != nil {
			var validation *ValidationError
			if errors.As(err, &validation) {
				validation.Index = index
			}
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// String implements fmt.Stringer for log output.
func (u User) String() string {
	return fmt.Sprintf("%s@%s (%s)", u.Username, u.Provider, u.Auth)
}
