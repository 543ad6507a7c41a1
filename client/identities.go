// Copyright 2026 The Shimmer Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// IdentityAccess is an identity's access level.
type IdentityAccess string

const (
	AdminAccess     IdentityAccess = "admin"
	ReadAccess      IdentityAccess = "read"
	MetricsAccess   IdentityAccess = "metrics"
	UntrustedAccess IdentityAccess = "untrusted"
)

// maskedSecret is the sentinel in BasicIdentity.Password: the
// identities listing never reveals password hashes.
const maskedSecret = "*****"

// BasicIdentity configures password-based authentication for an
// identity.
type BasicIdentity struct {
	// Password is the sha512-crypt hash when writing identities. When
	// read back via Identities it is always the maskedSecret
	// sentinel; the CLI never reveals stored hashes.
	Password string `yaml:"password"`
}

// LocalIdentity configures peer-credential authentication for an
// identity.
type LocalIdentity struct {
	// UserID is nil when read back via Identities: the listing shows
	// only which authentication types an identity has, not their
	// parameters.
	UserID *int `yaml:"user-id"`
}

// Identity describes one named identity.
type Identity struct {
	Access IdentityAccess `yaml:"access"`
	Basic  *BasicIdentity `yaml:"basic,omitempty"`
	Local  *LocalIdentity `yaml:"local,omitempty"`
}

// noIdentitiesOutput is the exact line the tool prints when no
// identities exist.
const noIdentitiesOutput = "No identities."

// Identities returns all identities by name.
//
// The listing exposes access level and authentication types only;
// BasicIdentity.Password holds a masked sentinel and
// LocalIdentity.UserID is nil. Full parameters would require the
// socket API.
func (c *Client) Identities(ctx context.Context) (map[string]*Identity, error) {
	res, err := c.runChecked(ctx, &invocation{args: []string{"identities"}})
	if err != nil {
		return nil, err
	}

	identities := make(map[string]*Identity)
	lines := outputLines(res.stdout)
	if len(lines) == 0 || lines[0] == noIdentitiesOutput {
		return identities, nil
	}

	// Name   Access  Types
	// alice  admin   basic,local
	for _, line := range lines[1:] {
		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}
		identity := &Identity{Access: IdentityAccess(fields[1])}
		for _, authType := range strings.Split(fields[2], ",") {
			switch authType {
			case "basic":
				identity.Basic = &BasicIdentity{Password: maskedSecret}
			case "local":
				identity.Local = &LocalIdentity{}
			}
		}
		identities[fields[0]] = identity
	}
	return identities, nil
}

// identitiesFile is the YAML document the update-identities subcommand
// consumes. A nil entry removes the identity in replace mode.
type identitiesFile struct {
	Identities map[string]*Identity `yaml:"identities"`
}

// ReplaceIdentities replaces the named identities wholesale. Entries
// with a nil Identity are removed. Unnamed identities are unaffected.
func (c *Client) ReplaceIdentities(ctx context.Context, identities map[string]*Identity) error {
	if len(identities) == 0 {
		return fmt.Errorf("identities map cannot be empty")
	}
	for name := range identities {
		if name == "" {
			return fmt.Errorf("identity name cannot be empty")
		}
	}
	data, err := yaml.Marshal(&identitiesFile{Identities: identities})
	if err != nil {
		return fmt.Errorf("serialize identities: %w", err)
	}
	path, cleanup, err := writeTempFile("identities-*.yaml", data)
	if err != nil {
		return err
	}
	defer cleanup()

	_, err = c.runChecked(ctx, &invocation{args: []string{"update-identities", "--from", path, "--replace"}})
	return err
}

// RemoveIdentities removes the named identities.
func (c *Client) RemoveIdentities(ctx context.Context, names []string) error {
	if err := validateNames("identities", names); err != nil {
		return err
	}
	removals := make(map[string]*Identity, len(names))
	for _, name := range names {
		removals[name] = nil
	}
	return c.ReplaceIdentities(ctx, removals)
}
