package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/sercha-connect/internal/core/domain"
	"github.com/custodia-labs/sercha-connect/internal/core/ports/driven"
)

// jsonNull is the JSON representation of null.
const jsonNull = "null"

// authStore implements driven.AuthStore.
type authStore struct {
	store *Store
}

var _ driven.AuthStore = (*authStore)(nil)

// Get retrieves the auth stored for a connector.
// Returns nil and no error if nothing is stored.
func (s *authStore) Get(ctx context.Context, connectorID string) (*domain.ConnectorAuth, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT kind, credentials, scopes, expires_at
		FROM connector_auth WHERE connector_id = ?
	`, connectorID)

	auth, err := scanAuth(row)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	return auth, err
}

// Save stores or replaces the auth for a connector.
func (s *authStore) Save(ctx context.Context, connectorID string, auth domain.ConnectorAuth) error {
	if connectorID == "" {
		return domain.ErrInvalidInput
	}

	credsJSON, err := json.Marshal(auth.Credentials)
	if err != nil {
		return fmt.Errorf("marshalling credentials: %w", err)
	}
	scopesJSON, err := json.Marshal(auth.Scopes)
	if err != nil {
		return fmt.Errorf("marshalling scopes: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO connector_auth (connector_id, kind, credentials, scopes, expires_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(connector_id) DO UPDATE SET
			kind = excluded.kind,
			credentials = excluded.credentials,
			scopes = excluded.scopes,
			expires_at = excluded.expires_at,
			updated_at = excluded.updated_at
	`, connectorID, string(auth.Kind), string(credsJSON), string(scopesJSON),
		formatNullableTime(auth.ExpiresAt), time.Now().UTC().Format(timeFormat))

	if err != nil {
		return fmt.Errorf("saving auth: %w", err)
	}
	return nil
}

// Delete removes the auth stored for a connector.
func (s *authStore) Delete(ctx context.Context, connectorID string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM connector_auth WHERE connector_id = ?", connectorID)
	if err != nil {
		return fmt.Errorf("deleting auth: %w", err)
	}
	return nil
}

// List returns the connector ids with stored auth.
func (s *authStore) List(ctx context.Context) ([]string, error) {
	rows, err := s.store.db.QueryContext(ctx, "SELECT connector_id FROM connector_auth ORDER BY connector_id")
	if err != nil {
		return nil, fmt.Errorf("querying auth: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning auth: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating auth: %w", err)
	}
	return ids, nil
}

// scanAuth scans a single connector_auth row.
func scanAuth(row *sql.Row) (*domain.ConnectorAuth, error) {
	var (
		auth       domain.ConnectorAuth
		kind       string
		credsJSON  string
		scopesJSON sql.NullString
		expiresAt  sql.NullString
	)

	if err := row.Scan(&kind, &credsJSON, &scopesJSON, &expiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning auth: %w", err)
	}

	auth.Kind = domain.AuthKind(kind)
	if err := json.Unmarshal([]byte(credsJSON), &auth.Credentials); err != nil {
		return nil, fmt.Errorf("unmarshalling credentials: %w", err)
	}
	if scopesJSON.Valid && scopesJSON.String != jsonNull {
		if err := json.Unmarshal([]byte(scopesJSON.String), &auth.Scopes); err != nil {
			return nil, fmt.Errorf("unmarshalling scopes: %w", err)
		}
	}
	auth.ExpiresAt = parseNullableTime(expiresAt)

	return &auth, nil
}
