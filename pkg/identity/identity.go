package identity

import (
	"fmt"
	"time"

	"github.com/benmeehan/ble-overlap/pkg/file"
	"github.com/google/uuid"
)

// Identity holds the scanning station's unique identifier and metadata.
type Identity struct {
	ID        string    `json:"station_id"`
	Name      string    `json:"station_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// StationIdentityInterface defines methods for managing the station identity.
type StationIdentityInterface interface {
	Load() error
	GetStationID() string
	GetIdentity() *Identity
}

// StationIdentity persists the station identity in a JSON file so that reports
// from the same host share a station ID across runs.
type StationIdentity struct {
	identityFile string
	name         string
	identity     Identity
	fileOps      file.FileOperations
}

// NewStationIdentity initializes a new StationIdentity. name overrides the stored name when set.
func NewStationIdentity(filePath, name string, fileOps file.FileOperations) *StationIdentity {
	return &StationIdentity{
		identityFile: filePath,
		name:         name,
		fileOps:      fileOps,
	}
}

// Load reads the identity file, creating it with a fresh ID on first run.
func (s *StationIdentity) Load() error {
	exists, err := s.fileOps.IsFileExists(s.identityFile)
	if err != nil {
		return fmt.Errorf("failed to stat identity file: %w", err)
	}

	if exists {
		if err := s.fileOps.ReadJsonFile(s.identityFile, &s.identity); err != nil {
			return fmt.Errorf("failed to read identity file: %w", err)
		}
	}

	changed := false
	if s.identity.ID == "" {
		s.identity.ID = uuid.NewString()
		s.identity.CreatedAt = time.Now().UTC()
		changed = true
	}
	if s.name != "" && s.identity.Name != s.name {
		s.identity.Name = s.name
		changed = true
	}

	if changed {
		if err := s.fileOps.WriteJsonFile(s.identityFile, s.identity); err != nil {
			return fmt.Errorf("failed to write identity file: %w", err)
		}
	}

	return nil
}

// GetStationID returns the current station ID.
func (s *StationIdentity) GetStationID() string {
	return s.identity.ID
}

// GetIdentity returns the current station Identity.
func (s *StationIdentity) GetIdentity() *Identity {
	return &s.identity
}
