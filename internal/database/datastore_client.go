package database

import (
	"context"
	"fmt"

	"cloud.google.com/go/datastore"
	"github.com/procurehub/procurement-gateway/pkg/poexcel"
)

const logoKind = "TemplateLogo"

// logoDoc is the Datastore document holding one template's logo image
type logoDoc struct {
	Data      []byte `datastore:"Data,noindex"`
	Extension string `datastore:"Extension"`
}

// LogoStore serves template logo assets from GCP Datastore. It implements
// poexcel.LogoSource; a nil store or client simply reports absence
// upstream through an error.
type LogoStore struct {
	client *datastore.Client
}

// WrapLogoStore wraps an existing datastore client
func WrapLogoStore(client *datastore.Client) *LogoStore {
	if client == nil {
		return nil
	}
	return &LogoStore{client: client}
}

// FetchLogo loads the logo document keyed by template identifier
func (s *LogoStore) FetchLogo(ctx context.Context, templateType string) (*poexcel.LogoAsset, error) {
	if s == nil || s.client == nil {
		return nil, fmt.Errorf("logo store is not configured")
	}

	var doc logoDoc
	key := datastore.NameKey(logoKind, templateType, nil)
	if err := s.client.Get(ctx, key, &doc); err != nil {
		return nil, fmt.Errorf("fetching logo %q: %w", templateType, err)
	}

	return &poexcel.LogoAsset{Data: doc.Data, Extension: doc.Extension}, nil
}

// SaveLogo stores a logo document; used by the seeder, not the server
func (s *LogoStore) SaveLogo(ctx context.Context, templateType string, data []byte, extension string) error {
	if s == nil || s.client == nil {
		return fmt.Errorf("logo store is not configured")
	}

	key := datastore.NameKey(logoKind, templateType, nil)
	_, err := s.client.Put(ctx, key, &logoDoc{Data: data, Extension: extension})
	return err
}
