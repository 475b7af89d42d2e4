package localfs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/uezdny/konditer/internal/domain"
)

// Store keeps the serialized cart in a single JSON file. It is the only
// component that touches the filesystem for cart state.
type Store struct {
	path string
}

func New(dir string) *Store {
	return &Store{path: filepath.Join(dir, domain.CartStorageKey+".json")}
}

// Load reads the stored cart. A missing file is an empty cart. A value that
// does not parse as a line-item array is discarded: the file is cleared and
// an empty cart returned, never an error.
func (s *Store) Load(ctx context.Context) (domain.Cart, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return domain.Cart{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read cart: %w", err)
	}

	cart, err := domain.ParseCart(data)
	if err != nil {
		log.Warn().Err(err).Str("path", s.path).Msg("discarding corrupt cart state")
		_ = os.Remove(s.path)
		return domain.Cart{}, nil
	}
	return cart, nil
}

// Save overwrites the stored value in one step: the cart is written to a
// temp file and renamed over the old one, so a reader never sees a partial
// write.
func (s *Store) Save(ctx context.Context, cart domain.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), domain.CartStorageKey+"-*.tmp")
	if err != nil {
		return fmt.Errorf("temp cart file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write cart: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close cart file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace cart file: %w", err)
	}
	return nil
}

func (s *Store) Clear(ctx context.Context) error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
