package securestore

import (
	"context"
	"errors"

	"payquick/internal/logging"
	"payquick/internal/security"
)

const DefaultPrefix = "payquick_encrypted_"

// Logical keys
const (
	KeyCart            = "cart"
	KeyLastTransaction = "lastTransaction"
)

// Result is the outcome of a read.
type Result int

const (
	Found Result = iota
	NotFound
	Corrupted   // blob present but could not be decrypted or parsed
	Unavailable // backend read failed
)

func (r Result) String() string {
	switch r {
	case Found:
		return "found"
	case NotFound:
		return "not_found"
	case Corrupted:
		return "corrupted"
	case Unavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// Store encrypts values and writes them under <prefix><key>. No method
// returns an error: failures are logged and reported as false or as a
// non-Found Result.
type Store struct {
	backend Backend
	cipher  *security.Cipher
	prefix  string
	log     logging.Logger
}

func New(backend Backend, cipher *security.Cipher, prefix string, log logging.Logger) *Store {
	return &Store{
		backend: backend,
		cipher:  cipher,
		prefix:  prefix,
		log:     log,
	}
}

// Scoped returns a Store sharing backend and cipher whose prefix is
// extended with scope, so that independent clients do not share keys.
func (s *Store) Scoped(scope string) *Store {
	return &Store{
		backend: s.backend,
		cipher:  s.cipher,
		prefix:  s.prefix + scope + "_",
		log:     s.log.With("scope", scope),
	}
}

// Key is the backend key for a logical key.
func (s *Store) Key(key string) string {
	return s.prefix + key
}

// Save encrypts v and writes it. It reports false on any failure.
func (s *Store) Save(ctx context.Context, key string, v any) bool {
	blob, err := s.cipher.Encrypt(v)
	if err != nil {
		s.log.Error(ctx, "secure store: encrypt failed", "key", key, "error", err)
		return false
	}
	if err := s.backend.Set(ctx, s.Key(key), blob); err != nil {
		s.log.Error(ctx, "secure store: write failed", "key", key, "error", err)
		return false
	}
	return true
}

// Load reads and decrypts key into dst, telling apart a missing key from a
// blob that cannot be opened.
func (s *Store) Load(ctx context.Context, key string, dst any) Result {
	blob, err := s.backend.Get(ctx, s.Key(key))
	if errors.Is(err, ErrNotFound) {
		return NotFound
	}
	if err != nil {
		s.log.Error(ctx, "secure retrieve: read failed", "key", key, "error", err)
		return Unavailable
	}
	if blob == "" {
		return NotFound
	}

	if err := s.cipher.Decrypt(blob, dst); err != nil {
		s.log.Error(ctx, "secure retrieve: decrypt failed", "key", key, "error", err)
		return Corrupted
	}
	return Found
}

// Retrieve is the collapsed view of Load: it reports whether dst was
// filled, treating never-written and unreadable keys alike.
func (s *Store) Retrieve(ctx context.Context, key string, dst any) bool {
	return s.Load(ctx, key, dst) == Found
}

// Remove deletes key. It reports false on failure.
func (s *Store) Remove(ctx context.Context, key string) bool {
	if err := s.backend.Delete(ctx, s.Key(key)); err != nil {
		s.log.Error(ctx, "secure remove failed", "key", key, "error", err)
		return false
	}
	return true
}
