// Package secrets stores bot tokens encrypted at rest, keyed by bot id.
// Tokens never touch the SQLite database; the bots table only carries a
// reference to this vault.
package secrets

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/dmitrijs2005/photokeeper/internal/common"
	"github.com/dmitrijs2005/photokeeper/internal/cryptox"
)

var (
	// ErrWrongPassphrase means the vault file exists but the derived key
	// does not match its verifier.
	ErrWrongPassphrase = errors.New("wrong vault passphrase")
)

// TokenVault is the credential store the upload service resolves tokens
// from.
type TokenVault interface {
	SaveToken(botID, token string) error
	GetToken(botID string) (string, error)
	DeleteToken(botID string) error
}

// vaultFile is the on-disk layout: argon2 salt and key verifier in the
// clear, token map AES-GCM encrypted.
type vaultFile struct {
	Salt     []byte `json:"salt"`
	Verifier []byte `json:"verifier"`
	Nonce    []byte `json:"nonce"`
	Data     []byte `json:"data"`
}

// FileVault is a file-backed TokenVault, safe for concurrent use: the
// auto-backup watcher reads tokens while the REPL may be registering bots.
type FileVault struct {
	mu     sync.Mutex
	path   string
	key    []byte
	tokens map[string]string
}

// OpenFileVault opens (or initializes) the vault at path using a key
// derived from passphrase. A new vault gets a random salt; an existing one
// is decrypted and verified, returning ErrWrongPassphrase on mismatch.
func OpenFileVault(path string, passphrase []byte) (*FileVault, error) {

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		salt := common.GenerateRandByteArray(16)
		v := &FileVault{
			path:   path,
			key:    cryptox.DeriveMasterKey(passphrase, salt),
			tokens: map[string]string{},
		}
		if err := v.save(salt); err != nil {
			return nil, err
		}
		return v, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read vault: %w", err)
	}

	var vf vaultFile
	if err := json.Unmarshal(data, &vf); err != nil {
		return nil, fmt.Errorf("failed to parse vault: %w", err)
	}

	key := cryptox.DeriveMasterKey(passphrase, vf.Salt)
	if !bytes.Equal(cryptox.MakeVerifier(key), vf.Verifier) {
		return nil, ErrWrongPassphrase
	}

	tokens := map[string]string{}
	if len(vf.Data) > 0 {
		if err := cryptox.DecryptEntry(vf.Data, vf.Nonce, key, &tokens); err != nil {
			return nil, fmt.Errorf("failed to decrypt vault: %w", err)
		}
	}

	return &FileVault{path: path, key: key, tokens: tokens}, nil
}

func (v *FileVault) SaveToken(botID, token string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.tokens[botID] = token
	return v.persist()
}

func (v *FileVault) GetToken(botID string) (string, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	token, ok := v.tokens[botID]
	if !ok {
		return "", common.ErrorTokenMissing
	}
	return token, nil
}

func (v *FileVault) DeleteToken(botID string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	delete(v.tokens, botID)
	return v.persist()
}

func (v *FileVault) persist() error {
	var vf vaultFile
	data, err := os.ReadFile(v.path)
	if err != nil {
		return fmt.Errorf("failed to read vault: %w", err)
	}
	if err := json.Unmarshal(data, &vf); err != nil {
		return fmt.Errorf("failed to parse vault: %w", err)
	}
	return v.save(vf.Salt)
}

func (v *FileVault) save(salt []byte) error {
	ciphertext, nonce, err := cryptox.EncryptEntry(v.tokens, v.key)
	if err != nil {
		return fmt.Errorf("failed to encrypt vault: %w", err)
	}

	vf := vaultFile{
		Salt:     salt,
		Verifier: cryptox.MakeVerifier(v.key),
		Nonce:    nonce,
		Data:     ciphertext,
	}

	data, err := json.Marshal(vf)
	if err != nil {
		return err
	}

	return os.WriteFile(v.path, data, 0o600)
}
