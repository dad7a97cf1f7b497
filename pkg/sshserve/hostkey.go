package sshserve

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"

	gossh "golang.org/x/crypto/ssh"
)

// HostSigner loads the host key at path. When the file does not exist a new
// ed25519 key is generated and, unless path is empty, saved there.
func HostSigner(path string) (gossh.Signer, error) {
	if path != "" {
		b, err := os.ReadFile(path)
		if err == nil {
			signer, err := gossh.ParsePrivateKey(b)
			if err != nil {
				return nil, fmt.Errorf("sshserve: host key %s: %w", path, err)
			}
			return signer, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("sshserve: host key: %w", err)
		}
	}

	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("sshserve: generate host key: %w", err)
	}
	if path != "" {
		der, err := x509.MarshalPKCS8PrivateKey(key)
		if err != nil {
			return nil, fmt.Errorf("sshserve: encode host key: %w", err)
		}
		block := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})
		if err := os.WriteFile(path, block, 0600); err != nil {
			return nil, fmt.Errorf("sshserve: save host key: %w", err)
		}
	}
	return gossh.NewSignerFromKey(key)
}
