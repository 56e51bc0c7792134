// Package signer produces OpenPGP signatures for generated reports.
package signer

import (
	"fmt"
	"os"

	"github.com/ralt/pluginstats/internal/models"
	"github.com/ralt/pluginstats/internal/utils"
	"github.com/sirupsen/logrus"
)

// SignatureExt is appended to a signed file's path
const SignatureExt = ".asc"

// Signer creates detached signatures
type Signer interface {
	// SignDetached returns an armored detached signature of data
	SignDetached(data []byte) ([]byte, error)

	// PublicKey returns the armored public key
	PublicKey() ([]byte, error)
}

// SignFile writes an armored detached signature next to path and returns
// the signature path
func SignFile(s Signer, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", models.NewError(models.ErrSigning, path, err)
	}

	sig, err := s.SignDetached(data)
	if err != nil {
		return "", models.NewError(models.ErrSigning, path, err)
	}

	sigPath := path + SignatureExt
	if err := utils.WriteFile(sigPath, sig, 0644); err != nil {
		return "", models.NewError(models.ErrSigning, sigPath, fmt.Errorf("failed to write signature: %w", err))
	}
	logrus.Debugf("Signed %s", path)
	return sigPath, nil
}
