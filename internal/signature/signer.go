package signature

import (
	"crypto/x509"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/rezonia/ubl-reader/internal/model"
)

// SignerInfo contains certificate subject information decoded from the
// embedded X509Certificate. The certificate is only decoded, never checked
// against a trust store.
type SignerInfo struct {
	// Common name (CN)
	Name string `json:"name"`

	// Organization (O)
	Organization string `json:"organization,omitempty"`

	// Certificate serial number
	SerialNumber string `json:"serial_number"`

	// Issuer common name
	Issuer string `json:"issuer"`

	// Certificate validity period
	ValidFrom time.Time `json:"valid_from"`
	ValidTo   time.Time `json:"valid_to"`
}

// Signer decodes the certificate carried by sig
func Signer(sig model.Signature) (*SignerInfo, error) {
	if sig.X509Certificate == "" {
		return nil, fmt.Errorf("no X509Certificate found in signature")
	}

	der, err := base64.StdEncoding.DecodeString(stripSpace(sig.X509Certificate))
	if err != nil {
		return nil, fmt.Errorf("failed to decode certificate: %w", err)
	}

	cert, err := x509.ParseCertificate(der)
	if err != nil {
		return nil, fmt.Errorf("failed to parse certificate: %w", err)
	}

	return signerFromCertificate(cert), nil
}

func signerFromCertificate(cert *x509.Certificate) *SignerInfo {
	signer := &SignerInfo{
		Name:         cert.Subject.CommonName,
		SerialNumber: cert.SerialNumber.String(),
		ValidFrom:    cert.NotBefore,
		ValidTo:      cert.NotAfter,
	}

	if len(cert.Subject.Organization) > 0 {
		signer.Organization = cert.Subject.Organization[0]
	}

	if cert.Issuer.CommonName != "" {
		signer.Issuer = cert.Issuer.CommonName
	} else if len(cert.Issuer.Organization) > 0 {
		signer.Issuer = cert.Issuer.Organization[0]
	}

	return signer
}

// certificates are usually wrapped at 76 columns
func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r':
			return -1
		}
		return r
	}, s)
}
