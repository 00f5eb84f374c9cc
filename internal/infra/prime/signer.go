package prime

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"strconv"
	"time"
)

// Signer produces Coinbase Prime request authentication headers.
type Signer struct {
	accessKey  string
	signingKey []byte
	passphrase string
}

// NewSigner creates a signer for one API key.
func NewSigner(accessKey, signingKey, passphrase string) *Signer {
	return &Signer{
		accessKey:  accessKey,
		signingKey: []byte(signingKey),
		passphrase: passphrase,
	}
}

// Sign returns base64(HMAC-SHA256(timestamp + method + path + body)).
// path must not include the query string.
func (s *Signer) Sign(timestamp, method, path, body string) string {
	mac := hmac.New(sha256.New, s.signingKey)
	mac.Write([]byte(timestamp + method + path + body))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// Apply sets the authentication headers on req.
func (s *Signer) Apply(req *http.Request, now time.Time, body string) {
	timestamp := strconv.FormatInt(now.Unix(), 10)

	req.Header.Set("X-CB-ACCESS-KEY", s.accessKey)
	req.Header.Set("X-CB-ACCESS-PASSPHRASE", s.passphrase)
	req.Header.Set("X-CB-ACCESS-TIMESTAMP", timestamp)
	req.Header.Set("X-CB-ACCESS-SIGNATURE", s.Sign(timestamp, req.Method, req.URL.Path, body))
	req.Header.Set("Content-Type", "application/json")
}
