package catalog

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"sort"
	"strings"
	"time"
)

const (
	signingAlgorithm = "AWS4-HMAC-SHA256"
	signingService   = "ProductAdvertisingAPI"
)

// signer produces HMAC request signatures in the AWS Signature Version 4
// format the catalog API requires.
type signer struct {
	accessKey string
	secretKey string
	region    string

	now func() time.Time // injectable for deterministic tests
}

func newSigner(accessKey, secretKey, region string) *signer {
	return &signer{
		accessKey: accessKey,
		secretKey: secretKey,
		region:    region,
		now:       time.Now,
	}
}

// Sign computes the request signature over the headers and payload and
// sets the X-Amz-Date and Authorization headers.
func (s *signer) Sign(req *http.Request, payload []byte) {
	now := s.now().UTC()
	amzDate := now.Format("20060102T150405Z")
	dateStamp := now.Format("20060102")

	req.Header.Set("X-Amz-Date", amzDate)

	payloadHash := hexSHA256(payload)
	canonicalHeaders, signedHeaders := canonicalizeHeaders(req)

	canonicalRequest := strings.Join([]string{
		req.Method,
		req.URL.EscapedPath(),
		req.URL.RawQuery,
		canonicalHeaders,
		signedHeaders,
		payloadHash,
	}, "\n")

	scope := strings.Join([]string{dateStamp, s.region, signingService, "aws4_request"}, "/")
	stringToSign := strings.Join([]string{
		signingAlgorithm,
		amzDate,
		scope,
		hexSHA256([]byte(canonicalRequest)),
	}, "\n")

	signingKey := s.deriveKey(dateStamp)
	signature := hex.EncodeToString(hmacSHA256(signingKey, stringToSign))

	req.Header.Set("Authorization", signingAlgorithm+
		" Credential="+s.accessKey+"/"+scope+
		", SignedHeaders="+signedHeaders+
		", Signature="+signature)
}

// deriveKey walks the SigV4 key derivation chain:
// date -> region -> service -> terminal.
func (s *signer) deriveKey(dateStamp string) []byte {
	key := hmacSHA256([]byte("AWS4"+s.secretKey), dateStamp)
	key = hmacSHA256(key, s.region)
	key = hmacSHA256(key, signingService)
	return hmacSHA256(key, "aws4_request")
}

// canonicalizeHeaders builds the canonical header block and the
// semicolon-joined signed header list. The Host header is always included.
func canonicalizeHeaders(req *http.Request) (canonical, signed string) {
	names := []string{"host"}
	values := map[string]string{"host": req.Host}
	if values["host"] == "" {
		values["host"] = req.URL.Host
	}

	for name := range req.Header {
		lower := strings.ToLower(name)
		switch lower {
		case "content-encoding", "content-type":
			names = append(names, lower)
			values[lower] = strings.TrimSpace(req.Header.Get(name))
		default:
			if strings.HasPrefix(lower, "x-amz-") {
				names = append(names, lower)
				values[lower] = strings.TrimSpace(req.Header.Get(name))
			}
		}
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		b.WriteString(name)
		b.WriteByte(':')
		b.WriteString(values[name])
		b.WriteByte('\n')
	}
	return b.String(), strings.Join(names, ";")
}

func hexSHA256(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func hmacSHA256(key []byte, data string) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(data))
	return mac.Sum(nil)
}
