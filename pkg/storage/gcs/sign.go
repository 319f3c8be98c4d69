package gcs

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const storageHost = "https://storage.googleapis.com"

var errNoSigningKey = errors.New("gcs client has no signing credentials")

// SignedUploadURL returns a V2 signed URL authorizing a single PUT of the
// object with the given content type. The caller must send the same
// Content-Type header or the upload is rejected.
func (c *Client) SignedUploadURL(objectKey, contentType string, expiry time.Duration) (string, error) {
	return c.signedURL(http.MethodPut, objectKey, contentType, expiry)
}

// SignedDownloadURL returns a V2 signed URL authorizing a single GET of the object.
func (c *Client) SignedDownloadURL(objectKey string, expiry time.Duration) (string, error) {
	return c.signedURL(http.MethodGet, objectKey, "", expiry)
}

// PublicURL returns the unsigned object URL. Only useful when the bucket
// grants public read access.
func (c *Client) PublicURL(objectKey string) string {
	if c == nil {
		return ""
	}
	return fmt.Sprintf("%s/%s/%s", storageHost, c.defaultBucket, escapeObjectKey(objectKey))
}

func (c *Client) signedURL(verb, objectKey, contentType string, expiry time.Duration) (string, error) {
	if c == nil || c.signKey == nil || c.signEmail == "" {
		return "", errNoSigningKey
	}
	if strings.TrimSpace(objectKey) == "" {
		return "", errors.New("object key is required")
	}
	if expiry <= 0 {
		return "", errors.New("expiry must be positive")
	}

	expires := time.Now().Add(expiry).Unix()
	resource := fmt.Sprintf("/%s/%s", c.defaultBucket, objectKey)
	toSign := strings.Join([]string{
		verb,
		"", // Content-MD5 not enforced
		contentType,
		strconv.FormatInt(expires, 10),
		resource,
	}, "\n")

	hash := sha256.Sum256([]byte(toSign))
	signature, err := rsa.SignPKCS1v15(rand.Reader, c.signKey, crypto.SHA256, hash[:])
	if err != nil {
		return "", fmt.Errorf("signing url: %w", err)
	}

	q := url.Values{}
	q.Set("GoogleAccessId", c.signEmail)
	q.Set("Expires", strconv.FormatInt(expires, 10))
	q.Set("Signature", base64.StdEncoding.EncodeToString(signature))

	return fmt.Sprintf("%s/%s/%s?%s", storageHost, c.defaultBucket, escapeObjectKey(objectKey), q.Encode()), nil
}

// escapeObjectKey escapes each path segment while keeping slashes intact.
func escapeObjectKey(key string) string {
	parts := strings.Split(key, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}
