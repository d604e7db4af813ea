package controllers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// CryptoController signs bridge request query strings. The bridge
// verifies the HMAC over the encoded query, timestamp included.
type CryptoController struct {
	secretKey string
}

func NewCryptoController(secretKey string) *CryptoController {
	return &CryptoController{
		secretKey: secretKey,
	}
}

func (c *CryptoController) GetSignature(query string) string {
	h := hmac.New(sha256.New, []byte(c.secretKey))
	h.Write([]byte(query))

	return hex.EncodeToString(h.Sum(nil))
}
