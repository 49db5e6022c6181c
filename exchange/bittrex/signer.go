package bittrex

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
)

//
// sign computes the value of the "apisign" header for the provided fully-qualified request URL. It
// is the hex-encoded HMAC-SHA512 of the URL, keyed with the account's API secret.
//
func sign(secret []byte, requestURL string) string {
	mac := hmac.New(sha512.New, secret)
	_, _ = mac.Write([]byte(requestURL))

	return hex.EncodeToString(mac.Sum(nil))
}

//
// VerifySignature reports whether the provided signature was produced for exactly the provided
// request URL with the provided secret.
//
func VerifySignature(secret []byte, requestURL string, signature string) bool {
	expected, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}

	mac := hmac.New(sha512.New, secret)
	_, _ = mac.Write([]byte(requestURL))

	return hmac.Equal(mac.Sum(nil), expected)
}
