package util

import (
	"crypto/md5"
	"encoding/hex"
)

// Md5ThenHex is a quick content fingerprint
func Md5ThenHex(value []byte) string {
	hasher := md5.New()
	hasher.Write(value)
	return hex.EncodeToString(hasher.Sum(nil))
}
