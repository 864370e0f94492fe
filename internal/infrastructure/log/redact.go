package log

import (
	"crypto/sha256"
	"encoding/hex"
)

// RedactToken 将设备令牌替换为可关联但不可逆的短哈希
func RedactToken(token string) string {
	if token == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(token))
	return "sha256:" + hex.EncodeToString(sum[:])[:12]
}
