package utils

import (
	"crypto/rand"
	"strings"

	"github.com/google/uuid"
)

const tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// RandomString 生成 n 位加密随机字符串（用于 remember-me 令牌等）。
// 拒绝采样保证各字符等概率，直接取模会偏向字母表前段
func RandomString(n int) string {
	// 248 = 62*4，是 256 以内最大的 62 的倍数
	const limit = byte(len(tokenAlphabet) * (256 / len(tokenAlphabet)))
	var b strings.Builder
	b.Grow(n)
	buf := make([]byte, n)
	for b.Len() < n {
		_, _ = rand.Read(buf)
		for _, c := range buf {
			if c >= limit {
				continue
			}
			b.WriteByte(tokenAlphabet[int(c)%len(tokenAlphabet)])
			if b.Len() == n {
				break
			}
		}
	}
	return b.String()
}

// NewUUID 账号对外标识，会话里只存这个，不存自增 id
func NewUUID() string { return uuid.NewString() }

// NewID 无连字符短 id（会话 id 等内部用途）
func NewID() string { return strings.ReplaceAll(uuid.NewString(), "-", "") }
