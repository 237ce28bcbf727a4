package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword bcrypt 哈希（盐由 bcrypt 内部生成并编码进结果）
func HashPassword(pw string) string {
	b, _ := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	return string(b)
}

// CheckPassword 用存储哈希校验明文密码
func CheckPassword(pw, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(pw)) == nil
}
