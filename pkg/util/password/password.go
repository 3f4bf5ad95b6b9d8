// Package password 封装 bcrypt 密码哈希
package password

import (
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

// MaxBytes bcrypt 只处理前 72 字节
const MaxBytes = 72

// Truncate 将密码截断到 72 字节以内，且不留下半个 UTF-8 字符
func Truncate(plain string) string {
	b := []byte(plain)
	if len(b) <= MaxBytes {
		return plain
	}
	b = b[:MaxBytes]
	for len(b) > 0 && b[len(b)-1]&0xC0 == 0x80 {
		b = b[:len(b)-1]
	}
	// 去掉失去后续字节的多字节首字节
	for len(b) > 0 && !utf8.Valid(b) {
		b = b[:len(b)-1]
	}
	return string(b)
}

// Hash 生成 bcrypt 哈希
func Hash(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(Truncate(plain)), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify 校验明文与哈希是否匹配
func Verify(plain, hash string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(Truncate(plain))) == nil
}
