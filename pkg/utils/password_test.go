package utils

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	h := HashPassword("secret")
	if h == "" || h == "secret" {
		t.Fatalf("hash = %q", h)
	}
	if !CheckPassword("secret", h) {
		t.Fatal("correct password rejected")
	}
	if CheckPassword("wrong", h) {
		t.Fatal("wrong password accepted")
	}
}

// 同一口令两次哈希盐不同，结果不同，但都能校验过
func TestHashPasswordSalted(t *testing.T) {
	h1 := HashPassword("secret")
	h2 := HashPassword("secret")
	if h1 == h2 {
		t.Fatal("identical hashes, salt missing")
	}
	if !CheckPassword("secret", h1) || !CheckPassword("secret", h2) {
		t.Fatal("hash does not verify")
	}
}
