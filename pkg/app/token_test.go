package app

import (
	"testing"
	"time"
)

func TestTokenManager_GenerateAndParse(t *testing.T) {
	cfg := TokenConfig{
		SecretKey: "user-secret",
		Expiry:    24 * time.Hour,
		Issuer:    "user-issuer",
	}
	tm := NewTokenManager(cfg)

	uid := int64(1001)
	username := "testuser"
	ip := "127.0.0.1"

	// 1. 测试生成和解析
	token, err := tm.Generate(uid, username, ip)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	parsedUser, err := tm.Parse(token)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	// 验证字段
	if parsedUser.UID != uid {
		t.Errorf("Expected UID %d, got %d", uid, parsedUser.UID)
	}
	if parsedUser.Username != username {
		t.Errorf("Expected Username %s, got %s", username, parsedUser.Username)
	}
	if parsedUser.IP != ip {
		t.Errorf("Expected IP %s, got %s", ip, parsedUser.IP)
	}
	if parsedUser.Issuer != cfg.Issuer {
		t.Errorf("Expected Issuer %s, got %s", cfg.Issuer, parsedUser.Issuer)
	}

	// 2. 测试过期
	shortExpiryCfg := cfg
	shortExpiryCfg.Expiry = -1 * time.Second
	tmExpired := NewTokenManager(shortExpiryCfg)

	expiredToken, err := tmExpired.Generate(uid, username, ip)
	if err != nil {
		t.Fatalf("Generate (expired) failed: %v", err)
	}

	_, err = tm.Parse(expiredToken)
	if err == nil {
		t.Error("Expected error for expired token, but got nil")
	}

	// 3. 测试错误的密钥
	wrongKeyCfg := cfg
	wrongKeyCfg.SecretKey = "wrong-user-secret"
	tmWrongKey := NewTokenManager(wrongKeyCfg)

	wrongToken, _ := tmWrongKey.Generate(uid, username, ip)
	_, err = tm.Parse(wrongToken)
	if err == nil {
		t.Error("Expected error for token generated with different secret key, but got nil")
	}

	// 4. 测试篡改后的 Token
	tamperedToken := token + "xyz"
	_, err = tm.Parse(tamperedToken)
	if err == nil {
		t.Error("Expected error for tampered user token, but got nil")
	}
}

func TestParseTokenWithKey(t *testing.T) {
	cfg := TokenConfig{
		SecretKey: "shared-secret",
		Expiry:    time.Hour,
	}
	tm := NewTokenManager(cfg)

	token, err := tm.Generate(7, "alice", "10.0.0.1")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	// 中间件路径：只有密钥字符串，没有 TokenManager 实例
	user, err := ParseTokenWithKey(token, "shared-secret")
	if err != nil {
		t.Fatalf("ParseTokenWithKey failed: %v", err)
	}
	if user.UID != 7 || user.Username != "alice" {
		t.Errorf("Unexpected claims: %+v", user)
	}

	if _, err := ParseTokenWithKey(token, "other-secret"); err == nil {
		t.Error("Expected error for mismatched secret key, but got nil")
	}
}
