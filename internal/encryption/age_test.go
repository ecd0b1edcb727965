package encryption_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fv-go/internal/config"
	"fv-go/internal/encryption"
)

func newTestAgeEncryptor(t *testing.T) *encryption.AgeEncryptor {
	t.Helper()
	dir := t.TempDir()
	return encryption.NewAgeEncryptor(config.EncryptionConfig{
		PublicKeyPath:  filepath.Join(dir, "keys", "fv.pub"),
		PrivateKeyPath: filepath.Join(dir, "keys", "fv.key"),
	})
}

func TestAgeEncryptor_Setup(t *testing.T) {
	dir := t.TempDir()
	pubPath := filepath.Join(dir, "keys", "fv.pub")
	privPath := filepath.Join(dir, "keys", "fv.key")
	enc := encryption.NewAgeEncryptor(config.EncryptionConfig{
		PublicKeyPath:  pubPath,
		PrivateKeyPath: privPath,
	})

	if enc.IsConfigured() {
		t.Fatal("IsConfigured() = true before Setup")
	}

	if err := enc.Setup("correct horse"); err != nil {
		t.Fatalf("Setup() error = %v", err)
	}

	if !enc.IsConfigured() {
		t.Error("IsConfigured() = false after Setup")
	}

	pubData, err := os.ReadFile(pubPath)
	if err != nil {
		t.Fatalf("reading public key: %v", err)
	}
	if !strings.HasPrefix(string(pubData), "age1") {
		t.Errorf("public key does not look like an age recipient: %q", pubData)
	}

	privInfo, err := os.Stat(privPath)
	if err != nil {
		t.Fatalf("stat private key: %v", err)
	}
	if got := privInfo.Mode().Perm(); got != 0o600 {
		t.Errorf("private key mode = %o, want 600", got)
	}
	privData, err := os.ReadFile(privPath)
	if err != nil {
		t.Fatalf("reading private key: %v", err)
	}
	if strings.Contains(string(privData), "AGE-SECRET-KEY-") {
		t.Error("private key stored in plaintext")
	}
}

func TestAgeEncryptor_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"short text", []byte("hello, world")},
		{"empty", []byte{}},
		{"binary", bytes.Repeat([]byte{0x00, 0xff, 0x42}, 1000)},
	}

	enc := newTestAgeEncryptor(t)
	if err := enc.Setup("test passphrase"); err != nil {
		t.Fatalf("Setup() error = %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ciphertext bytes.Buffer
			if err := enc.Encrypt(bytes.NewReader(tt.data), &ciphertext); err != nil {
				t.Fatalf("Encrypt() error = %v", err)
			}
			if len(tt.data) > 0 && bytes.Contains(ciphertext.Bytes(), tt.data) {
				t.Error("ciphertext contains plaintext")
			}

			dec, err := enc.Unlock("test passphrase")
			if err != nil {
				t.Fatalf("Unlock() error = %v", err)
			}

			var plaintext bytes.Buffer
			if err := dec.Decrypt(&ciphertext, &plaintext); err != nil {
				t.Fatalf("Decrypt() error = %v", err)
			}
			if !bytes.Equal(plaintext.Bytes(), tt.data) {
				t.Error("round trip changed the data")
			}
		})
	}
}

func TestAgeEncryptor_Unlock(t *testing.T) {
	t.Run("wrong passphrase fails", func(t *testing.T) {
		enc := newTestAgeEncryptor(t)
		if err := enc.Setup("right"); err != nil {
			t.Fatalf("Setup() error = %v", err)
		}

		if _, err := enc.Unlock("wrong"); err == nil {
			t.Fatal("Unlock() expected error for wrong passphrase")
		}
	})

	t.Run("before setup fails", func(t *testing.T) {
		enc := newTestAgeEncryptor(t)
		if _, err := enc.Unlock("any"); err == nil {
			t.Fatal("Unlock() expected error before Setup")
		}
	})
}

func TestAgeEncryptor_EncryptBeforeSetup(t *testing.T) {
	enc := newTestAgeEncryptor(t)
	var out bytes.Buffer
	if err := enc.Encrypt(strings.NewReader("data"), &out); err == nil {
		t.Fatal("Encrypt() expected error before Setup")
	}
}
