package password

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHash(t *testing.T) {
	hasher := NewHasher(bcrypt.MinCost)

	tests := []struct {
		name     string
		password string
	}{
		{
			name:     "regular password",
			password: "Password123",
		},
		{
			name:     "password with special chars",
			password: "p@ssw0rd!@#$%^&*()",
		},
		{
			name:     "long password",
			password: "verylongpasswordwithmorethanfiftycharacters1234567",
		},
		{
			name:     "short password",
			password: "short",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotHash, err := hasher.Hash(tt.password)
			if err != nil {
				t.Fatalf("Hash() error = %v", err)
			}
			if gotHash == "" {
				t.Error("Hash() returned empty hash")
			}
			if !Compare(gotHash, tt.password) {
				t.Error("generated hash doesn't match original password")
			}
		})
	}
}

func TestHash_Salted(t *testing.T) {
	hasher := NewHasher(bcrypt.MinCost)

	hash1, err := hasher.Hash("same_password")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	hash2, err := hasher.Hash("same_password")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if hash1 == hash2 {
		t.Error("two hashes of the same password should differ")
	}
}

func TestCompare(t *testing.T) {
	hasher := NewHasher(bcrypt.MinCost)

	correctHash, err := hasher.Hash("correct_password")
	if err != nil {
		t.Fatalf("failed to create test hash: %v", err)
	}

	tests := []struct {
		name        string
		hash        string
		password    string
		shouldMatch bool
	}{
		{
			name:        "matching password",
			hash:        correctHash,
			password:    "correct_password",
			shouldMatch: true,
		},
		{
			name:        "wrong password",
			hash:        correctHash,
			password:    "wrong_password",
			shouldMatch: false,
		},
		{
			name:        "empty password",
			hash:        correctHash,
			password:    "",
			shouldMatch: false,
		},
		{
			name:        "malformed hash does not panic",
			hash:        "not-a-bcrypt-hash",
			password:    "correct_password",
			shouldMatch: false,
		},
		{
			name:        "empty hash",
			hash:        "",
			password:    "correct_password",
			shouldMatch: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compare(tt.hash, tt.password); got != tt.shouldMatch {
				t.Errorf("Compare() = %v, want %v", got, tt.shouldMatch)
			}
		})
	}
}

func TestNewHasher_CostOutOfRange(t *testing.T) {
	hasher := NewHasher(99)
	if hasher.cost != bcrypt.DefaultCost {
		t.Errorf("cost = %d, want default %d", hasher.cost, bcrypt.DefaultCost)
	}
}
