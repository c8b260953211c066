package nickname

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		nickname string
		email    string
		want     bool
	}{
		{name: "contiguous family name", nickname: "Jane Smith", email: "smitj@school.edu", want: true},
		{name: "upper case nickname", nickname: "JANE SMITH", email: "smitj@school.edu", want: true},
		{name: "non-contiguous token", nickname: "Jane Smith", email: "jsmith@school.edu", want: true},
		{name: "wrong family name", nickname: "Jane Doe", email: "smitj@school.edu", want: false},
		{name: "missing initial", nickname: "Smith", email: "smitj@school.edu", want: false},
		{name: "garbage nickname", nickname: "xyz123", email: "jsmith@school.edu", want: false},
		{name: "empty nickname", nickname: "", email: "smitj@school.edu", want: false},
		{name: "empty email", nickname: "Jane Smith", email: "", want: false},
		{name: "no at sign", nickname: "Jane Smith", email: "smitj", want: false},
		{name: "empty local part", nickname: "Jane Smith", email: "@school.edu", want: false},
		{name: "short local part", nickname: "Jo Li", email: "lij@school.edu", want: false},
		{name: "digit at initial offset", nickname: "Jane Smith", email: "smit1@school.edu", want: false},
		{name: "token cut at separator", nickname: "Jo Ngo", email: "ngo.j@school.edu", want: true},
		{name: "token cut at separator mismatch", nickname: "Jo Li", email: "ng_xj@school.edu", want: false},
		{name: "surrounding whitespace in email", nickname: "Jane Smith", email: "  smitj@school.edu ", want: true},
		{name: "unicode folding", nickname: "Jörg Müller", email: "MÜLLJ@school.edu", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Validate(tt.nickname, tt.email))
		})
	}
}

func TestFallback(t *testing.T) {
	tests := []struct {
		name   string
		email  string
		length int
		want   string
	}{
		{name: "short local part", email: "jsmith@school.edu", length: 8, want: "jsmith"},
		{name: "long local part", email: "averyverylongname@school.edu", length: 8, want: "averyver"},
		{name: "default length", email: "averyverylongname@school.edu", length: 0, want: "averyver"},
		{name: "custom length", email: "smitj@school.edu", length: 3, want: "smi"},
		{name: "surrounding spaces", email: "  jsmith@school.edu ", length: 8, want: "jsmith"},
		{name: "no at sign", email: "no-at-sign", length: 8, want: ""},
		{name: "missing local part", email: "@x", length: 8, want: ""},
		{name: "empty", email: "", length: 8, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Fallback(tt.email, tt.length))
		})
	}
}

func TestTarget(t *testing.T) {
	assert.Equal(t, "Jane Smith", Target("Jane Smith", "jsmith@school.edu", 8))
	assert.Equal(t, "jsmith", Target("xyz123", "jsmith@school.edu", 8))
	assert.Empty(t, Target("Jane Smith", "", 8))
	assert.Empty(t, Target("Jane Smith", "@x", 8))
}
