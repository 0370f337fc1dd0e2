package kitcompanion

import (
	"fmt"
	"unicode"
)

// IdentityProvider describes the external authentication service the
// production system delegates sign-up, sign-in and session issuance to.
// The member login in this codebase is a stand-in gate in front of it; the
// configuration is carried so the login page can surface the account
// requirements and so deployment wiring lives in one place.
type IdentityProvider struct {
	UserPoolID     string         `yaml:"user_pool_id"`
	ClientID       string         `yaml:"client_id"`
	Region         string         `yaml:"region"`
	PasswordPolicy PasswordPolicy `yaml:"password_policy"`
}

// PasswordPolicy mirrors the provider's password-complexity settings.
type PasswordPolicy struct {
	MinLength                int  `yaml:"min_length"`
	RequireLowercase         bool `yaml:"require_lowercase"`
	RequireUppercase         bool `yaml:"require_uppercase"`
	RequireNumbers           bool `yaml:"require_numbers"`
	RequireSpecialCharacters bool `yaml:"require_special_characters"`
}

// DefaultPasswordPolicy is the policy the provider pool is configured
// with: minimum length 8, lowercase, uppercase and digit classes required,
// special characters not required.
func DefaultPasswordPolicy() PasswordPolicy {
	return PasswordPolicy{
		MinLength:        8,
		RequireLowercase: true,
		RequireUppercase: true,
		RequireNumbers:   true,
	}
}

// Validate checks a candidate password against the policy and returns the
// first violated rule.
func (p PasswordPolicy) Validate(password string) error {
	runes := []rune(password)
	if len(runes) < p.MinLength {
		return fmt.Errorf("password must be at least %d characters", p.MinLength)
	}
	var lower, upper, digit, special bool
	for _, r := range runes {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		default:
			special = true
		}
	}
	if p.RequireLowercase && !lower {
		return fmt.Errorf("password must contain a lowercase letter")
	}
	if p.RequireUppercase && !upper {
		return fmt.Errorf("password must contain an uppercase letter")
	}
	if p.RequireNumbers && !digit {
		return fmt.Errorf("password must contain a number")
	}
	if p.RequireSpecialCharacters && !special {
		return fmt.Errorf("password must contain a special character")
	}
	return nil
}

// Describe renders the policy as login-page help text.
func (p PasswordPolicy) Describe() string {
	s := fmt.Sprintf("At least %d characters", p.MinLength)
	if p.RequireLowercase {
		s += ", one lowercase letter"
	}
	if p.RequireUppercase {
		s += ", one uppercase letter"
	}
	if p.RequireNumbers {
		s += ", one number"
	}
	if p.RequireSpecialCharacters {
		s += ", one special character"
	}
	return s
}
