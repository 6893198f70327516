package security

import (
	"testing"
	"time"
)

func newTestSessionTokens(lifetime time.Duration) *SessionTokens {
	return NewSessionTokens([]byte("test-secret-test-secret-test-sec"), "mta-backend", lifetime)
}

func TestSessionTokens_IssueAndValidate(t *testing.T) {
	p := newTestSessionTokens(time.Hour)
	token, err := p.Issue("sess-1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	sid, err := p.Validate(token)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if sid != "sess-1" {
		t.Errorf("session id = %q, want sess-1", sid)
	}
}

func TestSessionTokens_Expired(t *testing.T) {
	p := newTestSessionTokens(-time.Minute)
	token, err := p.Issue("sess-1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := p.Validate(token); err != ErrInvalidToken {
		t.Errorf("expired token: err = %v, want ErrInvalidToken", err)
	}
}

func TestSessionTokens_WrongSecret(t *testing.T) {
	p := newTestSessionTokens(time.Hour)
	token, _ := p.Issue("sess-1")

	other := NewSessionTokens([]byte("another-secret-another-secret-00"), "mta-backend", time.Hour)
	if _, err := other.Validate(token); err != ErrInvalidToken {
		t.Errorf("wrong secret: err = %v, want ErrInvalidToken", err)
	}
}

func TestSessionTokens_Garbage(t *testing.T) {
	p := newTestSessionTokens(time.Hour)
	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := p.Validate(tok); err != ErrInvalidToken {
			t.Errorf("Validate(%q): err = %v, want ErrInvalidToken", tok, err)
		}
	}
}
