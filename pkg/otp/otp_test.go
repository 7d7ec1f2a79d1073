package otp

import (
	"testing"
	"time"
)

func TestIssueAndVerify(t *testing.T) {
	s := NewStore(10*time.Minute, 5)
	defer s.Stop()

	code, err := s.Issue("user@example.com")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if len(code) != codeDigits {
		t.Fatalf("code length = %d, want %d", len(code), codeDigits)
	}

	if err := s.Verify("user@example.com", code); err != nil {
		t.Fatalf("Verify() error = %v", err)
	}

	// Codes are single use.
	if err := s.Verify("user@example.com", code); err != ErrCodeNotFound {
		t.Errorf("second Verify() error = %v, want ErrCodeNotFound", err)
	}
}

func TestVerify_UnknownEmail(t *testing.T) {
	s := NewStore(10*time.Minute, 5)
	defer s.Stop()

	if err := s.Verify("nobody@example.com", "123456"); err != ErrCodeNotFound {
		t.Errorf("Verify() error = %v, want ErrCodeNotFound", err)
	}
}

func TestVerify_Mismatch(t *testing.T) {
	s := NewStore(10*time.Minute, 5)
	defer s.Stop()

	code, err := s.Issue("user@example.com")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}

	if err := s.Verify("user@example.com", wrong); err != ErrCodeMismatch {
		t.Fatalf("Verify(wrong) error = %v, want ErrCodeMismatch", err)
	}

	// The right code still works after a single miss.
	if err := s.Verify("user@example.com", code); err != nil {
		t.Errorf("Verify(correct) error = %v", err)
	}
}

func TestVerify_AttemptCap(t *testing.T) {
	s := NewStore(10*time.Minute, 2)
	defer s.Stop()

	code, err := s.Issue("user@example.com")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}

	if err := s.Verify("user@example.com", wrong); err != ErrCodeMismatch {
		t.Fatalf("first miss error = %v, want ErrCodeMismatch", err)
	}
	if err := s.Verify("user@example.com", wrong); err != ErrTooManyAttempts {
		t.Fatalf("second miss error = %v, want ErrTooManyAttempts", err)
	}

	// Entry was dropped, even the right code no longer works.
	if err := s.Verify("user@example.com", code); err != ErrCodeNotFound {
		t.Errorf("Verify after lockout error = %v, want ErrCodeNotFound", err)
	}
}

func TestVerify_Expired(t *testing.T) {
	s := NewStore(1*time.Nanosecond, 5)
	defer s.Stop()

	code, err := s.Issue("user@example.com")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	time.Sleep(2 * time.Millisecond)

	if err := s.Verify("user@example.com", code); err != ErrCodeExpired {
		t.Errorf("Verify() error = %v, want ErrCodeExpired", err)
	}
}

func TestIssue_ReplacesPrevious(t *testing.T) {
	s := NewStore(10*time.Minute, 5)
	defer s.Stop()

	first, err := s.Issue("user@example.com")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	second, err := s.Issue("user@example.com")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if first != second {
		if err := s.Verify("user@example.com", first); err == nil {
			t.Error("stale code verified after reissue")
		}
	}
	// Reissue again since the failed attempt above counted.
	third, err := s.Issue("user@example.com")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if err := s.Verify("user@example.com", third); err != nil {
		t.Errorf("Verify(latest) error = %v", err)
	}
}
