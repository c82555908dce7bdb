package fingerprint

import (
	"net/http"
	"testing"
)

func TestTransport_GoProfile(t *testing.T) {
	rt, err := Transport(ProfileGo, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tr, ok := rt.(*http.Transport)
	if !ok {
		t.Fatalf("expected *http.Transport, got %T", rt)
	}
	if tr.DialTLSContext != nil {
		t.Error("go profile should not override DialTLSContext")
	}
}

func TestTransport_BrowserProfiles(t *testing.T) {
	for _, p := range []Profile{ProfileChrome, ProfileFirefox, ProfileSafari} {
		rt, err := Transport(p, nil)
		if err != nil {
			t.Fatalf("profile %s: unexpected error: %v", p, err)
		}
		tr, ok := rt.(*http.Transport)
		if !ok {
			t.Fatalf("profile %s: expected *http.Transport, got %T", p, rt)
		}
		if tr.DialTLSContext == nil {
			t.Errorf("profile %s: expected custom TLS dialer", p)
		}
	}
}

func TestTransport_UnknownProfile(t *testing.T) {
	if _, err := Transport(Profile("netscape"), nil); err == nil {
		t.Error("expected error for unknown profile")
	}
}

func TestTransport_EmptyProfileDefaultsToGo(t *testing.T) {
	if _, err := Transport(Profile(""), nil); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
