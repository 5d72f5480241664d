package prompt

import (
	"strings"
	"testing"
)

func TestNewTiktokenEstimator_UnknownEncoding(t *testing.T) {
	_, err := NewTiktokenEstimator("no-such-encoding")
	if err == nil {
		t.Fatal("unknown encoding name should fail")
	}
	if !strings.Contains(err.Error(), "no-such-encoding") {
		t.Errorf("error should name the encoding, got %q", err)
	}
}
