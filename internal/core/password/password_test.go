package password

import "testing"

func TestHashAndVerify(t *testing.T) {
	h, err := Hash("s3cret1")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if h == "s3cret1" {
		t.Fatalf("hash equals plaintext")
	}
	if !Verify("s3cret1", h) {
		t.Fatalf("correct password did not verify")
	}
	if Verify("wrong", h) {
		t.Fatalf("wrong password verified")
	}
}

func TestHash_Salted(t *testing.T) {
	h1, err := Hash("same-input")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	h2, err := Hash("same-input")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if h1 == h2 {
		t.Fatalf("expected distinct hashes for the same plaintext")
	}
}

func TestVerify_MalformedHash(t *testing.T) {
	if Verify("whatever", "not-a-bcrypt-hash") {
		t.Fatalf("malformed hash verified")
	}
	if Verify("whatever", "") {
		t.Fatalf("empty hash verified")
	}
}
