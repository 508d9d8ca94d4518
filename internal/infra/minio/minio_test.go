package minio

import (
	"context"
	"strings"
	"testing"

	"recipe-finder/internal/config"
)

func TestGetPublicURL(t *testing.T) {
	if got := GetPublicURL("cdn.local:9000", false, "avatars", "u/1.png"); got != "http://cdn.local:9000/avatars/u/1.png" {
		t.Errorf("url = %s", got)
	}
	if got := GetPublicURL("cdn.local", true, "avatars", "a.jpg"); got != "https://cdn.local/avatars/a.jpg" {
		t.Errorf("url = %s", got)
	}
}

func TestPublicReadPolicyScopesBucket(t *testing.T) {
	p := PublicReadPolicy("avatars")
	if !strings.Contains(p, "arn:aws:s3:::avatars/*") || !strings.Contains(p, "s3:GetObject") {
		t.Errorf("policy = %s", p)
	}
}

func TestUploadAvatarWithoutClient(t *testing.T) {
	s := NewAvatarStore(nil, &config.MinIOConfig{AvatarBucket: "avatars"})
	if _, err := s.UploadAvatar(context.Background(), "a.png", strings.NewReader("x"), 1, "image/png"); err == nil {
		t.Fatal("expected error without client")
	}
}
