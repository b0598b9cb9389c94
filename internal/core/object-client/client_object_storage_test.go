package objectclient

import (
	"context"
	"testing"

	cfg "github.com/markdave123-py/docreader/internal/config"
)

func TestObjectURL(t *testing.T) {
	got := ObjectURL("docs", "eu-west-1", "uploads/42/a.pdf")
	if got != "https://docs.s3.eu-west-1.amazonaws.com/uploads/42/a.pdf" {
		t.Errorf("ObjectURL = %q", got)
	}
}

func TestNewS3Client_Validation(t *testing.T) {
	tests := []struct {
		name string
		cfg  cfg.Config
	}{
		{"no credentials", cfg.Config{AwsRegion: "us-east-2", BucketName: "b"}},
		{"no region", cfg.Config{AwsAccessKey: "k", AwsSecretKey: "s", BucketName: "b"}},
		{"no bucket", cfg.Config{AwsAccessKey: "k", AwsSecretKey: "s", AwsRegion: "us-east-2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewS3Client(context.Background(), &tt.cfg); err == nil {
				t.Error("expected error")
			}
		})
	}
}
