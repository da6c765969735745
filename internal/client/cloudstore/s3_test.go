package cloudstore

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestS3_CanUpload(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{"s3|access:secret|bucket", true},
		{"s3|access:secret|bucket|eu-west-2|http://127.0.0.1:9000/", true},
		{"s3|access:secret", false},
		{"s3|accessonly|bucket", false},
		{"s3|:secret|bucket", false},
		{"s3", false},
	}

	for _, tc := range tests {
		s := NewS3(ParseKey(tc.raw), Options{})
		assert.Equal(t, tc.want, s.CanUpload(), tc.raw)
	}
}

func TestS3_ObjectKey_DatePartitionedAndUnique(t *testing.T) {
	s := NewS3(ParseKey("s3|a:b|bucket"), Options{})
	s.now = func() time.Time { return time.Date(2024, 6, 5, 12, 0, 0, 0, time.UTC) }

	k1 := s.objectKey()
	k2 := s.objectKey()

	pattern := regexp.MustCompile(`^uploads/2024/06/05/[0-9a-f-]{36}\.csv$`)
	assert.Regexp(t, pattern, k1)
	assert.Regexp(t, pattern, k2)
	assert.NotEqual(t, k1, k2)
}
