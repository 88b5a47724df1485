// Package cache keeps finished reports for repeated uploads of the same
// resume against the same job description.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/yourusername/resumeiq-api/internal/ats"
)

// ReportCache stores finished reports by Key.
type ReportCache interface {
	Get(ctx context.Context, key string) (*ats.Report, error)
	Set(ctx context.Context, key string, r *ats.Report) error
}

// ErrMiss is returned by Get when no report is stored under the key.
var ErrMiss = errors.New("cache miss")

const keyPrefix = "resumeiq:report:"

// Key derives the cache key for an upload. The job description is part of
// the key because it changes the keyword score.
func Key(data []byte, jobDescription string) string {
	h := sha256.New()
	h.Write(data)
	h.Write([]byte{0})
	h.Write([]byte(jobDescription))
	return keyPrefix + hex.EncodeToString(h.Sum(nil))
}

func encodeReport(r *ats.Report) ([]byte, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encoding report: %w", err)
	}
	return b, nil
}

func decodeReport(b []byte) (*ats.Report, error) {
	var r ats.Report
	if err := json.Unmarshal(b, &r); err != nil {
		return nil, fmt.Errorf("decoding cached report: %w", err)
	}
	return &r, nil
}
