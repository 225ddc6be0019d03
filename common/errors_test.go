package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordErrorUnwrap(t *testing.T) {
	err := NewRecordError(3, "Timestamp", "2024-01-01", ErrorParse)

	assert.True(t, errors.Is(err, ErrorParse))
	assert.False(t, errors.Is(err, ErrorMalformedData))
	assert.Equal(t, `row 3: Timestamp "2024-01-01": timestamp parse error`, err.Error())

	wrapped := fmt.Errorf("load samples: %w", err)
	var recordErr *RecordError
	assert.True(t, errors.As(wrapped, &recordErr))
	assert.Equal(t, 3, recordErr.Row)
	assert.True(t, errors.Is(wrapped, ErrorParse))
}
