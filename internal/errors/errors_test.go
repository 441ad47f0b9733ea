package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmbiguousMatchErrorUnwraps(t *testing.T) {
	err := fmt.Errorf("resolving experiment: %w", &AmbiguousMatchError{
		Identifier: "main.*",
		Matches:    []string{"main_a", "main_b"},
	})

	assert.True(t, errors.Is(err, ErrAmbiguousMatch))

	var amb *AmbiguousMatchError
	require.True(t, errors.As(err, &amb))
	assert.Equal(t, []string{"main_a", "main_b"}, amb.Matches)
	assert.Contains(t, err.Error(), "main_a, main_b")
}
