package version_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gopatchy/jsv/pkg/version"
)

func TestVersion(t *testing.T) {
	t.Parallel()

	require.NotEmpty(t, version.Version())
	require.NotNil(t, version.GetVersion())
}
