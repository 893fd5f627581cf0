package transaction

import (
	"io"
	"os"
	"testing"

	"storefront-checkout/internal/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.SetOutput(io.Discard)
	os.Exit(m.Run())
}
