package middleware

import (
	"log/slog"
	"os"
	"testing"

	"github.com/vorokhovskii-creator/felix-hub/internal/i18n"
)

func TestMain(m *testing.M) {
	if err := i18n.Init(slog.New(slog.DiscardHandler)); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}
