// Package pickup provides PickupSink backends: a per-order file and a
// Postgres table. The engine writes credentials and never reads back.
package pickup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"burger-pos/internal/domain"
)

// FileSink drops each code into pickup_<orderNumber>.txt under Dir.
type FileSink struct {
	Dir string
}

func NewFileSink(dir string) *FileSink { return &FileSink{Dir: dir} }

func (s *FileSink) Store(_ context.Context, cred domain.PickupCredential) error {
	name := filepath.Join(s.Dir, fmt.Sprintf("pickup_%d.txt", cred.OrderNumber))
	if err := os.WriteFile(name, []byte(cred.Code), 0o644); err != nil {
		return fmt.Errorf("write pickup file: %w", err)
	}
	return nil
}
